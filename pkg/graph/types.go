package graph

import (
	"encoding/json"
	"fmt"
)

// =============================================================================
// Document - Graph Serialization
// =============================================================================

// Document is the canonical serialization format for undirected graphs.
// Used for graph files, the results ledger and cache keys.
//
// The format is human-readable and preserves insertion order, so
// import → export → re-import produces identical bytes.
type Document struct {
	Name  string `json:"name,omitempty" bson:"name,omitempty"`
	Nodes []Node `json:"nodes" bson:"nodes"`
	Edges []Link `json:"edges" bson:"edges"`
}

// Node is a serialized vertex. Rank is the 1-based arrangement position and
// is only written when the document was produced with an order.
type Node struct {
	ID   string `json:"id" bson:"id"`
	Rank int    `json:"rank,omitempty" bson:"rank,omitempty"`
}

// Link is a serialized undirected edge.
type Link struct {
	From string `json:"from" bson:"from"`
	To   string `json:"to" bson:"to"`
}

// =============================================================================
// Graph ↔ Document Conversion
// =============================================================================

// ToDocument converts g to its serialization format in insertion order.
func ToDocument(g *Graph) Document {
	return toDocument(g, nil)
}

// ToRankedDocument converts g to its serialization format with vertices
// listed in order and annotated with their ranks.
func ToRankedDocument(g *Graph, order []string) (Document, error) {
	ranks, err := g.Ranks(order)
	if err != nil {
		return Document{}, err
	}
	doc := toDocument(g, ranks)
	for i, v := range order {
		doc.Nodes[i] = Node{ID: v, Rank: ranks[v]}
	}
	return doc, nil
}

func toDocument(g *Graph, ranks map[string]int) Document {
	out := Document{
		Name:  g.Name(),
		Nodes: make([]Node, 0, g.VertexCount()),
		Edges: make([]Link, 0, g.EdgeCount()),
	}
	for _, v := range g.vertices {
		out.Nodes = append(out.Nodes, Node{ID: v, Rank: ranks[v]})
	}
	for _, e := range g.edges {
		out.Edges = append(out.Edges, Link{From: e.U, To: e.V})
	}
	return out
}

// FromDocument builds a Graph from its serialization format.
// Edges may reference vertices missing from Nodes; they are added implicitly.
func FromDocument(doc Document) (*Graph, error) {
	g := New(doc.Name)
	for _, n := range doc.Nodes {
		if err := g.AddVertex(n.ID); err != nil {
			return nil, err
		}
	}
	for _, e := range doc.Edges {
		if err := g.AddEdge(e.From, e.To); err != nil {
			return nil, fmt.Errorf("edge %s-%s: %w", e.From, e.To, err)
		}
	}
	return g, nil
}

// UnmarshalDocument parses JSON bytes into a Document without building a
// Graph.
func UnmarshalDocument(data []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("decode: %w", err)
	}
	return doc, nil
}
