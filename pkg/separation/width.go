package separation

import (
	"github.com/matzehuels/hamcount/pkg/graph"
)

// Width returns the vertex separation of g under order: the maximum over
// prefixes P of the number of vertices in P with a neighbour outside P.
func Width(g *graph.Graph, order []string) (int, error) {
	if _, err := g.Ranks(order); err != nil {
		return 0, err
	}
	inside := make(map[string]bool, len(order))
	outside := make(map[string]int, len(order)) // neighbours not yet placed
	boundary, width := 0, 0
	for _, v := range order {
		inside[v] = true
		open := 0
		for _, w := range g.Neighbors(v) {
			if !inside[w] {
				open++
				continue
			}
			outside[w]--
			if outside[w] == 0 {
				boundary--
			}
		}
		outside[v] = open
		if open > 0 {
			boundary++
		}
		width = max(width, boundary)
	}
	return width, nil
}

// OuterWidth returns the maximum over prefixes P of order of the number of
// vertices outside P with a neighbour in P.
func OuterWidth(g *graph.Graph, order []string) (int, error) {
	if _, err := g.Ranks(order); err != nil {
		return 0, err
	}
	inside := make(map[string]bool, len(order))
	touched := make(map[string]bool, len(order))
	frontier, width := 0, 0
	for _, v := range order {
		inside[v] = true
		if touched[v] {
			frontier--
		}
		for _, w := range g.Neighbors(v) {
			if !inside[w] && !touched[w] {
				touched[w] = true
				frontier++
			}
		}
		width = max(width, frontier)
	}
	return width, nil
}
