package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/hamcount/pkg/graph"
)

// Formats accepted by Render.
const (
	FormatDOT = "dot"
	FormatSVG = "svg"
)

// Options configures arrangement diagrams.
type Options struct {
	// Detailed adds the rank and boundary size to vertex labels.
	// When false, only the vertex ID is shown.
	Detailed bool
}

// Boundary returns, for each prefix length t in 1..n, the number of prefix
// vertices with a neighbour outside the prefix, together with the boundary
// of the first widest prefix. order must be a permutation of g's vertices.
func Boundary(g *graph.Graph, order []string) (sizes []int, widest []string, err error) {
	ranks, err := g.Ranks(order)
	if err != nil {
		return nil, nil, err
	}
	// last[v] is the highest rank among v and its neighbours; v is on the
	// boundary of prefix t while rank(v) <= t < last[v].
	last := make(map[string]int, len(order))
	for _, v := range order {
		last[v] = ranks[v]
		for _, w := range g.Neighbors(v) {
			last[v] = max(last[v], ranks[w])
		}
	}
	sizes = make([]int, len(order))
	best := 0
	for t := 1; t <= len(order); t++ {
		for _, v := range order[:t] {
			if last[v] > t {
				sizes[t-1]++
			}
		}
		if sizes[t-1] > sizes[best] {
			best = t - 1
		}
	}
	if len(order) == 0 || sizes[best] == 0 {
		return sizes, nil, nil
	}
	for _, v := range order[:best+1] {
		if last[v] > best+1 {
			widest = append(widest, v)
		}
	}
	return sizes, widest, nil
}

// ToDOT converts g laid out along order to Graphviz DOT.
func ToDOT(g *graph.Graph, order []string, opts Options) (string, error) {
	sizes, widest, err := Boundary(g, order)
	if err != nil {
		return "", err
	}
	onBoundary := make(map[string]bool, len(widest))
	for _, v := range widest {
		onBoundary[v] = true
	}

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=14];\n")
	buf.WriteString("  nodesep=0.3;\n")
	if name := g.Name(); name != "" {
		fmt.Fprintf(&buf, "  label=%q;\n", name)
	}
	buf.WriteString("\n")

	for i, v := range order {
		attrs := []string{fmt.Sprintf("label=%q", fmtLabel(v, i+1, sizes[i], opts.Detailed))}
		if onBoundary[v] {
			attrs = append(attrs, "fillcolor=lightblue")
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", v, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for i := 1; i < len(order); i++ {
		fmt.Fprintf(&buf, "  %q -- %q [style=invis, weight=100];\n", order[i-1], order[i])
	}
	for _, e := range g.Edges() {
		fmt.Fprintf(&buf, "  %q -- %q [constraint=false];\n", e.U, e.V)
	}

	buf.WriteString("}\n")
	return buf.String(), nil
}

func fmtLabel(id string, rank, boundary int, detailed bool) string {
	if !detailed {
		return id
	}
	return fmt.Sprintf("%s\n#%d  |%d|", id, rank, boundary)
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

// Render produces the arrangement diagram in format (dot or svg).
func Render(ctx context.Context, g *graph.Graph, order []string, format string, opts Options) ([]byte, error) {
	dot, err := ToDOT(g, order, opts)
	if err != nil {
		return nil, err
	}
	switch format {
	case FormatDOT:
		return []byte(dot), nil
	case FormatSVG, "":
		return RenderSVG(ctx, dot)
	}
	return nil, fmt.Errorf("unsupported format %q (must be dot or svg)", format)
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
