// Package render draws a graph laid out along a vertex order.
//
// Vertices are placed left to right by rank and edges are drawn as arcs
// above the line, which makes the separation of an order visible: the
// vertices on the boundary of the widest prefix are filled.
//
//	dot := render.ToDOT(g, order, render.Options{Detailed: true})
//	svg, err := render.RenderSVG(dot)
//
// # Formats
//
// [ToDOT] produces Graphviz DOT source that can be saved and processed with
// external Graphviz tools. [RenderSVG] lays it out in-process with
// [github.com/goccy/go-graphviz].
package render
