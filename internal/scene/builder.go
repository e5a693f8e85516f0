package scene

import (
	"log/slog"
	"math"
	"strings"

	"github.com/leapstack-labs/dotviz/internal/attr"
	"github.com/leapstack-labs/dotviz/internal/graph"
	"github.com/leapstack-labs/dotviz/internal/palette"
)

// Visual defaults.
const (
	DefaultNodeColor = "#97C2FC"
	DefaultEdgeColor = "#848484"
	DefaultFontFace  = "Helvetica"
	DefaultFontSize  = 14
	DefaultArrows    = "normal"
	DefaultWidth     = 1.0
	DefaultGroup     = "default"

	ShapeBox     = "box"
	ShapeEllipse = "ellipse"
)

// visArrowTypes maps Graphviz arrowhead names onto vis-network arrow types.
var visArrowTypes = map[string]string{
	"normal": "arrow",
	"vee":    "vee",
	"tee":    "bar",
	"dot":    "circle",
	"odot":   "circle",
	"inv":    "inv_triangle",
	"box":    "box",
	"obox":   "box",
	"crow":   "crow",
	"curve":  "curve",
	"icurve": "curve",
}

// VisArrows converts an arrowhead style to the arrow drawn at the edge target.
// "none" draws nothing; styles vis-network has no shape for fall back to a
// plain arrow.
func VisArrows(arrowhead string) EdgeArrows {
	if arrowhead == "none" {
		return EdgeArrows{To: EdgeArrow{Enabled: false, Type: "arrow"}}
	}
	typ, ok := visArrowTypes[arrowhead]
	if !ok {
		typ = "arrow"
	}
	return EdgeArrows{To: EdgeArrow{Enabled: true, Type: typ}}
}

// DefaultOptions returns the fixed layout and physics configuration.
func DefaultOptions(groups palette.GroupStyles) Options {
	if groups == nil {
		groups = palette.GroupStyles{}
	}
	return Options{
		Physics: Physics{
			BarnesHut: BarnesHut{
				GravitationalConstant: -8000,
				SpringConstant:        0.001,
				SpringLength:          200,
			},
			MinVelocity: 0.75,
		},
		Edges: EdgeOptions{
			Color:  EdgeColor{Inherit: true},
			Smooth: EdgeSmooth{Type: "continuous"},
		},
		Nodes: NodeOptions{
			Font: NodeFont{Size: DefaultFontSize},
		},
		Groups: groups,
		Layout: Layout{
			Hierarchical: Hierarchical{
				Enabled:    true,
				Direction:  "LR",
				SortMethod: "hubsize",
			},
		},
	}
}

// Builder turns a normalized graph into a Scene.
type Builder struct {
	logger *slog.Logger
}

// NewBuilder creates a builder. A nil logger discards output.
func NewBuilder(logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Builder{logger: logger}
}

// Build derives visual nodes and edges from g. Nodes missing from clusters
// fall into the default group.
func (b *Builder) Build(g *graph.Graph, clusters graph.ClusterMap, groups palette.GroupStyles) *Scene {
	s := &Scene{
		Nodes:   make([]Node, 0, g.NodeCount()),
		Edges:   make([]Edge, 0, g.EdgeCount()),
		Options: DefaultOptions(groups),
	}

	for _, n := range g.Nodes() {
		s.Nodes = append(s.Nodes, b.node(n, clusters))
	}
	for _, e := range g.Edges() {
		s.Edges = append(s.Edges, b.edge(e))
	}

	return s
}

func (b *Builder) node(n *graph.Node, clusters graph.ClusterMap) Node {
	a := n.Attrs

	shape := ShapeEllipse
	if a.Get("shape", "") == ShapeBox {
		shape = ShapeBox
	}

	group, ok := clusters[n.ID]
	if !ok {
		group = DefaultGroup
	}

	return Node{
		ID:    n.ID,
		Label: strings.Trim(a.Get("label", n.ID), "<>"),
		Title: a.Get("tooltip", ""),
		URL:   a.Get("URL", ""),
		Color: a.Get("fillcolor", DefaultNodeColor),
		Shape: shape,
		Font: Font{
			Face: a.Get("fontname", DefaultFontFace),
			Size: b.fontSize(n.ID, a),
		},
		Group: group,
	}
}

func (b *Builder) edge(e *graph.Edge) Edge {
	a := e.Attrs

	return Edge{
		From:   e.From,
		To:     e.To,
		Label:  a.Get("label", ""),
		Title:  a.Get("tooltip", ""),
		URL:    a.Get("URL", ""),
		Color:  a.Get("color", DefaultEdgeColor),
		Arrows: a.Get("arrowhead", DefaultArrows),
		Width:  b.penWidth(e, a),
		Dashes: a.Get("style", "") == "dashed",
		Smooth: true,
	}
}

// fontSize parses fontsize as a float and truncates it toward zero.
func (b *Builder) fontSize(id string, a attr.Attrs) int {
	raw, ok := a.Lookup("fontsize")
	if !ok {
		return DefaultFontSize
	}
	f, err := attr.ParseFloat("fontsize", raw)
	if err != nil {
		b.logger.Debug("using default font size", "node", id, "error", err)
		return DefaultFontSize
	}
	if f > math.MaxInt32 || f < math.MinInt32 {
		b.logger.Debug("font size out of range", "node", id, "value", f)
		return DefaultFontSize
	}
	return int(f)
}

func (b *Builder) penWidth(e *graph.Edge, a attr.Attrs) float64 {
	raw, ok := a.Lookup("penwidth")
	if !ok {
		return DefaultWidth
	}
	f, err := attr.ParseFloat("penwidth", raw)
	if err != nil {
		b.logger.Debug("using default pen width", "from", e.From, "to", e.To, "error", err)
		return DefaultWidth
	}
	if f < 0 {
		b.logger.Debug("negative pen width", "from", e.From, "to", e.To, "value", f)
		return DefaultWidth
	}
	return f
}
