// Package scene builds the renderer-agnostic scene graph: visual nodes, visual
// edges and the options payload handed verbatim to vis-network.
package scene

import (
	"encoding/json"

	"github.com/leapstack-labs/dotviz/internal/palette"
)

// Scene is the complete input of the rendering step.
type Scene struct {
	Nodes   []Node  `json:"nodes"`
	Edges   []Edge  `json:"edges"`
	Options Options `json:"options"`
}

// Font describes a node label font.
type Font struct {
	Face string `json:"face"`
	Size int    `json:"size"`
}

// Node is a node with its final visual properties.
type Node struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Title string `json:"title"`
	URL   string `json:"url,omitempty"`
	Color string `json:"color"`
	Shape string `json:"shape"`
	Font  Font   `json:"font"`
	Group string `json:"group"`
}

// Edge is an edge with its final visual properties. Arrows holds the Graphviz
// arrowhead style; it is encoded as "arrowhead" next to the vis-network
// "arrows" object derived from it.
type Edge struct {
	From   string  `json:"from"`
	To     string  `json:"to"`
	Label  string  `json:"label,omitempty"`
	Title  string  `json:"title"`
	URL    string  `json:"url,omitempty"`
	Color  string  `json:"color"`
	Arrows string  `json:"-"`
	Width  float64 `json:"width"`
	Dashes bool    `json:"dashes"`
	Smooth bool    `json:"smooth"`
}

// EdgeArrow is one vis-network arrow end.
type EdgeArrow struct {
	Enabled bool   `json:"enabled"`
	Type    string `json:"type"`
}

// EdgeArrows places the arrow at the target end; every edge is directed.
type EdgeArrows struct {
	To EdgeArrow `json:"to"`
}

// MarshalJSON encodes the edge in the shape vis-network reads.
func (e Edge) MarshalJSON() ([]byte, error) {
	type plain Edge
	return json.Marshal(struct {
		plain
		Arrowhead string     `json:"arrowhead"`
		Arrows    EdgeArrows `json:"arrows"`
	}{plain: plain(e), Arrowhead: e.Arrows, Arrows: VisArrows(e.Arrows)})
}

// Options is the layout/physics payload. Field names follow vis-network.
type Options struct {
	Physics Physics             `json:"physics"`
	Edges   EdgeOptions         `json:"edges"`
	Nodes   NodeOptions         `json:"nodes"`
	Groups  palette.GroupStyles `json:"groups"`
	Layout  Layout              `json:"layout"`
}

// Physics configures the Barnes-Hut simulation.
type Physics struct {
	BarnesHut   BarnesHut `json:"barnesHut"`
	MinVelocity float64   `json:"minVelocity"`
}

// BarnesHut holds the solver constants.
type BarnesHut struct {
	GravitationalConstant float64 `json:"gravitationalConstant"`
	SpringConstant        float64 `json:"springConstant"`
	SpringLength          float64 `json:"springLength"`
}

// EdgeOptions are global edge defaults.
type EdgeOptions struct {
	Color  EdgeColor  `json:"color"`
	Smooth EdgeSmooth `json:"smooth"`
}

// EdgeColor controls colour inheritance.
type EdgeColor struct {
	Inherit bool `json:"inherit"`
}

// EdgeSmooth selects the curve type.
type EdgeSmooth struct {
	Type string `json:"type"`
}

// NodeOptions are global node defaults.
type NodeOptions struct {
	Font NodeFont `json:"font"`
}

// NodeFont is the default label font size.
type NodeFont struct {
	Size int `json:"size"`
}

// Layout selects the layout engine.
type Layout struct {
	Hierarchical Hierarchical `json:"hierarchical"`
}

// Hierarchical configures the hierarchical layout.
type Hierarchical struct {
	Enabled    bool   `json:"enabled"`
	Direction  string `json:"direction"`
	SortMethod string `json:"sortMethod"`
}
