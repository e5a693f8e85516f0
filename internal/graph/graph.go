// Package graph holds the in-memory directed multigraph produced by the loader.
// Nodes and edges keep declaration order so every later stage is deterministic.
package graph

import (
	"fmt"
	"sort"

	"github.com/leapstack-labs/dotviz/internal/attr"
)

// Node represents a node in the graph.
type Node struct {
	// ID is the unquoted node identifier
	ID string
	// Attrs holds raw attribute values as written in the source
	Attrs attr.Attrs
}

// Edge represents a directed edge. Parallel edges are allowed.
type Edge struct {
	From  string
	To    string
	Attrs attr.Attrs
}

// ClusterMap maps a node ID to the label of its enclosing cluster.
type ClusterMap map[string]string

// Labels returns the distinct cluster labels in sorted order.
func (m ClusterMap) Labels() []string {
	seen := make(map[string]bool, len(m))
	labels := make([]string, 0, len(m))
	for _, label := range m {
		if !seen[label] {
			seen[label] = true
			labels = append(labels, label)
		}
	}
	sort.Strings(labels)
	return labels
}

// Members returns the number of nodes tagged with each label.
func (m ClusterMap) Members() map[string]int {
	counts := make(map[string]int)
	for _, label := range m {
		counts[label]++
	}
	return counts
}

// Graph represents a directed multigraph.
type Graph struct {
	Name  string
	nodes map[string]*Node
	order []string
	edges []*Edge
}

// New creates a new empty graph.
func New(name string) *Graph {
	return &Graph{
		Name:  name,
		nodes: make(map[string]*Node),
	}
}

// AddNode adds a node to the graph. Adding an existing ID merges attributes,
// with later values overriding earlier ones.
func (g *Graph) AddNode(id string, attrs attr.Attrs) {
	if n, exists := g.nodes[id]; exists {
		for k, v := range attrs {
			n.Attrs[k] = v
		}
		return
	}

	n := &Node{ID: id, Attrs: attr.Attrs{}}
	for k, v := range attrs {
		n.Attrs[k] = v
	}
	g.nodes[id] = n
	g.order = append(g.order, id)
}

// AddEdge adds a directed edge between two existing nodes.
func (g *Graph) AddEdge(from, to string, attrs attr.Attrs) error {
	if _, exists := g.nodes[from]; !exists {
		return fmt.Errorf("source node %q does not exist", from)
	}
	if _, exists := g.nodes[to]; !exists {
		return fmt.Errorf("target node %q does not exist", to)
	}

	e := &Edge{From: from, To: to, Attrs: attr.Attrs{}}
	for k, v := range attrs {
		e.Attrs[k] = v
	}
	g.edges = append(g.edges, e)
	return nil
}

// Node returns a node by ID.
func (g *Graph) Node(id string) (*Node, bool) {
	n, exists := g.nodes[id]
	return n, exists
}

// Nodes returns all nodes in declaration order.
func (g *Graph) Nodes() []*Node {
	nodes := make([]*Node, 0, len(g.order))
	for _, id := range g.order {
		nodes = append(nodes, g.nodes[id])
	}
	return nodes
}

// Edges returns all edges in declaration order.
func (g *Graph) Edges() []*Edge {
	edges := make([]*Edge, len(g.edges))
	copy(edges, g.edges)
	return edges
}

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

// EdgeCount returns the number of edges in the graph.
func (g *Graph) EdgeCount() int {
	return len(g.edges)
}
