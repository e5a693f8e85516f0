package loader

import (
	"sort"

	"github.com/awalterschulze/gographviz"
	"github.com/leapstack-labs/dotviz/internal/attr"
	"github.com/leapstack-labs/dotviz/internal/graph"
)

var _ gographviz.Interface = (*analyser)(nil)

// analyser receives the gographviz AST walk and records nodes, edges and the
// subgraph tree. Attribute names are kept as written, including names that
// Graphviz itself does not define.
type analyser struct {
	g *graph.Graph

	root      string
	subgraphs map[string]attr.Attrs
	children  map[string][]string
	member    map[string]map[string]bool
	edges     []pendingEdge
}

// pendingEdge is resolved once the walk is complete, because a subgraph used
// as an endpoint is declared after the edge statement that references it.
type pendingEdge struct {
	src, dst string
	attrs    attr.Attrs
}

func newAnalyser() *analyser {
	return &analyser{
		subgraphs: make(map[string]attr.Attrs),
		children:  make(map[string][]string),
		member:    make(map[string]map[string]bool),
	}
}

func (a *analyser) SetStrict(bool) error { return nil }

func (a *analyser) SetDir(bool) error { return nil }

func (a *analyser) SetName(name string) error {
	a.root = name
	a.g = graph.New(attr.Clean(name))
	return nil
}

func (a *analyser) AddPortEdge(src, _, dst, _ string, _ bool, attrs map[string]string) error {
	a.edges = append(a.edges, pendingEdge{src: src, dst: dst, attrs: copyAttrs(attrs)})
	return nil
}

func (a *analyser) AddEdge(src, dst string, directed bool, attrs map[string]string) error {
	return a.AddPortEdge(src, "", dst, "", directed, attrs)
}

func (a *analyser) AddNode(parentGraph, name string, attrs map[string]string) error {
	a.g.AddNode(attr.Clean(name), copyAttrs(attrs))
	a.relate(parentGraph, name)
	return nil
}

func (a *analyser) AddAttr(parentGraph, field, value string) error {
	if sub, ok := a.subgraphs[parentGraph]; ok {
		sub[field] = value
	}
	return nil
}

// AddSubGraph registers name under parentGraph. Attributes inherited from
// graph [...] statements seed the subgraph; reopening a subgraph keeps what it
// already has.
func (a *analyser) AddSubGraph(parentGraph, name string, attrs map[string]string) error {
	a.relate(parentGraph, name)
	sub, ok := a.subgraphs[name]
	if !ok {
		sub = attr.Attrs{}
		a.subgraphs[name] = sub
	}
	for k, v := range attrs {
		if _, set := sub[k]; !set {
			sub[k] = v
		}
	}
	return nil
}

func (a *analyser) String() string {
	return a.root
}

func (a *analyser) relate(parent, child string) {
	set, ok := a.member[parent]
	if !ok {
		set = make(map[string]bool)
		a.member[parent] = set
	}
	if set[child] {
		return
	}
	set[child] = true
	a.children[parent] = append(a.children[parent], child)
}

// finish adds the recorded edges. An endpoint naming a subgraph stands for
// every node inside it, as in Graphviz.
func (a *analyser) finish() error {
	for _, e := range a.edges {
		for _, from := range a.endpoints(e.src) {
			for _, to := range a.endpoints(e.dst) {
				if err := a.g.AddEdge(from, to, e.attrs); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func (a *analyser) endpoints(name string) []string {
	if _, ok := a.subgraphs[name]; !ok {
		id := attr.Clean(name)
		if _, exists := a.g.Node(id); !exists {
			a.g.AddNode(id, nil)
		}
		return []string{id}
	}

	var ids []string
	visited := make(map[string]bool)
	added := make(map[string]bool)
	var collect func(parent string)
	collect = func(parent string) {
		if visited[parent] {
			return
		}
		visited[parent] = true
		for _, child := range a.children[parent] {
			if _, isSub := a.subgraphs[child]; isSub {
				collect(child)
				continue
			}
			if id := attr.Clean(child); !added[id] {
				added[id] = true
				ids = append(ids, id)
			}
		}
	}
	collect(name)
	return ids
}

// sortedChildren returns the members of parent in lexicographic order.
func (a *analyser) sortedChildren(parent string) []string {
	children := append([]string(nil), a.children[parent]...)
	sort.Strings(children)
	return children
}

func copyAttrs(src map[string]string) attr.Attrs {
	out := make(attr.Attrs, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
