// Package loader reads DOT documents into the in-memory graph model.
// Parsing is delegated to gographviz; this package maps its result onto
// graph.Graph and extracts cluster membership from the subgraph tree.
package loader

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/awalterschulze/gographviz"
	"github.com/leapstack-labs/dotviz/internal/attr"
	"github.com/leapstack-labs/dotviz/internal/graph"
)

// clusterPrefix marks a subgraph as a visual cluster, following Graphviz.
const clusterPrefix = "cluster"

// ErrNotExist is returned when the input path does not exist.
var ErrNotExist = errors.New("specified DOT file does not exist")

// LoadError reports an unreadable or malformed input document.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("error reading DOT file %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Loader parses DOT files.
type Loader struct {
	logger *slog.Logger
}

// New creates a loader. A nil logger discards output.
func New(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Loader{logger: logger}
}

// Load reads and parses the DOT file at path.
func (l *Loader) Load(path string) (*graph.Graph, graph.ClusterMap, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, &LoadError{Path: path, Err: ErrNotExist}
		}
		return nil, nil, &LoadError{Path: path, Err: err}
	}
	if info.IsDir() {
		return nil, nil, &LoadError{Path: path, Err: fmt.Errorf("%s is a directory", path)}
	}

	data, err := os.ReadFile(path) //nolint:gosec // G304: path is the user's input file
	if err != nil {
		return nil, nil, &LoadError{Path: path, Err: err}
	}

	g, clusters, err := l.Parse(data)
	if err != nil {
		return nil, nil, &LoadError{Path: path, Err: err}
	}
	return g, clusters, nil
}

// Parse converts a DOT document into a graph and its cluster map. Attribute
// names are not checked against the Graphviz attribute list.
func (l *Loader) Parse(data []byte) (*graph.Graph, graph.ClusterMap, error) {
	ast, err := gographviz.Parse(data)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse DOT: %w", err)
	}

	a := newAnalyser()
	if err := gographviz.Analyse(ast, a); err != nil {
		return nil, nil, fmt.Errorf("failed to analyse DOT: %w", err)
	}
	if err := a.finish(); err != nil {
		return nil, nil, fmt.Errorf("failed to analyse DOT: %w", err)
	}

	g := a.g
	clusters := scanClusters(a)

	l.logger.Debug("parsed graph",
		"name", g.Name,
		"nodes", g.NodeCount(),
		"edges", g.EdgeCount(),
		"clusters", len(clusters.Labels()))

	return g, clusters, nil
}

// scanClusters walks the subgraph tree from the root graph. Nodes take the
// label of the innermost enclosing cluster; structural subgraphs pass the
// enclosing label through.
func scanClusters(a *analyser) graph.ClusterMap {
	clusters := graph.ClusterMap{}
	visited := make(map[string]bool)

	var walk func(parent string, label *string)
	walk = func(parent string, label *string) {
		var subgraphs []string
		for _, child := range a.sortedChildren(parent) {
			if _, ok := a.subgraphs[child]; ok {
				subgraphs = append(subgraphs, child)
				continue
			}
			if label != nil {
				clusters[attr.Clean(child)] = *label
			}
		}

		// Nested subgraphs are visited after direct members so inner clusters win.
		for _, sub := range subgraphs {
			if visited[sub] {
				continue
			}
			visited[sub] = true
			walk(sub, clusterLabel(sub, a.subgraphs[sub], label))
		}
	}

	walk(a.root, nil)
	return clusters
}

// clusterLabel returns the label a subgraph assigns to its members, or
// inherited when the subgraph is not a cluster. An explicit label is used even
// when empty; only an absent one falls back to the subgraph name.
func clusterLabel(name string, attrs attr.Attrs, inherited *string) *string {
	name = attr.Clean(name)
	if !strings.HasPrefix(name, clusterPrefix) {
		return inherited
	}

	if raw, ok := attrs["label"]; ok {
		if value, ok := attr.Unwrap(raw); ok {
			label := attr.Clean(value)
			return &label
		}
	}
	return &name
}
