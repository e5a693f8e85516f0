// Package engine runs the DOT to interactive HTML pipeline.
// It loads the graph, colours its clusters, builds the scene, writes the page
// and injects the neighbour-toggle behaviour.
package engine

import (
	"log/slog"

	"github.com/leapstack-labs/dotviz/internal/inject"
	"github.com/leapstack-labs/dotviz/internal/loader"
	"github.com/leapstack-labs/dotviz/internal/palette"
	"github.com/leapstack-labs/dotviz/internal/render"
	"github.com/leapstack-labs/dotviz/internal/scene"
)

// DefaultOutputPath is the artifact written when no path is configured.
const DefaultOutputPath = "interactive_graph.html"

// Engine orchestrates a single conversion.
type Engine struct {
	logger  *slog.Logger
	loader  *loader.Loader
	builder *scene.Builder

	inputPath  string
	outputPath string
	seed       int64
	page       render.Page
	inject     bool
	minify     bool

	injector func(path string, opts inject.Options) error
}

// Config holds engine configuration.
type Config struct {
	// InputPath is the DOT file to convert
	InputPath string
	// OutputPath is where the page is written (defaults to DefaultOutputPath)
	OutputPath string
	// Seed drives cluster colour assignment
	Seed int64
	// Page holds the page-level settings; empty fields use render defaults
	Page render.Page
	// Inject enables the neighbour-toggle script
	Inject bool
	// Minify minifies the injected script
	Minify bool
	// Logger is the structured logger (optional, uses discard if nil)
	Logger *slog.Logger
}

// New creates an engine from cfg.
func New(cfg Config) *Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	out := cfg.OutputPath
	if out == "" {
		out = DefaultOutputPath
	}

	return &Engine{
		logger:     logger,
		loader:     loader.New(logger),
		builder:    scene.NewBuilder(logger),
		inputPath:  cfg.InputPath,
		outputPath: out,
		seed:       cfg.Seed,
		page:       cfg.Page.WithDefaults(),
		inject:     cfg.Inject,
		minify:     cfg.Minify,
		injector:   inject.Inject,
	}
}

// ClusterSummary describes one colour group of the rendered page.
type ClusterSummary struct {
	Label string `json:"label"`
	Color string `json:"color"`
	Nodes int    `json:"nodes"`
}

// Result is the outcome of a successful run.
type Result struct {
	Scene      *scene.Scene
	OutputPath string
	Clusters   []ClusterSummary
	// Injected reports whether the toggle script was added
	Injected bool
	// InjectErr holds the non-fatal injection failure, if any
	InjectErr error
}

// summarize lists clusters in label order with their colour and member count.
func summarize(labels []string, members map[string]int, groups palette.GroupStyles) []ClusterSummary {
	out := make([]ClusterSummary, 0, len(labels))
	for _, label := range labels {
		out = append(out, ClusterSummary{
			Label: label,
			Color: groups[label].Color.Background,
			Nodes: members[label],
		})
	}
	return out
}
