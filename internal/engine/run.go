package engine

import (
	"fmt"

	"github.com/leapstack-labs/dotviz/internal/inject"
	"github.com/leapstack-labs/dotviz/internal/palette"
	"github.com/leapstack-labs/dotviz/internal/render"
)

// Run executes the pipeline. Load and render failures are returned; an
// injection failure is reported on the Result for the caller to surface.
func (e *Engine) Run() (*Result, error) {
	e.logger.Debug("loading graph", "path", e.inputPath)

	g, clusters, err := e.loader.Load(e.inputPath)
	if err != nil {
		return nil, err
	}

	labels := clusters.Labels()
	groups := palette.Assign(labels, e.seed)
	e.logger.Debug("assigned cluster colours", "clusters", len(labels), "seed", e.seed)

	s := e.builder.Build(g, clusters, groups)
	e.logger.Debug("built scene", "nodes", len(s.Nodes), "edges", len(s.Edges))

	if err := render.Write(e.outputPath, s, e.page); err != nil {
		return nil, err
	}
	e.logger.Debug("wrote artifact", "path", e.outputPath)

	result := &Result{
		Scene:      s,
		OutputPath: e.outputPath,
		Clusters:   summarize(labels, clusters.Members(), groups),
	}

	if !e.inject {
		e.logger.Debug("script injection disabled")
		return result, nil
	}

	if err := e.injector(e.outputPath, inject.Options{Minify: e.minify}); err != nil {
		e.logger.Debug("custom JavaScript not injected", "path", e.outputPath, "error", err)
		result.InjectErr = fmt.Errorf("collapse/expand behaviour unavailable: %w", err)
		return result, nil
	}

	e.logger.Debug("injected toggle script", "path", e.outputPath, "minify", e.minify)
	result.Injected = true
	return result, nil
}
