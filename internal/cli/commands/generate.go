package commands

import (
	"fmt"
	"strconv"

	"github.com/leapstack-labs/dotviz/internal/cli/output"
	"github.com/leapstack-labs/dotviz/internal/engine"
	"github.com/spf13/cobra"
)

// GenerateOutput is the JSON summary of a conversion.
type GenerateOutput struct {
	Input       string                  `json:"input"`
	Output      string                  `json:"output"`
	Nodes       int                     `json:"nodes"`
	Edges       int                     `json:"edges"`
	Clusters    []engine.ClusterSummary `json:"clusters"`
	Injected    bool                    `json:"injected"`
	InjectError string                  `json:"inject_error,omitempty"`
}

// RunGenerate converts the DOT file at input into the interactive page and
// reports the result in the configured output mode.
func RunGenerate(cmd *cobra.Command, input string) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	engCfg := cmdCtx.Cfg.EngineConfig(input)
	engCfg.Logger = cmdCtx.Logger

	result, err := engine.New(engCfg).Run()
	if err != nil {
		return err
	}

	r := cmdCtx.Renderer
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return generateJSON(r, input, result)
	case output.ModeMarkdown:
		generateMarkdown(r, input, result)
	default:
		generateText(r, input, result, cmdCtx.Cfg.Verbose)
	}
	return nil
}

func generateJSON(r *output.Renderer, input string, result *engine.Result) error {
	out := GenerateOutput{
		Input:    input,
		Output:   result.OutputPath,
		Nodes:    len(result.Scene.Nodes),
		Edges:    len(result.Scene.Edges),
		Clusters: result.Clusters,
		Injected: result.Injected,
	}
	if result.InjectErr != nil {
		out.InjectError = result.InjectErr.Error()
	}
	return r.JSON(out)
}

func generateMarkdown(r *output.Renderer, input string, result *engine.Result) {
	r.Header(1, "Interactive Graph")
	r.KeyValue("Input", input)
	r.KeyValue("Output", result.OutputPath)
	r.KeyValue("Nodes", strconv.Itoa(len(result.Scene.Nodes)))
	r.KeyValue("Edges", strconv.Itoa(len(result.Scene.Edges)))
	r.KeyValue("Collapse/expand", injectionStatus(result))
	r.Println()

	if len(result.Clusters) > 0 {
		r.Header(2, "Clusters")
		r.Table([]string{"Cluster", "Colour", "Nodes"}, clusterRows(result.Clusters, nil))
		r.Println()
	}
}

func generateText(r *output.Renderer, input string, result *engine.Result, verbose bool) {
	r.Success("Interactive graph generated as " + r.Styles().Path.Render(result.OutputPath))

	switch {
	case result.Injected:
		r.Success("Custom JavaScript injected for collapse/expand functionality.")
	case result.InjectErr != nil:
		r.Warning(fmt.Sprintf("Custom JavaScript not injected: %v", result.InjectErr))
	}

	if !verbose {
		return
	}

	r.KeyValue("Input", input)
	r.Muted(fmt.Sprintf("%d nodes, %d edges, %d clusters",
		len(result.Scene.Nodes), len(result.Scene.Edges), len(result.Clusters)))
	if len(result.Clusters) > 0 {
		r.Table([]string{"Cluster", "Colour", "Nodes"}, clusterRows(result.Clusters, r.Styles()))
	}
}

func injectionStatus(result *engine.Result) string {
	switch {
	case result.Injected:
		return "injected"
	case result.InjectErr != nil:
		return "failed: " + result.InjectErr.Error()
	default:
		return "disabled"
	}
}

// clusterRows formats summaries as table rows. With styles, a colour swatch
// precedes the hex value.
func clusterRows(clusters []engine.ClusterSummary, styles *output.Styles) [][]string {
	rows := make([][]string, 0, len(clusters))
	for _, c := range clusters {
		colour := c.Color
		if styles != nil {
			colour = styles.Swatch(c.Color) + " " + c.Color
		}
		rows = append(rows, []string{c.Label, colour, strconv.Itoa(c.Nodes)})
	}
	return rows
}
