package config

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/leapstack-labs/dotviz/internal/engine"
	"github.com/leapstack-labs/dotviz/internal/palette"
	"github.com/leapstack-labs/dotviz/internal/render"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdirTemp runs the test from an empty directory so no stray dotviz.yaml is
// picked up.
func chdirTemp(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func testFlags() *pflag.FlagSet {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("config", "", "config file")
	flags.BoolP("verbose", "v", false, "verbose output")
	flags.StringP("output", "o", "", "output format")
	return flags
}

func TestLoadConfig_Defaults(t *testing.T) {
	ResetConfig()
	chdirTemp(t)

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	page := render.DefaultPage()
	assert.False(t, cfg.Verbose)
	assert.Equal(t, DefaultOutput, cfg.OutputFormat)
	assert.Equal(t, engine.DefaultOutputPath, cfg.Artifact.File)
	assert.Equal(t, page, cfg.Artifact.Page())
	assert.Equal(t, palette.DefaultSeed, cfg.Palette.Seed)
	assert.True(t, cfg.Interaction.Inject)
	assert.False(t, cfg.Interaction.Minify)
	assert.Empty(t, GetConfigFileUsed())
	assert.Same(t, cfg, GetCurrentConfig())
}

func TestLoadConfig_File(t *testing.T) {
	ResetConfig()
	dir := chdirTemp(t)
	writeConfig(t, dir, "dotviz.yaml", `
output: json
artifact:
  file: deps.html
  title: Dependencies
  height: 800px
palette:
  seed: 7
interaction:
  minify: true
`)

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, "dotviz.yaml", GetConfigFileUsed())
	assert.Equal(t, "json", cfg.OutputFormat)
	assert.Equal(t, "deps.html", cfg.Artifact.File)
	assert.Equal(t, "Dependencies", cfg.Artifact.Title)
	assert.Equal(t, "800px", cfg.Artifact.Height)
	assert.Equal(t, "100%", cfg.Artifact.Width, "unset keys keep defaults")
	assert.Equal(t, int64(7), cfg.Palette.Seed)
	assert.True(t, cfg.Interaction.Inject)
	assert.True(t, cfg.Interaction.Minify)
}

func TestLoadConfig_YmlFallback(t *testing.T) {
	ResetConfig()
	dir := chdirTemp(t)
	writeConfig(t, dir, "dotviz.yml", "artifact:\n  file: from_yml.html\n")

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)
	assert.Equal(t, "dotviz.yml", GetConfigFileUsed())
	assert.Equal(t, "from_yml.html", cfg.Artifact.File)
}

func TestLoadConfig_ExplicitFile(t *testing.T) {
	ResetConfig()
	dir := chdirTemp(t)
	writeConfig(t, dir, "dotviz.yaml", "artifact:\n  file: implicit.html\n")
	explicit := writeConfig(t, t.TempDir(), "custom.yaml", "artifact:\n  file: explicit.html\n")

	cfg, err := LoadConfig(explicit, nil)
	require.NoError(t, err)
	assert.Equal(t, explicit, GetConfigFileUsed())
	assert.Equal(t, "explicit.html", cfg.Artifact.File)
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	ResetConfig()
	chdirTemp(t)

	_, err := LoadConfig("does-not-exist.yaml", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file does-not-exist.yaml")
}

func TestLoadConfig_EnvPrecedenceOverFile(t *testing.T) {
	ResetConfig()
	dir := chdirTemp(t)
	writeConfig(t, dir, "dotviz.yaml", `
artifact:
  file: from_file.html
  font_color: black
interaction:
  inject: true
`)
	t.Setenv("DOTVIZ_ARTIFACT__FILE", "from_env.html")
	t.Setenv("DOTVIZ_ARTIFACT__FONT_COLOR", "white")
	t.Setenv("DOTVIZ_INTERACTION__INJECT", "false")
	t.Setenv("DOTVIZ_PALETTE__SEED", "99")

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, "from_env.html", cfg.Artifact.File)
	assert.Equal(t, "white", cfg.Artifact.FontColor)
	assert.False(t, cfg.Interaction.Inject)
	assert.Equal(t, int64(99), cfg.Palette.Seed)
}

func TestLoadConfig_FlagPrecedence(t *testing.T) {
	ResetConfig()
	dir := chdirTemp(t)
	writeConfig(t, dir, "dotviz.yaml", "output: text\n")
	t.Setenv("DOTVIZ_OUTPUT", "markdown")

	flags := testFlags()
	require.NoError(t, flags.Set("output", "json"))
	require.NoError(t, flags.Set("verbose", "true"))

	cfg, err := LoadConfig("", flags)
	require.NoError(t, err)

	assert.Equal(t, "json", cfg.OutputFormat, "flag value should override config file and env var")
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_UnchangedFlagsDoNotOverride(t *testing.T) {
	ResetConfig()
	dir := chdirTemp(t)
	writeConfig(t, dir, "dotviz.yaml", "output: markdown\nverbose: true\n")

	cfg, err := LoadConfig("", testFlags())
	require.NoError(t, err)

	assert.Equal(t, "markdown", cfg.OutputFormat)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{name: "output mode", content: "output: yaml\n", wantErr: "output must be one of [auto text markdown json]"},
		{name: "empty file", content: "artifact:\n  file: \"\"\n", wantErr: "artifact.file is required"},
		{name: "height", content: "artifact:\n  height: tall\n", wantErr: "artifact.height must be a CSS length"},
		{name: "width", content: "artifact:\n  width: 100\n", wantErr: "artifact.width must be a CSS length"},
		{name: "vis url", content: "artifact:\n  vis_url: not a url\n", wantErr: "artifact.vis_url must be a URL"},
		{name: "bgcolor", content: "artifact:\n  bgcolor: \"red; } body { color: red\"\n", wantErr: "artifact.bgcolor must be a hex, rgb(), hsl() or named colour"},
		{name: "font colour", content: "artifact:\n  font_color: \"rgb(1, 2\"\n", wantErr: "artifact.font_color must be a hex"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ResetConfig()
			dir := chdirTemp(t)
			writeConfig(t, dir, "dotviz.yaml", tt.content)

			_, err := LoadConfig("", nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid configuration")
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.Nil(t, GetCurrentConfig())
		})
	}
}

func TestLoadConfig_Colours(t *testing.T) {
	ResetConfig()
	dir := chdirTemp(t)
	writeConfig(t, dir, "dotviz.yaml", "artifact:\n  bgcolor: \"rgb(240, 240, 240)\"\n  font_color: \"#333\"\n")

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)
	assert.Equal(t, "rgb(240, 240, 240)", cfg.Artifact.BGColor)
	assert.Equal(t, "#333", cfg.Artifact.FontColor)
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "artifact.font_color", envKey("DOTVIZ_ARTIFACT__FONT_COLOR"))
	assert.Equal(t, "output", envKey("DOTVIZ_OUTPUT"))
	assert.Equal(t, "palette.seed", envKey("DOTVIZ_PALETTE__SEED"))
}

func TestEngineConfig(t *testing.T) {
	cfg := &Config{
		Artifact: ArtifactConfig{
			File:    "out.html",
			Title:   "Graph",
			Heading: "Services",
			Height:  "500px",
		},
		Palette:     PaletteConfig{Seed: 3},
		Interaction: InteractionConfig{Inject: true, Minify: true},
	}

	ec := cfg.EngineConfig("in.dot")
	assert.Equal(t, "in.dot", ec.InputPath)
	assert.Equal(t, "out.html", ec.OutputPath)
	assert.Equal(t, int64(3), ec.Seed)
	assert.Equal(t, "Services", ec.Page.Heading)
	assert.Equal(t, "500px", ec.Page.Height)
	assert.True(t, ec.Inject)
	assert.True(t, ec.Minify)
}

func TestGetLogger(t *testing.T) {
	assert.NotNil(t, GetLogger(context.Background()))

	var buf bytes.Buffer
	logger := NewLogger(&buf, false)
	ctx := context.WithValue(context.Background(), LoggerKey(), logger)
	assert.Same(t, logger, GetLogger(ctx))

	logger.Debug("hidden")
	logger.Info("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")

	buf.Reset()
	NewLogger(&buf, true).Debug("detail")
	assert.Contains(t, buf.String(), "detail")
}
