// Package config provides configuration management for the dotviz CLI.
//
// Values are layered from defaults, an optional dotviz.yaml, DOTVIZ_
// environment variables and explicitly set flags, in increasing precedence.
package config

import (
	"github.com/leapstack-labs/dotviz/internal/engine"
	"github.com/leapstack-labs/dotviz/internal/palette"
	"github.com/leapstack-labs/dotviz/internal/render"
)

// Config holds all CLI configuration options.
type Config struct {
	Verbose      bool              `koanf:"verbose"`
	OutputFormat string            `koanf:"output" validate:"oneof=auto text markdown json"`
	Artifact     ArtifactConfig    `koanf:"artifact"`
	Palette      PaletteConfig     `koanf:"palette"`
	Interaction  InteractionConfig `koanf:"interaction"`
}

// ArtifactConfig describes the generated HTML page.
type ArtifactConfig struct {
	File      string `koanf:"file" validate:"required"`
	Title     string `koanf:"title"`
	Heading   string `koanf:"heading"`
	Height    string `koanf:"height" validate:"required,css_length"`
	Width     string `koanf:"width" validate:"required,css_length"`
	BGColor   string `koanf:"bgcolor" validate:"required,css_color"`
	FontColor string `koanf:"font_color" validate:"required,css_color"`
	VisURL    string `koanf:"vis_url" validate:"required,url"`
}

// PaletteConfig controls cluster colour assignment.
type PaletteConfig struct {
	Seed int64 `koanf:"seed"`
}

// InteractionConfig controls the injected click behaviour.
type InteractionConfig struct {
	Inject bool `koanf:"inject"`
	Minify bool `koanf:"minify"`
}

// Default configuration values.
const (
	DefaultOutput = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	EnvPrefix     = "DOTVIZ_"
)

// ConfigFileNames are searched in the working directory, in order.
var ConfigFileNames = []string{"dotviz.yaml", "dotviz.yml"}

// defaults returns the flattened default values.
func defaults() map[string]interface{} {
	page := render.DefaultPage()
	return map[string]interface{}{
		"verbose":             false,
		"output":              DefaultOutput,
		"artifact.file":       engine.DefaultOutputPath,
		"artifact.title":      page.Title,
		"artifact.heading":    page.Heading,
		"artifact.height":     page.Height,
		"artifact.width":      page.Width,
		"artifact.bgcolor":    page.BGColor,
		"artifact.font_color": page.FontColor,
		"artifact.vis_url":    page.VisURL,
		"palette.seed":        palette.DefaultSeed,
		"interaction.inject":  true,
		"interaction.minify":  false,
	}
}

// Page converts the artifact settings to render settings.
func (a ArtifactConfig) Page() render.Page {
	return render.Page{
		Title:     a.Title,
		Heading:   a.Heading,
		Height:    a.Height,
		Width:     a.Width,
		BGColor:   a.BGColor,
		FontColor: a.FontColor,
		VisURL:    a.VisURL,
	}
}

// EngineConfig builds the engine configuration for converting input.
func (c *Config) EngineConfig(input string) engine.Config {
	return engine.Config{
		InputPath:  input,
		OutputPath: c.Artifact.File,
		Seed:       c.Palette.Seed,
		Page:       c.Artifact.Page(),
		Inject:     c.Interaction.Inject,
		Minify:     c.Interaction.Minify,
	}
}
