package output

import "github.com/charmbracelet/lipgloss"

// Palette colours.
var (
	primaryColor = lipgloss.Color("#2B7CE9")
	successColor = lipgloss.Color("#10b981")
	warningColor = lipgloss.Color("#f59e0b")
	errorColor   = lipgloss.Color("#ef4444")
	mutedColor   = lipgloss.Color("#94a3b8")
)

// Styles holds the terminal styles bound to one lipgloss renderer.
type Styles struct {
	Header  lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Muted   lipgloss.Style
	Bold    lipgloss.Style
	Path    lipgloss.Style
}

// NewStyles creates styles for lr.
func NewStyles(lr *lipgloss.Renderer) *Styles {
	return &Styles{
		Header:  lr.NewStyle().Bold(true).Foreground(primaryColor),
		Success: lr.NewStyle().Bold(true).Foreground(successColor),
		Warning: lr.NewStyle().Foreground(warningColor),
		Error:   lr.NewStyle().Bold(true).Foreground(errorColor),
		Muted:   lr.NewStyle().Foreground(mutedColor),
		Bold:    lr.NewStyle().Bold(true),
		Path:    lr.NewStyle().Underline(true),
	}
}

// Swatch renders a two-cell block in the given hex colour.
func (s *Styles) Swatch(hex string) string {
	return s.Bold.UnsetBold().Background(lipgloss.Color(hex)).Render("  ")
}
