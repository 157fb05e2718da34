// Package pretty provides Lipgloss-based styled output for matched
// lines.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Styles contains the styled renderers for search output.
type Styles struct {
	FilePath  lipgloss.Style
	LineNum   lipgloss.Style
	Separator lipgloss.Style
	Match     lipgloss.Style
	Count     lipgloss.Style
	Error     lipgloss.Style
}

// NewStyles creates the output styles. With color disabled every style
// renders plain text.
func NewStyles(colorEnabled bool) *Styles {
	if !colorEnabled {
		return &Styles{}
	}
	return &Styles{
		FilePath:  lipgloss.NewStyle().Foreground(lipgloss.Color("13")), // magenta
		LineNum:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")), // green
		Separator: lipgloss.NewStyle().Foreground(lipgloss.Color("14")), // cyan
		Match:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Count:     lipgloss.NewStyle().Bold(true),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	}
}

// ColorEnabled resolves a --color mode ("auto", "always", "never")
// against the output writer. In auto mode color is on only when the
// writer is a terminal.
func ColorEnabled(mode string, w io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		f, ok := w.(*os.File)
		return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
	}
}
