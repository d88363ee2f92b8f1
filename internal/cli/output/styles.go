package output

import "github.com/charmbracelet/lipgloss"

// Styles holds the lipgloss styles used across commands.
type Styles struct {
	Header1  lipgloss.Style
	Header2  lipgloss.Style
	Bold     lipgloss.Style
	Muted    lipgloss.Style
	Success  lipgloss.Style
	Warning  lipgloss.Style
	Error    lipgloss.Style
	Info     lipgloss.Style
	FilePath lipgloss.Style
	RuleID   lipgloss.Style
}

// newStyles builds the style set. Without color every style is empty, so
// Render returns its input unchanged.
func newStyles(lr *lipgloss.Renderer, color bool) *Styles {
	if !color {
		plain := lr.NewStyle()
		return &Styles{
			Header1: plain, Header2: plain, Bold: plain, Muted: plain,
			Success: plain, Warning: plain, Error: plain, Info: plain,
			FilePath: plain, RuleID: plain,
		}
	}

	return &Styles{
		Header1:  lr.NewStyle().Bold(true).Foreground(lipgloss.Color("6")).Underline(true),
		Header2:  lr.NewStyle().Bold(true).Foreground(lipgloss.Color("6")),
		Bold:     lr.NewStyle().Bold(true),
		Muted:    lr.NewStyle().Foreground(lipgloss.Color("245")),
		Success:  lr.NewStyle().Foreground(lipgloss.Color("2")),
		Warning:  lr.NewStyle().Foreground(lipgloss.Color("3")),
		Error:    lr.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Info:     lr.NewStyle().Foreground(lipgloss.Color("4")),
		FilePath: lr.NewStyle().Underline(true),
		RuleID:   lr.NewStyle().Foreground(lipgloss.Color("245")),
	}
}
