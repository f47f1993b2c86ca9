// Package style provides consistent terminal styling using Lipgloss,
// shared by the CLI's progress display and batch-summary table (§4.10).
package style

import "github.com/charmbracelet/lipgloss"

var (
	Bold = lipgloss.NewStyle().Bold(true)
	Dim  = lipgloss.NewStyle().Faint(true)

	CriticalStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))  // red
	WarningStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))             // yellow
	InfoStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))             // blue
)
