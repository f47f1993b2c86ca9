package cmd

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"

	"github.com/classic-scan/classic/internal/style"
)

// barSink renders scheduler progress as a single self-overwriting terminal
// line using a bubbles progress.Model, the same Lipgloss-backed styling
// internal/style's Table uses for the end-of-batch summary.
type barSink struct {
	bar progress.Model
}

func newBarSink() *barSink {
	return &barSink{bar: progress.New(progress.WithDefaultGradient())}
}

// Report implements scheduler.ProgressSink.
func (s *barSink) Report(percent int, operation, currentItem string) {
	fmt.Printf("\r%s %s %s", s.bar.ViewAs(float64(percent)/100), style.Dim.Render(operation), style.Dim.Render(currentItem))
	if percent >= 100 {
		fmt.Println()
	}
}
