package tui

import (
	"fmt"
)

// View type identifiers for TUI-capable commands.
const (
	ViewEvents = "events"
	ViewNotes  = "notes"
)

// Run starts the appropriate TUI based on the view type.
// Returns an error if the view type doesn't support TUI.
func Run(viewType string, data any) error {
	switch viewType {
	case ViewEvents:
		return RunEventsTUI(data)
	case ViewNotes:
		return RunNotesTUI(data)
	default:
		return fmt.Errorf("TUI mode is not supported for %s", viewType)
	}
}

// IsTUISupported returns true if the view type supports TUI mode.
// Only the read-only events and notes views support TUI.
func IsTUISupported(viewType string) bool {
	switch viewType {
	case ViewEvents, ViewNotes:
		return true
	default:
		return false
	}
}

// SupportedTUIViews returns a list of view types that support TUI.
func SupportedTUIViews() []string {
	return []string{ViewEvents, ViewNotes}
}
