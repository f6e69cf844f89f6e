// Package tui provides Bubble Tea TUI components for the staccato CLI.
//
// TUI rules:
//   - TUI is opt-in only (--tui flag)
//   - TUI is read-only (events, notes views)
//   - TUI uses the same data payloads as non-TUI rendering
//   - No TUI-exclusive data allowed
package tui

import "github.com/charmbracelet/lipgloss"

// Color palette.
var (
	primaryColor   = lipgloss.Color("#7C3AED") // Purple
	successColor   = lipgloss.Color("#10B981") // Green
	warningColor   = lipgloss.Color("#F59E0B") // Amber
	errorColor     = lipgloss.Color("#EF4444") // Red
	mutedColor     = lipgloss.Color("#6B7280") // Gray
	highlightColor = lipgloss.Color("#3B82F6") // Blue
)

// Styles for TUI components.
var (
	// TitleStyle for headers and titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			MarginBottom(1)

	// LabelStyle for field labels.
	LabelStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Width(16)

	// ValueStyle for field values.
	ValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF"))

	// NoteOnStyle colors note-on events.
	NoteOnStyle = lipgloss.NewStyle().
			Foreground(successColor)

	// NoteOffStyle colors note-off events.
	NoteOffStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	// MetaStyle colors meta events.
	MetaStyle = lipgloss.NewStyle().
			Foreground(highlightColor)

	// SysexStyle colors system-exclusive events.
	SysexStyle = lipgloss.NewStyle().
			Foreground(warningColor)

	// ErrorStyle colors status-error events and failure states.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(errorColor)

	// BoxStyle for bordered containers.
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(mutedColor).
			Padding(1, 2)

	// HelpStyle for help text.
	HelpStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			MarginTop(1)
)

// KindStyle returns the style for an event kind.
func KindStyle(kind string) lipgloss.Style {
	switch kind {
	case "note_on":
		return NoteOnStyle
	case "note_off":
		return NoteOffStyle
	case "meta":
		return MetaStyle
	case "sysex_begin", "sysex_escape":
		return SysexStyle
	case "status_error":
		return ErrorStyle
	default:
		return ValueStyle
	}
}
