package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// NotesView is the data payload for the notes view.
type NotesView struct {
	Source string       `json:"source"`
	Tracks []TrackNotes `json:"tracks"`
}

// TrackNotes is the note summary for one track.
type TrackNotes struct {
	Track int       `json:"track"`
	Notes []NoteRow `json:"notes"`
}

// NoteRow is one collected note.
type NoteRow struct {
	NoteNumber uint8 `json:"note_number"`
	On         bool  `json:"on"`
}

// NotesModel is a Bubble Tea model summarizing collected notes.
type NotesModel struct {
	view     *NotesView
	width    int
	height   int
	quitting bool
}

// NewNotesModel creates a new notes model.
func NewNotesModel(view *NotesView) NotesModel {
	return NotesModel{view: view}
}

// Init implements tea.Model.
func (m NotesModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m NotesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, keys.Quit) {
			m.quitting = true
			return m, tea.Quit
		}
	}

	return m, nil
}

// View implements tea.Model.
func (m NotesModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render("Notes: " + m.view.Source))
	b.WriteString("\n\n")

	for _, track := range m.view.Tracks {
		on, off := 0, 0
		for _, n := range track.Notes {
			if n.On {
				on++
			} else {
				off++
			}
		}
		b.WriteString(fmt.Sprintf("%s %s\n",
			LabelStyle.Render(fmt.Sprintf("Track %d:", track.Track)),
			ValueStyle.Render(fmt.Sprintf("%d notes (%s on, %s off)",
				len(track.Notes),
				NoteOnStyle.Render(fmt.Sprintf("%d", on)),
				NoteOffStyle.Render(fmt.Sprintf("%d", off))))))
	}
	if len(m.view.Tracks) == 0 {
		b.WriteString(HelpStyle.Render("(no tracks)"))
	}

	help := HelpStyle.Render("Press q or Ctrl+C to quit")
	return BoxStyle.Render(b.String()) + "\n" + help
}

// RunNotesTUI runs the notes TUI.
func RunNotesTUI(data any) error {
	view, ok := data.(*NotesView)
	if !ok {
		return fmt.Errorf("invalid data type for notes view")
	}
	model := NewNotesModel(view)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
