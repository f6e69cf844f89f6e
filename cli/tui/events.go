package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// EventsView is the data payload for the events view. The same value
// backs json/table/yaml rendering, so fields carry json tags.
type EventsView struct {
	Source     string     `json:"source"`
	Format     uint16     `json:"format"`
	TrackCount uint16     `json:"track_count"`
	Events     []EventRow `json:"events"`
}

// EventRow is one rendered event line.
type EventRow struct {
	Track  int    `json:"track"`
	Delta  uint32 `json:"delta"`
	Kind   string `json:"kind"`
	Detail string `json:"detail"`
}

// EventsModel is a Bubble Tea model scrolling through decoded events.
type EventsModel struct {
	view     *EventsView
	viewport viewport.Model
	ready    bool
	quitting bool
}

// NewEventsModel creates a new events model.
func NewEventsModel(view *EventsView) EventsModel {
	return EventsModel{view: view}
}

// Init implements tea.Model.
func (m EventsModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m EventsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		headerHeight := 3
		footerHeight := 2
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-headerHeight-footerHeight)
			m.viewport.SetContent(m.renderEvents())
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - headerHeight - footerHeight
		}
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, keys.Quit) {
			m.quitting = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m EventsModel) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "loading..."
	}

	title := TitleStyle.Render(fmt.Sprintf("%s  format %d, %d tracks, %d events",
		m.view.Source, m.view.Format, m.view.TrackCount, len(m.view.Events)))
	help := HelpStyle.Render("↑/↓ scroll · q quit")
	return title + "\n" + m.viewport.View() + "\n" + help
}

func (m EventsModel) renderEvents() string {
	var b strings.Builder
	for _, ev := range m.view.Events {
		line := fmt.Sprintf("%3d  %6d  %-18s %s", ev.Track, ev.Delta, ev.Kind, ev.Detail)
		b.WriteString(KindStyle(ev.Kind).Render(line))
		b.WriteString("\n")
	}
	if len(m.view.Events) == 0 {
		b.WriteString(HelpStyle.Render("(no events)"))
	}
	return b.String()
}

// keyMap defines key bindings.
type keyMap struct {
	Quit key.Binding
}

var keys = keyMap{
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// RunEventsTUI runs the events TUI.
func RunEventsTUI(data any) error {
	view, ok := data.(*EventsView)
	if !ok {
		return fmt.Errorf("invalid data type for events view")
	}
	model := NewEventsModel(view)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
