package cmd

import (
	"github.com/urfave/cli/v2"

	"github.com/staccato-io/staccato/cli/render"
	"github.com/staccato-io/staccato/cli/tui"
	"github.com/staccato-io/staccato/notes"
)

// NotesCommand returns the notes command.
func NotesCommand() *cli.Command {
	return &cli.Command{
		Name:      "notes",
		Usage:     "Decode and list the note on/off sequence of each track",
		ArgsUsage: "<file>",
		Flags:     DecodeFlags(),
		Action:    notesAction,
	}
}

func notesAction(c *cli.Context) error {
	r, err := render.NewRenderer(c)
	if err != nil {
		return err
	}

	meta, err := inputMeta(c)
	if err != nil {
		return err
	}

	collector := notes.NewCollector()
	sess, err := decodeFile(c, meta, collector)
	if err != nil {
		return err
	}

	view := notesView(sess.Meta.Source, collector)
	if c.Bool("tui") {
		return r.RenderTUI(tui.ViewNotes, view)
	}
	return r.Render(view)
}

func notesView(source string, collector *notes.Collector) *tui.NotesView {
	view := &tui.NotesView{Source: source}
	for i, track := range collector.Tracks() {
		tn := tui.TrackNotes{Track: i}
		for _, n := range track {
			tn.Notes = append(tn.Notes, tui.NoteRow{NoteNumber: n.NoteNumber, On: n.On})
		}
		view.Tracks = append(view.Tracks, tn)
	}
	return view
}
