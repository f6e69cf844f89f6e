package cmd

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/staccato-io/staccato/cli/render"
	"github.com/staccato-io/staccato/cli/tui"
	"github.com/staccato-io/staccato/smf"
	"github.com/staccato-io/staccato/types"
)

// StatsFlag switches the events command to metrics output.
var StatsFlag = &cli.BoolFlag{
	Name:  "stats",
	Usage: "Show decode metrics instead of the event list",
}

// EventsCommand returns the events command.
func EventsCommand() *cli.Command {
	return &cli.Command{
		Name:      "events",
		Usage:     "Decode and list track events",
		ArgsUsage: "<file>",
		Flags:     append(DecodeFlags(), StatsFlag),
		Action:    eventsAction,
	}
}

// rowCollector converts decoded events into presentation rows.
type rowCollector struct {
	rows []tui.EventRow
}

var _ smf.Consumer = (*rowCollector)(nil)

func (rc *rowCollector) Event(_ context.Context, ev *types.Event) error {
	rc.rows = append(rc.rows, tui.EventRow{
		Track:  ev.Track,
		Delta:  ev.Delta,
		Kind:   string(ev.Kind),
		Detail: eventDetail(ev),
	})
	return nil
}

func eventsAction(c *cli.Context) error {
	r, err := render.NewRenderer(c)
	if err != nil {
		return err
	}

	meta, err := inputMeta(c)
	if err != nil {
		return err
	}

	collector := &rowCollector{}
	sess, err := decodeFile(c, meta, collector)
	if err != nil {
		return err
	}

	if c.Bool("stats") {
		if c.Bool("tui") {
			return cli.Exit("--tui is not supported with --stats", exitUsage)
		}
		return r.Render(sess.Metrics.Snapshot())
	}

	if c.Bool("tui") {
		view := &tui.EventsView{
			Source:     sess.Meta.Source,
			Format:     sess.Result.Header.Format,
			TrackCount: sess.Result.Header.TrackCount,
			Events:     collector.rows,
		}
		return r.RenderTUI(tui.ViewEvents, view)
	}

	return r.Render(collector.rows)
}

// eventDetail renders the kind-specific payload of an event as a
// short human-readable string.
func eventDetail(ev *types.Event) string {
	switch ev.Kind {
	case types.KindNoteOn, types.KindNoteOff:
		return fmt.Sprintf("channel=%d note=%d velocity=%d", ev.Channel, ev.Data1, ev.Data2)
	case types.KindNoteAfterTouch:
		return fmt.Sprintf("channel=%d note=%d pressure=%d", ev.Channel, ev.Data1, ev.Data2)
	case types.KindController:
		return fmt.Sprintf("channel=%d controller=%d value=%d", ev.Channel, ev.Data1, ev.Data2)
	case types.KindProgramChange:
		return fmt.Sprintf("channel=%d program=%d", ev.Channel, ev.Data1)
	case types.KindChannelAfterTouch:
		return fmt.Sprintf("channel=%d pressure=%d", ev.Channel, ev.Data1)
	case types.KindPitchBend:
		value := int(ev.Data2)<<7 | int(ev.Data1)
		return fmt.Sprintf("channel=%d value=%d", ev.Channel, value)
	case types.KindMeta:
		return metaDetail(ev.Meta)
	case types.KindStatusError:
		return fmt.Sprintf("status=0x%02X", ev.Status)
	default:
		return ""
	}
}

func metaDetail(meta *types.MetaEvent) string {
	if meta == nil {
		return ""
	}
	switch {
	case meta.Tempo != nil:
		return fmt.Sprintf("%s micros_per_quarter=%d bpm=%.1f",
			meta.Kind, meta.Tempo.MicrosPerQuarter, meta.Tempo.BPM())
	case meta.TimeSignature != nil:
		return fmt.Sprintf("%s %d/%d", meta.Kind,
			meta.TimeSignature.Numerator, 1<<meta.TimeSignature.DenominatorPow2)
	case meta.KeySignature != nil:
		return fmt.Sprintf("%s sharps_flats=%d minor=%t", meta.Kind,
			meta.KeySignature.SharpsFlats, meta.KeySignature.Minor)
	case meta.Text != "":
		return fmt.Sprintf("%s %q", meta.Kind, meta.Text)
	default:
		return string(meta.Kind)
	}
}
