package cmd

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/staccato-io/staccato/cli/render"
	"github.com/staccato-io/staccato/smf"
)

// InfoResponse is the response for the info command.
type InfoResponse struct {
	Source          string `json:"source"`
	Format          uint16 `json:"format"`
	TrackCount      uint16 `json:"track_count"`
	TimeDivision    uint16 `json:"time_division"`
	Timing          string `json:"timing"` // metrical or smpte
	TicksPerQuarter uint16 `json:"ticks_per_quarter,omitempty"`
}

// InfoCommand returns the info command. Info reads only the file
// header; it never walks track data.
func InfoCommand() *cli.Command {
	return &cli.Command{
		Name:      "info",
		Usage:     "Show file header information",
		ArgsUsage: "<file>",
		Flags:     ReadOnlyFlags(),
		Action:    infoAction,
	}
}

func infoAction(c *cli.Context) error {
	if c.NArg() < 1 {
		return cli.Exit("input file required", exitUsage)
	}
	path := c.Args().First()

	r, err := render.NewRenderer(c)
	if err != nil {
		return err
	}
	if c.Bool("tui") {
		return cli.Exit("--tui is not supported for info", exitUsage)
	}

	f, err := os.Open(path)
	if err != nil {
		return cli.Exit(fmt.Sprintf("cannot open %s: %v", path, err), exitUnreadable)
	}
	defer func() { _ = f.Close() }()

	header, err := smf.ReadHeader(smf.NewCursor(f))
	if err != nil {
		return cli.Exit(fmt.Sprintf("%s: %v", path, err), exitStructural)
	}

	resp := InfoResponse{
		Source:       path,
		Format:       header.Format,
		TrackCount:   header.TrackCount,
		TimeDivision: header.TimeDivision,
	}
	if header.SMPTETiming() {
		resp.Timing = "smpte"
	} else {
		resp.Timing = "metrical"
		resp.TicksPerQuarter = header.TicksPerQuarterNote()
	}

	return r.Render(resp)
}
