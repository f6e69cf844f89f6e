// Package cmd provides CLI commands for the staccato binary.
package cmd

import "github.com/urfave/cli/v2"

// Shared flags for read-only commands.
var (
	// FormatFlag selects output format: json, table, yaml.
	FormatFlag = &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Usage:   "Output format: json, table, yaml",
	}

	// NoColorFlag disables colored output.
	NoColorFlag = &cli.BoolFlag{
		Name:  "no-color",
		Usage: "Disable colored output",
	}

	// TUIFlag enables Bubble Tea interactive mode.
	// Only valid for select read-only commands (events, notes).
	TUIFlag = &cli.BoolFlag{
		Name:  "tui",
		Usage: "Enable interactive TUI mode (events, notes only)",
	}

	// ConfigFlag points at a staccato.yaml config file.
	ConfigFlag = &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to staccato.yaml config file",
	}

	// StrictLengthFlag enforces declared track chunk lengths.
	StrictLengthFlag = &cli.BoolFlag{
		Name:  "strict-length",
		Usage: "Fail tracks whose declared length runs out before end-of-track",
	}

	// FoldFlag reports velocity-zero note-ons as note-offs.
	FoldFlag = &cli.BoolFlag{
		Name:  "fold-zero-velocity",
		Usage: "Report note-on events with velocity zero as note-off",
	}

	// VerboseFlag enables structured debug logging to stderr.
	VerboseFlag = &cli.BoolFlag{
		Name:    "verbose",
		Aliases: []string{"v"},
		Usage:   "Enable structured debug logging",
	}
)

// ReadOnlyFlags returns the shared flags for all read-only commands.
// Includes --tui so that unsupported commands can provide explicit
// error messages instead of generic "flag not defined" errors.
func ReadOnlyFlags() []cli.Flag {
	return []cli.Flag{
		FormatFlag,
		NoColorFlag,
		TUIFlag,
	}
}

// DecodeFlags returns the flags shared by commands that decode a file.
func DecodeFlags() []cli.Flag {
	return append(ReadOnlyFlags(),
		ConfigFlag,
		StrictLengthFlag,
		FoldFlag,
		VerboseFlag,
	)
}
