package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/staccato-io/staccato/cli/config"
	"github.com/staccato-io/staccato/log"
	"github.com/staccato-io/staccato/metrics"
	"github.com/staccato-io/staccato/notes"
	"github.com/staccato-io/staccato/smf"
	"github.com/staccato-io/staccato/types"
)

// Exit codes:
//   - 0: success (including partial decodes with failed tracks)
//   - 1: usage or render error
//   - 2: unreadable input
//   - 3: structural parse failure (not SMF, truncated header, bad first chunk)
const (
	exitUsage      = 1
	exitUnreadable = 2
	exitStructural = 3
)

// session holds everything a command needs after a completed decode.
type session struct {
	Meta     *types.DecodeMeta
	Config   *config.Config
	Result   *smf.Result
	Metrics  *metrics.Collector
	Duration time.Duration
}

// loadConfig loads the --config file when set, or returns an empty
// config so flag defaults apply.
func loadConfig(c *cli.Context) (*config.Config, error) {
	path := c.String("config")
	if path == "" {
		return &config.Config{}, nil
	}
	return config.Load(path)
}

// decodeOptions merges config file defaults with CLI flags. Flags win.
func decodeOptions(c *cli.Context, cfg *config.Config, meta *types.DecodeMeta, collector *metrics.Collector) smf.Options {
	opts := smf.Options{
		StrictLength:     cfg.Decode.StrictLength || c.Bool("strict-length"),
		FoldZeroVelocity: cfg.Decode.FoldZeroVelocity || c.Bool("fold-zero-velocity"),
		Metrics:          collector,
	}
	if c.Bool("verbose") {
		opts.Logger = log.NewLogger(meta)
	}
	return opts
}

// inputMeta validates the positional argument and builds the decode
// metadata for it.
func inputMeta(c *cli.Context) (*types.DecodeMeta, error) {
	if c.NArg() < 1 {
		return nil, cli.Exit("input file required", exitUsage)
	}
	return types.NewDecodeMeta(c.Args().First()), nil
}

// decodeFile opens the input file and decodes it into the given
// consumers. Track-scoped failures are reported on stderr and leave
// the exit code untouched; structural failures exit with code 3.
func decodeFile(c *cli.Context, meta *types.DecodeMeta, consumers ...smf.Consumer) (*session, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, cli.Exit(err.Error(), exitUsage)
	}

	f, err := os.Open(meta.Source)
	if err != nil {
		return nil, cli.Exit(fmt.Sprintf("cannot open %s: %v", meta.Source, err), exitUnreadable)
	}
	defer func() { _ = f.Close() }()

	collector := metrics.NewCollector()

	var consumer smf.Consumer
	switch len(consumers) {
	case 0:
		consumer = &smf.StubConsumer{}
	case 1:
		consumer = consumers[0]
	default:
		consumer = notes.NewTee(consumers...)
	}

	start := time.Now()
	res, err := smf.NewDecoder(f, decodeOptions(c, cfg, meta, collector)).Decode(c.Context, consumer)
	if err != nil {
		if errors.Is(err, smf.ErrNotSMF) || errors.Is(err, smf.ErrTruncatedHeader) ||
			errors.Is(err, smf.ErrBadTrackChunk) || errors.Is(err, smf.ErrUnexpectedEOF) {
			return nil, cli.Exit(fmt.Sprintf("%s: %v", meta.Source, err), exitStructural)
		}
		return nil, cli.Exit(err.Error(), exitUsage)
	}

	for _, te := range res.TrackErrors {
		fmt.Fprintf(os.Stderr, "warning: %s: %v\n", meta.Source, te)
	}

	return &session{
		Meta:     meta,
		Config:   cfg,
		Result:   res,
		Metrics:  collector,
		Duration: time.Since(start),
	}, nil
}
