package cmd

import (
	"fmt"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/staccato-io/staccato/adapter"
	adapterredis "github.com/staccato-io/staccato/adapter/redis"
	adapterwebhook "github.com/staccato-io/staccato/adapter/webhook"
	"github.com/staccato-io/staccato/archive"
	"github.com/staccato-io/staccato/cli/config"
	"github.com/staccato-io/staccato/cli/render"
	"github.com/staccato-io/staccato/notes"
)

// Export flags.
var (
	// OutFlag selects a local directory backend.
	OutFlag = &cli.StringFlag{
		Name:  "out",
		Usage: "Archive to a local directory",
	}

	// S3Flag selects an S3 backend as bucket or bucket/prefix.
	S3Flag = &cli.StringFlag{
		Name:  "s3",
		Usage: "Archive to S3: bucket or bucket/prefix",
	}

	// RegionFlag sets the AWS region for --s3.
	RegionFlag = &cli.StringFlag{
		Name:  "region",
		Usage: "AWS region for --s3",
	}

	// EndpointFlag sets a custom S3 endpoint for S3-compatible providers.
	EndpointFlag = &cli.StringFlag{
		Name:  "endpoint",
		Usage: "Custom S3 endpoint URL (R2, MinIO, ...)",
	}

	// PathStyleFlag forces path-style S3 addressing.
	PathStyleFlag = &cli.BoolFlag{
		Name:  "s3-path-style",
		Usage: "Force path-style S3 addressing",
	}
)

// ExportResponse is the response for the export command.
type ExportResponse struct {
	DecodeID     string `json:"decode_id"`
	Source       string `json:"source"`
	ArchivePath  string `json:"archive_path"`
	Outcome      string `json:"outcome"`
	Events       int    `json:"events"`
	Notes        int    `json:"notes"`
	FailedTracks int    `json:"failed_tracks"`
	DurationMs   int64  `json:"duration_ms"`
}

// ExportCommand returns the export command.
func ExportCommand() *cli.Command {
	return &cli.Command{
		Name:      "export",
		Usage:     "Decode a file and archive its event stream",
		ArgsUsage: "<file>",
		Flags:     append(DecodeFlags(), OutFlag, S3Flag, RegionFlag, EndpointFlag, PathStyleFlag),
		Action:    exportAction,
	}
}

func exportAction(c *cli.Context) error {
	r, err := render.NewRenderer(c)
	if err != nil {
		return err
	}
	if c.Bool("tui") {
		return cli.Exit("--tui is not supported for export", exitUsage)
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return cli.Exit(err.Error(), exitUsage)
	}

	client, archivePath, err := newArchiveClient(c, cfg)
	if err != nil {
		return cli.Exit(err.Error(), exitUsage)
	}
	defer func() { _ = client.Close() }()

	meta, err := inputMeta(c)
	if err != nil {
		return err
	}

	noteCollector := notes.NewCollector()
	writer := archive.NewWriter(client, meta)
	sess, err := decodeFile(c, meta, noteCollector, writer)
	if err != nil {
		return err
	}

	if err := writer.Flush(c.Context); err != nil {
		return cli.Exit(fmt.Sprintf("archive write failed: %v", err), exitUsage)
	}

	outcome := adapter.OutcomeSuccess
	if len(sess.Result.TrackErrors) > 0 {
		outcome = adapter.OutcomePartial
	}

	resp := ExportResponse{
		DecodeID:     sess.Meta.DecodeID,
		Source:       sess.Meta.Source,
		ArchivePath:  archivePath + "/" + writer.Key(),
		Outcome:      outcome,
		Events:       writer.Events(),
		Notes:        noteCollector.NoteCount(),
		FailedTracks: len(sess.Result.TrackErrors),
		DurationMs:   sess.Duration.Milliseconds(),
	}

	if cfg.Adapter.Type != "" {
		if err := notify(c, cfg.Adapter, sess, &resp); err != nil {
			return cli.Exit(fmt.Sprintf("notification failed: %v", err), exitUsage)
		}
	}

	return r.Render(resp)
}

// newArchiveClient builds the storage client from flags and config.
// Flags override config; --out and --s3 are mutually exclusive.
func newArchiveClient(c *cli.Context, cfg *config.Config) (archive.Client, string, error) {
	out := c.String("out")
	s3Path := c.String("s3")

	if out == "" && s3Path == "" {
		switch cfg.Archive.Backend {
		case "file":
			out = cfg.Archive.Path
		case "s3":
			s3Path = cfg.Archive.Path
		}
	}

	switch {
	case out != "" && s3Path != "":
		return nil, "", fmt.Errorf("--out and --s3 are mutually exclusive")
	case out != "":
		client, err := archive.NewFileClient(out)
		if err != nil {
			return nil, "", err
		}
		return client, "file://" + out, nil
	case s3Path != "":
		bucket, prefix := archive.ParseS3Path(s3Path)
		s3cfg := archive.S3Config{
			Bucket:       bucket,
			Prefix:       prefix,
			Region:       firstNonEmpty(c.String("region"), cfg.Archive.Region),
			Endpoint:     firstNonEmpty(c.String("endpoint"), cfg.Archive.Endpoint),
			UsePathStyle: c.Bool("s3-path-style") || cfg.Archive.S3PathStyle,
		}
		client, err := archive.NewS3Client(c.Context, s3cfg)
		if err != nil {
			return nil, "", err
		}
		return client, "s3://" + s3Path, nil
	default:
		return nil, "", fmt.Errorf("an archive destination is required: --out, --s3, or archive config")
	}
}

func notify(c *cli.Context, acfg config.AdapterConfig, sess *session, resp *ExportResponse) error {
	a, err := newAdapter(acfg)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	event := &adapter.DecodeCompletedEvent{
		EventType:    adapter.EventTypeDecodeCompleted,
		DecodeID:     resp.DecodeID,
		Source:       resp.Source,
		Outcome:      resp.Outcome,
		Format:       sess.Result.Header.Format,
		TrackCount:   sess.Result.Header.TrackCount,
		EventCount:   int64(resp.Events),
		NoteCount:    int64(resp.Notes),
		FailedTracks: resp.FailedTracks,
		ArchivePath:  resp.ArchivePath,
		Timestamp:    time.Now().UTC().Format(time.RFC3339),
		DurationMs:   resp.DurationMs,
	}
	return a.Publish(c.Context, event)
}

// newAdapter builds a notification adapter from config.
func newAdapter(acfg config.AdapterConfig) (adapter.Adapter, error) {
	switch acfg.Type {
	case "redis":
		retries := adapterredis.DefaultRetries
		if acfg.Retries != nil {
			retries = *acfg.Retries
		}
		return adapterredis.New(adapterredis.Config{
			URL:     acfg.URL,
			Channel: acfg.Channel,
			Timeout: acfg.Timeout.Duration,
			Retries: retries,
		})
	case "webhook":
		retries := adapterwebhook.DefaultRetries
		if acfg.Retries != nil {
			retries = *acfg.Retries
		}
		return adapterwebhook.New(adapterwebhook.Config{
			URL:     acfg.URL,
			Headers: acfg.Headers,
			Timeout: acfg.Timeout.Duration,
			Retries: retries,
		})
	default:
		return nil, fmt.Errorf("unknown adapter type: %q (must be redis or webhook)", acfg.Type)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
