// Package recorder runs one complete recording pass: load the feed list,
// fetch and normalize every feed, and merge the batch into the output file.
package recorder

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/lysyi3m/feed-ledger/app/config"
	"github.com/lysyi3m/feed-ledger/app/feed"
	"github.com/lysyi3m/feed-ledger/app/store"
)

// Summary describes the outcome of a completed recording run.
type Summary struct {
	Feeds       int       `json:"feeds"`
	Failed      int       `json:"failed"`
	Fetched     int       `json:"fetched"`
	Stored      int       `json:"stored"`
	CompletedAt time.Time `json:"completed_at"`
}

type Recorder struct {
	fetcher    *feed.Fetcher
	configPath string
	outputPath string
}

func NewRecorder(fetcher *feed.Fetcher, configPath, outputPath string) *Recorder {
	return &Recorder{
		fetcher:    fetcher,
		configPath: configPath,
		outputPath: outputPath,
	}
}

// Run executes one recording pass. An empty feed list is reported and
// returns a nil summary without error; config and store failures are fatal
// for the run and surface as errors.
func (r *Recorder) Run(ctx context.Context) (*Summary, error) {
	cfg, err := config.Load(r.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if len(cfg.FeedURLs) == 0 {
		slog.Error("No feed URLs found in config file", "path", r.configPath)
		return nil, nil
	}

	if err := os.MkdirAll(filepath.Dir(r.outputPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	slog.Info("Starting feed fetching process", "feeds", len(cfg.FeedURLs))

	records, results := r.fetcher.Run(ctx, cfg.FeedURLs)

	failed := 0
	for _, result := range results {
		if result.Err != nil {
			failed++
		}
	}

	if len(records) == 0 {
		slog.Warn("No entries found in any feeds")
	}

	count, err := store.Merge(r.outputPath, records)
	if err != nil {
		return nil, fmt.Errorf("failed to save output: %w", err)
	}

	summary := &Summary{
		Feeds:       len(cfg.FeedURLs),
		Failed:      failed,
		Fetched:     len(records),
		Stored:      count,
		CompletedAt: time.Now(),
	}

	slog.Info("Recording run complete",
		"feeds", summary.Feeds, "failed", summary.Failed,
		"fetched", summary.Fetched, "stored", summary.Stored, "output", r.outputPath)

	return summary, nil
}
