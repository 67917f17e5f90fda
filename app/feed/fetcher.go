package feed

import (
	"context"
	"log/slog"
	"time"
)

// Fetcher walks a list of feed URLs sequentially, normalizing every entry
// the client can deliver. A failing feed is logged and skipped so that one
// broken source never aborts the batch.
type Fetcher struct {
	client Client
	delay  time.Duration
}

func NewFetcher(client Client, delay time.Duration) *Fetcher {
	return &Fetcher{
		client: client,
		delay:  delay,
	}
}

// Run fetches all feeds in order and returns the accumulated records plus a
// per-feed report. Records arrive in feed-then-entry order; the merge step
// re-sorts, so no further ordering is guaranteed. Canceling the context
// stops the batch at the next pacing delay.
func (f *Fetcher) Run(ctx context.Context, feedURLs []string) ([]Record, []FeedResult) {
	records := make([]Record, 0)
	results := make([]FeedResult, 0, len(feedURLs))

	for _, url := range feedURLs {
		// Pacing delay before every request, to be respectful to the servers
		select {
		case <-ctx.Done():
			slog.Warn("Fetch batch canceled", "remaining", len(feedURLs)-len(results))
			return records, results
		case <-time.After(f.delay):
		}

		slog.Info("Fetching feed", "url", url)

		result, err := f.client.Fetch(ctx, url)
		if err != nil {
			slog.Error("Error processing feed", "url", url, "error", err)
			results = append(results, FeedResult{URL: url, Err: err})
			continue
		}

		if result.Dirty {
			slog.Warn("Parsing problem for feed", "url", url, "diagnostic", result.Diagnostic)
		}

		for _, entry := range result.Entries {
			records = append(records, NormalizeEntry(entry, url))
		}

		slog.Info("Processed feed", "url", url, "entries", len(result.Entries))
		results = append(results, FeedResult{URL: url, EntryCount: len(result.Entries)})
	}

	return records, results
}
