package store

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/lysyi3m/feed-ledger/app/feed"
)

// topicSeparator joins the topics list into a single CSV cell. A topic that
// itself contains the separator will not survive a round trip; that is an
// accepted limitation of the tabular encoding.
const topicSeparator = ", "

var csvHeader = []string{"timestamp", "title", "author", "feed_url", "entry_url", "topics"}

type csvCodec struct{}

func (csvCodec) read(path string) ([]feed.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("missing CSV header")
	}

	if !equalHeader(rows[0]) {
		return nil, fmt.Errorf("unexpected CSV header: %v", rows[0])
	}

	records := make([]feed.Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		records = append(records, feed.Record{
			Timestamp: row[0],
			Title:     row[1],
			Author:    row[2],
			FeedURL:   row[3],
			EntryURL:  row[4],
			Topics:    splitTopics(row[5]),
		})
	}

	return records, nil
}

func (csvCodec) write(path string, records []feed.Record) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)

	if err := writer.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, record := range records {
		row := []string{
			record.Timestamp,
			record.Title,
			record.Author,
			record.FeedURL,
			record.EntryURL,
			strings.Join(record.Topics, topicSeparator),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}

	return nil
}

func equalHeader(row []string) bool {
	if len(row) != len(csvHeader) {
		return false
	}
	for i, field := range csvHeader {
		if row[i] != field {
			return false
		}
	}
	return true
}

func splitTopics(value string) []string {
	if value == "" {
		return []string{}
	}
	return strings.Split(value, topicSeparator)
}
