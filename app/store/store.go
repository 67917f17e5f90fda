// Package store persists the recorded collection as a single flat file,
// merging each new batch against what previous runs already captured.
package store

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/lysyi3m/feed-ledger/app/feed"
)

type codec interface {
	read(path string) ([]feed.Record, error)
	write(path string, records []feed.Record) error
}

func codecFor(path string) (codec, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return jsonCodec{}, nil
	case ".csv":
		return csvCodec{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", filepath.Ext(path))
	}
}

// Merge folds newRecords into the collection at path and rewrites it,
// returning the number of records now persisted. Records whose entry URL is
// already present are dropped; records without an entry URL are always
// appended. The result is sorted by timestamp, newest first.
func Merge(path string, newRecords []feed.Record) (int, error) {
	c, err := codecFor(path)
	if err != nil {
		return 0, err
	}

	existing := []feed.Record{}
	if _, statErr := os.Stat(path); statErr == nil {
		existing, err = c.read(path)
		if err != nil {
			return 0, fmt.Errorf("failed to read existing output: %w", err)
		}
	}

	seen := make(map[string]struct{}, len(existing))
	for _, record := range existing {
		if record.EntryURL != "" {
			seen[record.EntryURL] = struct{}{}
		}
	}

	accepted := make([]feed.Record, 0, len(newRecords))
	for _, record := range newRecords {
		if record.EntryURL != "" {
			if _, dup := seen[record.EntryURL]; dup {
				continue
			}
			seen[record.EntryURL] = struct{}{}
		}
		accepted = append(accepted, record)
	}

	if len(existing) > 0 {
		slog.Info("Merged new entries into existing output",
			"new", len(accepted), "existing", len(existing), "duplicates", len(newRecords)-len(accepted))
	} else {
		slog.Info("Creating new output file", "path", path, "entries", len(accepted))
	}

	combined := append(existing, accepted...)

	// ISO-8601 strings order lexically the same way they order in time
	sort.SliceStable(combined, func(i, j int) bool {
		return combined[i].Timestamp > combined[j].Timestamp
	})

	if err := writeAtomic(path, combined, c); err != nil {
		return 0, err
	}

	return len(combined), nil
}

// Load reads the collection at path. A missing file is an empty collection.
func Load(path string) ([]feed.Record, error) {
	c, err := codecFor(path)
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return []feed.Record{}, nil
	}

	return c.read(path)
}

// writeAtomic writes the full collection to a temporary file in the target
// directory and renames it into place, so a failed run leaves any previous
// file untouched.
func writeAtomic(path string, records []feed.Record, c codec) error {
	dir := filepath.Dir(path)

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpPath := tmp.Name()
	tmp.Close()

	if err := c.write(tmpPath, records); err != nil {
		os.Remove(tmpPath)
		return err
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace output file: %w", err)
	}

	return nil
}
