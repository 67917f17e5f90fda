package feed

import "context"

// Entry is the raw shape of a single feed item as delivered by the fetch
// capability. Every field is optional: an empty string or nil slice means
// the source feed did not carry it.
type Entry struct {
	Title      string
	Author     string
	Creator    string
	Link       string
	Published  string
	Updated    string
	PubDate    string
	Date       string
	Tags       []Tag
	Categories []string
}

// Tag is a feed category carrying a machine term and a human label.
type Tag struct {
	Term  string
	Label string
}

// Record is the canonical, persisted representation of one feed entry.
type Record struct {
	Timestamp string   `json:"timestamp"`
	Title     string   `json:"title"`
	Author    string   `json:"author"`
	FeedURL   string   `json:"feed_url"`
	EntryURL  string   `json:"entry_url"`
	Topics    []string `json:"topics"`
}

// ParseResult is what a single feed fetch yields. Dirty marks a feed that
// parsed with problems but may still have produced usable entries.
type ParseResult struct {
	Dirty      bool
	Diagnostic string
	Entries    []Entry
}

// Client fetches and parses one feed URL.
type Client interface {
	Fetch(ctx context.Context, url string) (*ParseResult, error)
}

// FeedResult reports the outcome of fetching a single feed.
type FeedResult struct {
	URL        string
	EntryCount int
	Err        error
}
