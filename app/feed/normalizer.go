package feed

import (
	"cmp"

	"golang.org/x/text/unicode/norm"
)

const (
	defaultTitle  = "No title"
	defaultAuthor = "Unknown"
)

// NormalizeEntry maps a raw entry and its source feed URL into a Record.
// Missing fields get placeholder values so every record is fully populated.
func NormalizeEntry(e Entry, feedURL string) Record {
	title := cmp.Or(e.Title, defaultTitle)
	author := cmp.Or(e.Author, e.Creator, defaultAuthor)

	return Record{
		Timestamp: NormalizeDate(e),
		Title:     norm.NFC.String(title),
		Author:    norm.NFC.String(author),
		FeedURL:   feedURL,
		EntryURL:  e.Link,
		Topics:    extractTopics(e),
	}
}

// extractTopics prefers the tags collection, mapping each tag to its term
// with the label as fallback. Entries without tags fall back to plain
// categories. The result is always non-nil.
func extractTopics(e Entry) []string {
	if len(e.Tags) > 0 {
		topics := make([]string, 0, len(e.Tags))
		for _, tag := range e.Tags {
			topics = append(topics, cmp.Or(tag.Term, tag.Label))
		}
		return topics
	}

	if len(e.Categories) > 0 {
		topics := make([]string, len(e.Categories))
		copy(topics, e.Categories)
		return topics
	}

	return []string{}
}
