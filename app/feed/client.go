package feed

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
)

// HTTPClient fetches feeds over HTTP and parses them with gofeed.
type HTTPClient struct {
	httpClient   *http.Client
	gofeedParser *gofeed.Parser
	userAgent    string
}

func NewHTTPClient(timeout time.Duration, userAgent string) *HTTPClient {
	return &HTTPClient{
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				IdleConnTimeout:     30 * time.Second,
				MaxIdleConnsPerHost: 5,
			},
		},
		gofeedParser: gofeed.NewParser(),
		userAgent:    userAgent,
	}
}

// Fetch retrieves and parses a single feed. A total fetch or parse failure
// is returned as an error; a feed that parsed with problems comes back with
// the Dirty flag set and whatever entries could be extracted.
func (c *HTTPClient) Fetch(ctx context.Context, url string) (*ParseResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/rss+xml, application/atom+xml, application/xml, text/xml")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if len(data) == 0 {
		return nil, fmt.Errorf("empty response body")
	}

	parsed, err := c.gofeedParser.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	result := &ParseResult{
		Entries: make([]Entry, 0, len(parsed.Items)),
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType != "" && !strings.Contains(contentType, "xml") && !strings.Contains(contentType, "rss") {
		result.Dirty = true
		result.Diagnostic = fmt.Sprintf("unexpected content type: %s", contentType)
	}

	for _, item := range parsed.Items {
		result.Entries = append(result.Entries, convertItem(item))
	}

	return result, nil
}

// convertItem maps a gofeed item onto the sparse Entry shape, populating
// each recognized field best-effort.
func convertItem(item *gofeed.Item) Entry {
	entry := Entry{
		Title:     item.Title,
		Link:      item.Link,
		Published: item.Published,
		Updated:   item.Updated,
	}

	if len(item.Authors) > 0 && item.Authors[0] != nil {
		entry.Author = item.Authors[0].Name
	} else if item.Author != nil {
		entry.Author = item.Author.Name
	}

	if item.DublinCoreExt != nil && len(item.DublinCoreExt.Creator) > 0 {
		entry.Creator = item.DublinCoreExt.Creator[0]
	}

	if item.Custom != nil {
		entry.PubDate = item.Custom["pubDate"]
		entry.Date = item.Custom["date"]
	}

	// Atom categories carry term/label attributes; gofeed keeps them in the
	// extension tree when they appear outside the item's native namespace.
	if categories, ok := item.Extensions["atom"]["category"]; ok {
		for _, category := range categories {
			entry.Tags = append(entry.Tags, Tag{
				Term:  category.Attrs["term"],
				Label: category.Attrs["label"],
			})
		}
	}

	if len(item.Categories) > 0 {
		entry.Categories = item.Categories
	}

	return entry
}
