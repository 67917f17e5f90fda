package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const rssFixture = `<?xml version="1.0"?>
<rss version="2.0" xmlns:dc="http://purl.org/dc/elements/1.1/">
  <channel>
    <title>Test Feed</title>
    <link>https://example.com</link>
    <description>Test Description</description>
    <item>
      <title>Test Item 1</title>
      <link>https://example.com/item1</link>
      <description>Test Item 1 Description</description>
      <pubDate>Mon, 03 Jul 2023 10:00:00 GMT</pubDate>
      <dc:creator>Jane Doe</dc:creator>
      <category>Technology</category>
      <category>Programming</category>
    </item>
    <item>
      <title>Test Item 2</title>
      <link>https://example.com/item2</link>
      <description>Test Item 2 Description</description>
    </item>
  </channel>
</rss>`

func serveFixture(t *testing.T, contentType, body string, status int) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)

	return server
}

func TestFetchRSS(t *testing.T) {
	server := serveFixture(t, "application/rss+xml", rssFixture, http.StatusOK)

	client := NewHTTPClient(5*time.Second, "Feed Ledger Test/1.0")
	result, err := client.Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatal(err)
	}

	if result.Dirty {
		t.Errorf("Expected clean parse result, got dirty: %s", result.Diagnostic)
	}
	if len(result.Entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(result.Entries))
	}

	entry := result.Entries[0]
	if entry.Title != "Test Item 1" {
		t.Errorf("Expected title 'Test Item 1', got '%s'", entry.Title)
	}
	if entry.Link != "https://example.com/item1" {
		t.Errorf("Expected link 'https://example.com/item1', got '%s'", entry.Link)
	}
	if entry.Published != "Mon, 03 Jul 2023 10:00:00 GMT" {
		t.Errorf("Expected raw pubDate, got '%s'", entry.Published)
	}
	if entry.Creator != "Jane Doe" {
		t.Errorf("Expected creator 'Jane Doe', got '%s'", entry.Creator)
	}
	if len(entry.Categories) != 2 || entry.Categories[0] != "Technology" {
		t.Errorf("Expected categories [Technology Programming], got %v", entry.Categories)
	}

	entry = result.Entries[1]
	if entry.Published != "" || entry.Creator != "" {
		t.Errorf("Expected absent fields to stay empty, got published '%s', creator '%s'",
			entry.Published, entry.Creator)
	}
}

func TestFetchAtom(t *testing.T) {
	atomFixture := `<?xml version="1.0" encoding="utf-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <title>Atom Feed</title>
  <link href="https://example.com/"/>
  <updated>2023-07-03T12:00:00Z</updated>
  <id>urn:uuid:feed</id>
  <entry>
    <title>Atom Entry</title>
    <link href="https://example.com/atom1"/>
    <id>urn:uuid:entry1</id>
    <updated>2023-07-03T11:00:00Z</updated>
    <author><name>Alice</name></author>
  </entry>
</feed>`

	server := serveFixture(t, "application/atom+xml", atomFixture, http.StatusOK)

	client := NewHTTPClient(5*time.Second, "Feed Ledger Test/1.0")
	result, err := client.Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatal(err)
	}

	if len(result.Entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(result.Entries))
	}

	entry := result.Entries[0]
	if entry.Title != "Atom Entry" {
		t.Errorf("Expected title 'Atom Entry', got '%s'", entry.Title)
	}
	if entry.Updated != "2023-07-03T11:00:00Z" {
		t.Errorf("Expected raw updated value, got '%s'", entry.Updated)
	}
	if entry.Author != "Alice" {
		t.Errorf("Expected author 'Alice', got '%s'", entry.Author)
	}
}

func TestFetchUnexpectedContentType(t *testing.T) {
	server := serveFixture(t, "text/html", rssFixture, http.StatusOK)

	client := NewHTTPClient(5*time.Second, "Feed Ledger Test/1.0")
	result, err := client.Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatal(err)
	}

	if !result.Dirty {
		t.Error("Expected dirty flag for unexpected content type")
	}
	if result.Diagnostic == "" {
		t.Error("Expected a diagnostic message")
	}
	if len(result.Entries) != 2 {
		t.Errorf("Expected entries to still be parsed, got %d", len(result.Entries))
	}
}

func TestFetchHTTPError(t *testing.T) {
	server := serveFixture(t, "text/plain", "gone", http.StatusInternalServerError)

	client := NewHTTPClient(5*time.Second, "Feed Ledger Test/1.0")
	if _, err := client.Fetch(context.Background(), server.URL); err == nil {
		t.Error("Expected error for HTTP 500")
	}
}

func TestFetchInvalidBody(t *testing.T) {
	server := serveFixture(t, "application/xml", "this is not a feed", http.StatusOK)

	client := NewHTTPClient(5*time.Second, "Feed Ledger Test/1.0")
	if _, err := client.Fetch(context.Background(), server.URL); err == nil {
		t.Error("Expected error for unparseable body")
	}
}
