package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/nao1215/cmdowser/internal/database"
	"github.com/nao1215/cmdowser/internal/extract"
)

// TestWritePage tests Markdown export of a page.
func TestWritePage(t *testing.T) {
	t.Parallel()

	t.Run("contains title, full text and resolved links", func(t *testing.T) {
		t.Parallel()

		longLine := strings.Repeat("x", 3000)
		doc := &extract.Document{
			Title:       "Example",
			Description: "A page about examples",
			Text:        "Hello\n" + longLine,
			Links: []extract.Link{
				{Text: "A", Href: "/a"},
				{Text: "B", Href: "https://other.test/b"},
			},
		}

		var buf bytes.Buffer
		err := WritePage(&buf, Page{
			URL:      "https://example.test/ok",
			Document: doc,
			SavedAt:  time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		})
		if err != nil {
			t.Fatalf("failed to write page: %v", err)
		}

		output := buf.String()
		for _, want := range []string{
			"# Example",
			"> A page about examples",
			"https://example.test/ok",
			"Hello",
			longLine,
			"https://example.test/a",
			"https://other.test/b",
			"2026-01-02 03:04:05",
		} {
			if !strings.Contains(output, want) {
				t.Errorf("expected output to contain %q:\n%s", want, output)
			}
		}
	})

	t.Run("falls back to URL as title and notes missing links", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		err := WritePage(&buf, Page{
			URL:      "https://example.test/",
			Document: &extract.Document{Links: []extract.Link{}},
		})
		if err != nil {
			t.Fatalf("failed to write page: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "# https://example.test/") {
			t.Errorf("expected URL heading:\n%s", output)
		}
		if !strings.Contains(output, "No links found.") {
			t.Errorf("expected empty links note:\n%s", output)
		}
	})
}

// TestWriteVisits tests Markdown export of the visit log.
func TestWriteVisits(t *testing.T) {
	t.Parallel()

	t.Run("renders a table row per visit", func(t *testing.T) {
		t.Parallel()

		visits := []database.Visit{
			{FinalURL: "https://b.test/", Title: "B", StatusCode: 200, Locale: "ru", VisitedAt: time.Now()},
			{FinalURL: "https://a.test/", Title: "A", StatusCode: 200, Locale: "en", VisitedAt: time.Now()},
		}

		var buf bytes.Buffer
		if err := WriteVisits(&buf, visits); err != nil {
			t.Fatalf("failed to write visits: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "# Visit Log") {
			t.Errorf("expected heading:\n%s", output)
		}
		b := strings.Index(output, "https://b.test/")
		a := strings.Index(output, "https://a.test/")
		if a < 0 || b < 0 || b > a {
			t.Errorf("expected both visits in given order:\n%s", output)
		}
	})

	t.Run("empty log", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if err := WriteVisits(&buf, nil); err != nil {
			t.Fatalf("failed to write visits: %v", err)
		}
		if !strings.Contains(buf.String(), "No visits recorded") {
			t.Errorf("expected empty note:\n%s", buf.String())
		}
	})
}
