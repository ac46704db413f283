package export

import (
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/nao1215/cmdowser/internal/database"
	"github.com/nao1215/cmdowser/internal/extract"
	"github.com/nao1215/markdown"
)

// timeLayout is used for every timestamp in exported documents.
const timeLayout = "2006-01-02 15:04:05 MST"

// Page is a displayed page ready for export.
type Page struct {
	// URL is the address the page was loaded from, after redirects.
	// Links are resolved against it.
	URL string

	// Document is the extracted content.
	Document *extract.Document

	// SavedAt is printed in the footer. Zero means now.
	SavedAt time.Time
}

// WritePage writes the full text and every link of p as Markdown.
// Unlike the terminal view nothing is truncated.
func WritePage(w io.Writer, p Page) error {
	md := markdown.NewMarkdown(w)

	title := p.Document.Title
	if title == "" {
		title = p.URL
	}
	md.H1(title)
	md.PlainText("")
	md.PlainTextf("Source: %s", markdown.Link(p.URL, p.URL))
	md.PlainText("")
	if p.Document.Description != "" {
		md.PlainText("> " + strings.ReplaceAll(p.Document.Description, "\n", " "))
		md.PlainText("")
	}

	md.H2("Content")
	md.PlainText("")
	if p.Document.Text == "" {
		md.PlainText("*No text content.*")
		md.PlainText("")
	}
	for line := range strings.SplitSeq(p.Document.Text, "\n") {
		if line == "" {
			continue
		}
		md.PlainText(line)
		md.PlainText("")
	}

	md.H2("Links")
	md.PlainText("")
	if len(p.Document.Links) == 0 {
		md.PlainText("No links found.")
		md.PlainText("")
	} else {
		rows := make([][]string, 0, len(p.Document.Links))
		for i, link := range p.Document.Links {
			target, err := extract.Resolve(p.URL, link.Href)
			if err != nil {
				target = link.Href
			}
			rows = append(rows, []string{strconv.Itoa(i + 1), cell(link.Text), cell(target)})
		}
		md.Table(markdown.TableSet{
			Header: []string{"#", "Text", "URL"},
			Rows:   rows,
		})
		md.PlainText("")
	}

	writeFooter(md, p.SavedAt)
	return md.Build()
}

// WriteVisits writes the visit log as a Markdown table, newest first.
func WriteVisits(w io.Writer, visits []database.Visit) error {
	md := markdown.NewMarkdown(w)

	md.H1("Visit Log")
	md.PlainText("")

	if len(visits) == 0 {
		md.Note("No visits recorded. Start cmdowser with --record to keep a visit log.")
		md.PlainText("")
		return md.Build()
	}

	rows := make([][]string, 0, len(visits))
	for _, v := range visits {
		rows = append(rows, []string{
			v.VisitedAt.Local().Format(timeLayout),
			cell(v.Title),
			cell(v.FinalURL),
			strconv.Itoa(v.StatusCode),
			v.Locale,
		})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Time", "Title", "URL", "Status", "Language"},
		Rows:   rows,
	})
	md.PlainText("")

	writeFooter(md, time.Time{})
	return md.Build()
}

func writeFooter(md *markdown.Markdown, at time.Time) {
	if at.IsZero() {
		at = time.Now()
	}
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Exported by cmdowser on %s*", at.Format(timeLayout))
}

// cell makes s safe for a single Markdown table cell.
func cell(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.ReplaceAll(s, "|", `\|`)
}
