package extract

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/dyatlov/go-opengraph/opengraph"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// removedSelector lists the elements dropped before extraction.
const removedSelector = "script, style, header, footer, nav, form, iframe, aside, noscript"

// ErrEmptyHref is returned by Resolve for a blank link target.
var ErrEmptyHref = errors.New("empty href")

// Link is an anchor found on a page.
type Link struct {
	// Text is the visible anchor text with surrounding space trimmed.
	Text string

	// Href is the href attribute exactly as written in the document.
	Href string
}

// Document is the readable form of an HTML page.
type Document struct {
	// Title is the trimmed <title> text, or og:title when the page has no
	// title element.
	Title string

	// Description is og:description, or the description meta tag.
	Description string

	// Text holds the visible text nodes outside anchors, one per line.
	Text string

	// Links holds every anchor with a non-empty href, in document order.
	Links []Link
}

// Extract parses HTML and returns its text and links from a single
// parsed tree.
func Extract(r io.Reader) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	doc.Find(removedSelector).Remove()

	result := &Document{
		Title: strings.TrimSpace(doc.Find("title").First().Text()),
		Links: make([]Link, 0),
	}
	readMeta(doc, result)

	var lines []string
	for _, n := range doc.Nodes {
		lines = collectText(n, lines)
	}
	result.Text = strings.Join(lines, "\n")

	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		if href == "" {
			return
		}
		result.Links = append(result.Links, Link{
			Text: strings.TrimSpace(s.Text()),
			Href: href,
		})
	})

	return result, nil
}

// readMeta fills the title fallback and description from meta tags.
func readMeta(doc *goquery.Document, result *Document) {
	og := opengraph.NewOpenGraph()
	doc.Find("meta[property]").Each(func(_ int, s *goquery.Selection) {
		attrs := make(map[string]string, len(s.Nodes[0].Attr))
		for _, a := range s.Nodes[0].Attr {
			attrs[a.Key] = a.Val
		}
		og.ProcessMeta(attrs)
	})

	if result.Title == "" {
		result.Title = strings.TrimSpace(og.Title)
	}
	result.Description = strings.TrimSpace(og.Description)
	if result.Description == "" {
		content, _ := doc.Find(`meta[name="description"]`).First().Attr("content")
		result.Description = strings.TrimSpace(content)
	}
}

// ExtractString is a convenience wrapper around Extract.
func ExtractString(s string) (*Document, error) {
	return Extract(strings.NewReader(s))
}

// collectText appends the trimmed, non-empty text nodes below n in
// document order. Comments and doctype nodes are skipped, and so is anchor
// text, which is reported through Document.Links instead.
func collectText(n *html.Node, lines []string) []string {
	if n.Type == html.ElementNode && n.DataAtom == atom.A {
		return lines
	}
	if n.Type == html.TextNode {
		if text := strings.TrimSpace(n.Data); text != "" {
			lines = append(lines, text)
		}
		return lines
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		lines = collectText(c, lines)
	}
	return lines
}

// Resolve resolves href against the URL of the page it was found on and
// returns an absolute URL.
func Resolve(pageURL, href string) (string, error) {
	href = strings.TrimSpace(href)
	if href == "" {
		return "", ErrEmptyHref
	}

	base, err := url.Parse(pageURL)
	if err != nil {
		return "", fmt.Errorf("invalid page URL %q: %w", pageURL, err)
	}
	ref, err := url.Parse(href)
	if err != nil {
		return "", fmt.Errorf("invalid href %q: %w", href, err)
	}

	return base.ResolveReference(ref).String(), nil
}
