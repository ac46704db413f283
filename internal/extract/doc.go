// Package extract turns an HTML document into readable text and a list
// of links.
//
// Non-content elements (scripts, styles, page chrome, forms, frames) are
// removed together with everything nested inside them before anything is
// extracted. The remaining text nodes are trimmed and joined one per line; anchor
// text goes to the link list rather than the body. Anchors keep their raw
// href; resolving it against the page URL is left
// to the caller so that it happens at click time.
//
// # Usage
//
//	doc, err := extract.Extract(strings.NewReader(body))
//	target, err := extract.Resolve(pageURL, doc.Links[0].Href)
package extract
