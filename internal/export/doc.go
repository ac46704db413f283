// Package export writes pages and the visit log as Markdown documents
// using github.com/nao1215/markdown.
package export
