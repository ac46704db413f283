package render

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/nao1215/cmdowser/internal/extract"
	"github.com/nao1215/cmdowser/internal/i18n"
)

// Display limits.
const (
	TextLimit     = 2000
	LinkLimit     = 20
	LinkTextLimit = 50
	HistoryLimit  = 10
)

// Ellipsis marks truncated text.
const Ellipsis = "..."

// ANSI sequences used by ClearScreen.
const (
	clearScreen = "\033[2J"
	cursorHome  = "\033[H"
)

var (
	wideRule   = strings.Repeat("=", 80)
	narrowRule = strings.Repeat("=", 40)
)

// Renderer writes localized output. Write errors are sticky: after the
// first failure nothing more is written and Err reports it.
type Renderer struct {
	w   io.Writer
	tr  *i18n.Translator
	tty bool
	err error
}

// New creates a Renderer writing to w with messages from tr.
// Screen clearing is enabled only when w is a terminal.
func New(w io.Writer, tr *i18n.Translator) *Renderer {
	tty := false
	if f, ok := w.(*os.File); ok {
		tty = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return &Renderer{w: w, tr: tr, tty: tty}
}

// Err returns the first write error, if any.
func (r *Renderer) Err() error {
	return r.err
}

func (r *Renderer) print(s string) {
	if r.err != nil {
		return
	}
	_, r.err = io.WriteString(r.w, s)
}

func (r *Renderer) println(s string) {
	r.print(s + "\n")
}

// Message prints a localized message on its own line.
func (r *Renderer) Message(key i18n.Key, args ...any) {
	r.println(r.tr.T(key, args...))
}

// Prompt prints a localized message without a trailing newline.
func (r *Renderer) Prompt(key i18n.Key) {
	r.print(r.tr.T(key))
}

// Line prints s on its own line.
func (r *Renderer) Line(s string) {
	r.println(s)
}

// Page prints the page body and its numbered links.
func (r *Renderer) Page(doc *extract.Document) {
	r.println("\n" + wideRule)
	r.Message(i18n.MsgPageText, TextLimit)
	r.println(narrowRule)
	r.println(Truncate(doc.Text, TextLimit))
	r.println("\n" + wideRule)

	links := VisibleLinks(doc.Links)
	if len(links) == 0 {
		r.Message(i18n.MsgNoLinks)
		return
	}
	r.Message(i18n.MsgLinksTitle)
	for i, link := range links {
		r.println(fmt.Sprintf("%d. %s [→ %s]", i+1, Truncate(link.Text, LinkTextLimit), link.Href))
	}
}

// helpEntries pairs each command with its description.
var helpEntries = []struct {
	command string
	key     i18n.Key
}{
	{"/lang <code>", i18n.MsgHelpLang},
	{"/help", i18n.MsgHelpHelp},
	{"/clear", i18n.MsgHelpClear},
	{"/history", i18n.MsgHelpHistory},
	{"/save <file>", i18n.MsgHelpSave},
	{"/exit", i18n.MsgHelpExit},
	{"u", i18n.MsgHelpBack},
	{"<number>", i18n.MsgHelpLink},
	{"<url>", i18n.MsgHelpURL},
}

// Help prints the command reference.
func (r *Renderer) Help() {
	r.println("\n" + wideRule)
	r.Message(i18n.MsgHelpTitle)
	r.println(wideRule)
	r.Message(i18n.MsgHelpCommands)
	for _, e := range helpEntries {
		r.println(fmt.Sprintf("  %-12s - %s", e.command, r.tr.T(e.key)))
	}
	r.println("\n" + wideRule)
}

// History prints the last HistoryLimit entries of history, oldest first,
// numbered from 1.
func (r *Renderer) History(history []string) {
	r.println("\n" + wideRule)
	r.Message(i18n.MsgHistoryTitle)
	r.println(wideRule)
	if len(history) == 0 {
		r.Message(i18n.MsgHistoryEmpty)
	}
	for i, u := range Recent(history, HistoryLimit) {
		r.println(fmt.Sprintf("%d. %s", i+1, u))
	}
	r.println(wideRule)
}

// ClearScreen clears the terminal. It writes nothing when the output is
// not a terminal, so redirected output stays free of escape codes.
func (r *Renderer) ClearScreen() {
	if !r.tty {
		return
	}
	r.print(clearScreen + cursorHome)
}

// Truncate cuts s to limit runes and appends Ellipsis if anything was cut.
func Truncate(s string, limit int) string {
	if limit < 0 {
		limit = 0
	}
	count := 0
	for i := range s {
		if count == limit {
			return s[:i] + Ellipsis
		}
		count++
	}
	return s
}

// VisibleLinks returns the links that are listed, and can be followed by
// number, on a page.
func VisibleLinks(links []extract.Link) []extract.Link {
	if len(links) > LinkLimit {
		return links[:LinkLimit]
	}
	return links
}

// Recent returns the last n entries of entries.
func Recent(entries []string, n int) []string {
	if len(entries) > n {
		return entries[len(entries)-n:]
	}
	return entries
}
