package browser

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/nao1215/cmdowser/internal/database"
	"github.com/nao1215/cmdowser/internal/export"
	"github.com/nao1215/cmdowser/internal/extract"
	"github.com/nao1215/cmdowser/internal/fetcher"
	"github.com/nao1215/cmdowser/internal/i18n"
	"github.com/nao1215/cmdowser/internal/render"
)

// State is the position of the navigator in its loop.
type State int

const (
	// StateAwaitingInitialURL asks for a URL or a command with no page loaded.
	StateAwaitingInitialURL State = iota
	// StateDisplayingPage fetches the current URL and prints it.
	StateDisplayingPage
	// StateAwaitingCommand reads a command for the displayed page.
	StateAwaitingCommand
	// StateTerminated ends Run.
	StateTerminated
)

// String returns the name of the state.
func (s State) String() string {
	switch s {
	case StateAwaitingInitialURL:
		return "awaiting-initial-url"
	case StateDisplayingPage:
		return "displaying-page"
	case StateAwaitingCommand:
		return "awaiting-command"
	case StateTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// Fetcher retrieves pages. *fetcher.Client implements it.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) (*fetcher.Page, error)
}

// Recorder stores displayed pages. *database.VisitDB implements it.
type Recorder interface {
	RecordVisit(ctx context.Context, v *database.Visit) (int64, error)
}

// Navigator is one interactive browsing session. It is not safe for
// concurrent use; Run owns it until it returns.
type Navigator struct {
	fetcher  Fetcher
	tr       *i18n.Translator
	out      *render.Renderer
	in       io.Reader
	recorder Recorder
	logger   *slog.Logger
	now      func() time.Time

	state   State
	current string
	// push is set when the next displayed page is a new history entry.
	// Going back reloads an entry that is already there.
	push    bool
	history *History

	page *fetcher.Page
	doc  *extract.Document

	lines <-chan string
	// readErr is set by the reader goroutine before lines is closed and
	// may only be read once eof is set.
	readErr error
	eof     bool
}

// Option configures a Navigator.
type Option func(*Navigator)

// WithRecorder stores every displayed page in r.
func WithRecorder(r Recorder) Option {
	return func(n *Navigator) {
		n.recorder = r
	}
}

// WithLogger sets the logger for diagnostics. Nothing is logged by default.
func WithLogger(logger *slog.Logger) Option {
	return func(n *Navigator) {
		n.logger = logger
	}
}

// WithStartURL opens rawURL instead of asking for the first address.
func WithStartURL(rawURL string) Option {
	return func(n *Navigator) {
		if rawURL != "" {
			n.current = rawURL
			n.push = true
			n.state = StateDisplayingPage
		}
	}
}

// New creates a Navigator reading commands from in and printing to out in
// the language held by tr.
func New(in io.Reader, out io.Writer, f Fetcher, tr *i18n.Translator, opts ...Option) *Navigator {
	n := &Navigator{
		fetcher: f,
		tr:      tr,
		out:     render.New(out, tr),
		in:      in,
		logger:  slog.New(slog.DiscardHandler),
		now:     time.Now,
		state:   StateAwaitingInitialURL,
		history: NewHistory(),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// State returns the current state.
func (n *Navigator) State() State {
	return n.state
}

// History returns the visited URLs, oldest first.
func (n *Navigator) History() []string {
	return n.history.Entries()
}

// Run drives the session until the user quits, input ends or ctx is
// cancelled. Problems with pages and commands are reported to the user;
// only a failure to read input or write output is returned.
func (n *Navigator) Run(ctx context.Context) error {
	done := make(chan struct{})
	defer close(done)
	n.lines = n.readLines(done)

	n.out.Message(i18n.MsgWelcome)
	for n.state != StateTerminated {
		if ctx.Err() != nil {
			n.state = StateTerminated
			break
		}
		switch n.state {
		case StateAwaitingInitialURL:
			n.awaitInitialURL(ctx)
		case StateDisplayingPage:
			n.displayPage(ctx)
		case StateAwaitingCommand:
			n.awaitCommand(ctx)
		case StateTerminated:
		}
		if err := n.out.Err(); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	if n.eof && n.readErr != nil {
		return fmt.Errorf("failed to read input: %w", n.readErr)
	}
	return n.out.Err()
}

// readLines scans n.in on its own goroutine so that a cancelled context
// can interrupt a pending read.
func (n *Navigator) readLines(done <-chan struct{}) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(n.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-done:
				return
			}
		}
		n.readErr = scanner.Err()
	}()
	return lines
}

// readLine waits for the next input line. It reports false at end of
// input or when ctx is cancelled, and moves to StateTerminated.
func (n *Navigator) readLine(ctx context.Context) (string, bool) {
	select {
	case line, ok := <-n.lines:
		if !ok {
			n.eof = true
			n.state = StateTerminated
			return "", false
		}
		return line, true
	case <-ctx.Done():
		n.state = StateTerminated
		return "", false
	}
}

func (n *Navigator) awaitInitialURL(ctx context.Context) {
	n.out.Prompt(i18n.MsgEnterURL)
	line, ok := n.readLine(ctx)
	if !ok {
		return
	}

	cmd := ParseCommand(line)
	switch cmd.Kind {
	case CmdEmpty:
	case CmdQuit:
		n.state = StateTerminated
	case CmdLang:
		n.changeLanguage(ctx, cmd.Arg)
	case CmdHelp:
		n.out.Help()
	case CmdClear:
		n.out.ClearScreen()
	case CmdHistory:
		n.out.History(n.history.Entries())
	case CmdSave, CmdUnknownSlash:
		n.out.Message(i18n.MsgInvalidURL)
	case CmdBack, CmdFollow, CmdNavigate, CmdUnknown:
		page, err := n.fetch(ctx, cmd.Raw)
		if err != nil {
			if ctx.Err() == nil {
				n.out.Message(i18n.MsgInvalidURL)
			}
			return
		}
		n.show(ctx, page, true)
	}
}

// displayPage loads n.current. A failed load goes back to asking for an
// address; history keeps what it had.
func (n *Navigator) displayPage(ctx context.Context) {
	page, err := n.fetch(ctx, n.current)
	if err != nil {
		if n.state != StateTerminated {
			n.state = StateAwaitingInitialURL
		}
		return
	}
	n.show(ctx, page, n.push)
}

// show prints page and waits for a command on it.
func (n *Navigator) show(ctx context.Context, page *fetcher.Page, push bool) {
	doc, err := extract.ExtractString(page.Body)
	if err != nil {
		n.logger.Warn("failed to parse page", slog.String("url", page.FinalURL), slog.Any("error", err))
		doc = &extract.Document{Links: []extract.Link{}}
	}

	n.page = page
	n.doc = doc
	n.current = page.URL
	if push {
		n.history.Push(page.URL)
	}
	n.push = false
	n.record(ctx, page, doc)

	n.out.Page(doc)
	n.state = StateAwaitingCommand
}

// fetch loads rawURL and reports a failure to the user. Cancellation
// terminates the session silently.
func (n *Navigator) fetch(ctx context.Context, rawURL string) (*fetcher.Page, error) {
	n.logger.Debug("fetching page", slog.String("url", rawURL))
	page, err := n.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		if ctx.Err() != nil {
			n.state = StateTerminated
			return nil, err
		}
		n.logger.Debug("fetch failed", slog.String("url", rawURL), slog.Any("error", err))
		n.reportFetchError(err)
		return nil, err
	}
	return page, nil
}

// reportFetchError prints err in the active language.
func (n *Navigator) reportFetchError(err error) {
	var fe *fetcher.FetchError
	if !errors.As(err, &fe) {
		n.out.Line(n.tr.T(i18n.MsgError) + " " + n.tr.T(i18n.MsgErrNetwork, err))
		return
	}

	var msg string
	switch fe.Kind {
	case fetcher.KindTimeout:
		msg = n.tr.T(i18n.MsgErrTimeout, fe.URL)
	case fetcher.KindStatus:
		msg = n.tr.T(i18n.MsgErrStatus, fe.StatusCode)
	case fetcher.KindRequest:
		msg = n.tr.T(i18n.MsgErrRequest, fe.Err)
	case fetcher.KindNetwork:
		msg = n.tr.T(i18n.MsgErrNetwork, fe.Err)
	}
	n.out.Line(n.tr.T(i18n.MsgError) + " " + msg)
}

// record stores a displayed page when recording is enabled. Failures are
// logged and the session goes on.
func (n *Navigator) record(ctx context.Context, page *fetcher.Page, doc *extract.Document) {
	if n.recorder == nil {
		return
	}
	_, err := n.recorder.RecordVisit(ctx, &database.Visit{
		URL:        page.URL,
		FinalURL:   page.FinalURL,
		Title:      doc.Title,
		StatusCode: page.StatusCode,
		Locale:     string(n.tr.Locale()),
		VisitedAt:  n.now(),
	})
	if err != nil {
		n.logger.Warn("failed to record visit", slog.String("url", page.URL), slog.Any("error", err))
	}
}

func (n *Navigator) awaitCommand(ctx context.Context) {
	n.out.Prompt(i18n.MsgPrompt)
	line, ok := n.readLine(ctx)
	if !ok {
		return
	}

	cmd := ParseCommand(line)
	n.logger.Debug("command", slog.String("kind", cmd.Kind.String()))
	switch cmd.Kind {
	case CmdQuit:
		n.state = StateTerminated
	case CmdBack:
		prev, ok := n.history.Back()
		if !ok {
			n.out.Message(i18n.MsgBackNone)
			return
		}
		n.navigate(prev, false)
	case CmdLang:
		n.changeLanguage(ctx, cmd.Arg)
	case CmdHelp:
		n.out.Help()
	case CmdClear:
		n.out.ClearScreen()
	case CmdHistory:
		n.out.History(n.history.Entries())
	case CmdSave:
		n.save(cmd.Arg)
	case CmdFollow:
		n.follow(cmd.Index)
	case CmdNavigate:
		n.navigate(cmd.Arg, true)
	case CmdEmpty, CmdUnknownSlash, CmdUnknown:
		n.out.Message(i18n.MsgUnknownCmd)
	}
}

// navigate schedules rawURL to be loaded on the next iteration.
func (n *Navigator) navigate(rawURL string, push bool) {
	n.current = rawURL
	n.push = push
	n.state = StateDisplayingPage
}

// follow opens the index-th listed link, counting from 1. Links resolve
// against the address the page was finally served from.
func (n *Navigator) follow(index int) {
	links := render.VisibleLinks(n.doc.Links)
	if index < 1 || index > len(links) {
		n.out.Message(i18n.MsgInvalidLink)
		return
	}

	target, err := extract.Resolve(n.page.FinalURL, links[index-1].Href)
	if err != nil {
		n.logger.Debug("cannot resolve link", slog.String("href", links[index-1].Href), slog.Any("error", err))
		n.out.Message(i18n.MsgInvalidLink)
		return
	}
	n.navigate(target, true)
}

// changeLanguage applies code, asking for another one while it is empty
// or unsupported. An empty answer keeps the current language.
func (n *Navigator) changeLanguage(ctx context.Context, code string) {
	for {
		if code == "" {
			n.out.Prompt(i18n.MsgChangeLang)
			line, ok := n.readLine(ctx)
			if !ok {
				return
			}
			if code = strings.TrimSpace(line); code == "" {
				return
			}
		}

		if err := n.tr.SetLocale(code); err == nil {
			n.out.Message(i18n.MsgLangSet, n.tr.Locale())
			return
		}
		n.out.Message(i18n.MsgInvalidLang)
		code = ""
	}
}

// save writes the displayed page to path as Markdown.
func (n *Navigator) save(path string) {
	if path == "" {
		n.out.Message(i18n.MsgSaveUsage)
		return
	}

	err := n.writePage(path)
	if err != nil {
		n.logger.Debug("failed to save page", slog.String("path", path), slog.Any("error", err))
		n.out.Message(i18n.MsgSaveFailed, err)
		return
	}
	n.out.Message(i18n.MsgSaved, path)
}

func (n *Navigator) writePage(path string) (err error) {
	f, err := os.Create(path) //nolint:gosec // path is chosen by the user at the prompt
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	return export.WritePage(f, export.Page{
		URL:      n.page.FinalURL,
		Document: n.doc,
		SavedAt:  n.now(),
	})
}
