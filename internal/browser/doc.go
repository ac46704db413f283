// Package browser implements the interactive navigator: it reads commands
// line by line, fetches and displays pages, and keeps the session history
// and interface language.
package browser
