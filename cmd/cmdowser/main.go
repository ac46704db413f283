// Package main provides the entry point for the CMDowser CLI.
//
// CMDowser is a text web browser for the terminal. It prints the readable
// text of a page with a numbered list of its links and navigates by link
// number, typed URL or a handful of commands.
//
// Usage:
//
//	cmdowser [url]
//	cmdowser --lang ru https://example.com
//	cmdowser --tor http://<address>.onion/
//
// See --help for all available options.
package main

// main is the entry point for CMDowser.
func main() {
	Execute()
}
