// Package database stores the optional visit log in SQLite.
//
// The log is written only when recording is enabled. It lives in a single
// file, cmdowser.db, under the XDG data directory and is read by the
// "visits" command. The interactive back-stack never reads from it.
//
// modernc.org/sqlite is a pure Go driver, so the binary stays CGO-free.
package database
