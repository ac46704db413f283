// Package render prints pages, help and history to the terminal in the
// browser's fixed layout.
//
// Page bodies are cut to TextLimit characters and only the first LinkLimit
// links are listed, each with its text cut to LinkTextLimit characters.
// Limits count characters (runes), not bytes, so Cyrillic text is cut at
// the same visible length as Latin text.
package render
