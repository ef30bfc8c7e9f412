// Package app is the quick-search file viewer: it opens files read-only in
// an in-memory editor, draws them on the terminal and routes every input
// event through the quick-search plugin before handling navigation itself.
package app
