// Package memhost provides an in-memory editor implementing host.Host.
//
// An Editor holds any number of buffers, each identified by a random UUID.
// Every buffer tracks a cursor, a viewport of fixed size, one selection
// block and a title indicator. The editor is used by the terminal viewer and
// as the host double in tests.
//
// Basic usage:
//
//	ed := memhost.New(memhost.WithWindow(80, 24))
//	id := ed.Open("alpha beta\ngamma alpha\n")
//	line, _ := ed.GetLine(id, 1) // "gamma alpha"
//
// Thread Safety:
//
// All Editor methods are safe for concurrent use; the file watcher reloads
// text from its own goroutine.
package memhost
