// Package watcher reports changes to individual files using fsnotify.
//
// Files are watched through their parent directories so that editors which
// save by writing a temporary file and renaming it over the original are
// still seen. Bursts of events on one file are coalesced into a single
// Event after a short quiet period.
package watcher
