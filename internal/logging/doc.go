// Package logging provides the leveled logger shared by the quick search
// packages.
//
// Loggers are cheap values: WithField and WithComponent return a copy
// carrying extra fields, which are printed sorted by key after the message.
package logging
