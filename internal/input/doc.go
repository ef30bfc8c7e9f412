// Package input defines the host-neutral input events offered to an active
// quick search before the host processes them.
//
// Hosts translate their native events (terminal events, console input
// records) into Event values. Key releases, mouse activity and focus
// changes are all represented so a search session can decide which ones to
// consume.
package input
