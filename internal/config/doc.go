// Package config loads quick-search settings.
//
// Settings come from three places, later ones winning:
//
//  1. Built-in defaults (Default)
//  2. A TOML or YAML file, chosen by extension
//  3. QUICKSEARCH_* environment variables
//
// A missing file is not an error. Example TOML:
//
//	[search]
//	locale = "ru"
//	forward_prefix = "/"
//
//	[keys]
//	repeat_forward = ["F3"]
//	paste = ["Ctrl+V", "Shift+Insert"]
//
//	[messages.ru]
//	not_found = " (не найдено)"
//
//	[log]
//	level = "debug"
//	file = "/tmp/quicksearch.log"
//
// Message catalogs are picked by matching the configured locale against the
// catalogs available, falling back to English for anything left unset.
package config
