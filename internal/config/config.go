package config

import (
	"errors"
	"fmt"

	"github.com/dshills/quicksearch/internal/input/key"
	"github.com/dshills/quicksearch/internal/logging"
)

// Config holds every quick-search setting.
type Config struct {
	Search   SearchConfig        `toml:"search" yaml:"search"`
	Keys     KeysConfig          `toml:"keys" yaml:"keys"`
	Messages map[string]Messages `toml:"messages" yaml:"messages"`
	Log      LogConfig           `toml:"log" yaml:"log"`
}

// SearchConfig controls matching and the title indicator.
type SearchConfig struct {
	// Locale selects case-folding rules and the message catalog
	// (BCP 47, e.g. "en", "tr", "ru-RU").
	Locale         string `toml:"locale" yaml:"locale"`
	ForwardPrefix  string `toml:"forward_prefix" yaml:"forward_prefix"`
	BackwardPrefix string `toml:"backward_prefix" yaml:"backward_prefix"`
	Separator      string `toml:"separator" yaml:"separator"`
}

// KeysConfig holds key bindings as key specs ("F3", "Shift+F3", "<C-v>").
type KeysConfig struct {
	RepeatForward  []string `toml:"repeat_forward" yaml:"repeat_forward"`
	RepeatBackward []string `toml:"repeat_backward" yaml:"repeat_backward"`
	Paste          []string `toml:"paste" yaml:"paste"`
	Help           []string `toml:"help" yaml:"help"`

	// Viewer bindings.
	SearchForward  []string `toml:"search_forward" yaml:"search_forward"`
	SearchBackward []string `toml:"search_backward" yaml:"search_backward"`
	Menu           []string `toml:"menu" yaml:"menu"`
	Quit           []string `toml:"quit" yaml:"quit"`
}

// Messages is one language's message catalog.
type Messages struct {
	Caption        string `toml:"caption" yaml:"caption"`
	SearchForward  string `toml:"search_forward" yaml:"search_forward"`
	SearchBackward string `toml:"search_backward" yaml:"search_backward"`
	NotFound       string `toml:"not_found" yaml:"not_found"`
	AlreadyActive  string `toml:"already_active" yaml:"already_active"`
}

// LogConfig controls the log file.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `toml:"level" yaml:"level"`
	// File is the log destination; empty discards logs.
	File string `toml:"file" yaml:"file"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Search: SearchConfig{
			Locale:         "en",
			ForwardPrefix:  "/",
			BackwardPrefix: "?",
			Separator:      "/",
		},
		Keys: KeysConfig{
			RepeatForward:  []string{"F3"},
			RepeatBackward: []string{"Shift+F3"},
			Paste:          []string{"Ctrl+V", "Shift+Insert"},
			Help:           []string{"F1"},
			SearchForward:  []string{"Ctrl+S"},
			SearchBackward: []string{"Ctrl+R"},
			Menu:           []string{"F7"},
			Quit:           []string{"Ctrl+Q"},
		},
		Messages: builtinCatalogs(),
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Validate checks every setting and returns all problems found, joined.
// Each problem matches ErrValidationFailed.
func (c *Config) Validate() error {
	var errs []error

	if _, err := c.Language(); err != nil {
		errs = append(errs, &ValidationError{Path: "search.locale", Message: "not a language tag", Err: err})
	}
	if c.Search.ForwardPrefix == "" {
		errs = append(errs, &ValidationError{Path: "search.forward_prefix", Message: "must not be empty"})
	}
	if c.Search.BackwardPrefix == "" {
		errs = append(errs, &ValidationError{Path: "search.backward_prefix", Message: "must not be empty"})
	}

	for path, specs := range c.Keys.fields() {
		if len(specs) == 0 {
			errs = append(errs, &ValidationError{Path: path, Message: "no keys bound"})
			continue
		}
		if _, err := parseBinding(path, specs); err != nil {
			errs = append(errs, &ValidationError{Path: path, Message: "bad binding", Err: err})
		}
	}

	if _, ok := logging.ParseLevel(c.Log.Level); !ok {
		errs = append(errs, &ValidationError{Path: "log.level", Message: fmt.Sprintf("unknown level %q", c.Log.Level)})
	}

	return errors.Join(errs...)
}

// LogLevel returns the configured log level, Info if it is invalid.
func (c *Config) LogLevel() logging.Level {
	level, ok := logging.ParseLevel(c.Log.Level)
	if !ok {
		return logging.LevelInfo
	}
	return level
}

func (k KeysConfig) fields() map[string][]string {
	return map[string][]string{
		"keys.repeat_forward":  k.RepeatForward,
		"keys.repeat_backward": k.RepeatBackward,
		"keys.paste":           k.Paste,
		"keys.help":            k.Help,
		"keys.search_forward":  k.SearchForward,
		"keys.search_backward": k.SearchBackward,
		"keys.menu":            k.Menu,
		"keys.quit":            k.Quit,
	}
}

func parseBinding(path string, specs []string) (key.Binding, error) {
	b, err := key.ParseBinding(specs...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidKeySpec, path, err)
	}
	return b, nil
}
