package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format is a config file encoding.
type Format int

const (
	// FormatTOML is the default format.
	FormatTOML Format = iota
	// FormatYAML covers .yaml and .yml files.
	FormatYAML
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "QUICKSEARCH_"

// FormatFor picks the format from a file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// Load builds the configuration: defaults, then the file at path (if it
// exists; an empty path skips it), then the process environment. The
// result is validated.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		if err := cfg.LoadFile(path); err != nil {
			return nil, err
		}
	}
	cfg.ApplyEnv(os.LookupEnv)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile merges the file at path into c. A missing file is not an error.
func (c *Config) LoadFile(path string) error {
	format, err := FormatFor(path)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("reading config file %s: %w", path, err)
	}
	if err := c.Decode(data, format); err != nil {
		var perr *ParseError
		if errors.As(err, &perr) {
			perr.Path = path
		}
		return err
	}
	return nil
}

// Decode merges data into c. Settings absent from data keep their values.
func (c *Config) Decode(data []byte, format Format) error {
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, c); err != nil {
			return &ParseError{Path: "<yaml>", Err: err}
		}
	default:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(c); err != nil {
			perr := &ParseError{Path: "<toml>", Err: err}
			var derr *toml.DecodeError
			if errors.As(err, &derr) {
				perr.Line, _ = derr.Position()
			}
			return perr
		}
	}
	return nil
}

// envMapping maps environment variables to the settings they override.
func envMapping(c *Config) map[string]*string {
	return map[string]*string{
		EnvPrefix + "LOCALE":    &c.Search.Locale,
		EnvPrefix + "LOG_LEVEL": &c.Log.Level,
		EnvPrefix + "LOG_FILE":  &c.Log.File,
	}
}

// ApplyEnv overrides settings from environment variables read through
// lookup (os.LookupEnv in production). Empty values count as set.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	for name, dst := range envMapping(c) {
		if val, ok := lookup(name); ok {
			*dst = val
		}
	}
}
