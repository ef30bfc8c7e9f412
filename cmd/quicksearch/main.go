// Package main is the entry point for the quicksearch file viewer.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dshills/quicksearch/internal/app"
	"github.com/dshills/quicksearch/internal/logging"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	application, err := app.New(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer application.Close()

	if err := application.Run(); err != nil {
		application.Close()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func parseFlags() app.Options {
	var opts app.Options
	var showVersion bool
	var showHelp bool

	flag.StringVar(&opts.ConfigPath, "config", defaultConfigPath(), "Path to configuration file (.toml, .yaml)")
	flag.StringVar(&opts.ConfigPath, "c", defaultConfigPath(), "Path to configuration file (shorthand)")
	flag.StringVar(&opts.LogFile, "log", "", "Write logs to this file")
	flag.StringVar(&opts.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.BoolVar(&opts.NoWatch, "no-watch", false, "Do not reload files changed on disk")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "quicksearch - incremental search file viewer\n\n")
		fmt.Fprintf(os.Stderr, "Usage: quicksearch [options] [files...]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nKeys:\n")
		fmt.Fprintf(os.Stderr, "  Ctrl+S / Ctrl+R   Quick search forward / backward\n")
		fmt.Fprintf(os.Stderr, "  F7                Search menu\n")
		fmt.Fprintf(os.Stderr, "  F3 / Shift+F3     Next / previous match while searching\n")
		fmt.Fprintf(os.Stderr, "  Tab               Search for the end of a range\n")
		fmt.Fprintf(os.Stderr, "  F6                Next file\n")
		fmt.Fprintf(os.Stderr, "  Ctrl+Q            Quit\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("quicksearch %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	if opts.LogLevel != "" {
		if _, ok := logging.ParseLevel(opts.LogLevel); !ok {
			fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", opts.LogLevel)
			os.Exit(1)
		}
	}

	opts.Files = flag.Args()
	return opts
}

// defaultConfigPath returns ~/.config/quicksearch/config.toml (or the
// platform equivalent). The file does not have to exist.
func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "quicksearch", "config.toml")
}
