package app

import (
	"errors"
	"io"
	"os"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/dshills/quicksearch/internal/config"
	"github.com/dshills/quicksearch/internal/host"
	"github.com/dshills/quicksearch/internal/host/memhost"
	"github.com/dshills/quicksearch/internal/input"
	"github.com/dshills/quicksearch/internal/logging"
	"github.com/dshills/quicksearch/internal/plugin"
	"github.com/dshills/quicksearch/internal/search/registry"
	"github.com/dshills/quicksearch/internal/term"
	"github.com/dshills/quicksearch/internal/watcher"
)

// Screen is the terminal the application draws on.
type Screen interface {
	PollEvent() (input.Event, bool)
	Draw(v term.View)
	Menu(title string, items []string) int
	TextSize() (int, int)
	Interrupt()
	Close()
}

// Options configures the application.
type Options struct {
	// ConfigPath is the path to the configuration file.
	ConfigPath string

	// LogFile overrides the configured log file.
	LogFile string

	// LogLevel overrides the configured log level.
	LogLevel string

	// Files are files to open on startup.
	Files []string

	// Screen replaces the terminal, mainly for tests.
	Screen Screen

	// Clipboard replaces the system clipboard reader.
	Clipboard func() (string, error)

	// NoWatch disables reloading files changed on disk.
	NoWatch bool
}

type document struct {
	id   host.BufferID
	path string
}

// Application is the file viewer.
type Application struct {
	cfg      *config.Config
	log      *logging.Logger
	logFile  io.Closer
	bindings config.Bindings
	msgs     config.Messages

	editor  *memhost.Editor
	reg     *registry.Registry
	plugin  *plugin.Plugin
	screen  Screen
	watcher *watcher.Watcher
	reloads chan watcher.Event
	done    chan struct{}

	docs    []document
	current int
	message string
	closed  bool

	// selAnchor is where a Shift/Alt+Shift selection started.
	selAnchor *host.Position
}

// New loads the configuration, opens files and prepares the screen.
func New(opts Options) (*Application, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, NewOperationError("load config", opts.ConfigPath, err)
	}
	if opts.LogFile != "" {
		cfg.Log.File = opts.LogFile
	}
	if opts.LogLevel != "" {
		cfg.Log.Level = opts.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	a := &Application{cfg: cfg, msgs: cfg.Catalog()}
	if err := a.openLog(); err != nil {
		return nil, err
	}

	a.bindings, err = cfg.Bindings()
	if err != nil {
		a.Close()
		return nil, err
	}
	sessOpts, err := cfg.SessionOptions(a.log)
	if err != nil {
		a.Close()
		return nil, err
	}

	readClipboard := opts.Clipboard
	if readClipboard == nil {
		readClipboard = clipboard.ReadAll
	}
	a.editor = memhost.New(
		memhost.WithClipboard(readClipboard),
		memhost.WithHelp(a.showHelp),
		memhost.WithMessages(a.showMessage),
	)
	a.reg = registry.New(a.editor, sessOpts)
	a.plugin = plugin.New(a.editor, a.reg, plugin.Options{
		Messages: plugin.Messages{
			Caption:        a.msgs.Caption,
			SearchForward:  a.msgs.SearchForward,
			SearchBackward: a.msgs.SearchBackward,
		},
		Help:   a.bindings.Help,
		Logger: a.log,
	})

	if !opts.NoWatch {
		a.watcher, err = watcher.New()
		if err != nil {
			a.log.Warn("file watching disabled: %v", err)
		}
	}

	if err := a.openFiles(opts.Files); err != nil {
		a.Close()
		return nil, err
	}

	a.screen = opts.Screen
	if a.screen == nil {
		s, err := term.New()
		if err != nil {
			a.Close()
			return nil, NewOperationError("open", "terminal", err)
		}
		a.screen = s
	}
	a.resize()
	return a, nil
}

func (a *Application) openLog() error {
	if a.cfg.Log.File == "" {
		a.log = logging.Null()
		return nil
	}
	f, err := os.OpenFile(a.cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return NewOperationError("open log", a.cfg.Log.File, err)
	}
	a.logFile = f
	lc := logging.DefaultConfig()
	lc.Level = a.cfg.LogLevel()
	lc.Output = f
	a.log = logging.New(lc)
	return nil
}

// Run processes events until the user quits or the screen closes.
func (a *Application) Run() error {
	if a.watcher != nil {
		a.reloads = make(chan watcher.Event, 16)
		a.done = make(chan struct{})
		defer close(a.done)
		go a.forwardReloads(a.watcher.Events())
	}

	a.draw()
	for {
		ev, ok := a.screen.PollEvent()
		if !ok {
			return nil
		}
		a.applyReloads()
		if err := a.HandleEvent(ev); err != nil {
			if errors.Is(err, ErrQuit) {
				return nil
			}
			return err
		}
		a.draw()
	}
}

// forwardReloads hands watcher events to the event loop, waking it up. It
// returns when events closes or Run has returned.
func (a *Application) forwardReloads(events <-chan watcher.Event) {
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			select {
			case a.reloads <- ev:
				a.screen.Interrupt()
			case <-a.done:
				return
			}
		case <-a.done:
			return
		}
	}
}

func (a *Application) applyReloads() {
	for {
		select {
		case ev := <-a.reloads:
			a.reload(ev)
		default:
			return
		}
	}
}

// Close releases the watcher, the terminal and the log file. It is safe to
// call more than once.
func (a *Application) Close() {
	if a.closed {
		return
	}
	a.closed = true
	if a.watcher != nil {
		_ = a.watcher.Close()
	}
	if a.screen != nil {
		a.screen.Close()
	}
	if a.logFile != nil {
		_ = a.logFile.Close()
	}
}

func (a *Application) showMessage(text string) {
	a.message = strings.ReplaceAll(text, "\n", ": ")
	a.log.Info("message: %s", a.message)
}

func (a *Application) showHelp() {
	a.message = a.helpText()
}

func (a *Application) helpText() string {
	return strings.Join([]string{
		"type to search",
		"Tab: range end",
		a.bindings.Session.RepeatForward.String() + "/" + a.bindings.Session.RepeatBackward.String() + ": next/prev",
		a.bindings.Session.Paste.String() + ": paste",
		"Enter: keep",
		"Esc: cancel",
	}, " | ")
}

func (a *Application) resize() {
	w, h := a.screen.TextSize()
	a.editor.Resize(w, h)
}

func (a *Application) currentID() host.BufferID {
	return a.docs[a.current].id
}

func (a *Application) draw() {
	id := a.currentID()
	info, err := a.editor.GetInfo(id)
	if err != nil {
		a.log.Error("draw: %v", err)
		return
	}
	_, rows := a.editor.Window()

	v := term.View{
		TopLine:    info.TopLine,
		LeftPos:    info.LeftPos,
		CurLine:    info.CurLine,
		CurCol:     info.CurCol,
		TotalLines: info.TotalLines,
		Name:       a.editor.Name(id),
		Title:      a.editor.Title(id),
		Message:    a.message,
	}
	for n := info.TopLine; n < info.TotalLines && n < info.TopLine+rows; n++ {
		line, err := a.editor.GetLine(id, n)
		if err != nil {
			a.log.Error("draw line %d: %v", n, err)
			break
		}
		v.Lines = append(v.Lines, line)
	}
	a.screen.Draw(v)
}
