package plugin

import (
	"errors"
	"fmt"

	"github.com/dshills/quicksearch/internal/host"
	"github.com/dshills/quicksearch/internal/input"
	"github.com/dshills/quicksearch/internal/input/key"
	"github.com/dshills/quicksearch/internal/logging"
	"github.com/dshills/quicksearch/internal/search/match"
	"github.com/dshills/quicksearch/internal/search/registry"
)

// ErrInvalidChoice is reported when Open receives an unknown menu index.
var ErrInvalidChoice = errors.New("invalid menu choice")

// Cancelled is the menu choice hosts pass when the menu was dismissed.
const Cancelled = -1

// Messages are the localized strings the adapter shows.
type Messages struct {
	Caption        string
	SearchForward  string
	SearchBackward string
}

// MenuItem is one entry of the plugin menu.
type MenuItem struct {
	Text      string
	Direction match.Direction
}

// Options configure a Plugin.
type Options struct {
	Messages Messages
	// Help shows the host's help while a session is active.
	Help   key.Binding
	Logger *logging.Logger
}

// Plugin connects host entry points to a session registry.
type Plugin struct {
	host host.Host
	reg  *registry.Registry
	opts Options
	log  *logging.Logger
}

// New creates the adapter.
func New(h host.Host, reg *registry.Registry, opts Options) *Plugin {
	if opts.Logger == nil {
		opts.Logger = logging.Null()
	}
	if opts.Help == nil {
		opts.Help = key.MustParseBinding("F1")
	}
	return &Plugin{
		host: h,
		reg:  reg,
		opts: opts,
		log:  opts.Logger.WithComponent("plugin"),
	}
}

// MenuItems returns the menu entries in choice order.
func (p *Plugin) MenuItems() []MenuItem {
	return []MenuItem{
		{Text: p.opts.Messages.SearchForward, Direction: match.Forward},
		{Text: p.opts.Messages.SearchBackward, Direction: match.Backward},
	}
}

// Open starts a search on buffer id for the menu entry at index choice.
// Cancelled does nothing. Failures are shown to the user and returned.
func (p *Plugin) Open(id host.BufferID, choice int) error {
	if choice == Cancelled {
		return nil
	}
	items := p.MenuItems()
	if choice < 0 || choice >= len(items) {
		return p.report(fmt.Errorf("%w: %d", ErrInvalidChoice, choice))
	}
	if err := p.reg.Start(id, items[choice].Direction); err != nil {
		return p.report(err)
	}
	return nil
}

// ProcessInput offers ev for buffer id to its session, if any. It reports
// whether the host must not process the event itself.
func (p *Plugin) ProcessInput(id host.BufferID, ev input.Event) bool {
	if !p.reg.Active(id) {
		return false
	}
	if ev.Kind == input.KindKey && ev.Down && p.opts.Help.Matches(ev.Key) {
		p.host.ShowHelp()
		return true
	}

	consumed, err := p.reg.Dispatch(id, ev)
	if err != nil {
		_ = p.report(err)
		return true
	}
	return consumed
}

// Close drops the session of a buffer that is being closed.
func (p *Plugin) Close(id host.BufferID) {
	p.reg.Forget(id)
}

func (p *Plugin) report(err error) error {
	p.log.Error("%v", err)
	p.host.ShowMessage(p.opts.Messages.Caption + "\n" + err.Error())
	return err
}
