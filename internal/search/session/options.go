package session

import (
	"golang.org/x/text/language"

	"github.com/dshills/quicksearch/internal/input/key"
	"github.com/dshills/quicksearch/internal/logging"
	"github.com/dshills/quicksearch/internal/search/match"
)

// Keys are the configurable key bindings of a session. Tab, Escape, Enter
// and Backspace are fixed.
type Keys struct {
	RepeatForward  key.Binding
	RepeatBackward key.Binding
	Paste          key.Binding
}

// DefaultKeys returns F3 / Shift+F3 for repeats and the usual paste keys.
func DefaultKeys() Keys {
	return Keys{
		RepeatForward:  key.MustParseBinding("F3"),
		RepeatBackward: key.MustParseBinding("Shift+F3"),
		Paste:          key.MustParseBinding("Ctrl+V", "Shift+Insert"),
	}
}

// Prompt controls how patterns are shown in the title indicator.
type Prompt struct {
	Forward   string
	Backward  string
	Separator string
}

// DefaultPrompt returns "/" and "?" prefixes with "/" between slots.
func DefaultPrompt() Prompt {
	return Prompt{Forward: "/", Backward: "?", Separator: "/"}
}

// Messages are the localized notices a session displays.
type Messages struct {
	NotFound      string
	AlreadyActive string
}

// DefaultMessages returns the English notices.
func DefaultMessages() Messages {
	return Messages{
		NotFound:      " (not found)",
		AlreadyActive: " (quick search is already active)",
	}
}

// Options configure a Session.
type Options struct {
	Matcher  *match.Matcher
	Keys     Keys
	Prompt   Prompt
	Messages Messages
	Logger   *logging.Logger
}

// DefaultOptions returns options for English text with default bindings.
func DefaultOptions() Options {
	return Options{
		Matcher:  match.New(language.English),
		Keys:     DefaultKeys(),
		Prompt:   DefaultPrompt(),
		Messages: DefaultMessages(),
		Logger:   logging.Null(),
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Matcher == nil {
		o.Matcher = d.Matcher
	}
	if o.Keys.RepeatForward == nil && o.Keys.RepeatBackward == nil && o.Keys.Paste == nil {
		o.Keys = d.Keys
	}
	if o.Prompt == (Prompt{}) {
		o.Prompt = d.Prompt
	}
	if o.Messages == (Messages{}) {
		o.Messages = d.Messages
	}
	if o.Logger == nil {
		o.Logger = d.Logger
	}
	return o
}
