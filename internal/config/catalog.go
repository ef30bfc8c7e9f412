package config

import (
	"sort"

	"golang.org/x/text/language"

	"github.com/dshills/quicksearch/internal/input/key"
	"github.com/dshills/quicksearch/internal/logging"
	"github.com/dshills/quicksearch/internal/search/match"
	"github.com/dshills/quicksearch/internal/search/session"
)

func builtinCatalogs() map[string]Messages {
	return map[string]Messages{
		"en": {
			Caption:        "Quick Search",
			SearchForward:  "Search &forward",
			SearchBackward: "Search &backward",
			NotFound:       " (not found)",
			AlreadyActive:  " (quick search is already active)",
		},
		"de": {
			Caption:        "Schnellsuche",
			SearchForward:  "&Vorwärts suchen",
			SearchBackward: "&Rückwärts suchen",
			NotFound:       " (nicht gefunden)",
			AlreadyActive:  " (Schnellsuche läuft bereits)",
		},
		"ru": {
			Caption:        "Быстрый поиск",
			SearchForward:  "Искать &вперёд",
			SearchBackward: "Искать &назад",
			NotFound:       " (не найдено)",
			AlreadyActive:  " (быстрый поиск уже запущен)",
		},
	}
}

// Language parses the configured locale. An empty locale means English.
func (c *Config) Language() (language.Tag, error) {
	if c.Search.Locale == "" {
		return language.English, nil
	}
	return language.Parse(c.Search.Locale)
}

// Catalog returns the message catalog best matching the configured locale.
// Messages the chosen catalog leaves empty come from the English catalog.
func (c *Config) Catalog() Messages {
	tag, err := c.Language()
	if err != nil {
		tag = language.English
	}

	names := make([]string, 0, len(c.Messages))
	for name := range c.Messages {
		if name != "en" {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	tags := []language.Tag{language.English}
	keys := []string{"en"}
	for _, name := range names {
		t, err := language.Parse(name)
		if err != nil {
			continue
		}
		tags = append(tags, t)
		keys = append(keys, name)
	}

	_, idx, _ := language.NewMatcher(tags).Match(tag)
	return c.Messages[keys[idx]].withFallback(c.english())
}

func (c *Config) english() Messages {
	en := builtinCatalogs()["en"]
	if m, ok := c.Messages["en"]; ok {
		en = m.withFallback(en)
	}
	return en
}

func (m Messages) withFallback(f Messages) Messages {
	if m.Caption == "" {
		m.Caption = f.Caption
	}
	if m.SearchForward == "" {
		m.SearchForward = f.SearchForward
	}
	if m.SearchBackward == "" {
		m.SearchBackward = f.SearchBackward
	}
	if m.NotFound == "" {
		m.NotFound = f.NotFound
	}
	if m.AlreadyActive == "" {
		m.AlreadyActive = f.AlreadyActive
	}
	return m
}

// Bindings are the parsed key bindings.
type Bindings struct {
	Session        session.Keys
	Help           key.Binding
	SearchForward  key.Binding
	SearchBackward key.Binding
	Menu           key.Binding
	Quit           key.Binding
}

// Bindings parses every configured key spec.
func (c *Config) Bindings() (Bindings, error) {
	var b Bindings
	var err error
	parse := func(dst *key.Binding, path string, specs []string) {
		if err != nil {
			return
		}
		*dst, err = parseBinding(path, specs)
	}
	parse(&b.Session.RepeatForward, "keys.repeat_forward", c.Keys.RepeatForward)
	parse(&b.Session.RepeatBackward, "keys.repeat_backward", c.Keys.RepeatBackward)
	parse(&b.Session.Paste, "keys.paste", c.Keys.Paste)
	parse(&b.Help, "keys.help", c.Keys.Help)
	parse(&b.SearchForward, "keys.search_forward", c.Keys.SearchForward)
	parse(&b.SearchBackward, "keys.search_backward", c.Keys.SearchBackward)
	parse(&b.Menu, "keys.menu", c.Keys.Menu)
	parse(&b.Quit, "keys.quit", c.Keys.Quit)
	if err != nil {
		return Bindings{}, err
	}
	return b, nil
}

// SessionOptions builds the options every search session shares.
func (c *Config) SessionOptions(log *logging.Logger) (session.Options, error) {
	tag, err := c.Language()
	if err != nil {
		return session.Options{}, &ValidationError{Path: "search.locale", Message: "not a language tag", Err: err}
	}
	b, err := c.Bindings()
	if err != nil {
		return session.Options{}, err
	}
	msgs := c.Catalog()
	return session.Options{
		Matcher: match.New(tag),
		Keys:    b.Session,
		Prompt: session.Prompt{
			Forward:   c.Search.ForwardPrefix,
			Backward:  c.Search.BackwardPrefix,
			Separator: c.Search.Separator,
		},
		Messages: session.Messages{
			NotFound:      msgs.NotFound,
			AlreadyActive: msgs.AlreadyActive,
		},
		Logger: log,
	}, nil
}
