package memhost

// Option is a functional option for configuring an Editor.
type Option func(*Editor)

// WithWindow sets the viewport size used for scrolling.
func WithWindow(width, height int) Option {
	return func(e *Editor) {
		if width > 0 {
			e.width = width
		}
		if height > 0 {
			e.height = height
		}
	}
}

// WithClipboard sets the function backing ReadClipboardText.
func WithClipboard(read func() (string, error)) Option {
	return func(e *Editor) {
		e.clipboard = read
	}
}

// WithHelp sets the function called by ShowHelp.
func WithHelp(show func()) Option {
	return func(e *Editor) {
		e.help = show
	}
}

// WithMessages sets the function receiving ShowMessage text.
func WithMessages(show func(string)) Option {
	return func(e *Editor) {
		e.message = show
	}
}
