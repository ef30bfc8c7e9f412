// Package key provides key event types and parsing for the input system.
//
// This package defines the fundamental types for representing keyboard input:
//
//   - Key: Identifies a keyboard key (special keys, function keys, modifier
//     keys pressed alone, or runes)
//   - Modifier: Represents modifier keys (Ctrl, Alt, Shift, Meta, AltGr)
//   - Event: A single key press with modifiers and timestamp
//
// # Key Specifications
//
// Key bindings in configuration are written as specifications:
//
//   - Simple keys: "a", "F3", "Enter", "Insert"
//   - With modifiers: "Ctrl+V", "Shift+F3", "Shift+Insert"
//   - Vim-style: "<C-v>", "<S-F3>", "<Esc>"
//
// # AltGr
//
// On layouts where AltGr produces characters, hosts report it as ModAltGr
// rather than as Ctrl+Alt, so a character typed with AltGr is still a
// character (see Event.IsChar).
package key
