// Package plugin adapts the host editor's plugin entry points to the
// quick-search session registry.
//
// The host calls three things:
//
//   - MenuItems when it builds its plugin menu
//   - Open when the user picks a menu entry
//   - ProcessInput for every input event on a buffer
//
// Errors never escape to the host: they are shown in a message box
// captioned with the plugin name and the event is reported as consumed.
package plugin
