package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines keyboard shortcuts for the application
type KeyMap struct {
	// Global navigation
	Quit key.Binding
	Back key.Binding

	// Navigation
	Up    key.Binding
	Down  key.Binding
	Enter key.Binding
	Tab   key.Binding

	// Dashboard
	Refresh    key.Binding
	Export     key.Binding
	ExportJSON key.Binding
	Logs       key.Binding

	// Logs
	FilterInfo  key.Binding
	FilterWarn  key.Binding
	FilterError key.Binding
	FilterAll   key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q/ctrl+c", "quit"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),

		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "raw data"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab", "right", "left"),
			key.WithHelp("tab", "denomination"),
		),

		Refresh: key.NewBinding(
			key.WithKeys("r", "f5"),
			key.WithHelp("r/F5", "refresh"),
		),
		Export: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "export csv"),
		),
		ExportJSON: key.NewBinding(
			key.WithKeys("E"),
			key.WithHelp("E", "export json"),
		),
		Logs: key.NewBinding(
			key.WithKeys("l", "f12"),
			key.WithHelp("l/F12", "logs"),
		),

		FilterInfo: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("F1", "info"),
		),
		FilterWarn: key.NewBinding(
			key.WithKeys("f2"),
			key.WithHelp("F2", "warn"),
		),
		FilterError: key.NewBinding(
			key.WithKeys("f3"),
			key.WithHelp("F3", "error"),
		),
		FilterAll: key.NewBinding(
			key.WithKeys("f4"),
			key.WithHelp("F4", "all"),
		),
	}
}

// ShortHelp returns key help text for the current context
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Refresh, k.Quit}
}

// ContextualHelp returns help text based on the current route
func (k KeyMap) ContextualHelp(route Route) []key.Binding {
	switch route {
	case RouteDashboard:
		return []key.Binding{k.Tab, k.Up, k.Down, k.Enter, k.Refresh, k.Export, k.Logs, k.Quit}
	case RouteLogs:
		return []key.Binding{k.FilterInfo, k.FilterWarn, k.FilterError, k.FilterAll, k.Back, k.Quit}
	default:
		return k.ShortHelp()
	}
}
