package ui

import (
	"time"

	"github.com/rovshanmuradov/perf-dashboard/internal/records"
)

// Tea message types for UI communication

// RouterMsg represents navigation between screens
type RouterMsg struct {
	To Route
}

// BlocksLoadedMsg carries the result of a full refresh pass: one block per
// (metric, denomination) pair, USD section first.
type BlocksLoadedMsg struct {
	Blocks []records.Block
	At     time.Time
}

// RefreshTickMsg triggers the next scheduled refresh pass.
type RefreshTickMsg struct {
	At time.Time
}

// ExportResultMsg reports the outcome of an export request.
type ExportResultMsg struct {
	Path string
	Err  error
}

// Route represents different screens in the application
type Route int

const (
	RouteDashboard Route = iota
	RouteLogs
)

// String returns the string representation of the route
func (r Route) String() string {
	switch r {
	case RouteDashboard:
		return "dashboard"
	case RouteLogs:
		return "logs"
	default:
		return "unknown"
	}
}
