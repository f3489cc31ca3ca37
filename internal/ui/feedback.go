package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Default banner dwell times.
const (
	DefaultSuccessDwell = 2000 * time.Millisecond
	DefaultErrorDwell   = 3000 * time.Millisecond
)

// successTimeline hides the success banner and navigates to the admin dashboard.
//
// The two timers start together with the same dwell and are independent of each other.
func successTimeline(session string, dwell time.Duration) tea.Cmd {
	return tea.Batch(
		tea.Tick(dwell, func(time.Time) tea.Msg { return hideSuccessMsg(session) }),
		tea.Tick(dwell, func(time.Time) tea.Msg { return navigateMsg(session, AdminDashboardRoute) }),
	)
}

// errorTimeline hides the validation banner after dwell.
func errorTimeline(session string, dwell time.Duration) tea.Cmd {
	return tea.Tick(dwell, func(time.Time) tea.Msg { return hideValidationErrorMsg(session) })
}
