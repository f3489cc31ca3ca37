// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI has two views:
//  1. [TopicsView] : Edit a variable-length list of topics for one course and submit it as a batch
//  2. [DashboardView] : Browse recent submissions recorded in the journal
//
// The [Model] implements bubbletea/Elm's standard Init/Update/View pattern, receiving messages via the Msg union type.
//
// Banners are cleared by tea.Tick timers. A successful submit shows a banner and schedules two
// independent timers with the same dwell: one hides the banner, the other navigates to the dashboard.
// A rejected submit shows a validation banner cleared by a single timer.
//
// Every topics screen gets a session ID when mounted. Timers and submit results carry that ID
// and are dropped once the screen has been left, so late messages never touch a screen that is gone.
package ui
