package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/topix/internal/models"
)

func newDashboardList(submissions []*models.Submission, width, height int) list.Model {
	if width <= 0 {
		width = 80
	}
	if height <= 0 {
		height = 20
	}

	l := list.New(submissionItems(submissions), list.NewDefaultDelegate(), width, height)
	l.Title = "Admin Dashboard · recent submissions"
	l.SetShowHelp(false)
	return l
}

func (m *Model) loadHistory() tea.Cmd {
	if m.history == nil {
		return nil
	}
	history := m.history
	return func() tea.Msg {
		submissions, err := history.Recent(historyLimit)
		return historyLoadedMsg(submissions, err)
	}
}

func (m *Model) setHistory(submissions []*models.Submission, err error) {
	m.historyErr = err
	if err != nil {
		m.logger.Error("failed to load submission history", "error", err)
		return
	}
	m.dashboard = newDashboardList(submissions, m.width-4, m.height-8)
}

func (m *Model) renderDashboard() string {
	helpView := m.help.ShortHelpView(m.keys.dashboardHelp())

	switch {
	case m.historyErr != nil:
		return fmt.Sprintf("%s\n\n%s\n\n%s",
			styles.title.Render("Admin Dashboard"),
			styles.err.Render(fmt.Sprintf("Error: %v", m.historyErr)),
			helpView)
	case m.history == nil:
		return fmt.Sprintf("%s\n\n%s\n\n%s",
			styles.title.Render("Admin Dashboard"),
			styles.help.Render("Submission journal is disabled."),
			helpView)
	default:
		return fmt.Sprintf("%s\n\n%s", m.dashboard.View(), helpView)
	}
}
