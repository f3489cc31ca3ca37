package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/topix/internal/models"
	"github.com/desertthunder/topix/internal/tasks"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	TopicsView ViewState = iota
	DashboardView
)

// Routes understood by [Model.Navigate].
const (
	TopicsRoute         = "/topics"
	AdminDashboardRoute = "/dashboard/admin"
)

const historyLimit = 50

// HistorySource lists journaled submissions, newest first.
type HistorySource interface {
	Recent(limit int) ([]*models.Submission, error)
}

// Options configures a [Model].
type Options struct {
	CourseID     int64
	Submitter    *tasks.Submitter
	History      HistorySource    // Optional; the dashboard shows a notice without it
	Initial      models.TopicList // Entries for the first topics screen; empty means one blank entry
	SuccessDwell time.Duration
	ErrorDwell   time.Duration
	StartView    ViewState
	Logger       *log.Logger
}

// Model represents the TUI application state.
type Model struct {
	ctx          context.Context
	cancel       context.CancelFunc
	view         ViewState
	route        string
	courseID     int64
	submitter    *tasks.Submitter
	history      HistorySource
	successDwell time.Duration
	errorDwell   time.Duration
	logger       *log.Logger
	width        int
	height       int
	topics       *topicsScreen
	dashboard    list.Model
	historyErr   error
	help         help.Model
	keys         keyMap
}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, opts Options) *Model {
	ctx, cancel := context.WithCancel(ctx)

	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Submitter == nil {
		opts.Submitter = tasks.NewSubmitter(nil, nil, opts.Logger)
	}
	if opts.SuccessDwell <= 0 {
		opts.SuccessDwell = DefaultSuccessDwell
	}
	if opts.ErrorDwell <= 0 {
		opts.ErrorDwell = DefaultErrorDwell
	}

	m := &Model{
		ctx:          ctx,
		cancel:       cancel,
		courseID:     opts.CourseID,
		submitter:    opts.Submitter,
		history:      opts.History,
		successDwell: opts.SuccessDwell,
		errorDwell:   opts.ErrorDwell,
		logger:       opts.Logger,
		dashboard:    newDashboardList(nil, 0, 0),
		help:         help.New(),
		keys:         newKeyMap(),
	}

	switch opts.StartView {
	case DashboardView:
		m.view = DashboardView
		m.route = AdminDashboardRoute
	default:
		m.mountTopics(opts.Initial)
	}
	return m
}

// Init starts the cursor blink or loads history, depending on the first view.
func (m *Model) Init() tea.Cmd {
	if m.view == DashboardView {
		return m.loadHistory()
	}
	return textinput.Blink
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.dashboard.SetSize(msg.Width-4, msg.Height-8)
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case TopicsView:
			return m.handleTopicsKeys(msg)
		case DashboardView:
			return m.handleDashboardKeys(msg)
		}

	case Msg:
		return m.handleMsg(msg)
	}

	return m.forward(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	switch m.view {
	case TopicsView:
		return m.renderTopics()
	case DashboardView:
		return m.renderDashboard()
	default:
		return ""
	}
}

// Route returns the current navigation route.
func (m *Model) Route() string { return m.route }

// Navigate tears down the current screen and shows the one for route.
func (m *Model) Navigate(route string) tea.Cmd {
	switch route {
	case AdminDashboardRoute:
		m.retireTopics()
		m.view = DashboardView
		m.route = route
		return m.loadHistory()
	case TopicsRoute:
		m.mountTopics(models.NewTopicList())
		return textinput.Blink
	default:
		m.logger.Warn("unknown route", "route", route)
		return nil
	}
}

func (m *Model) mountTopics(initial models.TopicList) {
	m.topics = newTopicsScreen(initial)
	m.view = TopicsView
	m.route = TopicsRoute
	m.logger.Debug("mounted topics screen", "course", m.courseID, "session", m.topics.session)
}

// retireTopics unmounts the topics screen so its pending timers and submissions are ignored.
func (m *Model) retireTopics() {
	if m.topics != nil {
		m.logger.Debug("retired topics screen", "session", m.topics.session)
	}
	m.topics = nil
}

// live reports whether session belongs to the mounted topics screen.
func (m *Model) live(session string) bool {
	return m.topics != nil && m.topics.session == session
}

func (m *Model) quit() (tea.Model, tea.Cmd) {
	m.retireTopics()
	m.cancel()
	return m, tea.Quit
}

func (m *Model) handleMsg(msg Msg) (tea.Model, tea.Cmd) {
	if msg.kind == MsgHistoryLoaded {
		data := msg.data.(struct {
			submissions []*models.Submission
			err         error
		})
		m.setHistory(data.submissions, data.err)
		return m, nil
	}

	if !m.live(msg.session) {
		m.logger.Debug("dropped message for retired screen", "kind", msg.kind, "session", msg.session)
		return m, nil
	}

	s := m.topics
	switch msg.kind {
	case MsgSubmitted:
		return m, m.handleSubmitted(msg.data.(tasks.SubmitOutcome))
	case MsgHideSuccess:
		s.showSuccess = false
	case MsgHideValidationError:
		s.showValidationError = false
	case MsgNavigate:
		return m, m.Navigate(msg.data.(string))
	}
	return m, nil
}

func (m *Model) handleSubmitted(out tasks.SubmitOutcome) tea.Cmd {
	s := m.topics
	if s.inFlight > 0 {
		s.inFlight--
	}

	switch out.Status {
	case tasks.Succeeded:
		s.reset(out.Next)
		s.showSuccess = true
		return successTimeline(s.session, m.successDwell)
	case tasks.Rejected:
		s.showValidationError = true
		return errorTimeline(s.session, m.errorDwell)
	default:
		// Failures were logged and journaled by the submitter; the form keeps its entries.
		return nil
	}
}

func (m *Model) handleTopicsKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := m.topics
	if s == nil {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		return m.quit()
	case key.Matches(msg, m.keys.back):
		return m, m.Navigate(AdminDashboardRoute)
	case key.Matches(msg, m.keys.submit):
		return m, m.submit()
	case key.Matches(msg, m.keys.next):
		s.focusNext()
		return m, nil
	case key.Matches(msg, m.keys.prev):
		s.focusPrev()
		return m, nil
	case key.Matches(msg, m.keys.add):
		s.addEntry()
		return m, nil
	case key.Matches(msg, m.keys.remove):
		s.removeEntry()
		return m, nil
	}

	return m, s.edit(msg)
}

// submit runs the validation gate and, when it passes, dispatches the batch in a command.
//
// A second submit while one is in flight is sent as well.
func (m *Model) submit() tea.Cmd {
	s := m.topics
	if !models.IsSubmittable(s.list) {
		m.logger.Debug("rejected topics", "course", m.courseID, "entries", s.list.Len())
		s.showValidationError = true
		return errorTimeline(s.session, m.errorDwell)
	}

	s.inFlight++
	session, list, courseID, ctx := s.session, s.list, m.courseID, m.ctx
	submitter := m.submitter
	return func() tea.Msg {
		return submittedMsg(session, submitter.Submit(ctx, list, courseID, nil))
	}
}

func (m *Model) handleDashboardKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.dashboard.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.dashboard, cmd = m.dashboard.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.quit), key.Matches(msg, m.keys.close):
		return m.quit()
	case key.Matches(msg, m.keys.newTopics):
		return m, m.Navigate(TopicsRoute)
	}

	var cmd tea.Cmd
	m.dashboard, cmd = m.dashboard.Update(msg)
	return m, cmd
}

func (m *Model) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case TopicsView:
		if m.topics != nil {
			m.topics.input, cmd = m.topics.input.Update(msg)
		}
	case DashboardView:
		m.dashboard, cmd = m.dashboard.Update(msg)
	}
	return m, cmd
}

func (m *Model) renderTopics() string {
	if m.topics == nil {
		return ""
	}
	helpView := m.help.ShortHelpView(m.keys.topicsHelp())
	return fmt.Sprintf("%s\n%s", m.topics.view(m.courseID), helpView)
}
