package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/topix/internal/models"
	"github.com/desertthunder/topix/internal/tasks"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
//
// session ties a message to the topics screen that scheduled it. Messages whose
// session is no longer mounted are dropped.
type Msg struct {
	kind    MsgKind
	session string
	data    any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgSubmitted MsgKind = iota
	MsgHideSuccess
	MsgHideValidationError
	MsgNavigate
	MsgHistoryLoaded
)

// submittedMsg is the constructor for [MsgSubmitted]
func submittedMsg(session string, out tasks.SubmitOutcome) Msg {
	return Msg{kind: MsgSubmitted, session: session, data: out}
}

// hideSuccessMsg is the constructor for [MsgHideSuccess]
func hideSuccessMsg(session string) Msg {
	return Msg{kind: MsgHideSuccess, session: session}
}

// hideValidationErrorMsg is the constructor for [MsgHideValidationError]
func hideValidationErrorMsg(session string) Msg {
	return Msg{kind: MsgHideValidationError, session: session}
}

// navigateMsg is the constructor for [MsgNavigate]
func navigateMsg(session, route string) Msg {
	return Msg{kind: MsgNavigate, session: session, data: route}
}

// historyLoadedMsg is the constructor for [MsgHistoryLoaded]
func historyLoadedMsg(submissions []*models.Submission, err error) Msg {
	return Msg{
		kind: MsgHistoryLoaded,
		data: struct {
			submissions []*models.Submission
			err         error
		}{submissions, err},
	}
}
