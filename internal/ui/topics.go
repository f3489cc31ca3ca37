package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/topix/internal/models"
	"github.com/desertthunder/topix/internal/shared"
)

// topicsScreen is one mounted instance of the add-topics form.
type topicsScreen struct {
	session string
	list    models.TopicList
	row     int
	field   models.Field
	input   textinput.Model

	showValidationError bool
	showSuccess         bool
	inFlight            int
}

func newTopicsScreen(initial models.TopicList) *topicsScreen {
	if initial.Len() == 0 {
		initial = models.NewTopicList()
	}

	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = "…"
	ti.Focus()

	s := &topicsScreen{
		session: shared.GenerateID(),
		list:    initial,
		field:   models.FieldTopicName,
		input:   ti,
	}
	s.syncInput()
	return s
}

func (s *topicsScreen) cells() int { return s.list.Len() * len(models.Fields) }

func (s *topicsScreen) cursor() int {
	for i, f := range models.Fields {
		if f == s.field {
			return s.row*len(models.Fields) + i
		}
	}
	return s.row * len(models.Fields)
}

func (s *topicsScreen) focus(idx int) {
	s.row = idx / len(models.Fields)
	s.field = models.Fields[idx%len(models.Fields)]
	s.syncInput()
}

func (s *topicsScreen) focusNext() {
	if n := s.cells(); n > 0 {
		s.focus((s.cursor() + 1) % n)
	}
}

func (s *topicsScreen) focusPrev() {
	if n := s.cells(); n > 0 {
		s.focus((s.cursor() - 1 + n) % n)
	}
}

// syncInput loads the focused cell into the text input.
func (s *topicsScreen) syncInput() {
	entry, _ := s.list.At(s.row)
	s.input.SetValue(entry.Get(s.field))
	s.input.CursorEnd()
}

// edit forwards a key to the text input and writes any change back to the list.
func (s *topicsScreen) edit(msg tea.Msg) tea.Cmd {
	before := s.input.Value()

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)

	if v := s.input.Value(); v != before {
		s.list = s.list.UpdateField(s.row, s.field, v)
	}
	return cmd
}

func (s *topicsScreen) addEntry() {
	s.list = s.list.AddEntry()
	s.focus((s.list.Len() - 1) * len(models.Fields))
}

func (s *topicsScreen) removeEntry() {
	s.list = s.list.RemoveEntry(s.row)
	if s.row >= s.list.Len() {
		s.row = max(s.list.Len()-1, 0)
	}
	s.field = models.FieldTopicName
	s.syncInput()
}

// reset replaces the list and moves focus to the first cell.
func (s *topicsScreen) reset(list models.TopicList) {
	s.list = list
	s.row = 0
	s.field = models.FieldTopicName
	s.syncInput()
}

func (s *topicsScreen) view(courseID int64) string {
	var b strings.Builder

	b.WriteString(styles.title.Render(fmt.Sprintf("Add Topics · course %d", courseID)))
	b.WriteString("\n")

	if s.showSuccess {
		b.WriteString(styles.ok.Render("Topics Added Successfully"))
		b.WriteString("\n")
	}
	if s.showValidationError {
		b.WriteString(styles.err.Render("Please fill all the Fields."))
		b.WriteString("\n")
	}

	if s.list.Len() == 0 {
		b.WriteString(styles.help.Render("No topics. Press ctrl+n to add one."))
		b.WriteString("\n")
	}

	for i, entry := range s.list.Entries() {
		b.WriteString(styles.warn.Render(fmt.Sprintf("Topic %d", i+1)))
		b.WriteString("\n")
		for _, f := range models.Fields {
			if i == s.row && f == s.field {
				b.WriteString(styles.focused.Render(f.Label()))
				b.WriteString(s.input.View())
			} else {
				b.WriteString(styles.label.Render(f.Label()))
				b.WriteString(entry.Get(f))
			}
			b.WriteString("\n")
		}
	}

	if s.inFlight > 0 {
		b.WriteString("\n")
		b.WriteString(styles.warn.Render("Submitting..."))
		b.WriteString("\n")
	}
	return b.String()
}
