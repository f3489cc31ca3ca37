package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/topix/internal/models"
)

var (
	_ list.Item = submissionItem{}
)

// submissionItem wraps [models.Submission] to implement [list.Item].
type submissionItem struct {
	submission *models.Submission
}

func (i submissionItem) FilterValue() string {
	return fmt.Sprintf("%d %s", i.submission.CourseID(), i.submission.Status())
}

func (i submissionItem) Title() string {
	mark := "✓"
	if i.submission.Status() == models.SubmissionFailed {
		mark = "✗"
	}
	return fmt.Sprintf("%s #%d course %d", mark, i.submission.Sequence(), i.submission.CourseID())
}

func (i submissionItem) Description() string {
	desc := fmt.Sprintf("%d topics • %s", i.submission.TopicCount(), i.submission.CreatedAt().Format("2006-01-02 15:04"))
	if i.submission.Error() != "" {
		desc = fmt.Sprintf("%s • %s", desc, i.submission.Error())
	}
	return desc
}

func submissionItems(submissions []*models.Submission) []list.Item {
	items := make([]list.Item, len(submissions))
	for i, s := range submissions {
		items[i] = submissionItem{submission: s}
	}
	return items
}
