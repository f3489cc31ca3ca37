package repositories

import (
	"github.com/desertthunder/topix/internal/models"
)

// JournalAdapter implements tasks.SubmissionJournal using [SubmissionRepository].
type JournalAdapter struct {
	repo *SubmissionRepository
}

// NewJournalAdapter creates a new JournalAdapter with the given repository
func NewJournalAdapter(repo *SubmissionRepository) *JournalAdapter {
	return &JournalAdapter{repo: repo}
}

// Record journals one batch attempt; cause is nil for a successful send.
// Returns the new submission ID.
func (a *JournalAdapter) Record(courseID int64, records []models.TopicRecord, cause error) (string, error) {
	status := models.SubmissionSucceeded
	if cause != nil {
		status = models.SubmissionFailed
	}

	s := models.NewSubmission(courseID, records, status, cause)
	if err := a.repo.Create(s); err != nil {
		return "", err
	}
	return s.ID(), nil
}

// Recent returns the latest submissions, newest first.
func (a *JournalAdapter) Recent(limit int) ([]*models.Submission, error) {
	return a.repo.List(map[string]any{"limit": limit})
}
