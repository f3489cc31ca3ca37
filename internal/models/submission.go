package models

import (
	"fmt"
	"time"
)

// SubmissionStatus is the outcome recorded for a batch attempt.
type SubmissionStatus string

const (
	SubmissionSucceeded SubmissionStatus = "succeeded"
	SubmissionFailed    SubmissionStatus = "failed"
)

// Submission is a journal entry for one batch sent to the create topics endpoint.
type Submission struct {
	id         string
	sequence   int
	courseID   int64
	status     SubmissionStatus
	errText    string
	topics     []TopicRecord
	topicCount int
	createdAt  time.Time
}

// NewSubmission creates an unsaved journal entry for records sent for courseID.
func NewSubmission(courseID int64, records []TopicRecord, status SubmissionStatus, cause error) *Submission {
	s := &Submission{
		courseID:   courseID,
		status:     status,
		topics:     append([]TopicRecord(nil), records...),
		topicCount: len(records),
		createdAt:  time.Now().UTC(),
	}
	if cause != nil {
		s.errText = cause.Error()
	}
	return s
}

func (s *Submission) ID() string               { return s.id }
func (s *Submission) Sequence() int            { return s.sequence }
func (s *Submission) CourseID() int64          { return s.courseID }
func (s *Submission) Status() SubmissionStatus { return s.status }
func (s *Submission) Error() string            { return s.errText }
func (s *Submission) Topics() []TopicRecord    { return s.topics }
func (s *Submission) TopicCount() int          { return s.topicCount }
func (s *Submission) CreatedAt() time.Time     { return s.createdAt }

func (s *Submission) SetID(id string)          { s.id = id }
func (s *Submission) SetSequence(seq int)      { s.sequence = seq }
func (s *Submission) SetCreatedAt(t time.Time) { s.createdAt = t }
func (s *Submission) SetTopicCount(n int)      { s.topicCount = n }

// SetTopics replaces the payload rows and the topic count with them.
func (s *Submission) SetTopics(records []TopicRecord) {
	s.topics = records
	s.topicCount = len(records)
}

// Validate checks the entry can be journaled.
func (s *Submission) Validate() error {
	if s.courseID <= 0 {
		return fmt.Errorf("course id must be positive, got %d", s.courseID)
	}
	switch s.status {
	case SubmissionSucceeded, SubmissionFailed:
	default:
		return fmt.Errorf("unknown submission status %q", s.status)
	}
	return nil
}

var _ Model = (*Submission)(nil)
