// package tasks submits topic batches to the LMS backend.
//
// The core abstraction is Submitter, which builds the wire payload, dispatches it once and journals the attempt.
// Progress is reported on an optional channel without blocking the caller.
package tasks

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/topix/internal/models"
	"github.com/desertthunder/topix/internal/services"
	"github.com/desertthunder/topix/internal/shared"
)

// SubmitStatus is the result classification of one [Submitter.Submit] call.
type SubmitStatus int

const (
	// Rejected means the list failed the validation gate and nothing was sent.
	Rejected SubmitStatus = iota
	// Succeeded means the backend accepted the batch.
	Succeeded
	// Failed means the request could not be sent or the backend refused it.
	Failed
)

func (s SubmitStatus) String() string {
	switch s {
	case Rejected:
		return "rejected"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	default:
		return ""
	}
}

// SubmitOutcome carries everything the caller needs after a submit attempt.
type SubmitOutcome struct {
	Status       SubmitStatus
	Next         models.TopicList     // List the screen should show afterwards
	Payload      []models.TopicRecord // Records that were sent (nil when rejected)
	Response     *services.APIResponse
	SubmissionID string // Journal row ID, empty when not journaled
	Err          error
}

// SubmissionJournal records batch attempts for diagnostics.
//
// cause is nil when the backend accepted the batch.
type SubmissionJournal interface {
	Record(courseID int64, records []models.TopicRecord, cause error) (string, error)
}

// Submitter sends topic batches through a [services.TopicCreator].
type Submitter struct {
	creator services.TopicCreator
	journal SubmissionJournal
	logger  *log.Logger
}

// NewSubmitter creates a Submitter. journal may be nil; a nil logger falls back to log.Default().
func NewSubmitter(creator services.TopicCreator, journal SubmissionJournal, logger *log.Logger) *Submitter {
	if logger == nil {
		logger = log.Default()
	}
	return &Submitter{creator: creator, journal: journal, logger: logger}
}

// sendProgress sends a progress update through the channel without blocking.
func (s *Submitter) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// Submit validates list, sends it as one batch for courseID and reports the outcome.
//
// On success Next is a fresh single-entry list. On any failure Next is list itself, so
// the user's edits survive. Exactly one request is made per call and it is never retried.
func (s *Submitter) Submit(ctx context.Context, list models.TopicList, courseID int64, progress chan<- ProgressUpdate) SubmitOutcome {
	if !models.IsSubmittable(list) {
		return SubmitOutcome{Status: Rejected, Next: list, Err: shared.ErrValidation}
	}
	if s.creator == nil {
		return s.fail(courseID, list, nil, nil, fmt.Errorf("%w: topic creator not initialized", shared.ErrServiceUnavailable))
	}

	s.sendProgress(progress, buildPayloadUpdate(list.Len()))
	records := models.BuildPayload(list, courseID)

	s.sendProgress(progress, dispatchUpdate(len(records), courseID))
	resp, err := s.creator.CreateTopics(ctx, records)
	if err != nil {
		return s.fail(courseID, list, records, resp, err)
	}

	if resp != nil {
		s.logger.Debug("topics created", "course", courseID, "status", resp.StatusCode, "body", string(resp.Body))
	}
	s.logger.Info("submitted topics", "course", courseID, "topics", len(records))

	out := SubmitOutcome{
		Status:   Succeeded,
		Next:     models.NewTopicList(),
		Payload:  records,
		Response: resp,
	}
	out.SubmissionID = s.record(courseID, records, nil)
	s.sendProgress(progress, completeUpdate(out))
	return out
}

func (s *Submitter) fail(courseID int64, list models.TopicList, records []models.TopicRecord, resp *services.APIResponse, err error) SubmitOutcome {
	s.logger.Error("failed to submit topics", "course", courseID, "topics", len(records), "error", err)

	out := SubmitOutcome{
		Status:   Failed,
		Next:     list,
		Payload:  records,
		Response: resp,
		Err:      fmt.Errorf("%w: %w", shared.ErrSubmissionFailed, err),
	}
	out.SubmissionID = s.record(courseID, records, err)
	return out
}

// record journals the attempt. Journal errors are logged and never change the outcome.
func (s *Submitter) record(courseID int64, records []models.TopicRecord, cause error) string {
	if s.journal == nil {
		return ""
	}
	id, err := s.journal.Record(courseID, records, cause)
	if err != nil {
		s.logger.Warn("failed to journal submission", "course", courseID, "error", err)
		return ""
	}
	return id
}
