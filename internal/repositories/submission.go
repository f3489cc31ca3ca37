package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/topix/internal/models"
	"github.com/desertthunder/topix/internal/shared"
)

// SubmissionRepository implements [models.Repository] for [models.Submission] journal entries.
type SubmissionRepository struct {
	db *sql.DB
}

var _ models.Repository[*models.Submission] = (*SubmissionRepository)(nil)

// NewSubmissionRepository creates a new [SubmissionRepository] with the given database connection
func NewSubmissionRepository(db *sql.DB) *SubmissionRepository {
	return &SubmissionRepository{db: db}
}

// Create inserts a submission and its payload rows with a generated ID and sequence.
func (r *SubmissionRepository) Create(s *models.Submission) error {
	if err := s.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	sequence, err := NextSequence(tx, "submissions")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	id := shared.GenerateID()

	_, err = tx.Exec(`
		INSERT INTO submissions (id, sequence, course_id, topic_count, status, error, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, id, sequence, s.CourseID(), s.TopicCount(), string(s.Status()), s.Error(), s.CreatedAt())
	if err != nil {
		return fmt.Errorf("failed to insert submission: %w", err)
	}

	for _, t := range s.Topics() {
		_, err := tx.Exec(`
			INSERT INTO submission_topics (submission_id, topic_id, topic_name, description)
			VALUES (?, ?, ?, ?)
		`, id, t.TopicID, t.TopicName, t.Description)
		if err != nil {
			return fmt.Errorf("failed to insert submission topic %d: %w", t.TopicID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit submission: %w", err)
	}

	s.SetID(id)
	s.SetSequence(sequence)
	return nil
}

// Get retrieves a submission and its payload rows by ID
func (r *SubmissionRepository) Get(id string) (*models.Submission, error) {
	row := r.db.QueryRow(`
		SELECT id, sequence, course_id, status, error, created_at
		FROM submissions
		WHERE id = ?
	`, id)

	s, err := scanSubmission(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: submission %s", shared.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query submission: %w", err)
	}

	topics, err := r.topics(id, s.CourseID())
	if err != nil {
		return nil, err
	}
	s.SetTopics(topics)

	return s, nil
}

// Delete removes a submission; its payload rows cascade.
func (r *SubmissionRepository) Delete(id string) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM submission_topics WHERE submission_id = ?", id); err != nil {
		return fmt.Errorf("failed to delete submission topics: %w", err)
	}

	result, err := tx.Exec("DELETE FROM submissions WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete submission: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: submission %s", shared.ErrNotFound, id)
	}

	return tx.Commit()
}

// List retrieves submissions newest first.
//
// Supported criteria: "course_id" (int64), "status" ([models.SubmissionStatus]), "limit" (int).
// Payload rows are not loaded, only their count; use [SubmissionRepository.Get] for those.
func (r *SubmissionRepository) List(criteria map[string]any) ([]*models.Submission, error) {
	query := `
		SELECT id, sequence, course_id, status, error, created_at, topic_count
		FROM submissions
		WHERE 1 = 1
	`
	args := []any{}

	if courseID, ok := criteria["course_id"].(int64); ok && courseID > 0 {
		query += " AND course_id = ?"
		args = append(args, courseID)
	}

	if status, ok := criteria["status"].(models.SubmissionStatus); ok && status != "" {
		query += " AND status = ?"
		args = append(args, string(status))
	}

	query += " ORDER BY sequence DESC"

	if limit, ok := criteria["limit"].(int); ok && limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query submissions: %w", err)
	}
	defer rows.Close()

	var submissions []*models.Submission
	for rows.Next() {
		var (
			id, status, errText string
			sequence, count     int
			courseID            int64
			createdAt           time.Time
		)
		if err := rows.Scan(&id, &sequence, &courseID, &status, &errText, &createdAt, &count); err != nil {
			return nil, fmt.Errorf("failed to scan submission: %w", err)
		}

		s := rebuild(id, sequence, courseID, status, errText, createdAt)
		s.SetTopicCount(count)
		submissions = append(submissions, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return submissions, nil
}

func (r *SubmissionRepository) topics(id string, courseID int64) ([]models.TopicRecord, error) {
	rows, err := r.db.Query(`
		SELECT topic_id, topic_name, description
		FROM submission_topics
		WHERE submission_id = ?
		ORDER BY topic_id ASC
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query submission topics: %w", err)
	}
	defer rows.Close()

	var records []models.TopicRecord
	for rows.Next() {
		rec := models.TopicRecord{Course: models.CourseRef{CourseID: courseID}}
		if err := rows.Scan(&rec.TopicID, &rec.TopicName, &rec.Description); err != nil {
			return nil, fmt.Errorf("failed to scan submission topic: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return records, nil
}

func scanSubmission(row *sql.Row) (*models.Submission, error) {
	var (
		id, status, errText string
		sequence            int
		courseID            int64
		createdAt           time.Time
	)
	if err := row.Scan(&id, &sequence, &courseID, &status, &errText, &createdAt); err != nil {
		return nil, err
	}
	return rebuild(id, sequence, courseID, status, errText, createdAt), nil
}

func rebuild(id string, sequence int, courseID int64, status, errText string, createdAt time.Time) *models.Submission {
	var cause error
	if errText != "" {
		cause = errors.New(errText)
	}
	s := models.NewSubmission(courseID, nil, models.SubmissionStatus(status), cause)
	s.SetID(id)
	s.SetSequence(sequence)
	s.SetCreatedAt(createdAt)
	return s
}
