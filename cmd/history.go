package main

import (
	"context"
	"fmt"
	"os"

	"github.com/desertthunder/topix/internal/formatter"
	"github.com/desertthunder/topix/internal/models"
	"github.com/desertthunder/topix/internal/repositories"
	"github.com/desertthunder/topix/internal/shared"
	"github.com/urfave/cli/v3"
)

// History lists journaled submissions, newest first.
func (r *Runner) History(ctx context.Context, cmd *cli.Command) error {
	criteria := map[string]any{"limit": cmd.Int("limit")}
	if courseID := cmd.Int64("course"); courseID > 0 {
		criteria["course_id"] = courseID
	}

	switch status := models.SubmissionStatus(cmd.String("status")); status {
	case "":
	case models.SubmissionSucceeded, models.SubmissionFailed:
		criteria["status"] = status
	default:
		return fmt.Errorf("%w: status must be succeeded or failed, got %q", shared.ErrInvalidArgument, status)
	}

	db, err := shared.OpenJournal(ctx, r.config.Database)
	if err != nil {
		return fmt.Errorf("failed to open journal: %w", err)
	}
	defer closeDB(db, r.logger)

	repo := repositories.NewSubmissionRepository(db)
	submissions, err := repo.List(criteria)
	if err != nil {
		return err
	}

	if path := cmd.String("xlsx"); path != "" {
		return r.exportWorkbook(repo, submissions, path)
	}

	if !cmd.Bool("json") {
		if len(submissions) == 0 {
			return r.writePlain("No submissions recorded.\n")
		}
		data, err := formatter.ExportSubmissionsText(submissions)
		if err != nil {
			return err
		}
		return r.writePlain("%s", data)
	}

	if cmd.Bool("topics") {
		for i, s := range submissions {
			full, err := repo.Get(s.ID())
			if err != nil {
				return err
			}
			submissions[i] = full
		}
	}

	data, err := formatter.ExportSubmissionsJSON(submissions)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return r.writePlain("%s\n", data)
}

// exportWorkbook writes the topics of the newest listed submission to an XLSX file that `tui --file` can load again.
func (r *Runner) exportWorkbook(repo *repositories.SubmissionRepository, submissions []*models.Submission, path string) error {
	if len(submissions) == 0 {
		return fmt.Errorf("%w: no submission to export", shared.ErrNotFound)
	}

	full, err := repo.Get(submissions[0].ID())
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	if err := formatter.ExportTopicsXLSX(models.EntriesFromPayload(full.Topics()), f); err != nil {
		return err
	}

	r.logger.Info("Exported submission", "id", full.ID(), "topics", full.TopicCount(), "path", path)
	return r.writePlainln("Wrote %d topics to %s", full.TopicCount(), path)
}
