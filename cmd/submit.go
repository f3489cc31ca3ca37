package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/topix/internal/formatter"
	"github.com/desertthunder/topix/internal/models"
	"github.com/desertthunder/topix/internal/repositories"
	"github.com/desertthunder/topix/internal/shared"
	"github.com/desertthunder/topix/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Submit sends topics from --file and --topic flags as one batch.
func (r *Runner) Submit(ctx context.Context, cmd *cli.Command) error {
	courseID := cmd.Int64("course")
	if courseID <= 0 {
		return fmt.Errorf("%w: --course must be a positive ID", shared.ErrMissingCourse)
	}

	list, err := collectTopics(cmd.String("file"), cmd.StringSlice("topic"))
	if err != nil {
		return err
	}
	if list.Len() == 0 {
		return fmt.Errorf("%w: pass --topic or --file", shared.ErrMissingArgument)
	}

	if cmd.Bool("dry-run") {
		return r.printPayload(list, courseID, cmd.String("format"))
	}

	var journal *repositories.JournalAdapter
	if !cmd.Bool("no-journal") {
		j, closeJournal, err := r.openJournal(ctx)
		defer closeJournal()
		if err != nil {
			r.logger.Warn("journal unavailable, submission will not be recorded", "error", err)
		} else {
			journal = j
		}
	}

	r.logger.Info("submitting topics", "course", courseID, "topics", list.Len())

	progressCh := make(chan tasks.ProgressUpdate, 10)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progressCh {
			r.writePlain("[%d/%d] %s\n", update.Step, update.Total, update.Message)
		}
	}()

	out := r.submitter(journal).Submit(ctx, list, courseID, progressCh)
	close(progressCh)
	<-done

	switch out.Status {
	case tasks.Rejected:
		return fmt.Errorf("%w: first topic needs a name", out.Err)
	case tasks.Failed:
		return out.Err
	}

	r.writePlainln("✓ Topics Added Successfully")
	r.writePlain("Course: %d\n", courseID)
	r.writePlain("Topics: %d\n", len(out.Payload))
	if out.SubmissionID != "" {
		r.writePlain("Submission: %s\n", out.SubmissionID)
	}
	return nil
}

// printPayload writes the request body without sending it. The validation gate still applies.
func (r *Runner) printPayload(list models.TopicList, courseID int64, format string) error {
	if !models.IsSubmittable(list) {
		return fmt.Errorf("%w: first topic needs a name", shared.ErrValidation)
	}

	records := models.BuildPayload(list, courseID)
	switch format {
	case "markdown", "md":
		return r.writePlain("%s", formatter.ExportPayloadMarkdown(records, courseID))
	case "json", "":
		data, err := formatter.ExportPayloadJSON(records)
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		return r.writePlain("%s\n", data)
	default:
		return fmt.Errorf("%w: unknown format %q", shared.ErrInvalidArgument, format)
	}
}

// collectTopics builds a list from an optional sheet followed by name:description flag values.
func collectTopics(path string, flags []string) (models.TopicList, error) {
	list := models.TopicListOf()
	if path != "" {
		imported, err := formatter.ImportTopicsFile(path)
		if err != nil {
			return list, err
		}
		list = imported
	}

	for _, raw := range flags {
		name, desc, _ := strings.Cut(raw, ":")
		list = list.AddEntry()
		last := list.Len() - 1
		list = list.UpdateField(last, models.FieldTopicName, strings.TrimSpace(name))
		list = list.UpdateField(last, models.FieldDescription, strings.TrimSpace(desc))
	}
	return list, nil
}
