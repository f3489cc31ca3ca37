package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/topix/internal/formatter"
	"github.com/desertthunder/topix/internal/services"
	"github.com/desertthunder/topix/internal/shared"
	"github.com/urfave/cli/v3"
)

// Remote lists the topics the backend holds for a course.
func (r *Runner) Remote(ctx context.Context, cmd *cli.Command) error {
	courseID := cmd.Int64("course")
	if courseID <= 0 {
		return fmt.Errorf("%w: --course must be a positive ID", shared.ErrMissingCourse)
	}

	svc := services.NewTopicService(r.config.API.BaseURL, r.httpClient)
	r.logger.Debug("fetching topics", "course", courseID, "url", svc.BaseURL())

	records, err := svc.ListTopics(ctx, courseID)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(records, true)
	}
	if len(records) == 0 {
		return r.writePlain("No topics stored for course %d.\n", courseID)
	}
	return r.writePlain("%s", formatter.ExportPayloadMarkdown(records, courseID))
}
