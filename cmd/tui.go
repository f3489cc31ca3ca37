package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/topix/internal/formatter"
	"github.com/desertthunder/topix/internal/models"
	"github.com/desertthunder/topix/internal/repositories"
	"github.com/desertthunder/topix/internal/shared"
	"github.com/desertthunder/topix/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive topic editor for one course.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	courseID := cmd.Int64("course")
	if courseID <= 0 {
		return fmt.Errorf("%w: --course must be a positive ID", shared.ErrMissingCourse)
	}

	initial := models.NewTopicList()
	if path := cmd.String("file"); path != "" {
		list, err := formatter.ImportTopicsFile(path)
		if err != nil {
			return err
		}
		initial = list
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger(r.config.Log.File)
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	if level, err := shared.ParseLogLevel(r.config.Log.Level); err == nil {
		shared.SetLogLevel(fileLogger, level)
	}
	r.SetLogger(shared.WithLogger(fileLogger, "course", courseID))

	var journal *repositories.JournalAdapter
	if !cmd.Bool("no-journal") {
		j, closeJournal, err := r.openJournal(ctx)
		defer closeJournal()
		if err != nil {
			r.logger.Warn("journal unavailable, submissions will not be recorded", "error", err)
		} else {
			journal = j
		}
	}

	opts := ui.Options{
		CourseID:     courseID,
		Submitter:    r.submitter(journal),
		Initial:      initial,
		SuccessDwell: r.config.Feedback.SuccessDwell(),
		ErrorDwell:   r.config.Feedback.ErrorDwell(),
		Logger:       r.logger,
	}
	if journal != nil {
		opts.History = journal
	}
	if cmd.Bool("dashboard") {
		opts.StartView = ui.DashboardView
	}

	p := tea.NewProgram(ui.NewModel(ctx, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
