// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func courseFlag() *cli.Int64Flag {
	return &cli.Int64Flag{
		Name:    "course",
		Aliases: []string{"c"},
		Usage:   "Course ID the topics belong to",
	}
}

// tuiCommand launches the interactive topic editor
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "tui",
		Usage: "Edit and submit topics interactively",
		Flags: []cli.Flag{
			courseFlag(),
			&cli.StringFlag{
				Name:    "file",
				Aliases: []string{"f"},
				Usage:   "Seed the form from a CSV or XLSX sheet of name, description rows",
			},
			&cli.BoolFlag{
				Name:  "dashboard",
				Usage: "Start on the admin dashboard",
			},
			&cli.BoolFlag{
				Name:  "no-journal",
				Usage: "Do not record submissions",
			},
		},
		Action: r.TUI,
	}
}

// submitCommand sends a batch without the interactive editor
func submitCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "submit",
		Usage: "Submit topics for a course in one batch",
		Flags: []cli.Flag{
			courseFlag(),
			&cli.StringSliceFlag{
				Name:    "topic",
				Aliases: []string{"t"},
				Usage:   "Topic as name:description (repeatable, appended after --file rows)",
			},
			&cli.StringFlag{
				Name:    "file",
				Aliases: []string{"f"},
				Usage:   "CSV or XLSX sheet of name, description rows",
			},
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "Print the payload instead of sending it",
			},
			&cli.StringFlag{
				Name:  "format",
				Usage: "Dry-run output format: json, markdown",
				Value: "json",
			},
			&cli.BoolFlag{
				Name:  "no-journal",
				Usage: "Do not record the submission",
			},
		},
		Action: r.Submit,
	}
}

// historyCommand lists journaled submissions
func historyCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "List recent submissions",
		Flags: []cli.Flag{
			courseFlag(),
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Maximum number of submissions to show",
				Value: 20,
			},
			&cli.StringFlag{
				Name:  "status",
				Usage: "Only show succeeded or failed submissions",
			},
			&cli.BoolFlag{
				Name:  "topics",
				Usage: "Include submitted topics (JSON output only)",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.StringFlag{
				Name:  "xlsx",
				Usage: "Write the newest matching submission's topics to an XLSX file",
			},
		},
		Action: r.History,
	}
}

// remoteCommand reads topics back from the backend
func remoteCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "remote",
		Usage: "List the topics the backend holds for a course",
		Flags: []cli.Flag{
			courseFlag(),
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
		},
		Action: r.Remote,
	}
}

// setupCommand prepares the submission journal
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Initialize database and run migrations",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "Path to configuration file",
				Value: "config.toml",
			},
			&cli.BoolFlag{
				Name:  "rollback",
				Usage: "Roll back the most recent migration instead",
			},
		},
		Action: r.SetupDatabase,
	}
}

// serveCommand runs the development backend
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run a local stand-in for the topics endpoint",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "addr",
				Usage: "Listen address (defaults to [server] host:port)",
			},
			&cli.FloatFlag{
				Name:  "rate-limit",
				Usage: "Requests per second, 0 disables (defaults to [server] rate_limit)",
				Value: -1,
			},
		},
		Action: r.Serve,
	}
}

// configCommand manages the configuration file
func configCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Configuration file operations",
		Commands: []*cli.Command{
			{
				Name:  "init",
				Usage: "Write the default config.toml",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "path",
						Usage: "Where to write the file",
						Value: "config.toml",
					},
				},
				Action: r.ConfigInit,
			},
			{
				Name:   "show",
				Usage:  "Print the effective configuration",
				Action: r.ConfigShow,
			},
		},
	}
}
