// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// globalFlags are shared by every command and resolved in [Runner.Before].
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to configuration file",
			Value:   "config.toml",
			Sources: cli.EnvVars("SINGME_CONFIG"),
		},
		&cli.StringFlag{
			Name:    "url",
			Usage:   "Base URL of a running singme server (overrides client.base_url)",
			Sources: cli.EnvVars("SINGME_URL"),
		},
		&cli.StringFlag{
			Name:    "log-level",
			Usage:   "Log level: debug, info, warn, error",
			Sources: cli.EnvVars("SINGME_LOG_LEVEL"),
		},
	}
}

func outputFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:    "json",
			Usage:   "Output raw JSON",
			Sources: cli.EnvVars("SINGME_JSON"),
		},
		&cli.BoolFlag{
			Name:  "pretty",
			Usage: "Pretty-print JSON output",
		},
	}
}

// serveCommand runs the HTTP API.
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the recommendation HTTP server",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "mode",
				Usage:   "Server mode: production, development, test",
				Sources: cli.EnvVars("SINGME_MODE"),
			},
			&cli.StringFlag{
				Name:    "addr",
				Usage:   "Listen address as host:port",
				Sources: cli.EnvVars("SINGME_ADDR"),
			},
		},
		Action: r.Serve,
	}
}

// setupCommand handles setup operations for the database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Initialize configuration and storage",
		Commands: []*cli.Command{
			{
				Name:   "database",
				Usage:  "Create config.toml if missing and run database migrations",
				Action: r.SetupDatabase,
			},
		},
	}
}

// recsCommand handles recommendation operations against a running server.
func recsCommand(r *Runner) *cli.Command {
	idArg := []cli.Argument{&cli.StringArg{Name: "id"}}

	return &cli.Command{
		Name:    "recs",
		Aliases: []string{"rec"},
		Usage:   "Recommendation operations",
		Commands: []*cli.Command{
			{
				Name:  "add",
				Usage: "Add a recommendation",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "name"},
					&cli.StringArg{Name: "link"},
				},
				Flags:  outputFlags(),
				Action: r.RecsAdd,
			},
			{
				Name:   "list",
				Usage:  "List the most recent recommendations",
				Flags:  outputFlags(),
				Action: r.RecsList,
			},
			{
				Name:      "top",
				Usage:     "List the highest scored recommendations",
				Arguments: []cli.Argument{&cli.StringArg{Name: "amount", Value: "10"}},
				Flags:     outputFlags(),
				Action:    r.RecsTop,
			},
			{
				Name:   "random",
				Usage:  "Pick a weighted random recommendation",
				Flags:  outputFlags(),
				Action: r.RecsRandom,
			},
			{
				Name:      "get",
				Usage:     "Show one recommendation",
				Arguments: idArg,
				Flags:     outputFlags(),
				Action:    r.RecsGet,
			},
			{
				Name:      "upvote",
				Aliases:   []string{"up"},
				Usage:     "Upvote a recommendation",
				Arguments: idArg,
				Flags:     outputFlags(),
				Action:    r.RecsUpvote,
			},
			{
				Name:      "downvote",
				Aliases:   []string{"down"},
				Usage:     "Downvote a recommendation (removed once its score drops below -5)",
				Arguments: idArg,
				Flags:     outputFlags(),
				Action:    r.RecsDownvote,
			},
			{
				Name:      "open",
				Usage:     "Open a recommendation's link in the browser",
				Arguments: idArg,
				Action:    r.RecsOpen,
			},
		},
	}
}

// scenarioCommand drives the admin routes of a non-production server.
func scenarioCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "scenario",
		Usage: "Seed or reset a development server",
		Commands: []*cli.Command{
			{
				Name:      "create",
				Usage:     "Generate test recommendations",
				Arguments: []cli.Argument{&cli.StringArg{Name: "amount", Value: "1"}},
				Flags: append(outputFlags(),
					&cli.IntFlag{
						Name:  "score",
						Usage: "Score for a single recommendation, or the high-tier percentage for several",
					},
				),
				Action: r.ScenarioCreate,
			},
			{
				Name:   "reset",
				Usage:  "Delete every recommendation",
				Action: r.ScenarioReset,
			},
		},
	}
}

// exportCommand writes recommendations to a file.
func exportCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export recommendations as json, csv, markdown or txt",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format: json, csv, markdown, txt",
				Value:   "json",
			},
			&cli.IntFlag{
				Name:  "top",
				Usage: "Export the top N by score instead of the most recent",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output file path (default: recommendations.<ext>)",
			},
			&cli.StringFlag{
				Name:  "title",
				Usage: "Heading for markdown exports",
			},
		},
		Action: r.Export,
	}
}

// importCommand bulk-creates recommendations from a file.
func importCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "import",
		Usage:     "Import recommendations from a CSV or JSON file",
		Arguments: []cli.Argument{&cli.StringArg{Name: "path"}},
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "workers",
				Usage: "Concurrent requests",
				Value: 4,
			},
			&cli.FloatFlag{
				Name:  "rate",
				Usage: "Requests per second",
				Value: 10,
			},
		},
		Action: r.Import,
	}
}

// tuiCommand launches the terminal front-end.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "tui",
		Usage: "Browse and vote on recommendations interactively",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "top",
				Usage: "Number of recommendations in the top view",
				Value: 25,
			},
		},
		Action: r.TUI,
	}
}
