package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/singme/internal/client"
	"github.com/desertthunder/singme/internal/models"
	"github.com/desertthunder/singme/internal/shared"
	"github.com/desertthunder/singme/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	configPath string
	httpClient *http.Client
	api        *client.Client
	engine     *tasks.Engine
	logger     *log.Logger
	output     io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
//
// A non-nil Config is used as-is and the --config flag is ignored.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	HTTPClient *http.Client
	Logger     *log.Logger
	Output     io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	r := &Runner{
		config:     opts.Config,
		configPath: opts.ConfigPath,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
	}
	if r.config != nil {
		r.connect(r.config.Client.BaseURL)
	}
	return r
}

// Before loads configuration and applies global flags ahead of every command.
func (r *Runner) Before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if r.config == nil {
		path := cmd.String("config")
		config, err := shared.LoadOrDefault(path)
		if err != nil {
			return ctx, err
		}
		r.config, r.configPath = config, path
	}

	level := r.config.Log.Level
	if cmd.IsSet("log-level") {
		level = cmd.String("log-level")
	}
	shared.SetLogLevel(r.logger, shared.ParseLogLevel(level))

	baseURL := r.config.Client.BaseURL
	if cmd.IsSet("url") {
		baseURL = cmd.String("url")
	}
	r.connect(baseURL)

	return ctx, nil
}

// connect (re)creates the API client and the task engine that uses it.
func (r *Runner) connect(baseURL string) {
	httpClient := r.httpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: r.config.Client.Timeout()}
	}
	r.api = client.New(baseURL, httpClient)
	r.engine = tasks.NewEngine(r.api, r.logger)
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		serveCommand, setupCommand, recsCommand, scenarioCommand, exportCommand, importCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	output, err := shared.MarshalJSON(data, pretty)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}

// writeRecommendation prints rec as JSON when --json is set, otherwise as a single line.
func (r *Runner) writeRecommendation(cmd *cli.Command, rec *models.Recommendation) error {
	if cmd.Bool("json") {
		return r.writeJSON(rec, cmd.Bool("pretty"))
	}
	return r.writePlain("%d. %s [%+d] %s\n", rec.ID, rec.Name, rec.Score, rec.Link)
}

// writeRecommendations prints recs as JSON when --json is set, otherwise as a numbered list.
func (r *Runner) writeRecommendations(cmd *cli.Command, title string, recs []*models.Recommendation) error {
	if cmd.Bool("json") {
		if recs == nil {
			recs = []*models.Recommendation{}
		}
		return r.writeJSON(recs, cmd.Bool("pretty"))
	}

	r.writePlainHeader(title)
	if len(recs) == 0 {
		return r.writePlain("No recommendations\n")
	}
	for _, rec := range recs {
		if err := r.writePlain("%d. %s [%+d] %s\n", rec.ID, rec.Name, rec.Score, rec.Link); err != nil {
			return err
		}
	}
	return nil
}
