package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/singme/internal/formatter"
	"github.com/desertthunder/singme/internal/shared"
	"github.com/desertthunder/singme/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Export writes recent or top recommendations to a file.
func (r *Runner) Export(ctx context.Context, cmd *cli.Command) error {
	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	progressCh, done := r.printProgress(10)
	result, err := r.engine.Export(ctx, progressCh, tasks.ExportOpts{
		Format: format,
		Top:    cmd.Int("top"),
		Output: cmd.String("output"),
		Title:  cmd.String("title"),
	})
	close(progressCh)
	<-done

	if err != nil {
		return err
	}
	return r.writePlain("✓ Exported %d recommendations to %s\n", result.Count, result.Path)
}

// Import bulk-creates recommendations from a CSV or JSON file.
func (r *Runner) Import(ctx context.Context, cmd *cli.Command) error {
	path := cmd.StringArg("path")
	if path == "" {
		return fmt.Errorf("%w: usage: import <path>", shared.ErrMissingArgument)
	}

	items, err := formatter.ParseFile(path)
	if err != nil {
		return err
	}
	r.logger.Info("importing recommendations", "path", path, "items", len(items))

	progressCh, done := r.printProgress(50)
	result, err := r.engine.BulkImport(ctx, progressCh, items, tasks.BulkImportOpts{
		NumWorkers: cmd.Int("workers"),
		RateLimit:  cmd.Float("rate"),
	})
	close(progressCh)
	<-done

	if result != nil {
		r.writePlain("\n")
		r.writePlainHeader("Import Complete")
		r.writePlain("Created: %d\nSkipped (duplicate name): %d\nInvalid: %d\nFailed: %d\n",
			result.Created, result.Skipped, result.Invalid, result.Failed)

		for _, res := range result.Results {
			if res.Status == tasks.StatusInvalid || res.Status == tasks.StatusFailed {
				r.writePlain("  - #%d %q: %v\n", res.Index+1, res.Name, res.Error)
			}
		}
	}
	return err
}

// printProgress drains a progress channel onto the output until it is closed.
func (r *Runner) printProgress(buffer int) (chan tasks.ProgressUpdate, <-chan struct{}) {
	progressCh := make(chan tasks.ProgressUpdate, buffer)
	done := make(chan struct{})

	go func() {
		defer close(done)
		for update := range progressCh {
			switch update.Phase {
			case tasks.ValidateItems, tasks.FetchRecommendations:
				r.writePlain("📥 %s\n", update.Message)
			case tasks.ImportItems:
				r.writePlain("   [%d/%d] %s\n", update.Step, update.Total, update.Message)
			case tasks.WriteExport:
				r.writePlain("📝 %s\n", update.Message)
			}
		}
	}()

	return progressCh, done
}
