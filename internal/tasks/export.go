package tasks

import (
	"context"
	"fmt"

	"github.com/desertthunder/singme/internal/formatter"
	"github.com/desertthunder/singme/internal/models"
	"github.com/desertthunder/singme/internal/shared"
)

// ExportOpts contains configuration for exports.
type ExportOpts struct {
	Format formatter.Format // Output format
	Top    int              // When positive, export the top N by score instead of the most recent
	Output string           // Output path (default: recommendations{ext})
	Title  string           // Markdown heading
}

// ExportResult describes a completed export.
type ExportResult struct {
	Path  string
	Count int
}

// Export fetches recommendations and writes them in the requested format.
func (e *Engine) Export(ctx context.Context, prog chan<- ProgressUpdate, opts ExportOpts) (*ExportResult, error) {
	if e.api == nil {
		return nil, fmt.Errorf("%w: API client not initialized", shared.ErrServiceUnavailable)
	}
	if opts.Format == "" {
		opts.Format = formatter.FormatJSON
	}
	if opts.Title == "" {
		opts.Title = "Recent Recommendations"
		if opts.Top > 0 {
			opts.Title = fmt.Sprintf("Top %d Recommendations", opts.Top)
		}
	}

	e.sendProgress(prog, fetchingUpdate(opts.Top))

	fetch := e.api.Recent
	if opts.Top > 0 {
		fetch = func(ctx context.Context) ([]*models.Recommendation, error) { return e.api.Top(ctx, opts.Top) }
	}
	recs, err := fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch recommendations: %w", err)
	}

	path := opts.Output
	if path == "" {
		path = "recommendations" + opts.Format.Extension()
	}
	e.sendProgress(prog, writingUpdate(recs, path))

	written, err := formatter.WriteExport(opts.Format, recs, opts.Title, path)
	if err != nil {
		return nil, err
	}

	return &ExportResult{Path: written, Count: len(recs)}, nil
}
