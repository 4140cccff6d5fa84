package tasks

import (
	"context"
	"fmt"
	"sync"

	"github.com/desertthunder/singme/internal/metrics"
	"github.com/desertthunder/singme/internal/models"
	"github.com/desertthunder/singme/internal/services"
	"github.com/desertthunder/singme/internal/shared"
	"golang.org/x/time/rate"
)

const (
	defaultImportWorkers = 4
	maxImportWorkers     = 16
	defaultImportRate    = 10.0
)

// ItemStatus is the outcome of importing one item.
type ItemStatus string

const (
	StatusCreated ItemStatus = "created"
	StatusSkipped ItemStatus = "skipped"
	StatusInvalid ItemStatus = "invalid"
	StatusFailed  ItemStatus = "failed"
)

// BulkImportOpts contains configuration for bulk imports.
type BulkImportOpts struct {
	NumWorkers int     // Concurrent workers (default: 4, max: 16)
	RateLimit  float64 // Requests per second (default: 10)
}

// ItemResult is the outcome for a single input item.
type ItemResult struct {
	Index  int
	Name   string
	Status ItemStatus
	ID     int64
	Error  error
}

// BulkImportResult summarizes a bulk import.
type BulkImportResult struct {
	Total   int
	Created int
	Skipped int
	Invalid int
	Failed  int
	Results []ItemResult // ordered by input index
}

type importJob struct {
	index int
	rec   *models.Recommendation
}

// BulkImport creates items concurrently with rate limiting and progress tracking.
//
// Invalid items are reported without a request. Items whose name already exists are skipped.
// Cancelling ctx stops dispatching; items not yet sent are reported as failed with ctx.Err().
func (e *Engine) BulkImport(ctx context.Context, prog chan<- ProgressUpdate, items []*models.Recommendation, opts BulkImportOpts) (*BulkImportResult, error) {
	if e.api == nil {
		return nil, fmt.Errorf("%w: API client not initialized", shared.ErrServiceUnavailable)
	}

	if opts.NumWorkers <= 0 {
		opts.NumWorkers = defaultImportWorkers
	}
	opts.NumWorkers = min(opts.NumWorkers, maxImportWorkers)
	if opts.RateLimit <= 0 {
		opts.RateLimit = defaultImportRate
	}

	result := &BulkImportResult{Total: len(items), Results: make([]ItemResult, len(items))}

	valid := make([]importJob, 0, len(items))
	for i, item := range items {
		if err := item.Validate(); err != nil {
			result.Results[i] = ItemResult{Index: i, Name: item.Name, Status: StatusInvalid, Error: err}
			result.Invalid++
			metrics.RecordImport(string(StatusInvalid))
			continue
		}
		valid = append(valid, importJob{index: i, rec: item})
	}
	e.sendProgress(prog, validatedUpdate(len(valid), len(items)))

	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)
	jobs := make(chan importJob)
	results := make(chan ItemResult, len(valid))

	var wg sync.WaitGroup
	for range opts.NumWorkers {
		wg.Add(1)
		go e.importWorker(ctx, &wg, limiter, jobs, results)
	}

	go func() {
		defer close(jobs)
		for i, job := range valid {
			select {
			case <-ctx.Done():
				for _, rest := range valid[i:] {
					results <- ItemResult{Index: rest.index, Name: rest.rec.Name, Status: StatusFailed, Error: ctx.Err()}
				}
				return
			case jobs <- job:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	completed := 0
	for res := range results {
		completed++
		result.Results[res.Index] = res

		switch res.Status {
		case StatusCreated:
			result.Created++
		case StatusSkipped:
			result.Skipped++
		default:
			result.Failed++
		}
		metrics.RecordImport(string(res.Status))
		e.sendProgress(prog, importedUpdate(completed, len(valid), res))
	}

	e.logger.Info("bulk import finished",
		"total", result.Total, "created", result.Created, "skipped", result.Skipped,
		"invalid", result.Invalid, "failed", result.Failed)

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("import interrupted: %w", err)
	}
	return result, nil
}

// importWorker creates recommendations from the jobs channel.
func (e *Engine) importWorker(ctx context.Context, wg *sync.WaitGroup, limiter *rate.Limiter, jobs <-chan importJob, results chan<- ItemResult) {
	defer wg.Done()

	for job := range jobs {
		res := ItemResult{Index: job.index, Name: job.rec.Name}

		if err := limiter.Wait(ctx); err != nil {
			res.Status, res.Error = StatusFailed, err
			results <- res
			continue
		}

		created, err := e.api.Create(ctx, job.rec.Name, job.rec.Link)
		switch {
		case err == nil:
			res.Status, res.ID = StatusCreated, created.ID
		case services.IsConflict(err):
			res.Status, res.Error = StatusSkipped, err
		default:
			res.Status, res.Error = StatusFailed, err
		}
		results <- res
	}
}
