package tasks

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/singme/internal/models"
)

// API is the subset of the HTTP client the tasks need.
type API interface {
	Create(ctx context.Context, name, link string) (*models.Recommendation, error)
	Recent(ctx context.Context) ([]*models.Recommendation, error)
	Top(ctx context.Context, amount int) ([]*models.Recommendation, error)
}

// Engine runs tasks against an [API].
type Engine struct {
	api    API
	logger *log.Logger
}

// NewEngine creates a new Engine. A nil logger discards output.
func NewEngine(api API, logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Engine{api: api, logger: logger}
}

// sendProgress sends a progress update through the channel without blocking.
func (e *Engine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}
