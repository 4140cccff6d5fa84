package tasks

import (
	"fmt"

	"github.com/desertthunder/singme/internal/models"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	ValidateItems Phase = iota
	ImportItems
	FetchRecommendations
	WriteExport
)

func (p Phase) String() string {
	switch p {
	case ValidateItems:
		return "validate_items"
	case ImportItems:
		return "import_items"
	case FetchRecommendations:
		return "fetch_recommendations"
	case WriteExport:
		return "write_export"
	default:
		return ""
	}
}

func validatedUpdate(valid, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ValidateItems,
		Step:    valid,
		Total:   total,
		Message: fmt.Sprintf("%d of %d items are valid", valid, total),
	}
}

func importedUpdate(step, total int, res ItemResult) ProgressUpdate {
	var msg string
	switch res.Status {
	case StatusCreated:
		msg = fmt.Sprintf("Created %q", res.Name)
	case StatusSkipped:
		msg = fmt.Sprintf("Skipped %q (name exists)", res.Name)
	default:
		msg = fmt.Sprintf("Failed %q: %v", res.Name, res.Error)
	}

	return ProgressUpdate{
		Phase:   ImportItems,
		Step:    step,
		Total:   total,
		Message: msg,
		Data:    res,
	}
}

func fetchingUpdate(top int) ProgressUpdate {
	msg := "Fetching recent recommendations..."
	if top > 0 {
		msg = fmt.Sprintf("Fetching top %d recommendations...", top)
	}
	return ProgressUpdate{Phase: FetchRecommendations, Step: 0, Total: 1, Message: msg}
}

func writingUpdate(recs []*models.Recommendation, path string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   WriteExport,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Writing %d recommendations to %s", len(recs), path),
		Data:    recs,
	}
}
