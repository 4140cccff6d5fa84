package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/singme/internal/models"
)

var (
	_ list.Item = recommendationItem{}
)

// recommendationItem wraps [models.Recommendation] to implement [list.Item].
type recommendationItem struct {
	rec *models.Recommendation
}

func (i recommendationItem) FilterValue() string { return i.rec.Name }
func (i recommendationItem) Title() string       { return i.rec.Name }
func (i recommendationItem) Description() string {
	return fmt.Sprintf("%s • %s", formatScore(i.rec.Score), i.rec.Link)
}

func formatScore(score int) string {
	switch {
	case score > 0:
		return styles.ok.Render(fmt.Sprintf("%+d", score))
	case score < 0:
		return styles.err.Render(fmt.Sprintf("%+d", score))
	default:
		return "0"
	}
}

func toItems(recs []*models.Recommendation) []list.Item {
	items := make([]list.Item, len(recs))
	for i, rec := range recs {
		items[i] = recommendationItem{rec: rec}
	}
	return items
}
