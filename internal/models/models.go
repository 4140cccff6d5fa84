// package models defines the data model for the recommendation service
package models

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

var (
	ErrNotFound      = errors.New("recommendation not found")
	ErrDuplicateName = errors.New("recommendation name already exists")
	ErrEmptyName     = errors.New("name must not be empty")
	ErrInvalidLink   = errors.New("link must be a YouTube video URL")
)

// YouTubeLinkPattern matches the video-sharing URLs a recommendation may point to.
var YouTubeLinkPattern = regexp.MustCompile(`^(https?://)?(www\.youtube\.com|youtu\.?be)/.+$`)

// Recommendation is a named, linked video carrying a score changed only by votes.
type Recommendation struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Link      string    `json:"youtubeLink" db:"youtube_link"`
	Score     int       `json:"score" db:"score"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// NewRecommendation builds an unsaved recommendation with a zero score.
func NewRecommendation(name, link string) *Recommendation {
	return &Recommendation{Name: name, Link: link}
}

// IsYouTubeLink reports whether link matches [YouTubeLinkPattern].
func IsYouTubeLink(link string) bool {
	return YouTubeLinkPattern.MatchString(link)
}

// Validate checks name and link.
func (r *Recommendation) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return ErrEmptyName
	}
	if !IsYouTubeLink(r.Link) {
		return fmt.Errorf("%w: %q", ErrInvalidLink, r.Link)
	}
	return nil
}

// ScoreFilter restricts [RecommendationRepository.Find] to one side of [Criteria.Threshold].
type ScoreFilter int

const (
	AnyScore    ScoreFilter = iota
	ScoreAbove              // score > threshold
	ScoreAtMost             // score <= threshold
)

// Order selects the sort applied by [RecommendationRepository.Find].
type Order int

const (
	NewestFirst  Order = iota // id descending
	HighestScore              // score descending, id ascending
)

// Criteria describes a Find query. A zero Limit means no limit.
type Criteria struct {
	Filter    ScoreFilter
	Threshold int
	Order     Order
	Limit     int
}

// RecommendationRepository defines the storage operations for recommendations.
//
// Each call is a single statement or a single transaction; callers compose them without further locking.
type RecommendationRepository interface {
	Create(ctx context.Context, rec *Recommendation) error                         // Create inserts rec and sets its ID and CreatedAt
	CreateMany(ctx context.Context, recs []*Recommendation) error                  // CreateMany inserts all recs in one transaction
	Get(ctx context.Context, id int64) (*Recommendation, error)                    // Get finds a recommendation by id
	GetByName(ctx context.Context, name string) (*Recommendation, error)           // GetByName finds a recommendation by exact name
	Find(ctx context.Context, criteria Criteria) ([]*Recommendation, error)        // Find lists recommendations matching criteria
	UpdateScore(ctx context.Context, id int64, delta int) (*Recommendation, error) // UpdateScore adds delta to the score and returns the updated row
	Delete(ctx context.Context, id int64) error                                    // Delete removes a recommendation by id
	Truncate(ctx context.Context) error                                            // Truncate removes every recommendation and resets id assignment
}
