package services

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/singme/internal/metrics"
	"github.com/desertthunder/singme/internal/models"
)

const (
	DeleteThreshold     = -5  // a downvote leaving the score below this deletes the recommendation
	TierThreshold       = 10  // scores above this form the high tier
	HighTierProbability = 0.7 // chance GetRandom draws from the high tier
	RecentLimit         = 10  // number of recommendations returned by Get
)

// DuplicateNameMessage is the conflict message returned by [RecommendationService.Insert].
const DuplicateNameMessage = "Recommendations names must be unique"

// RecommendationService applies the voting and selection rules.
type RecommendationService struct {
	repo   models.RecommendationRepository
	random RandomSource
	logger *log.Logger
}

// NewRecommendationService creates a service over repo.
//
// A nil random falls back to [NewTimeSeededSource]; a nil logger discards output.
func NewRecommendationService(repo models.RecommendationRepository, random RandomSource, logger *log.Logger) *RecommendationService {
	if random == nil {
		random = NewTimeSeededSource()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &RecommendationService{repo: repo, random: random, logger: logger}
}

// Insert creates a recommendation with a zero score.
func (s *RecommendationService) Insert(ctx context.Context, name, link string) (*models.Recommendation, error) {
	existing, err := s.repo.GetByName(ctx, name)
	if err != nil && !errors.Is(err, models.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up name: %w", err)
	}
	if existing != nil {
		return nil, ConflictError(DuplicateNameMessage, models.ErrDuplicateName)
	}

	rec := models.NewRecommendation(name, link)
	if err := s.repo.Create(ctx, rec); err != nil {
		if errors.Is(err, models.ErrDuplicateName) {
			return nil, ConflictError(DuplicateNameMessage, err)
		}
		return nil, fmt.Errorf("failed to create recommendation: %w", err)
	}

	metrics.RecordCreated(1)
	s.logger.Debug("recommendation created", "id", rec.ID, "name", rec.Name)
	return rec, nil
}

// Upvote adds one to the score of the recommendation with id.
func (s *RecommendationService) Upvote(ctx context.Context, id int64) (*models.Recommendation, error) {
	if _, err := s.GetByID(ctx, id); err != nil {
		return nil, err
	}

	rec, err := s.vote(ctx, id, 1)
	if err != nil {
		return nil, err
	}

	metrics.RecordVote(metrics.VoteUp)
	return rec, nil
}

// Downvote subtracts one from the score and deletes the recommendation when the new score is below [DeleteThreshold].
//
// The returned recommendation carries the post-vote score even when it was deleted.
func (s *RecommendationService) Downvote(ctx context.Context, id int64) (*models.Recommendation, error) {
	if _, err := s.GetByID(ctx, id); err != nil {
		return nil, err
	}

	rec, err := s.vote(ctx, id, -1)
	if err != nil {
		return nil, err
	}
	metrics.RecordVote(metrics.VoteDown)

	if rec.Score < DeleteThreshold {
		if err := s.repo.Delete(ctx, id); err != nil && !errors.Is(err, models.ErrNotFound) {
			return nil, fmt.Errorf("failed to delete recommendation %d: %w", id, err)
		}
		metrics.RecordPruned()
		s.logger.Info("recommendation removed below threshold", "id", id, "score", rec.Score)
	}

	return rec, nil
}

// Removed reports whether a recommendation returned by [RecommendationService.Downvote] was deleted.
func Removed(rec *models.Recommendation) bool {
	return rec != nil && rec.Score < DeleteThreshold
}

func (s *RecommendationService) vote(ctx context.Context, id int64, delta int) (*models.Recommendation, error) {
	rec, err := s.repo.UpdateScore(ctx, id, delta)
	if errors.Is(err, models.ErrNotFound) {
		return nil, NotFoundError("", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update score for %d: %w", id, err)
	}
	return rec, nil
}

// GetRandom picks a recommendation, favoring the high tier with probability [HighTierProbability].
func (s *RecommendationService) GetRandom(ctx context.Context) (*models.Recommendation, error) {
	criteria := models.Criteria{Threshold: TierThreshold}
	tier := metrics.TierLow
	if s.random.Float64() < HighTierProbability {
		criteria.Filter = models.ScoreAbove
		tier = metrics.TierHigh
	} else {
		criteria.Filter = models.ScoreAtMost
	}

	recs, err := s.repo.Find(ctx, criteria)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s tier: %w", tier, err)
	}

	if len(recs) == 0 {
		tier = metrics.TierFallback
		if recs, err = s.repo.Find(ctx, models.Criteria{}); err != nil {
			return nil, fmt.Errorf("failed to list recommendations: %w", err)
		}
	}

	if len(recs) == 0 {
		return nil, NotFoundError("", models.ErrNotFound)
	}

	metrics.RecordRandomSelection(tier)
	return recs[s.random.IntN(len(recs))], nil
}

// GetTop returns up to amount recommendations by descending score, ties broken by ascending id.
func (s *RecommendationService) GetTop(ctx context.Context, amount int) ([]*models.Recommendation, error) {
	if amount <= 0 {
		return []*models.Recommendation{}, nil
	}

	recs, err := s.repo.Find(ctx, models.Criteria{Order: models.HighestScore, Limit: amount})
	if err != nil {
		return nil, fmt.Errorf("failed to list top recommendations: %w", err)
	}
	return recs, nil
}

// Get returns the [RecentLimit] most recently created recommendations, newest first.
func (s *RecommendationService) Get(ctx context.Context) ([]*models.Recommendation, error) {
	recs, err := s.repo.Find(ctx, models.Criteria{Order: models.NewestFirst, Limit: RecentLimit})
	if err != nil {
		return nil, fmt.Errorf("failed to list recent recommendations: %w", err)
	}
	return recs, nil
}

// GetByID returns the recommendation with id.
func (s *RecommendationService) GetByID(ctx context.Context, id int64) (*models.Recommendation, error) {
	rec, err := s.repo.Get(ctx, id)
	if errors.Is(err, models.ErrNotFound) {
		return nil, NotFoundError("", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get recommendation %d: %w", id, err)
	}
	return rec, nil
}

// RemoveAll deletes every recommendation and restarts id assignment.
func (s *RecommendationService) RemoveAll(ctx context.Context) error {
	if err := s.repo.Truncate(ctx); err != nil {
		return fmt.Errorf("failed to remove recommendations: %w", err)
	}
	s.logger.Warn("all recommendations removed")
	return nil
}
