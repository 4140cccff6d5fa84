package services

import (
	"context"
	"fmt"
	"io"
	"math"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/singme/internal/metrics"
	"github.com/desertthunder/singme/internal/models"
	"github.com/desertthunder/singme/internal/shared"
)

// DefaultHighTierPercent is the share of high-tier recommendations in a distributed scenario
// when the caller does not choose one.
const DefaultHighTierPercent = 70

const (
	scenarioHighMin = TierThreshold + 1 // 11
	scenarioHighMax = 99
	scenarioLowMin  = DeleteThreshold // -5
	scenarioLowMax  = TierThreshold - 1
	videoIDLength   = 11
	videoURLPrefix  = "https://www.youtube.com/watch?v="
)

// ScenarioService seeds and clears recommendations for the admin routes.
type ScenarioService struct {
	repo   models.RecommendationRepository
	random RandomSource
	logger *log.Logger
}

// NewScenarioService creates a scenario service over repo.
func NewScenarioService(repo models.RecommendationRepository, random RandomSource, logger *log.Logger) *ScenarioService {
	if random == nil {
		random = NewTimeSeededSource()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &ScenarioService{repo: repo, random: random, logger: logger}
}

// Create seeds recommendations.
//
// When amount is at most 1 a single recommendation with the given score is created.
// Otherwise score is read as the percentage of high-tier entries (clamped to 0..100):
// that share receives scores in [11,99] and the rest scores in [-5,9].
func (s *ScenarioService) Create(ctx context.Context, amount, score int) ([]*models.Recommendation, error) {
	var recs []*models.Recommendation

	if amount <= 1 {
		rec := s.generate(0)
		rec.Score = score
		recs = []*models.Recommendation{rec}
	} else {
		pct := min(max(score, 0), 100)
		high := int(math.Round(float64(amount) * float64(pct) / 100))

		recs = make([]*models.Recommendation, amount)
		for i := range amount {
			rec := s.generate(i + 1)
			if i < high {
				rec.Score = s.between(scenarioHighMin, scenarioHighMax)
			} else {
				rec.Score = s.between(scenarioLowMin, scenarioLowMax)
			}
			recs[i] = rec
		}
	}

	if err := s.repo.CreateMany(ctx, recs); err != nil {
		return nil, fmt.Errorf("failed to create scenario: %w", err)
	}

	metrics.RecordCreated(len(recs))
	s.logger.Info("scenario created", "amount", len(recs))
	return recs, nil
}

func (s *ScenarioService) generate(index int) *models.Recommendation {
	name := "recommendation " + shared.ShortID(8)
	if index > 0 {
		name = fmt.Sprintf("%s-%d", name, index)
	}
	return models.NewRecommendation(name, videoURLPrefix+shared.ShortID(videoIDLength))
}

// between returns an int in [lo, hi].
func (s *ScenarioService) between(lo, hi int) int {
	return lo + s.random.IntN(hi-lo+1)
}
