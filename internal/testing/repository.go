package testing

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/desertthunder/singme/internal/models"
)

// MemoryRepository is an in-memory [models.RecommendationRepository].
//
// Setting Err makes every method fail with it.
type MemoryRepository struct {
	mu     sync.Mutex
	recs   map[int64]*models.Recommendation
	nextID int64

	Err error
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{recs: make(map[int64]*models.Recommendation), nextID: 1}
}

// Seed stores recs as-is, assigning ids to those without one.
func (m *MemoryRepository) Seed(recs ...*models.Recommendation) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, rec := range recs {
		m.insert(rec)
	}
}

// Len returns the number of stored recommendations.
func (m *MemoryRepository) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.recs)
}

func (m *MemoryRepository) Create(ctx context.Context, rec *models.Recommendation) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return m.Err
	}
	if m.nameTaken(rec.Name) {
		return models.ErrDuplicateName
	}
	m.insert(rec)
	return nil
}

func (m *MemoryRepository) CreateMany(ctx context.Context, recs []*models.Recommendation) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return m.Err
	}

	seen := make(map[string]bool, len(recs))
	for _, rec := range recs {
		if seen[rec.Name] || m.nameTaken(rec.Name) {
			return models.ErrDuplicateName
		}
		seen[rec.Name] = true
	}
	for _, rec := range recs {
		m.insert(rec)
	}
	return nil
}

func (m *MemoryRepository) Get(ctx context.Context, id int64) (*models.Recommendation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}
	rec, ok := m.recs[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	copied := *rec
	return &copied, nil
}

func (m *MemoryRepository) GetByName(ctx context.Context, name string) (*models.Recommendation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}
	for _, rec := range m.recs {
		if rec.Name == name {
			copied := *rec
			return &copied, nil
		}
	}
	return nil, models.ErrNotFound
}

func (m *MemoryRepository) Find(ctx context.Context, criteria models.Criteria) ([]*models.Recommendation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}

	recs := []*models.Recommendation{}
	for _, rec := range m.recs {
		switch criteria.Filter {
		case models.ScoreAbove:
			if rec.Score <= criteria.Threshold {
				continue
			}
		case models.ScoreAtMost:
			if rec.Score > criteria.Threshold {
				continue
			}
		}
		copied := *rec
		recs = append(recs, &copied)
	}

	if criteria.Order == models.HighestScore {
		slices.SortFunc(recs, func(a, b *models.Recommendation) int {
			if c := cmp.Compare(b.Score, a.Score); c != 0 {
				return c
			}
			return cmp.Compare(a.ID, b.ID)
		})
	} else {
		slices.SortFunc(recs, func(a, b *models.Recommendation) int {
			return cmp.Compare(b.ID, a.ID)
		})
	}

	if criteria.Limit > 0 && len(recs) > criteria.Limit {
		recs = recs[:criteria.Limit]
	}
	return recs, nil
}

func (m *MemoryRepository) UpdateScore(ctx context.Context, id int64, delta int) (*models.Recommendation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}
	rec, ok := m.recs[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	rec.Score += delta
	copied := *rec
	return &copied, nil
}

func (m *MemoryRepository) Delete(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return m.Err
	}
	if _, ok := m.recs[id]; !ok {
		return models.ErrNotFound
	}
	delete(m.recs, id)
	return nil
}

func (m *MemoryRepository) Truncate(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return m.Err
	}
	m.recs = make(map[int64]*models.Recommendation)
	m.nextID = 1
	return nil
}

// Close satisfies repositories.Store.
func (m *MemoryRepository) Close() error { return nil }

func (m *MemoryRepository) nameTaken(name string) bool {
	for _, rec := range m.recs {
		if rec.Name == name {
			return true
		}
	}
	return false
}

func (m *MemoryRepository) insert(rec *models.Recommendation) {
	if rec.ID == 0 {
		rec.ID = m.nextID
	}
	if rec.ID >= m.nextID {
		m.nextID = rec.ID + 1
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	copied := *rec
	m.recs[rec.ID] = &copied
}
