package repositories

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/desertthunder/singme/internal/models"
	"github.com/desertthunder/singme/internal/shared"
)

// setupPostgres connects to the database named by SINGME_TEST_POSTGRES_URL or skips.
func setupPostgres(t *testing.T) *PostgresRepository {
	t.Helper()

	url := os.Getenv("SINGME_TEST_POSTGRES_URL")
	if url == "" {
		t.Skip("SINGME_TEST_POSTGRES_URL not set")
	}

	db, err := shared.NewPostgresDatabase(url)
	if err != nil {
		t.Fatalf("failed to connect to postgres: %v", err)
	}

	repo := NewPostgresRepository(db)
	if err := repo.EnsureSchema(context.Background()); err != nil {
		db.Close()
		t.Fatalf("failed to ensure schema: %v", err)
	}
	if err := repo.Truncate(context.Background()); err != nil {
		db.Close()
		t.Fatalf("failed to truncate: %v", err)
	}

	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestPostgresRepository(t *testing.T) {
	ctx := context.Background()
	repo := setupPostgres(t)

	recs := seed(t, repo, 12, 3)
	if recs[0].ID != 1 || recs[1].ID != 2 {
		t.Fatalf("expected sequential ids, got %d and %d", recs[0].ID, recs[1].ID)
	}

	if err := repo.Create(ctx, models.NewRecommendation("song 1", "youtu.be/x")); !errors.Is(err, models.ErrDuplicateName) {
		t.Errorf("expected ErrDuplicateName, got %v", err)
	}

	top, err := repo.Find(ctx, models.Criteria{Order: models.HighestScore, Limit: 1})
	if err != nil {
		t.Fatalf("failed to find: %v", err)
	}
	if len(top) != 1 || top[0].Score != 12 {
		t.Errorf("unexpected top result: %+v", top)
	}

	above, err := repo.Find(ctx, models.Criteria{Filter: models.ScoreAbove, Threshold: 10})
	if err != nil {
		t.Fatalf("failed to find: %v", err)
	}
	if len(above) != 1 {
		t.Errorf("expected 1 recommendation above 10, got %d", len(above))
	}

	updated, err := repo.UpdateScore(ctx, recs[1].ID, -1)
	if err != nil {
		t.Fatalf("failed to update score: %v", err)
	}
	if updated.Score != 2 {
		t.Errorf("expected score 2, got %d", updated.Score)
	}

	if err := repo.Delete(ctx, recs[1].ID); err != nil {
		t.Fatalf("failed to delete: %v", err)
	}
	if _, err := repo.Get(ctx, recs[1].ID); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	if err := repo.Truncate(ctx); err != nil {
		t.Fatalf("failed to truncate: %v", err)
	}
	fresh := seed(t, repo, 0)
	if fresh[0].ID != 1 {
		t.Errorf("expected identity restart, got id %d", fresh[0].ID)
	}
}
