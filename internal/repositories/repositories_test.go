package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/desertthunder/singme/internal/models"
	"github.com/desertthunder/singme/internal/shared"
)

// setupTestDB creates an in-memory SQLite database with migrations applied
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := shared.RunMigrations(context.Background(), db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	return db
}

func seed(t *testing.T, repo models.RecommendationRepository, scores ...int) []*models.Recommendation {
	t.Helper()

	recs := make([]*models.Recommendation, 0, len(scores))
	for i, score := range scores {
		rec := models.NewRecommendation(fmt.Sprintf("song %d", i+1), "https://www.youtube.com/watch?v=abc")
		rec.Score = score
		if err := repo.Create(context.Background(), rec); err != nil {
			t.Fatalf("failed to seed recommendation: %v", err)
		}
		recs = append(recs, rec)
	}
	return recs
}

func TestRecommendationRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Create", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewRecommendationRepository(db)
		rec := models.NewRecommendation("Falamansa - Xote dos Milagres", "https://www.youtube.com/watch?v=chwyjJbcs1Y")

		if err := repo.Create(ctx, rec); err != nil {
			t.Fatalf("failed to create recommendation: %v", err)
		}

		if rec.ID != 1 {
			t.Errorf("expected ID 1, got %d", rec.ID)
		}
		if rec.CreatedAt.IsZero() {
			t.Error("CreatedAt should be set after creation")
		}
	})

	t.Run("Get", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewRecommendationRepository(db)
		recs := seed(t, repo, 3)

		retrieved, err := repo.Get(ctx, recs[0].ID)
		if err != nil {
			t.Fatalf("failed to get recommendation: %v", err)
		}

		if retrieved.Name != recs[0].Name {
			t.Errorf("expected name %s, got %s", recs[0].Name, retrieved.Name)
		}
		if retrieved.Link != recs[0].Link {
			t.Errorf("expected link %s, got %s", recs[0].Link, retrieved.Link)
		}
		if retrieved.Score != 3 {
			t.Errorf("expected score 3, got %d", retrieved.Score)
		}
	})

	t.Run("GetByName", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewRecommendationRepository(db)
		recs := seed(t, repo, 0, 0)

		retrieved, err := repo.GetByName(ctx, "song 2")
		if err != nil {
			t.Fatalf("failed to get recommendation by name: %v", err)
		}
		if retrieved.ID != recs[1].ID {
			t.Errorf("expected ID %d, got %d", recs[1].ID, retrieved.ID)
		}

		if _, err := repo.GetByName(ctx, "SONG 2"); !errors.Is(err, models.ErrNotFound) {
			t.Errorf("expected name lookup to be case-sensitive, got %v", err)
		}
	})

	t.Run("Find", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewRecommendationRepository(db)
		seed(t, repo, 5, 20, 11, 10, -3)

		t.Run("NewestFirst", func(t *testing.T) {
			recs, err := repo.Find(ctx, models.Criteria{Order: models.NewestFirst, Limit: 3})
			if err != nil {
				t.Fatalf("failed to find recommendations: %v", err)
			}
			if len(recs) != 3 {
				t.Fatalf("expected 3 recommendations, got %d", len(recs))
			}
			for i, want := range []int64{5, 4, 3} {
				if recs[i].ID != want {
					t.Errorf("position %d: expected ID %d, got %d", i, want, recs[i].ID)
				}
			}
		})

		t.Run("HighestScore", func(t *testing.T) {
			recs, err := repo.Find(ctx, models.Criteria{Order: models.HighestScore})
			if err != nil {
				t.Fatalf("failed to find recommendations: %v", err)
			}
			for i, want := range []int{20, 11, 10, 5, -3} {
				if recs[i].Score != want {
					t.Errorf("position %d: expected score %d, got %d", i, want, recs[i].Score)
				}
			}
		})

		t.Run("ScoreAbove", func(t *testing.T) {
			recs, err := repo.Find(ctx, models.Criteria{Filter: models.ScoreAbove, Threshold: 10})
			if err != nil {
				t.Fatalf("failed to find recommendations: %v", err)
			}
			if len(recs) != 2 {
				t.Errorf("expected 2 recommendations above 10, got %d", len(recs))
			}
		})

		t.Run("ScoreAtMost", func(t *testing.T) {
			recs, err := repo.Find(ctx, models.Criteria{Filter: models.ScoreAtMost, Threshold: 10})
			if err != nil {
				t.Fatalf("failed to find recommendations: %v", err)
			}
			if len(recs) != 3 {
				t.Errorf("expected 3 recommendations at or below 10, got %d", len(recs))
			}
		})

		t.Run("Empty", func(t *testing.T) {
			db := setupTestDB(t)
			defer db.Close()

			recs, err := NewRecommendationRepository(db).Find(ctx, models.Criteria{})
			if err != nil {
				t.Fatalf("failed to find recommendations: %v", err)
			}
			if recs == nil || len(recs) != 0 {
				t.Errorf("expected empty non-nil slice, got %v", recs)
			}
		})
	})

	t.Run("UpdateScore", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewRecommendationRepository(db)
		recs := seed(t, repo, 0)

		updated, err := repo.UpdateScore(ctx, recs[0].ID, 1)
		if err != nil {
			t.Fatalf("failed to update score: %v", err)
		}
		if updated.Score != 1 {
			t.Errorf("expected score 1, got %d", updated.Score)
		}

		updated, err = repo.UpdateScore(ctx, recs[0].ID, -1)
		if err != nil {
			t.Fatalf("failed to update score: %v", err)
		}
		if updated.Score != 0 {
			t.Errorf("expected score 0, got %d", updated.Score)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewRecommendationRepository(db)
		recs := seed(t, repo, 0)

		if err := repo.Delete(ctx, recs[0].ID); err != nil {
			t.Fatalf("failed to delete recommendation: %v", err)
		}

		if _, err := repo.Get(ctx, recs[0].ID); !errors.Is(err, models.ErrNotFound) {
			t.Errorf("expected ErrNotFound after delete, got %v", err)
		}
	})

	t.Run("CreateMany", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewRecommendationRepository(db)
		batch := []*models.Recommendation{
			models.NewRecommendation("a", "youtu.be/a"),
			models.NewRecommendation("b", "youtu.be/b"),
			models.NewRecommendation("c", "youtu.be/c"),
		}

		if err := repo.CreateMany(ctx, batch); err != nil {
			t.Fatalf("failed to create batch: %v", err)
		}
		for i, rec := range batch {
			if rec.ID != int64(i+1) {
				t.Errorf("expected ID %d, got %d", i+1, rec.ID)
			}
		}
	})

	t.Run("Truncate", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewRecommendationRepository(db)
		seed(t, repo, 1, 2, 3)

		if err := repo.Truncate(ctx); err != nil {
			t.Fatalf("failed to truncate: %v", err)
		}

		recs, err := repo.Find(ctx, models.Criteria{})
		if err != nil {
			t.Fatalf("failed to find recommendations: %v", err)
		}
		if len(recs) != 0 {
			t.Errorf("expected no recommendations, got %d", len(recs))
		}

		fresh := seed(t, repo, 0)
		if fresh[0].ID != 1 {
			t.Errorf("expected id sequence to restart at 1, got %d", fresh[0].ID)
		}
	})
}

func TestRecommendationRepositoryErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("Create", func(t *testing.T) {
		t.Run("Duplicate", func(t *testing.T) {
			db := setupTestDB(t)
			defer db.Close()

			repo := NewRecommendationRepository(db)
			seed(t, repo, 0)

			dup := models.NewRecommendation("song 1", "youtu.be/other")
			err := repo.Create(ctx, dup)
			if !errors.Is(err, models.ErrDuplicateName) {
				t.Errorf("expected ErrDuplicateName, got %v", err)
			}
		})
	})

	t.Run("CreateMany", func(t *testing.T) {
		t.Run("RollsBackOnDuplicate", func(t *testing.T) {
			db := setupTestDB(t)
			defer db.Close()

			repo := NewRecommendationRepository(db)
			batch := []*models.Recommendation{
				models.NewRecommendation("same", "youtu.be/a"),
				models.NewRecommendation("same", "youtu.be/b"),
			}

			if err := repo.CreateMany(ctx, batch); !errors.Is(err, models.ErrDuplicateName) {
				t.Fatalf("expected ErrDuplicateName, got %v", err)
			}

			recs, err := repo.Find(ctx, models.Criteria{})
			if err != nil {
				t.Fatalf("failed to find recommendations: %v", err)
			}
			if len(recs) != 0 {
				t.Errorf("expected rollback to leave table empty, got %d rows", len(recs))
			}
		})
	})

	t.Run("Get", func(t *testing.T) {
		t.Run("NotFound", func(t *testing.T) {
			db := setupTestDB(t)
			defer db.Close()

			_, err := NewRecommendationRepository(db).Get(ctx, 99)
			if !errors.Is(err, models.ErrNotFound) {
				t.Errorf("expected ErrNotFound, got %v", err)
			}
		})
	})

	t.Run("UpdateScore", func(t *testing.T) {
		t.Run("NotFound", func(t *testing.T) {
			db := setupTestDB(t)
			defer db.Close()

			_, err := NewRecommendationRepository(db).UpdateScore(ctx, 42, 1)
			if !errors.Is(err, models.ErrNotFound) {
				t.Errorf("expected ErrNotFound, got %v", err)
			}
		})
	})

	t.Run("Delete", func(t *testing.T) {
		t.Run("NotFound", func(t *testing.T) {
			db := setupTestDB(t)
			defer db.Close()

			err := NewRecommendationRepository(db).Delete(ctx, 7)
			if !errors.Is(err, models.ErrNotFound) {
				t.Errorf("expected ErrNotFound, got %v", err)
			}
		})
	})

	t.Run("Closed", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewRecommendationRepository(db)
		if err := repo.Close(); err != nil {
			t.Fatalf("failed to close: %v", err)
		}

		if _, err := repo.Find(ctx, models.Criteria{}); err == nil {
			t.Error("expected error querying a closed database")
		}
	})
}

func TestBuildFindQuery(t *testing.T) {
	tests := []struct {
		name     string
		criteria models.Criteria
		want     string
		args     int
	}{
		{
			name: "defaults",
			want: "SELECT " + recommendationColumns + " FROM recommendations ORDER BY id DESC",
		},
		{
			name:     "top with limit",
			criteria: models.Criteria{Order: models.HighestScore, Limit: 5},
			want:     "SELECT " + recommendationColumns + " FROM recommendations ORDER BY score DESC, id ASC LIMIT ?",
			args:     1,
		},
		{
			name:     "above threshold",
			criteria: models.Criteria{Filter: models.ScoreAbove, Threshold: 10},
			want:     "SELECT " + recommendationColumns + " FROM recommendations WHERE score > ? ORDER BY id DESC",
			args:     1,
		},
		{
			name:     "at most threshold with limit",
			criteria: models.Criteria{Filter: models.ScoreAtMost, Threshold: 10, Limit: 10},
			want:     "SELECT " + recommendationColumns + " FROM recommendations WHERE score <= ? ORDER BY id DESC LIMIT ?",
			args:     2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, args := buildFindQuery(tt.criteria)
			if got != tt.want {
				t.Errorf("query = %q, want %q", got, tt.want)
			}
			if len(args) != tt.args {
				t.Errorf("len(args) = %d, want %d", len(args), tt.args)
			}
		})
	}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	t.Run("SQLite", func(t *testing.T) {
		store, err := Open(ctx, shared.DatabaseConfig{Driver: shared.DriverSQLite, Path: ":memory:"})
		if err != nil {
			t.Fatalf("failed to open store: %v", err)
		}
		defer store.Close()

		if _, ok := store.(*RecommendationRepository); !ok {
			t.Errorf("expected *RecommendationRepository, got %T", store)
		}

		seed(t, store, 0)
	})

	t.Run("UnknownDriver", func(t *testing.T) {
		_, err := Open(ctx, shared.DatabaseConfig{Driver: "oracle"})
		if !errors.Is(err, shared.ErrUnknownDriver) {
			t.Errorf("expected ErrUnknownDriver, got %v", err)
		}
	})
}
