// package repositories provides persistence layer implementations for all model types.
package repositories

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/singme/internal/models"
	"github.com/desertthunder/singme/internal/shared"
)

const recommendationColumns = "id, name, youtube_link, score, created_at"

// Store is a [models.RecommendationRepository] that owns its connection pool.
type Store interface {
	models.RecommendationRepository
	Close() error
}

var (
	_ Store = (*RecommendationRepository)(nil)
	_ Store = (*PostgresRepository)(nil)
)

// Open connects to the configured database, prepares its schema and returns the matching [Store].
func Open(ctx context.Context, cfg shared.DatabaseConfig) (Store, error) {
	switch cfg.Driver {
	case shared.DriverSQLite, "":
		db, err := shared.NewDatabase(cfg.Path)
		if err != nil {
			return nil, err
		}
		if !strings.Contains(cfg.Path, ":memory:") {
			shared.ConfigureDatabase(db, cfg.MaxOpenConns, cfg.MaxIdleConns)
		}
		if err := shared.RunMigrations(ctx, db); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		return NewRecommendationRepository(db), nil

	case shared.DriverPostgres:
		db, err := shared.NewPostgresDatabase(cfg.URL)
		if err != nil {
			return nil, err
		}
		shared.ConfigureDatabase(db.DB, cfg.MaxOpenConns, cfg.MaxIdleConns)

		repo := NewPostgresRepository(db)
		if err := repo.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, err
		}
		return repo, nil

	default:
		return nil, fmt.Errorf("%w: %q", shared.ErrUnknownDriver, cfg.Driver)
	}
}

// buildFindQuery renders criteria as a SELECT with ? placeholders.
func buildFindQuery(criteria models.Criteria) (string, []any) {
	var (
		sb   strings.Builder
		args []any
	)

	sb.WriteString("SELECT " + recommendationColumns + " FROM recommendations")

	switch criteria.Filter {
	case models.ScoreAbove:
		sb.WriteString(" WHERE score > ?")
		args = append(args, criteria.Threshold)
	case models.ScoreAtMost:
		sb.WriteString(" WHERE score <= ?")
		args = append(args, criteria.Threshold)
	}

	switch criteria.Order {
	case models.HighestScore:
		sb.WriteString(" ORDER BY score DESC, id ASC")
	default:
		sb.WriteString(" ORDER BY id DESC")
	}

	if criteria.Limit > 0 {
		sb.WriteString(" LIMIT ?")
		args = append(args, criteria.Limit)
	}

	return sb.String(), args
}
