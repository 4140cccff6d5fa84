package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/desertthunder/singme/internal/models"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// uniqueViolation is the PostgreSQL SQLSTATE for unique_violation.
const uniqueViolation = "23505"

// PostgresRepository implements [models.RecommendationRepository] on PostgreSQL using sqlx.
type PostgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository wraps an open sqlx connection pool.
func NewPostgresRepository(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// EnsureSchema creates the recommendations table and its score index if they are missing.
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	statements := []string{
		`create table if not exists recommendations (
			id serial primary key,
			name text not null unique,
			youtube_link text not null,
			score integer not null default 0,
			created_at timestamptz not null default now()
		)`,
		`create index if not exists idx_recommendations_score on recommendations (score desc, id asc)`,
	}

	for _, stmt := range statements {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to ensure schema: %w", err)
		}
	}
	return nil
}

// Create inserts rec and fills in the id and created_at assigned by the database.
func (r *PostgresRepository) Create(ctx context.Context, rec *models.Recommendation) error {
	query := `
		insert into recommendations (name, youtube_link, score)
		values ($1, $2, $3)
		returning id, created_at`

	err := r.db.QueryRowxContext(ctx, query, rec.Name, rec.Link, rec.Score).Scan(&rec.ID, &rec.CreatedAt)
	if err != nil {
		return translatePostgresError("failed to insert recommendation", err)
	}
	return nil
}

// CreateMany inserts every recommendation inside one transaction.
func (r *PostgresRepository) CreateMany(ctx context.Context, recs []*models.Recommendation) error {
	if len(recs) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PreparexContext(ctx, `
		insert into recommendations (name, youtube_link, score)
		values ($1, $2, $3)
		returning id, created_at`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, rec := range recs {
		if err := stmt.QueryRowxContext(ctx, rec.Name, rec.Link, rec.Score).Scan(&rec.ID, &rec.CreatedAt); err != nil {
			return translatePostgresError("failed to insert recommendation", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit bulk insert: %w", err)
	}
	return nil
}

// Get retrieves a recommendation by ID
func (r *PostgresRepository) Get(ctx context.Context, id int64) (*models.Recommendation, error) {
	return r.getOne(ctx, `select `+recommendationColumns+` from recommendations where id = $1`, id)
}

// GetByName retrieves a recommendation by its exact name
func (r *PostgresRepository) GetByName(ctx context.Context, name string) (*models.Recommendation, error) {
	return r.getOne(ctx, `select `+recommendationColumns+` from recommendations where name = $1`, name)
}

// Find retrieves all recommendations matching the given criteria
func (r *PostgresRepository) Find(ctx context.Context, criteria models.Criteria) ([]*models.Recommendation, error) {
	query, args := buildFindQuery(criteria)

	recs := []*models.Recommendation{}
	if err := r.db.SelectContext(ctx, &recs, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to query recommendations: %w", err)
	}
	return recs, nil
}

// UpdateScore adds delta to the stored score and returns the updated row.
func (r *PostgresRepository) UpdateScore(ctx context.Context, id int64, delta int) (*models.Recommendation, error) {
	query := `update recommendations set score = score + $1 where id = $2 returning ` + recommendationColumns
	return r.getOne(ctx, query, delta, id)
}

// Delete removes a recommendation by ID
func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `delete from recommendations where id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete recommendation: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %d", models.ErrNotFound, id)
	}
	return nil
}

// Truncate empties the table and restarts the id sequence.
func (r *PostgresRepository) Truncate(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `truncate table recommendations restart identity`); err != nil {
		return fmt.Errorf("failed to truncate recommendations: %w", err)
	}
	return nil
}

// Close closes the underlying connection pool.
func (r *PostgresRepository) Close() error {
	return r.db.Close()
}

func (r *PostgresRepository) getOne(ctx context.Context, query string, args ...any) (*models.Recommendation, error) {
	var rec models.Recommendation
	err := r.db.GetContext(ctx, &rec, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan recommendation: %w", err)
	}
	return &rec, nil
}

// translatePostgresError maps unique_violation to [models.ErrDuplicateName] and wraps everything else.
func translatePostgresError(msg string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return fmt.Errorf("%s: %w", msg, models.ErrDuplicateName)
	}
	return fmt.Errorf("%s: %w", msg, err)
}
