package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/singme/internal/models"
	"github.com/mattn/go-sqlite3"
)

// RecommendationRepository implements [models.RecommendationRepository] on SQLite.
type RecommendationRepository struct {
	db *sql.DB
}

// NewRecommendationRepository creates a new RecommendationRepository with the given database connection
func NewRecommendationRepository(db *sql.DB) *RecommendationRepository {
	return &RecommendationRepository{db: db}
}

// Create inserts a new [models.Recommendation] and sets its generated ID and creation time.
func (r *RecommendationRepository) Create(ctx context.Context, rec *models.Recommendation) error {
	now := time.Now().UTC()

	result, err := r.db.ExecContext(ctx,
		`INSERT INTO recommendations (name, youtube_link, score, created_at) VALUES (?, ?, ?, ?)`,
		rec.Name, rec.Link, rec.Score, now,
	)
	if err != nil {
		return translateSQLiteError("failed to insert recommendation", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read inserted id: %w", err)
	}

	rec.ID = id
	rec.CreatedAt = now
	return nil
}

// CreateMany inserts every recommendation in a single transaction; a failure leaves the table untouched.
func (r *RecommendationRepository) CreateMany(ctx context.Context, recs []*models.Recommendation) error {
	if len(recs) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO recommendations (name, youtube_link, score, created_at) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for _, rec := range recs {
		result, err := stmt.ExecContext(ctx, rec.Name, rec.Link, rec.Score, now)
		if err != nil {
			return translateSQLiteError("failed to insert recommendation", err)
		}
		if rec.ID, err = result.LastInsertId(); err != nil {
			return fmt.Errorf("failed to read inserted id: %w", err)
		}
		rec.CreatedAt = now
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit bulk insert: %w", err)
	}
	return nil
}

// Get retrieves a recommendation by ID
func (r *RecommendationRepository) Get(ctx context.Context, id int64) (*models.Recommendation, error) {
	query := `SELECT ` + recommendationColumns + ` FROM recommendations WHERE id = ?`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

// GetByName retrieves a recommendation by its exact (case-sensitive) name
func (r *RecommendationRepository) GetByName(ctx context.Context, name string) (*models.Recommendation, error) {
	query := `SELECT ` + recommendationColumns + ` FROM recommendations WHERE name = ?`
	return r.scanOne(r.db.QueryRowContext(ctx, query, name))
}

// Find retrieves all recommendations matching the given criteria
func (r *RecommendationRepository) Find(ctx context.Context, criteria models.Criteria) ([]*models.Recommendation, error) {
	query, args := buildFindQuery(criteria)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query recommendations: %w", err)
	}
	defer rows.Close()

	recs := []*models.Recommendation{}
	for rows.Next() {
		rec, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return recs, nil
}

// UpdateScore adds delta to the stored score in one statement and returns the updated row.
func (r *RecommendationRepository) UpdateScore(ctx context.Context, id int64, delta int) (*models.Recommendation, error) {
	query := `UPDATE recommendations SET score = score + ? WHERE id = ? RETURNING ` + recommendationColumns
	return r.scanOne(r.db.QueryRowContext(ctx, query, delta, id))
}

// Delete removes a recommendation by ID
func (r *RecommendationRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM recommendations WHERE id = ?`, id)
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

// Truncate deletes every row and resets the AUTOINCREMENT counter so ids start again at 1.
func (r *RecommendationRepository) Truncate(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM recommendations`); err != nil {
		return fmt.Errorf("failed to clear recommendations: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM sqlite_sequence WHERE name = 'recommendations'`); err != nil {
		return fmt.Errorf("failed to reset id sequence: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit truncate: %w", err)
	}
	return nil
}

// Close closes the underlying connection pool.
func (r *RecommendationRepository) Close() error {
	return r.db.Close()
}

// scanOne scans a single [sql.Row] into a [models.Recommendation]
func (r *RecommendationRepository) scanOne(row *sql.Row) (*models.Recommendation, error) {
	var rec models.Recommendation

	err := row.Scan(&rec.ID, &rec.Name, &rec.Link, &rec.Score, &rec.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan recommendation: %w", err)
	}
	return &rec, nil
}

// scanRow scans a row from [sql.Rows] into a [models.Recommendation]
func (r *RecommendationRepository) scanRow(rows *sql.Rows) (*models.Recommendation, error) {
	var rec models.Recommendation

	if err := rows.Scan(&rec.ID, &rec.Name, &rec.Link, &rec.Score, &rec.CreatedAt); err != nil {
		return nil, fmt.Errorf("failed to scan recommendation: %w", err)
	}
	return &rec, nil
}

// translateSQLiteError maps UNIQUE violations to [models.ErrDuplicateName] and wraps everything else.
func translateSQLiteError(msg string, err error) error {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
		return fmt.Errorf("%s: %w", msg, models.ErrDuplicateName)
	}
	return fmt.Errorf("%s: %w", msg, err)
}
