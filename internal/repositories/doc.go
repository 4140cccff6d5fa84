// Package repositories implements persistence for recommendations.
//
// Two implementations of [models.RecommendationRepository] are provided:
//   - [RecommendationRepository] : SQLite via database/sql, schema from the embedded migrations in internal/shared
//   - [PostgresRepository] : PostgreSQL via sqlx, schema ensured on open with [PostgresRepository.EnsureSchema]
//
// [Open] picks one from [shared.DatabaseConfig] and returns it as a [Store], which owns the connection pool.
// Missing rows are reported as [models.ErrNotFound] and unique name violations as [models.ErrDuplicateName],
// so callers never inspect driver errors.
package repositories
