package analyses

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgconn"

	"prep-backend/internal/readiness"
)

const pgUniqueViolation = "23505"

var analysisColumns = []string{
	"id", "company", "role", "jd_text", "source_key", "report", "created_at", "updated_at",
}

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
	// Limit caps the stored history; zero means DefaultHistoryLimit.
	Limit int
}

type rowScanner interface {
	Scan(dest ...any) error
}

// Create inserts a new analysis and evicts the oldest rows beyond the limit
// in the same transaction.
func (r *PGRepo) Create(ctx context.Context, analysis Analysis) ([]string, error) {
	const insert = `
INSERT INTO analyses (
	id, company, role, jd_text, source_key, readiness_score, adjusted_score, report, created_at, updated_at
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	const evict = `
DELETE FROM analyses
WHERE id IN (
	SELECT id FROM analyses ORDER BY created_at DESC, id DESC OFFSET $1
)
RETURNING source_key`
	report, err := marshalJSONB(analysis.Report)
	if err != nil {
		return nil, fmt.Errorf("encode report: %w", err)
	}
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	updatedAt := analysis.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = analysis.CreatedAt
	}
	_, err = tx.ExecContext(ctx, insert,
		analysis.ID,
		analysis.Company,
		analysis.Role,
		analysis.JDText,
		nullString(analysis.SourceKey),
		analysis.ReadinessScore,
		analysis.AdjustedReadinessScore,
		report,
		analysis.CreatedAt,
		updatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, ErrDuplicateID
		}
		return nil, err
	}
	evicted, err := evictRows(ctx, tx, evict, r.limit())
	if err != nil {
		return nil, fmt.Errorf("evict history: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return evicted, nil
}

func evictRows(ctx context.Context, tx *sql.Tx, query string, keep int) ([]string, error) {
	rows, err := tx.QueryContext(ctx, query, keep)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key sql.NullString
		if err := rows.Scan(&key); err != nil {
			return nil, err
		}
		if key.Valid && key.String != "" {
			keys = append(keys, key.String)
		}
	}
	return keys, rows.Err()
}

// GetByID returns an analysis by ID.
func (r *PGRepo) GetByID(ctx context.Context, analysisID string) (Analysis, error) {
	query, args, err := sq.Select(analysisColumns...).
		From("analyses").
		Where(sq.Eq{"id": analysisID}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return Analysis{}, err
	}
	return scanAnalysis(r.DB.QueryRowContext(ctx, query, args...))
}

// List returns analyses most recent first.
func (r *PGRepo) List(ctx context.Context, limit, offset int) ([]Analysis, error) {
	builder := sq.Select(analysisColumns...).
		From("analyses").
		OrderBy("created_at DESC", "id DESC").
		PlaceholderFormat(sq.Dollar)
	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}
	if offset > 0 {
		builder = builder.Offset(uint64(offset))
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Analysis{}
	for rows.Next() {
		a, err := scanAnalysis(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// UpdateConfidence rewrites the stored confidence map and adjusted score.
func (r *PGRepo) UpdateConfidence(ctx context.Context, analysisID string, confidence readiness.ConfidenceMap, adjusted int) (Analysis, error) {
	const lock = `
SELECT id, company, role, jd_text, source_key, report, created_at, updated_at
FROM analyses
WHERE id = $1
FOR UPDATE`
	const update = `
UPDATE analyses
SET report = $2, adjusted_score = $3, updated_at = $4
WHERE id = $1`
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return Analysis{}, err
	}
	defer tx.Rollback()

	a, err := scanAnalysis(tx.QueryRowContext(ctx, lock, analysisID))
	if err != nil {
		return Analysis{}, err
	}
	a.SkillConfidenceMap = confidence
	a.AdjustedReadinessScore = adjusted
	a.UpdatedAt = timestampNow()
	report, err := marshalJSONB(a.Report)
	if err != nil {
		return Analysis{}, fmt.Errorf("encode report: %w", err)
	}
	if _, err := tx.ExecContext(ctx, update, analysisID, report, adjusted, a.UpdatedAt); err != nil {
		return Analysis{}, err
	}
	if err := tx.Commit(); err != nil {
		return Analysis{}, err
	}
	return a, nil
}

// Delete removes a single analysis.
func (r *PGRepo) Delete(ctx context.Context, analysisID string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM analyses WHERE id = $1`, analysisID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteAll clears the history.
func (r *PGRepo) DeleteAll(ctx context.Context) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM analyses`)
	return err
}

func (r *PGRepo) limit() int {
	if r.Limit <= 0 {
		return DefaultHistoryLimit
	}
	return r.Limit
}

func scanAnalysis(row rowScanner) (Analysis, error) {
	var a Analysis
	var sourceKey sql.NullString
	var report []byte
	err := row.Scan(
		&a.ID,
		&a.Company,
		&a.Role,
		&a.JDText,
		&sourceKey,
		&report,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Analysis{}, ErrNotFound
		}
		return Analysis{}, err
	}
	if sourceKey.Valid {
		a.SourceKey = sourceKey.String
	}
	if len(report) > 0 {
		if err := json.Unmarshal(report, &a.Report); err != nil {
			return Analysis{}, fmt.Errorf("decode report id=%s: %w", a.ID, err)
		}
	}
	return a, nil
}

func marshalJSONB(value any) ([]byte, error) {
	if value == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(value)
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
