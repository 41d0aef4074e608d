package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"hrms-portal/internal/model"
)

// RecordRepository stores every HR entity kind in one table, keyed by kind
// and id, with the record itself kept as a JSONB body.
type RecordRepository struct {
	pool *pgxpool.Pool
}

func NewRecordRepository(pool *pgxpool.Pool) *RecordRepository {
	return &RecordRepository{pool: pool}
}

func (r *RecordRepository) Insert(ctx context.Context, kind, id string, body json.RawMessage, createdBy string) error {
	now := time.Now().UTC()
	_, err := r.pool.Exec(ctx,
		`INSERT INTO records (kind, id, body, created_by, created_at, updated_at)
		 VALUES ($1, $2, $3, nullif($4, '')::uuid, $5, $5)`,
		kind, id, body, createdBy, now)
	if isUniqueViolation(err) {
		return model.ErrDuplicateRecord
	}
	if err != nil {
		return fmt.Errorf("insert %s: %w", kind, err)
	}
	return nil
}

func (r *RecordRepository) Replace(ctx context.Context, kind, id string, body json.RawMessage) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE records SET body = $3, updated_at = $4 WHERE kind = $1 AND id = $2`,
		kind, id, body, time.Now().UTC())
	if isUniqueViolation(err) {
		return model.ErrDuplicateRecord
	}
	if err != nil {
		return fmt.Errorf("update %s: %w", kind, err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrRecordNotFound
	}
	return nil
}

func (r *RecordRepository) Delete(ctx context.Context, kind, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM records WHERE kind = $1 AND id = $2`, kind, id)
	if err != nil {
		return fmt.Errorf("delete %s: %w", kind, err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrRecordNotFound
	}
	return nil
}

func (r *RecordRepository) Get(ctx context.Context, kind, id string) (json.RawMessage, error) {
	var body json.RawMessage
	err := r.pool.QueryRow(ctx, `SELECT body FROM records WHERE kind = $1 AND id = $2`, kind, id).Scan(&body)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrRecordNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", kind, err)
	}
	return body, nil
}

// List returns every record of a kind in creation order.
func (r *RecordRepository) List(ctx context.Context, kind string) ([]json.RawMessage, error) {
	return r.query(ctx, `SELECT body FROM records WHERE kind = $1 ORDER BY created_at, id`, kind)
}

// Match returns the records whose body contains filter, e.g.
// {"employeeId":"e1","month":"Mar"}.
func (r *RecordRepository) Match(ctx context.Context, kind string, filter map[string]any) ([]json.RawMessage, error) {
	data, err := json.Marshal(filter)
	if err != nil {
		return nil, fmt.Errorf("encode %s filter: %w", kind, err)
	}
	return r.query(ctx, `SELECT body FROM records WHERE kind = $1 AND body @> $2::jsonb ORDER BY created_at, id`, kind, data)
}

// ExistsField reports whether another record of kind has field equal to
// value, ignoring case. exceptID excludes the record being updated.
func (r *RecordRepository) ExistsField(ctx context.Context, kind, field, value, exceptID string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(
			SELECT 1 FROM records
			WHERE kind = $1 AND lower(body ->> $2) = lower($3) AND id <> $4
		)`, kind, field, value, exceptID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check %s %s: %w", kind, field, err)
	}
	return exists, nil
}

func (r *RecordRepository) query(ctx context.Context, sql string, args ...any) ([]json.RawMessage, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	out := make([]json.RawMessage, 0)
	for rows.Next() {
		var body json.RawMessage
		if err := rows.Scan(&body); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		out = append(out, body)
	}
	return out, rows.Err()
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
