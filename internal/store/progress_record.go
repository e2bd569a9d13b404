package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// SQLProgressRepo keeps one progress document per grade.
type SQLProgressRepo struct {
	db *sql.DB
}

func (r *SQLProgressRepo) Get(ctx context.Context, grade string) ([]byte, bool, error) {
	var data []byte
	err := r.db.QueryRowContext(ctx,
		`SELECT data FROM progress_records WHERE grade = ?`, grade).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read progress for %s: %w", grade, err)
	}
	return data, true, nil
}

func (r *SQLProgressRepo) Put(ctx context.Context, grade string, data []byte) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO progress_records (grade, data, updated_at_ms)
		VALUES (?, ?, ?)
		ON CONFLICT(grade) DO UPDATE SET data = excluded.data, updated_at_ms = excluded.updated_at_ms`,
		grade, data, time.Now().UnixMilli())
	if err != nil {
		return fmt.Errorf("write progress for %s: %w", grade, err)
	}
	return nil
}
