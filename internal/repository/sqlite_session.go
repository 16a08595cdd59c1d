package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/tradieone/internal/db"
	"github.com/alexanderramin/tradieone/internal/domain"
)

// SQLiteSessionRepo stores the single current session row.
type SQLiteSessionRepo struct {
	db db.DBTX
}

func NewSQLiteSessionRepo(conn db.DBTX) *SQLiteSessionRepo {
	return &SQLiteSessionRepo{db: conn}
}

func (r *SQLiteSessionRepo) Get(ctx context.Context) (*domain.Session, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT token, email, updated_at FROM auth_session WHERE id = 'current'`)

	var s domain.Session
	var updated string
	if err := row.Scan(&s.Token, &s.Email, &updated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("session: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning session: %w", err)
	}
	s.UpdatedAt = parseTime(updated)
	return &s, nil
}

func (r *SQLiteSessionRepo) Save(ctx context.Context, s *domain.Session) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO auth_session (id, token, email, updated_at) VALUES ('current', ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET token = excluded.token, email = excluded.email, updated_at = excluded.updated_at`,
		s.Token, s.Email, nowUTC())
	if err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	return nil
}

func (r *SQLiteSessionRepo) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM auth_session`); err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}
	return nil
}
