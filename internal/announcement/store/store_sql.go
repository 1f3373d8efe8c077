package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"samiti/internal/announcement/models"
	"samiti/internal/platform/database"
	"samiti/pkg/platform/sentinel"
	"samiti/pkg/platform/tx"
)

const selectColumns = `SELECT id, title, content, audience, created_by, created_at FROM announcement`

// SQLStore persists announcements through database/sql.
type SQLStore struct {
	db *sql.DB
}

func NewSQL(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) Create(ctx context.Context, a *models.Announcement) error {
	err := tx.Conn(ctx, s.db).QueryRowContext(ctx, `
INSERT INTO announcement (title, content, audience, created_by, created_at)
VALUES ($1, $2, $3, $4, $5)
RETURNING id`,
		a.Title, a.Content, a.Audience, a.CreatedBy, a.CreatedAt,
	).Scan(&a.ID)
	if err != nil {
		return fmt.Errorf("insert announcement: %w", database.MapWriteError(err))
	}
	return nil
}

func (s *SQLStore) FindByID(ctx context.Context, id int64) (*models.Announcement, error) {
	a, err := scan(tx.Conn(ctx, s.db).QueryRowContext(ctx, selectColumns+` WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find announcement: %w", err)
	}
	return a, nil
}

// List returns announcements newest first.
func (s *SQLStore) List(ctx context.Context) ([]*models.Announcement, error) {
	rows, err := tx.Conn(ctx, s.db).QueryContext(ctx, selectColumns+` ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list announcements: %w", err)
	}
	defer rows.Close()

	out := make([]*models.Announcement, 0)
	for rows.Next() {
		a, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan announcement: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate announcements: %w", err)
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scan(row scanner) (*models.Announcement, error) {
	var a models.Announcement
	if err := row.Scan(&a.ID, &a.Title, &a.Content, &a.Audience, &a.CreatedBy, &a.CreatedAt); err != nil {
		return nil, err
	}
	return &a, nil
}
