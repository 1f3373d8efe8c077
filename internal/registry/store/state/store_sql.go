package state

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"samiti/internal/platform/database"
	"samiti/internal/registry/models"
	"samiti/pkg/platform/sentinel"
	"samiti/pkg/platform/tx"
)

const selectColumns = `SELECT id, state_code, state_name, contact_person, contact_phone, contact_email, status, created_at
FROM state_committee`

// SQLStore persists state committees through database/sql. The queries run
// unchanged on PostgreSQL (pgx or lib/pq) and SQLite.
type SQLStore struct {
	db *sql.DB
}

func NewSQL(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) Create(ctx context.Context, state *models.StateCommittee) error {
	err := tx.Conn(ctx, s.db).QueryRowContext(ctx, `
INSERT INTO state_committee (state_code, state_name, contact_person, contact_phone, contact_email, status, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id`,
		state.StateCode, state.StateName, state.ContactPerson, state.ContactPhone, state.ContactEmail,
		state.Status, state.CreatedAt,
	).Scan(&state.ID)
	if err != nil {
		return fmt.Errorf("insert state committee: %w", database.MapWriteError(err))
	}
	return nil
}

func (s *SQLStore) FindByID(ctx context.Context, id int64) (*models.StateCommittee, error) {
	return s.findOne(ctx, selectColumns+` WHERE id = $1`, id)
}

func (s *SQLStore) FindByCode(ctx context.Context, code string) (*models.StateCommittee, error) {
	return s.findOne(ctx, selectColumns+` WHERE state_code = $1`, code)
}

func (s *SQLStore) List(ctx context.Context) ([]*models.StateCommittee, error) {
	rows, err := tx.Conn(ctx, s.db).QueryContext(ctx, selectColumns+` ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list state committees: %w", err)
	}
	defer rows.Close()

	out := make([]*models.StateCommittee, 0)
	for rows.Next() {
		state, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan state committee: %w", err)
		}
		out = append(out, state)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate state committees: %w", err)
	}
	return out, nil
}

func (s *SQLStore) findOne(ctx context.Context, query string, arg any) (*models.StateCommittee, error) {
	state, err := scan(tx.Conn(ctx, s.db).QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find state committee: %w", err)
	}
	return state, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scan(row scanner) (*models.StateCommittee, error) {
	var st models.StateCommittee
	if err := row.Scan(&st.ID, &st.StateCode, &st.StateName, &st.ContactPerson, &st.ContactPhone,
		&st.ContactEmail, &st.Status, &st.CreatedAt); err != nil {
		return nil, err
	}
	return &st, nil
}
