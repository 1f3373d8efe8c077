package district

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

const selectColumns = `SELECT id, state_id, district_code, district_name, contact_person, contact_phone, contact_email, status, created_at
FROM district_committee`

// SQLStore persists district committees through database/sql.
type SQLStore struct {
	db *sql.DB
}

func NewSQL(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

// Create inserts the district. A missing parent state surfaces as sentinel.ErrMissingParent.
func (s *SQLStore) Create(ctx context.Context, district *models.DistrictCommittee) error {
	err := tx.Conn(ctx, s.db).QueryRowContext(ctx, `
INSERT INTO district_committee (state_id, district_code, district_name, contact_person, contact_phone, contact_email, status, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id`,
		district.StateID, district.DistrictCode, district.DistrictName, district.ContactPerson,
		district.ContactPhone, district.ContactEmail, district.Status, district.CreatedAt,
	).Scan(&district.ID)
	if err != nil {
		return fmt.Errorf("insert district committee: %w", database.MapWriteError(err))
	}
	return nil
}

func (s *SQLStore) FindByID(ctx context.Context, id int64) (*models.DistrictCommittee, error) {
	return s.findOne(ctx, selectColumns+` WHERE id = $1`, id)
}

func (s *SQLStore) FindByCode(ctx context.Context, code string) (*models.DistrictCommittee, error) {
	return s.findOne(ctx, selectColumns+` WHERE district_code = $1`, code)
}

// List returns districts ordered by id. A zero stateID returns every district.
func (s *SQLStore) List(ctx context.Context, stateID int64) ([]*models.DistrictCommittee, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if stateID == 0 {
		rows, err = tx.Conn(ctx, s.db).QueryContext(ctx, selectColumns+` ORDER BY id`)
	} else {
		rows, err = tx.Conn(ctx, s.db).QueryContext(ctx, selectColumns+` WHERE state_id = $1 ORDER BY id`, stateID)
	}
	if err != nil {
		return nil, fmt.Errorf("list district committees: %w", err)
	}
	defer rows.Close()

	out := make([]*models.DistrictCommittee, 0)
	for rows.Next() {
		district, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan district committee: %w", err)
		}
		out = append(out, district)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate district committees: %w", err)
	}
	return out, nil
}

func (s *SQLStore) findOne(ctx context.Context, query string, arg any) (*models.DistrictCommittee, error) {
	district, err := scan(tx.Conn(ctx, s.db).QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find district committee: %w", err)
	}
	return district, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scan(row scanner) (*models.DistrictCommittee, error) {
	var d models.DistrictCommittee
	if err := row.Scan(&d.ID, &d.StateID, &d.DistrictCode, &d.DistrictName, &d.ContactPerson,
		&d.ContactPhone, &d.ContactEmail, &d.Status, &d.CreatedAt); err != nil {
		return nil, err
	}
	return &d, nil
}
