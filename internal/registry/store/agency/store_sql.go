package agency

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

const selectColumns = `SELECT id, district_id, agency_code, legal_name, trade_name, contact_person, contact_phone, contact_email,
       address_line1, address_line2, city, pincode, gst_number, membership_status, created_at
FROM agency_member`

// SQLStore persists agency members through database/sql.
type SQLStore struct {
	db *sql.DB
}

func NewSQL(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) Create(ctx context.Context, a *models.AgencyMember) error {
	err := tx.Conn(ctx, s.db).QueryRowContext(ctx, `
INSERT INTO agency_member (district_id, agency_code, legal_name, trade_name, contact_person, contact_phone, contact_email,
                           address_line1, address_line2, city, pincode, gst_number, membership_status, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
RETURNING id`,
		a.DistrictID, a.AgencyCode, a.LegalName, a.TradeName, a.ContactPerson, a.ContactPhone, a.ContactEmail,
		a.AddressLine1, a.AddressLine2, a.City, a.Pincode, a.GSTNumber, a.MembershipStatus, a.CreatedAt,
	).Scan(&a.ID)
	if err != nil {
		return fmt.Errorf("insert agency member: %w", database.MapWriteError(err))
	}
	return nil
}

func (s *SQLStore) FindByID(ctx context.Context, id int64) (*models.AgencyMember, error) {
	return s.findOne(ctx, selectColumns+` WHERE id = $1`, id)
}

func (s *SQLStore) FindByCode(ctx context.Context, code string) (*models.AgencyMember, error) {
	return s.findOne(ctx, selectColumns+` WHERE agency_code = $1`, code)
}

// List returns agencies newest first. A zero districtID returns every agency.
func (s *SQLStore) List(ctx context.Context, districtID int64) ([]*models.AgencyMember, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if districtID == 0 {
		rows, err = tx.Conn(ctx, s.db).QueryContext(ctx, selectColumns+` ORDER BY id DESC`)
	} else {
		rows, err = tx.Conn(ctx, s.db).QueryContext(ctx, selectColumns+` WHERE district_id = $1 ORDER BY id DESC`, districtID)
	}
	if err != nil {
		return nil, fmt.Errorf("list agency members: %w", err)
	}
	defer rows.Close()

	out := make([]*models.AgencyMember, 0)
	for rows.Next() {
		agency, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan agency member: %w", err)
		}
		out = append(out, agency)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate agency members: %w", err)
	}
	return out, nil
}

func (s *SQLStore) findOne(ctx context.Context, query string, arg any) (*models.AgencyMember, error) {
	agency, err := scan(tx.Conn(ctx, s.db).QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find agency member: %w", err)
	}
	return agency, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scan(row scanner) (*models.AgencyMember, error) {
	var a models.AgencyMember
	if err := row.Scan(&a.ID, &a.DistrictID, &a.AgencyCode, &a.LegalName, &a.TradeName, &a.ContactPerson,
		&a.ContactPhone, &a.ContactEmail, &a.AddressLine1, &a.AddressLine2, &a.City, &a.Pincode,
		&a.GSTNumber, &a.MembershipStatus, &a.CreatedAt); err != nil {
		return nil, err
	}
	return &a, nil
}
