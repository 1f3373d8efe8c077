package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"samiti/internal/auth/models"
	"samiti/internal/platform/database"
	"samiti/pkg/platform/sentinel"
	"samiti/pkg/platform/tx"
)

const selectColumns = `SELECT id, login_id, password_hash, mobile_number, role_type, state_id, district_id, agency_id, status, created_at
FROM user_account`

// SQLUserStore persists user accounts through database/sql.
type SQLUserStore struct {
	db *sql.DB
}

func NewSQL(db *sql.DB) *SQLUserStore {
	return &SQLUserStore{db: db}
}

func (s *SQLUserStore) Create(ctx context.Context, u *models.UserAccount) error {
	err := tx.Conn(ctx, s.db).QueryRowContext(ctx, `
INSERT INTO user_account (login_id, password_hash, mobile_number, role_type, state_id, district_id, agency_id, status, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING id`,
		u.LoginID, u.PasswordHash, u.MobileNumber, string(u.RoleType),
		u.StateID, u.DistrictID, u.AgencyID, u.Status, u.CreatedAt,
	).Scan(&u.ID)
	if err != nil {
		return fmt.Errorf("insert user account: %w", database.MapWriteError(err))
	}
	return nil
}

func (s *SQLUserStore) FindByID(ctx context.Context, id int64) (*models.UserAccount, error) {
	return s.findOne(ctx, selectColumns+` WHERE id = $1`, id)
}

func (s *SQLUserStore) FindByLoginID(ctx context.Context, loginID string) (*models.UserAccount, error) {
	return s.findOne(ctx, selectColumns+` WHERE login_id = $1`, loginID)
}

func (s *SQLUserStore) FindByMobileNumber(ctx context.Context, mobile string) (*models.UserAccount, error) {
	return s.findOne(ctx, selectColumns+` WHERE mobile_number = $1`, mobile)
}

func (s *SQLUserStore) findOne(ctx context.Context, query string, arg any) (*models.UserAccount, error) {
	var (
		u                         models.UserAccount
		role                      string
		stateID, districtID, agID sql.NullInt64
	)
	err := tx.Conn(ctx, s.db).QueryRowContext(ctx, query, arg).Scan(
		&u.ID, &u.LoginID, &u.PasswordHash, &u.MobileNumber, &role,
		&stateID, &districtID, &agID, &u.Status, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find user account: %w", err)
	}
	u.RoleType = models.RoleType(role)
	u.StateID = nullableID(stateID)
	u.DistrictID = nullableID(districtID)
	u.AgencyID = nullableID(agID)
	return &u, nil
}

func nullableID(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	id := v.Int64
	return &id
}
