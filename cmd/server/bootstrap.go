package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	authmodels "samiti/internal/auth/models"
	"samiti/internal/auth/password"
	"samiti/internal/platform/config"
	registrymodels "samiti/internal/registry/models"
	"samiti/pkg/platform/sentinel"
)

type txRunner func(ctx context.Context, fn func(ctx context.Context) error) error

type bootstrapStates interface {
	Create(ctx context.Context, state *registrymodels.StateCommittee) error
	FindByCode(ctx context.Context, code string) (*registrymodels.StateCommittee, error)
}

type bootstrapUsers interface {
	Create(ctx context.Context, user *authmodels.UserAccount) error
	FindByLoginID(ctx context.Context, loginID string) (*authmodels.UserAccount, error)
}

// bootstrap seeds the first STATE user and its state committee. Register needs
// an authenticated STATE caller, so without a seed no account could ever be made.
// It is a no-op once the login id exists. Both rows are written inside inTx.
func bootstrap(ctx context.Context, cfg config.BootstrapConfig, states bootstrapStates, users bootstrapUsers, inTx txRunner, log *slog.Logger) error {
	_, err := users.FindByLoginID(ctx, cfg.LoginID)
	if err == nil {
		log.InfoContext(ctx, "bootstrap user present", "login_id", cfg.LoginID)
		return nil
	}
	if !errors.Is(err, sentinel.ErrNotFound) {
		return fmt.Errorf("lookup bootstrap user: %w", err)
	}

	hash, err := password.Hash(cfg.Password)
	if err != nil {
		return fmt.Errorf("hash bootstrap password: %w", err)
	}

	var st *registrymodels.StateCommittee
	account := &authmodels.UserAccount{
		LoginID:      cfg.LoginID,
		PasswordHash: hash,
		MobileNumber: cfg.MobileNumber,
		RoleType:     authmodels.RoleState,
		Status:       authmodels.StatusActive,
		CreatedAt:    time.Now(),
	}
	err = inTx(ctx, func(ctx context.Context) error {
		st, err = bootstrapState(ctx, cfg, states)
		if err != nil {
			return err
		}
		account.StateID = &st.ID
		if err := users.Create(ctx, account); err != nil {
			return fmt.Errorf("create bootstrap user: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.InfoContext(ctx, "bootstrap user created",
		"login_id", cfg.LoginID,
		"user_id", account.ID,
		"state_id", st.ID,
	)
	return nil
}

func bootstrapState(ctx context.Context, cfg config.BootstrapConfig, states bootstrapStates) (*registrymodels.StateCommittee, error) {
	st, err := states.FindByCode(ctx, cfg.StateCode)
	if err == nil {
		return st, nil
	}
	if !errors.Is(err, sentinel.ErrNotFound) {
		return nil, fmt.Errorf("lookup bootstrap state: %w", err)
	}

	st = &registrymodels.StateCommittee{
		StateCode: cfg.StateCode,
		StateName: cfg.StateName,
		Status:    registrymodels.StatusActive,
		CreatedAt: time.Now(),
	}
	if err := states.Create(ctx, st); err != nil {
		return nil, fmt.Errorf("create bootstrap state: %w", err)
	}
	return st, nil
}
