package main

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authmodels "samiti/internal/auth/models"
	"samiti/internal/auth/password"
	"samiti/internal/auth/store/user"
	"samiti/internal/platform/config"
	"samiti/internal/platform/database/dbtest"
	registrymodels "samiti/internal/registry/models"
	"samiti/internal/registry/store/state"
	"samiti/pkg/platform/sentinel"
	"samiti/pkg/platform/tx"
)

func direct(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func TestBootstrap(t *testing.T) {
	ctx := context.Background()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := config.BootstrapConfig{
		LoginID:      "root",
		Password:     "change-me-now",
		MobileNumber: "9000000000",
		StateCode:    "KL",
		StateName:    "Kerala",
	}

	t.Run("creates state and user on first run", func(t *testing.T) {
		states, users := state.NewInMemory(), user.New()

		require.NoError(t, bootstrap(ctx, cfg, states, users, direct, log))

		st, err := states.FindByCode(ctx, "KL")
		require.NoError(t, err)
		account, err := users.FindByLoginID(ctx, "root")
		require.NoError(t, err)
		require.NotNil(t, account.StateID)
		assert.Equal(t, st.ID, *account.StateID)
		assert.NoError(t, password.Verify("change-me-now", account.PasswordHash))
	})

	t.Run("reuses an existing state", func(t *testing.T) {
		states, users := state.NewInMemory(), user.New()
		existing := &registrymodels.StateCommittee{StateCode: "KL", StateName: "Kerala"}
		require.NoError(t, states.Create(ctx, existing))

		require.NoError(t, bootstrap(ctx, cfg, states, users, direct, log))

		account, err := users.FindByLoginID(ctx, "root")
		require.NoError(t, err)
		assert.Equal(t, existing.ID, *account.StateID)
	})

	t.Run("second run is a no-op", func(t *testing.T) {
		states, users := state.NewInMemory(), user.New()
		require.NoError(t, bootstrap(ctx, cfg, states, users, direct, log))
		first, err := users.FindByLoginID(ctx, "root")
		require.NoError(t, err)

		require.NoError(t, bootstrap(ctx, cfg, states, users, direct, log))
		again, err := users.FindByLoginID(ctx, "root")
		require.NoError(t, err)
		assert.Equal(t, first.PasswordHash, again.PasswordHash)
	})

	t.Run("user failure rolls back the seeded state", func(t *testing.T) {
		db := dbtest.NewSQLite(t)
		states, users := state.NewSQL(db), user.NewSQL(db)
		inTx := func(ctx context.Context, fn func(ctx context.Context) error) error {
			return tx.Run(ctx, db, fn)
		}
		other := &registrymodels.StateCommittee{StateCode: "TN", StateName: "Tamil Nadu", Status: registrymodels.StatusActive, CreatedAt: time.Now()}
		require.NoError(t, states.Create(ctx, other))
		require.NoError(t, users.Create(ctx, &authmodels.UserAccount{
			LoginID: "someone", PasswordHash: "x", MobileNumber: cfg.MobileNumber,
			RoleType: authmodels.RoleState, StateID: &other.ID, Status: authmodels.StatusActive, CreatedAt: time.Now(),
		}))

		err := bootstrap(ctx, cfg, states, users, inTx, log)
		require.Error(t, err)

		_, err = states.FindByCode(ctx, "KL")
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
	})
}
