// Package lockout tracks failed logins per login id and client IP, and blocks
// further attempts once a fixed window holds too many failures.
package lockout

import (
	"context"
	"errors"
	"time"

	dErrors "samiti/pkg/domain-errors"
	"samiti/pkg/requestcontext"
)

const keyPrefix = "lockout:login:"

// key scopes failures to the login id and the client IP in ctx, so guesses from
// one address cannot lock the account for everyone else.
func key(ctx context.Context, loginID string) string {
	ip := requestcontext.ClientIP(ctx)
	if ip == "" {
		ip = "unknown"
	}
	return keyPrefix + loginID + ":" + ip
}

// Store counts failures inside a window that starts with the first failure.
type Store interface {
	// Failures returns the live failure count and when its window resets.
	// An unknown or expired key yields zero.
	Failures(ctx context.Context, key string, now time.Time) (int, time.Time, error)
	// Increment adds a failure, opening a window of the given length when none is live.
	Increment(ctx context.Context, key string, window time.Duration, now time.Time) (int, time.Time, error)
	Clear(ctx context.Context, key string) error
}

// Config holds the lockout thresholds.
type Config struct {
	MaxFailures int
	Window      time.Duration
}

// DefaultConfig is five failures per fifteen minutes.
func DefaultConfig() Config {
	return Config{MaxFailures: 5, Window: 15 * time.Minute}
}

// Status is the lockout state of one login id and client IP.
type Status struct {
	Locked     bool
	Failures   int
	RetryAfter time.Duration
}

type Service struct {
	store  Store
	config Config
}

func New(store Store, cfg Config) (*Service, error) {
	if store == nil {
		return nil, errors.New("lockout store is required")
	}
	if cfg.MaxFailures <= 0 || cfg.Window <= 0 {
		cfg = DefaultConfig()
	}
	return &Service{store: store, config: cfg}, nil
}

// Check reports whether loginID is currently locked out for the caller's IP.
func (s *Service) Check(ctx context.Context, loginID string) (*Status, error) {
	now := requestcontext.Now(ctx)
	count, resetAt, err := s.store.Failures(ctx, key(ctx, loginID), now)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read login failures")
	}
	return s.status(count, resetAt, now), nil
}

// RecordFailure counts a failed attempt. The returned status is locked when this
// failure reached the threshold.
func (s *Service) RecordFailure(ctx context.Context, loginID string) (*Status, error) {
	now := requestcontext.Now(ctx)
	count, resetAt, err := s.store.Increment(ctx, key(ctx, loginID), s.config.Window, now)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to record login failure")
	}
	return s.status(count, resetAt, now), nil
}

// Clear forgets the failures for loginID from the caller's IP.
func (s *Service) Clear(ctx context.Context, loginID string) error {
	if err := s.store.Clear(ctx, key(ctx, loginID)); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to clear login failures")
	}
	return nil
}

func (s *Service) status(count int, resetAt, now time.Time) *Status {
	st := &Status{Failures: count}
	if count >= s.config.MaxFailures {
		st.Locked = true
		st.RetryAfter = max(resetAt.Sub(now), 0)
	}
	return st
}
