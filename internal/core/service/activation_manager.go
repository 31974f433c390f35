package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/premios/awards-api/internal/api/metrics"
	"github.com/premios/awards-api/internal/core/domain"
	"github.com/premios/awards-api/internal/core/ports"
)

// ActivationOutcome reports what Consume did.
type ActivationOutcome int

const (
	// ActivationNoOp means no state changed: the token is unknown (already
	// consumed, most likely) or the account was already enabled.
	ActivationNoOp ActivationOutcome = iota
	// Activated means the account was enabled and the token cleared.
	Activated
)

// ActivationTokenManager gates account enablement behind a single-use token
// delivered by email. Tokens carry no expiry; an activation link stays valid
// until consumed.
type ActivationTokenManager struct {
	users ports.UserRepository
	log   zerolog.Logger
}

func NewActivationTokenManager(users ports.UserRepository, log zerolog.Logger) *ActivationTokenManager {
	return &ActivationTokenManager{users: users, log: log}
}

// Issue generates an activation token and stores it on the user record,
// replacing any prior value. The account stays disabled until the token is
// consumed. Returns the plaintext token for embedding in a notification link.
func (m *ActivationTokenManager) Issue(ctx context.Context, user *domain.User) (string, error) {
	token, err := generateOpaqueToken()
	if err != nil {
		return "", err
	}

	user.ActivationToken = &token
	user.Enabled = false

	if err := m.users.Update(ctx, user); err != nil {
		return "", fmt.Errorf("store activation token: %w", err)
	}
	return token, nil
}

// Consume activates the account holding the token. An unknown token is a
// no-op success rather than an error: repeated clicks on an already-used
// activation link must not surface a failure, and a hard error here would
// leak whether an address is registered.
func (m *ActivationTokenManager) Consume(ctx context.Context, token string) (ActivationOutcome, error) {
	user, err := m.users.FindByActivationToken(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.ActivationsTotal.WithLabelValues("noop").Inc()
			return ActivationNoOp, nil
		}
		return ActivationNoOp, err
	}

	if user.Enabled {
		// Token survived a previous activation; nothing left to do.
		metrics.ActivationsTotal.WithLabelValues("noop").Inc()
		return ActivationNoOp, nil
	}

	user.Enabled = true
	user.ActivationToken = nil

	if err := m.users.Update(ctx, user); err != nil {
		return ActivationNoOp, fmt.Errorf("activate user: %w", err)
	}

	m.log.Info().Str("user_id", user.ID).Str("username", user.Username).Msg("account activated")
	metrics.ActivationsTotal.WithLabelValues("activated").Inc()
	return Activated, nil
}
