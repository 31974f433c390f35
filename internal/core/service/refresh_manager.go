package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/premios/awards-api/internal/core/domain"
	"github.com/premios/awards-api/internal/core/ports"
)

// RefreshTokenManager owns the lifecycle of opaque refresh tokens: issuance
// with single-live-token-per-user replacement, lookup, and expiry-on-check
// deletion. Renewing an access token does not rotate the refresh token; the
// same opaque string stays valid until it naturally expires.
type RefreshTokenManager struct {
	repo ports.RefreshTokenRepository
	ttl  time.Duration
	log  zerolog.Logger
}

func NewRefreshTokenManager(repo ports.RefreshTokenRepository, ttl time.Duration, log zerolog.Logger) *RefreshTokenManager {
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &RefreshTokenManager{repo: repo, ttl: ttl, log: log}
}

// Issue creates a fresh refresh token for the user, atomically superseding
// any previously issued one. The replace happens in a single repository
// operation so two concurrent logins for the same user cannot leave two live
// tokens behind.
func (m *RefreshTokenManager) Issue(ctx context.Context, user *domain.User) (*domain.RefreshToken, error) {
	opaque, err := generateOpaqueToken()
	if err != nil {
		return nil, err
	}

	token := &domain.RefreshToken{
		UserID:    user.ID,
		Token:     opaque,
		ExpiresAt: time.Now().UTC().Add(m.ttl),
		CreatedAt: time.Now().UTC(),
	}

	if err := m.repo.Replace(ctx, token); err != nil {
		m.log.Error().Err(err).Str("user_id", user.ID).Msg("failed to persist refresh token")
		return nil, err
	}

	return token, nil
}

// Find resolves an opaque token string to its record. Returns
// domain.ErrUnknownToken when no record holds the string.
func (m *RefreshTokenManager) Find(ctx context.Context, token string) (*domain.RefreshToken, error) {
	return m.repo.FindByToken(ctx, token)
}

// CheckLive validates that the record has not expired. An expired record is
// deleted before failing, so a retried check fails identically with
// domain.ErrTokenExpired.
func (m *RefreshTokenManager) CheckLive(ctx context.Context, token *domain.RefreshToken) (*domain.RefreshToken, error) {
	if !token.Expired(time.Now().UTC()) {
		return token, nil
	}

	if err := m.repo.DeleteByToken(ctx, token.Token); err != nil && !errors.Is(err, domain.ErrUnknownToken) {
		m.log.Warn().Err(err).Str("user_id", token.UserID).Msg("failed to delete expired refresh token")
	}
	return nil, domain.ErrTokenExpired
}

// Revoke deletes a token outright, e.g. on logout.
func (m *RefreshTokenManager) Revoke(ctx context.Context, token string) error {
	return m.repo.DeleteByToken(ctx, token)
}
