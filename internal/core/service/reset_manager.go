package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/premios/awards-api/internal/api/metrics"
	"github.com/premios/awards-api/internal/core/domain"
	"github.com/premios/awards-api/internal/core/ports"
)

// ResetRequestGuard suppresses repeated reset emails for the same address
// inside a short window (Redis-backed, best-effort).
type ResetRequestGuard interface {
	RecentlyRequested(ctx context.Context, email string) (bool, error)
	Mark(ctx context.Context, email string) error
}

// PasswordResetTokenManager implements the time-boxed password reset flow:
// a random token with an explicit expiry is stored on the user and mailed
// out; confirming with a live token rehashes the password and clears both
// reset fields.
type PasswordResetTokenManager struct {
	users       ports.UserRepository
	credentials *CredentialStore
	mailer      ports.NotificationSink
	guard       ResetRequestGuard
	ttl         time.Duration
	resetURL    string
	log         zerolog.Logger
}

func NewPasswordResetTokenManager(
	users ports.UserRepository,
	credentials *CredentialStore,
	mailer ports.NotificationSink,
	guard ResetRequestGuard,
	ttl time.Duration,
	resetURL string,
	log zerolog.Logger,
) *PasswordResetTokenManager {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &PasswordResetTokenManager{
		users:       users,
		credentials: credentials,
		mailer:      mailer,
		guard:       guard,
		ttl:         ttl,
		resetURL:    resetURL,
		log:         log,
	}
}

// Request starts a reset for the account registered under email. An unknown
// address produces no observable effect — no error, no email — so the
// endpoint cannot be used to probe which addresses are registered.
func (m *PasswordResetTokenManager) Request(ctx context.Context, email string) error {
	user, err := m.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.PasswordResetsTotal.WithLabelValues("request", "unknown").Inc()
			return nil
		}
		return err
	}

	if m.guard != nil {
		if recent, err := m.guard.RecentlyRequested(ctx, email); err != nil {
			m.log.Warn().Err(err).Msg("reset guard check failed, continuing")
		} else if recent {
			metrics.PasswordResetsTotal.WithLabelValues("request", "throttled").Inc()
			return nil
		}
	}

	token, err := generateOpaqueToken()
	if err != nil {
		return err
	}

	expiry := time.Now().UTC().Add(m.ttl)
	user.ResetToken = &token
	user.ResetTokenExpiry = &expiry

	if err := m.users.Update(ctx, user); err != nil {
		return fmt.Errorf("store reset token: %w", err)
	}

	if m.guard != nil {
		if err := m.guard.Mark(ctx, email); err != nil {
			m.log.Warn().Err(err).Msg("reset guard mark failed")
		}
	}

	// Token state is already persisted; a failed send must not undo it.
	subject := "Password reset"
	body := fmt.Sprintf("Use the link below to choose a new password. It expires in %s.\n\n%s/%s\n", m.ttl, m.resetURL, token)
	if err := m.mailer.Send(ctx, user.Email, subject, body); err != nil {
		m.log.Error().Err(err).Str("user_id", user.ID).Msg("failed to send password reset email")
	}

	metrics.PasswordResetsTotal.WithLabelValues("request", "success").Inc()
	return nil
}

// Confirm finishes a reset. Fails domain.ErrInvalidResetToken when no account
// holds the token and domain.ErrTokenExpired when its window has passed; an
// expired token is cleared on detection, so retries fail identically.
func (m *PasswordResetTokenManager) Confirm(ctx context.Context, token, newPassword string) error {
	user, err := m.users.FindByResetToken(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.PasswordResetsTotal.WithLabelValues("confirm", "unknown").Inc()
			return domain.ErrInvalidResetToken
		}
		return err
	}

	if user.ResetTokenExpiry == nil || time.Now().UTC().After(*user.ResetTokenExpiry) {
		user.ResetToken = nil
		user.ResetTokenExpiry = nil
		if err := m.users.Update(ctx, user); err != nil {
			m.log.Warn().Err(err).Str("user_id", user.ID).Msg("failed to clear expired reset token")
		}
		metrics.PasswordResetsTotal.WithLabelValues("confirm", "expired").Inc()
		return domain.ErrTokenExpired
	}

	hash, err := m.credentials.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("hash new password: %w", err)
	}

	user.PasswordHash = hash
	user.ResetToken = nil
	user.ResetTokenExpiry = nil

	if err := m.users.Update(ctx, user); err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	m.log.Info().Str("user_id", user.ID).Msg("password reset completed")
	metrics.PasswordResetsTotal.WithLabelValues("confirm", "success").Inc()
	return nil
}
