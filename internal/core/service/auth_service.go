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

const tokenTypeBearer = "Bearer"

// AuthService orchestrates registration, login, token renewal, activation,
// and the password reset flow. It is the only component the HTTP layer calls.
type AuthService struct {
	users       ports.UserRepository
	roles       ports.RoleCatalog
	credentials *CredentialStore
	issuer      *AccessTokenIssuer
	refresh     *RefreshTokenManager
	activation  *ActivationTokenManager
	reset       *PasswordResetTokenManager
	mailer      ports.NotificationSink
	activateURL string
	log         zerolog.Logger
}

func NewAuthService(
	users ports.UserRepository,
	roles ports.RoleCatalog,
	credentials *CredentialStore,
	issuer *AccessTokenIssuer,
	refresh *RefreshTokenManager,
	activation *ActivationTokenManager,
	reset *PasswordResetTokenManager,
	mailer ports.NotificationSink,
	activateURL string,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{
		users:       users,
		roles:       roles,
		credentials: credentials,
		issuer:      issuer,
		refresh:     refresh,
		activation:  activation,
		reset:       reset,
		mailer:      mailer,
		activateURL: activateURL,
		log:         log,
	}
}

// Register creates a disabled account with the catalogue's default role and a
// hashed password, then issues an activation token and mails the link. Both
// uniqueness checks run before any write.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*domain.User, error) {
	if _, err := s.users.FindByUsername(ctx, username); err == nil {
		return nil, domain.ErrUsernameTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	role, err := s.roles.Default()
	if err != nil {
		// Misconfigured role catalogue; nothing the caller can correct.
		return nil, err
	}

	hash, err := s.credentials.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Enabled:      false,
		Roles:        []domain.Role{role},
		CreatedAt:    time.Now().UTC(),
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	token, err := s.activation.Issue(ctx, created)
	if err != nil {
		return nil, err
	}

	// Activation token is persisted; email delivery is best-effort.
	subject := "Activate your account"
	body := fmt.Sprintf("Welcome, %s. Confirm your address to activate your account:\n\n%s/%s\n", username, s.activateURL, token)
	if err := s.mailer.Send(ctx, created.Email, subject, body); err != nil {
		s.log.Error().Err(err).Str("user_id", created.ID).Msg("failed to send activation email")
	}

	s.log.Info().Str("user_id", created.ID).Str("username", username).Msg("user registered")
	metrics.RegistrationsTotal.Inc()
	return created, nil
}

// Login verifies the password against the stored hash and, on success, issues
// an access token plus a refresh token. Issuing the refresh token supersedes
// any previously live one for this user. Accounts that have not completed
// activation cannot log in.
func (s *AuthService) Login(ctx context.Context, username, password string) (*ports.TokenPair, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
			return nil, domain.ErrInvalidCredentials
		}
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	if !s.credentials.Verify(password, user.PasswordHash) {
		metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	if !user.Enabled {
		metrics.LoginsTotal.WithLabelValues("disabled").Inc()
		return nil, domain.ErrAccountDisabled
	}

	pair, err := s.issueTokenPair(ctx, user, "")
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	s.log.Info().Str("user_id", user.ID).Str("username", username).Msg("login succeeded")
	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return pair, nil
}

// Refresh exchanges a live refresh token for a fresh access token. The
// refresh token itself is not rotated: the response carries the same opaque
// string, valid until its natural expiry.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*ports.TokenPair, error) {
	record, err := s.refresh.Find(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, domain.ErrUnknownToken) {
			metrics.TokenRefreshesTotal.WithLabelValues("unknown").Inc()
			return nil, domain.ErrUnknownToken
		}
		metrics.TokenRefreshesTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	if _, err := s.refresh.CheckLive(ctx, record); err != nil {
		metrics.TokenRefreshesTotal.WithLabelValues("expired").Inc()
		return nil, err
	}

	user, err := s.users.FindByID(ctx, record.UserID)
	if err != nil {
		metrics.TokenRefreshesTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	pair, err := s.issueTokenPair(ctx, user, record.Token)
	if err != nil {
		metrics.TokenRefreshesTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	metrics.TokenRefreshesTotal.WithLabelValues("success").Inc()
	return pair, nil
}

// Activate delegates to the activation manager. Unknown tokens are a no-op
// success by design.
func (s *AuthService) Activate(ctx context.Context, token string) error {
	_, err := s.activation.Consume(ctx, token)
	return err
}

// RequestPasswordReset delegates to the reset manager.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	return s.reset.Request(ctx, email)
}

// ConfirmPasswordReset delegates to the reset manager.
func (s *AuthService) ConfirmPasswordReset(ctx context.Context, token, newPassword string) error {
	return s.reset.Confirm(ctx, token, newPassword)
}

// issueTokenPair signs an access token for the user and pairs it with a
// refresh token: the given one when reuse is requested, otherwise a newly
// issued (superseding) one.
func (s *AuthService) issueTokenPair(ctx context.Context, user *domain.User, reuseRefresh string) (*ports.TokenPair, error) {
	access, err := s.issuer.Issue(user.ID, user.Username, user.Roles)
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}

	refresh := reuseRefresh
	if refresh == "" {
		record, err := s.refresh.Issue(ctx, user)
		if err != nil {
			return nil, err
		}
		refresh = record.Token
	}

	return &ports.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    tokenTypeBearer,
		ExpiresIn:    s.issuer.TTL(),
	}, nil
}
