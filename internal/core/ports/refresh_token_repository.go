package ports

import (
	"context"

	"github.com/premios/awards-api/internal/core/domain"
)

// RefreshTokenRepository defines the persistence interface for refresh tokens.
//
// Replace must atomically supersede any existing token for token.UserID with
// the new record, even under concurrent calls for the same user. Backed by a
// unique constraint on the owning-user column plus an upsert, two racing
// replacements serialise on the constraint and the last write wins; the
// single-live-token-per-user invariant holds either way.
type RefreshTokenRepository interface {
	Replace(ctx context.Context, token *domain.RefreshToken) error
	FindByToken(ctx context.Context, token string) (*domain.RefreshToken, error)
	DeleteByToken(ctx context.Context, token string) error
}
