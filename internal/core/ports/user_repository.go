package ports

import (
	"context"

	"github.com/premios/awards-api/internal/core/domain"
)

// UserRepository defines the persistence interface for user accounts.
// Lookups by token are exact-match and return domain.ErrUserNotFound when no
// account holds the token.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByActivationToken(ctx context.Context, token string) (*domain.User, error)
	FindByResetToken(ctx context.Context, token string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}
