package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/premios/awards-api/internal/core/domain"
)

const refreshTokensCollection = "refresh_tokens"

type MongoRefreshTokenRepository struct {
	coll *mongo.Collection
}

func NewRefreshTokenRepository(db *mongo.Database) *MongoRefreshTokenRepository {
	return &MongoRefreshTokenRepository{coll: db.Collection(refreshTokensCollection)}
}

type mongoRefreshToken struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    string             `bson:"user_id"`
	Token     string             `bson:"token"`
	ExpiresAt time.Time          `bson:"expires_at"`
	CreatedAt time.Time          `bson:"created_at"`
}

// replaceAttempts bounds the upsert retry loop under concurrent issuance.
const replaceAttempts = 3

// Replace supersedes any existing token for token.UserID in one server-side
// operation: an upsert replace keyed on the user_id unique index. There is no
// separate delete-then-insert window for concurrent logins to race through.
// Two upserts that both observe no existing row can still collide on the
// index; the loser retries, now matching the winner's row, and replaces it.
func (r *MongoRefreshTokenRepository) Replace(ctx context.Context, token *domain.RefreshToken) error {
	doc := mongoRefreshToken{
		UserID:    token.UserID,
		Token:     token.Token,
		ExpiresAt: token.ExpiresAt,
		CreatedAt: token.CreatedAt,
	}

	opts := options.FindOneAndReplace().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var err error
	for attempt := 0; attempt < replaceAttempts; attempt++ {
		var replaced mongoRefreshToken
		err = r.coll.FindOneAndReplace(ctx, bson.M{"user_id": token.UserID}, doc, opts).Decode(&replaced)
		if err == nil {
			token.ID = replaced.ID.Hex()
			return nil
		}
		if !mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("replace refresh token: %w", err)
		}
	}
	return fmt.Errorf("replace refresh token: %w", err)
}

func (r *MongoRefreshTokenRepository) FindByToken(ctx context.Context, token string) (*domain.RefreshToken, error) {
	var mt mongoRefreshToken
	if err := r.coll.FindOne(ctx, bson.M{"token": token}).Decode(&mt); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrUnknownToken
		}
		return nil, fmt.Errorf("find refresh token: %w", err)
	}

	return &domain.RefreshToken{
		ID:        mt.ID.Hex(),
		UserID:    mt.UserID,
		Token:     mt.Token,
		ExpiresAt: mt.ExpiresAt.UTC(),
		CreatedAt: mt.CreatedAt.UTC(),
	}, nil
}

func (r *MongoRefreshTokenRepository) DeleteByToken(ctx context.Context, token string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"token": token})
	if err != nil {
		return fmt.Errorf("delete refresh token: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrUnknownToken
	}
	return nil
}
