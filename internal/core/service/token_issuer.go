package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/premios/awards-api/internal/core/domain"
)

// Token verification failures. ErrTokenMalformed also covers tokens signed
// with an unexpected algorithm.
var (
	ErrAccessTokenExpired = errors.New("access token expired")
	ErrInvalidSignature   = errors.New("invalid token signature")
	ErrTokenMalformed     = errors.New("malformed token")
)

// Claims is the verified content of an access token.
type Claims struct {
	Subject   string
	Username  string
	Roles     []domain.Role
	ExpiresAt time.Time
}

type accessClaims struct {
	jwt.RegisteredClaims
	Username string   `json:"username"`
	Roles    []string `json:"roles"`
}

// AccessTokenIssuer signs and verifies short-lived bearer credentials.
// The signing key is loaded once at startup; Verify is read-only over it and
// safe for unbounded parallel calls.
type AccessTokenIssuer struct {
	signingKey []byte
	issuer     string
	ttl        time.Duration
}

// NewAccessTokenIssuer returns an issuer signing HS256 tokens with the given
// key. An empty key is a configuration error the caller must reject at
// startup; it is not validated here.
func NewAccessTokenIssuer(signingKey []byte, issuer string, ttl time.Duration) *AccessTokenIssuer {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &AccessTokenIssuer{signingKey: signingKey, issuer: issuer, ttl: ttl}
}

// TTL returns the lifetime applied to issued tokens.
func (s *AccessTokenIssuer) TTL() time.Duration {
	return s.ttl
}

// Issue returns a signed token for the given subject carrying its roles.
func (s *AccessTokenIssuer) Issue(subject, username string, roles []domain.Role) (string, error) {
	now := time.Now().UTC()

	rs := make([]string, len(roles))
	for i, r := range roles {
		rs[i] = string(r)
	}

	claims := accessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
		Username: username,
		Roles:    rs,
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.signingKey)
}

// Verify parses and validates a token, returning its claims. Failures are
// ErrAccessTokenExpired, ErrInvalidSignature, or ErrTokenMalformed.
func (s *AccessTokenIssuer) Verify(raw string) (*Claims, error) {
	var claims accessClaims
	tkn, err := jwt.ParseWithClaims(raw, &claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.signingKey, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrAccessTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrInvalidSignature
		default:
			return nil, ErrTokenMalformed
		}
	}
	if !tkn.Valid {
		return nil, ErrTokenMalformed
	}

	roles := make([]domain.Role, len(claims.Roles))
	for i, r := range claims.Roles {
		roles[i] = domain.Role(r)
	}

	out := &Claims{
		Subject:  claims.Subject,
		Username: claims.Username,
		Roles:    roles,
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	return out, nil
}
