package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/karashiro/task-assignment-api/internal/models"
)

var (
	ErrInvalidToken = errors.New("token is malformed, expired or has a bad signature")
	ErrEmptySecret  = errors.New("signing secret must not be empty")
)

// Claims is the identity payload embedded in every issued token. The token
// is the sole source of truth for the caller's role; handlers trust it
// without re-reading the user record (stale-role window until expiry).
type Claims struct {
	UserID uint64      `json:"id"`
	Role   models.Role `json:"role"`
	jwt.RegisteredClaims
}

// TokenService mints and verifies signed, time-limited identity assertions.
// The secret is injected at construction, never read from a global.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService creates a TokenService signing with the given secret and
// issuing tokens valid for ttl.
func NewTokenService(secret string, ttl time.Duration) (*TokenService, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	return &TokenService{secret: []byte(secret), ttl: ttl}, nil
}

// Issue signs a token carrying the user's id and role.
func (s *TokenService) Issue(userID uint64, role models.Role) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify parses and validates a token, returning its claims. Any failure
// (bad signature, expiry, malformed input) is reported as ErrInvalidToken.
func (s *TokenService) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
