package helpers

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// JWTManager handles generation and validation of session tokens.
// One secret, one lifetime; there are no refresh tokens.
type JWTManager struct {
	Secret []byte
	TTL    time.Duration
	now    func() time.Time
}

func NewJWTManager(secret string, ttl time.Duration) *JWTManager {
	return &JWTManager{
		Secret: []byte(secret),
		TTL:    ttl,
		now:    time.Now,
	}
}

// WithClock replaces the time source used for issuing and validating.
func (m *JWTManager) WithClock(now func() time.Time) *JWTManager {
	m.now = now
	return m
}

type ClaimsUser struct {
	ID string `json:"id"`
}

// Claims carries {"user":{"id":...}} plus the registered iat/exp/jti claims.
type Claims struct {
	User ClaimsUser `json:"user"`
	jwt.RegisteredClaims
}

// Issue signs a token for userID valid for m.TTL from now.
func (m *JWTManager) Issue(userID string) (string, *Claims, error) {
	if userID == "" {
		return "", nil, errors.New("empty user id")
	}
	now := m.now()
	claims := &Claims{
		User: ClaimsUser{ID: userID},
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.TTL)),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := t.SignedString(m.Secret)
	if err != nil {
		return "", nil, err
	}
	return s, claims, nil
}

// Verify parses tokenStr and checks signature, algorithm and expiry.
func (m *JWTManager) Verify(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	tkn, err := parser.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.Secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !tkn.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.User.ID == "" {
		return nil, errors.New("token carries no user id")
	}
	return claims, nil
}

// Remaining returns how long the token stays valid, never negative.
func (m *JWTManager) Remaining(c *Claims) time.Duration {
	if c == nil || c.ExpiresAt == nil {
		return 0
	}
	d := c.ExpiresAt.Time.Sub(m.now())
	if d < 0 {
		return 0
	}
	return d
}
