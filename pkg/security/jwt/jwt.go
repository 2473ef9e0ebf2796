package jwt

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/artem13815/cvbuilder/pkg/auth"
)

var (
	ErrInvalidToken = errors.New("invalid or expired token")
	ErrWrongIssuer  = errors.New("invalid token issuer")
	ErrBadSubject   = errors.New("invalid token subject")
)

// Generator issues HS256 session tokens. Every token carries a fresh jti so
// it can be revoked on its own.
type Generator struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

func NewGenerator(secret, issuer string, ttl time.Duration) *Generator {
	return &Generator{secret: []byte(secret), issuer: issuer, ttl: ttl}
}

// Claims carries the registered claims plus the user's e-mail.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email,omitempty"`
}

func (g *Generator) Generate(_ context.Context, user auth.User) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    g.issuer,
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(g.ttl)),
		},
		Email: user.Email,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(g.secret)
}

// ParseSession verifies signature, expiry and issuer (when issuer is not
// empty) and returns the session the token stands for. Tokens without exp
// are rejected.
func ParseSession(tokenStr string, secret []byte, issuer string) (auth.Session, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenStr, claims, func(*jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}), jwt.WithExpirationRequired())
	if err != nil {
		return auth.Session{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if issuer != "" && claims.Issuer != issuer {
		return auth.Session{}, ErrWrongIssuer
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return auth.Session{}, ErrBadSubject
	}
	sess := auth.Session{UserID: userID, TokenID: claims.ID}
	if claims.ExpiresAt != nil {
		sess.ExpiresAt = claims.ExpiresAt.Time
	}
	return sess, nil
}
