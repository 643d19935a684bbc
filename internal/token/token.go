package token

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// UserRef identifies the authenticated user inside the claims payload.
type UserRef struct {
	ID uint64 `json:"id"`
}

// Claims is the payload signed into every bearer token: {"user":{"id":N}}.
type Claims struct {
	User UserRef `json:"user"`
	jwt.RegisteredClaims
}

// Issuer signs claims with a process-wide HMAC secret.
type Issuer struct {
	secret []byte
}

func NewIssuer(secret string) *Issuer {
	return &Issuer{secret: []byte(secret)}
}

// Issue signs a token over the given user id.
func (i *Issuer) Issue(userID uint64) (string, error) {
	claims := Claims{User: UserRef{ID: userID}}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// Parse validates a signed token and returns its claims.
func (i *Issuer) Parse(tokenStr string) (*Claims, error) {
	tok, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return i.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("parsing token: %w", err)
	}
	claims, ok := tok.Claims.(*Claims)
	if !ok || !tok.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}
