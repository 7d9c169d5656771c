package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/aibekov/task-tracker/internal/domain"
	"github.com/golang-jwt/jwt/v5"
)

// Issuer signs and validates HS256 bearer tokens. Validation is
// stateless: there is no revocation list, the expiry claim is the only
// time bound.
type Issuer struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

func NewIssuer(key []byte, ttl time.Duration) *Issuer {
	return &Issuer{key: key, ttl: ttl, now: time.Now}
}

// Issue returns a signed token binding the user's identity for the
// configured TTL.
func (i *Issuer) Issue(user *domain.User) (string, error) {
	now := i.now()
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"iat":   now.Unix(),
		"exp":   now.Add(i.ttl).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(i.key)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Validate parses raw and returns the user ID it was issued for.
// Returns domain.ErrTokenExpired past the expiry claim and
// domain.ErrTokenMalformed for anything else that fails verification.
func (i *Issuer) Validate(raw string) (string, error) {
	t, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return i.key, nil
	}, jwt.WithTimeFunc(i.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", domain.ErrTokenExpired
		}
		return "", domain.ErrTokenMalformed
	}

	claims, ok := t.Claims.(jwt.MapClaims)
	if !ok {
		return "", domain.ErrTokenMalformed
	}
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", domain.ErrTokenMalformed
	}
	return sub, nil
}
