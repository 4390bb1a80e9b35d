// Package session gives every browser its own catalog controller.
//
// SESSION FLOW:
//  1. A request arrives without a valid session cookie.
//  2. The middleware creates a session: a fresh xid, a new Controller with
//     default state, stored in the Store.
//  3. The session id is signed as a JWT and set as an HttpOnly cookie.
//  4. Later requests carry the cookie; the middleware verifies it, looks the
//     session up and puts its Controller in the request context.
//
// The cookie is re-issued on every request, so the expiry slides with use.
// The Store evicts sessions that have been idle longer than the same TTL.
package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const issuer = "product-categories"

// MinSecretLength is the shortest accepted HMAC secret.
const MinSecretLength = 16

// Signer signs and verifies session ids.
type Signer struct {
	secret []byte
	ttl    time.Duration
}

// NewSigner returns a Signer whose tokens expire after ttl.
func NewSigner(secret string, ttl time.Duration) (*Signer, error) {
	if len(secret) < MinSecretLength {
		return nil, fmt.Errorf("session: secret must be at least %d characters", MinSecretLength)
	}
	if ttl <= 0 {
		return nil, errors.New("session: ttl must be positive")
	}
	return &Signer{secret: []byte(secret), ttl: ttl}, nil
}

// TTL is the lifetime of issued tokens.
func (s *Signer) TTL() time.Duration {
	return s.ttl
}

// Sign issues an HS256 token whose subject is the session id.
func (s *Signer) Sign(sessionID string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   sessionID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		Issuer:    issuer,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("session: signing token: %w", err)
	}
	return signed, nil
}

// Verify checks signature, algorithm, issuer and expiry and returns the
// session id.
func (s *Signer) Verify(token string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", errors.New("session: token expired")
		}
		return "", fmt.Errorf("session: invalid token: %w", err)
	}
	if !parsed.Valid || claims.Subject == "" {
		return "", errors.New("session: token has no subject")
	}
	return claims.Subject, nil
}
