// Package jwtx is the token codec: it turns a (subject, role, ttl) tuple into
// a signed RS256 bearer token and a token string back into validated claims.
//
// Issuing uses the private key, verification only the public key, so any
// request-handling node can validate tokens without holding signing secrets.
package jwtx

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Default token lifetimes. Access tokens are short-lived; refresh tokens only
// exist to mint new access tokens.
const (
	DefaultAccessTTL  = 15 * time.Minute
	DefaultRefreshTTL = 60 * time.Minute
)

// Claims is the signed token payload. The token_uuid claim doubles as the
// session-store key, which is what makes an otherwise stateless JWT
// revocable.
type Claims struct {
	jwt.RegisteredClaims

	Role    string `json:"role"`
	TokenID string `json:"token_uuid"`
}

// TokenDetails is the hand-off value between the codec and the
// cookie-writing / session-persisting steps.
//
// After Issue all fields are populated. After Verify, Token is empty (the
// caller already holds the string) and ExpiresAt is zero: verification
// yields identity facts, not a fresh lifetime.
type TokenDetails struct {
	Token     string
	TokenID   string
	SubjectID string
	Role      string
	ExpiresAt time.Time
}
