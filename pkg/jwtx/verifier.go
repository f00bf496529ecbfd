package jwtx

import (
	"crypto/rsa"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMalformed     = errors.New("jwtx: malformed token")
	ErrInvalidSig    = errors.New("jwtx: invalid signature")
	ErrExpired       = errors.New("jwtx: token expired")
	ErrNotYetValid   = errors.New("jwtx: token not yet valid")
	ErrInvalidClaims = errors.New("jwtx: invalid claims")
)

// Verifier validates tokens against an RSA public key.
type Verifier struct {
	key *rsa.PublicKey
}

// NewVerifier parses a PEM-encoded RSA public key. A decode failure here is a
// configuration error and should abort startup.
func NewVerifier(publicPEM []byte) (*Verifier, error) {
	key, err := jwt.ParseRSAPublicKeyFromPEM(publicPEM)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyDecode, err)
	}
	return &Verifier{key: key}, nil
}

// Verify decodes the token, checks the RS256 signature and exp/nbf bounds,
// and returns the identity facts it carried. It never returns partially
// validated claims.
func (v *Verifier) Verify(token string) (TokenDetails, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(token, &claims,
		func(t *jwt.Token) (any, error) { return v.key, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
	)
	if err != nil {
		return TokenDetails{}, mapParseError(err)
	}

	if claims.Subject == "" || claims.TokenID == "" {
		return TokenDetails{}, ErrInvalidClaims
	}

	// Token and ExpiresAt stay unset on purpose, see TokenDetails.
	return TokenDetails{
		TokenID:   claims.TokenID,
		SubjectID: claims.Subject,
		Role:      claims.Role,
	}, nil
}

func mapParseError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrExpired
	case errors.Is(err, jwt.ErrTokenNotValidYet):
		return ErrNotYetValid
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return ErrInvalidSig
	default:
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
}
