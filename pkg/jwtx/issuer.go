package jwtx

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrKeyDecode = errors.New("jwtx: malformed signing key")
	ErrSigning   = errors.New("jwtx: signing failed")
)

// Issuer signs tokens with an RSA private key.
type Issuer struct {
	key *rsa.PrivateKey
}

// NewIssuer parses a PEM-encoded RSA private key. A decode failure here is a
// configuration error and should abort startup.
func NewIssuer(privatePEM []byte) (*Issuer, error) {
	key, err := jwt.ParseRSAPrivateKeyFromPEM(privatePEM)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyDecode, err)
	}
	return &Issuer{key: key}, nil
}

// Issue builds and signs a token for the subject. Each issuance gets a fresh
// random token identifier; iat and nbf are both now, exp is now+ttl.
func (i *Issuer) Issue(subjectID, role string, ttl time.Duration) (TokenDetails, error) {
	now := time.Now().UTC()

	details := TokenDetails{
		TokenID:   uuid.NewString(),
		SubjectID: subjectID,
		Role:      role,
		ExpiresAt: now.Add(ttl),
	}

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   details.SubjectID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(details.ExpiresAt),
		},
		Role:    details.Role,
		TokenID: details.TokenID,
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(i.key)
	if err != nil {
		return TokenDetails{}, fmt.Errorf("%w: %v", ErrSigning, err)
	}

	details.Token = token
	return details, nil
}
