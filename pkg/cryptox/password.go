// Package cryptox provides password hashing for the account flows and key
// generation helpers for tests and provisioning.
package cryptox

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"

	"golang.org/x/crypto/argon2"
)

// Argon2id parameters. Tuned for interactive login latency.
const (
	saltLength  = 16
	iterations  = 3
	memory      = 64 * 1024 // KiB
	parallelism = 2
	keyLength   = 32
)

// ErrMismatch reports a password that does not match the stored hash, or a
// stored hash that cannot be parsed. Callers must not distinguish the two.
var ErrMismatch = errors.New("cryptox: password mismatch")

// HashPassword returns a PHC-format Argon2id hash embedding a fresh random
// salt and the parameters used.
func HashPassword(password string) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}

	hash := argon2.IDKey([]byte(password), salt, iterations, memory, parallelism, keyLength)

	return fmt.Sprintf(
		"$argon2id$v=19$m=%d,t=%d,p=%d$%s$%s",
		memory, iterations, parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash),
	), nil
}

// VerifyPassword compares a plaintext password against a PHC-format Argon2id
// hash using the parameters embedded in the hash. Any parse failure or
// mismatch returns ErrMismatch.
func VerifyPassword(password, encodedHash string) error {
	parts, err := splitPHC(encodedHash)
	if err != nil {
		return ErrMismatch
	}

	var mem, iters uint32
	var par uint8
	if _, err := fmt.Sscanf(parts.params, "m=%d,t=%d,p=%d", &mem, &iters, &par); err != nil {
		return ErrMismatch
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts.salt)
	if err != nil {
		return ErrMismatch
	}
	want, err := base64.RawStdEncoding.DecodeString(parts.hash)
	if err != nil {
		return ErrMismatch
	}

	got := argon2.IDKey([]byte(password), salt, iters, mem, par, uint32(len(want)))

	if subtle.ConstantTimeCompare(got, want) != 1 {
		return ErrMismatch
	}
	return nil
}

type phcParts struct {
	params string
	salt   string
	hash   string
}

// splitPHC parses "$argon2id$v=19$m=X,t=Y,p=Z$salt$hash".
func splitPHC(s string) (phcParts, error) {
	var parts []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '$' {
			parts = append(parts, s[start:i])
			start = i + 1
		}
	}
	parts = append(parts, s[start:])

	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" || parts[2] != "v=19" {
		return phcParts{}, errors.New("cryptox: malformed hash")
	}
	return phcParts{params: parts[3], salt: parts[4], hash: parts[5]}, nil
}
