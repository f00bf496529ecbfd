package app

import (
	"encoding/base64"
	"fmt"
	"log/slog"

	"github.com/clefworks/scorebook/internal/catalog/auth"
	"github.com/clefworks/scorebook/pkg/cryptox"
	"github.com/clefworks/scorebook/pkg/jwtx"
)

const ephemeralKeyBits = 2048

// InitAuthKeys builds the access and refresh keypairs from config. Key
// material arrives base64-encoded; a decode failure is fatal rather than
// silently falling back, since a half-configured pair would strand every
// issued token. A fully absent pair gets an ephemeral replacement.
func InitAuthKeys(cfg Config, logger *slog.Logger) (auth.Keys, error) {
	accessPriv, accessPub, err := loadKeyPair("access", cfg.AccessPrivateKey, cfg.AccessPublicKey, logger)
	if err != nil {
		return auth.Keys{}, err
	}
	refreshPriv, refreshPub, err := loadKeyPair("refresh", cfg.RefreshPrivateKey, cfg.RefreshPublicKey, logger)
	if err != nil {
		return auth.Keys{}, err
	}

	keys := auth.Keys{}
	if keys.AccessIssuer, err = jwtx.NewIssuer(accessPriv); err != nil {
		return auth.Keys{}, fmt.Errorf("access private key: %w", err)
	}
	if keys.AccessVerifier, err = jwtx.NewVerifier(accessPub); err != nil {
		return auth.Keys{}, fmt.Errorf("access public key: %w", err)
	}
	if keys.RefreshIssuer, err = jwtx.NewIssuer(refreshPriv); err != nil {
		return auth.Keys{}, fmt.Errorf("refresh private key: %w", err)
	}
	if keys.RefreshVerifier, err = jwtx.NewVerifier(refreshPub); err != nil {
		return auth.Keys{}, fmt.Errorf("refresh public key: %w", err)
	}

	return keys, nil
}

func loadKeyPair(name, privateB64, publicB64 string, logger *slog.Logger) (privatePEM, publicPEM []byte, err error) {
	if privateB64 == "" && publicB64 == "" {
		logger.Warn("no key material configured, generating ephemeral keypair",
			slog.String("pair", name))
		return cryptox.GenerateRSAKeyPair(ephemeralKeyBits)
	}
	if privateB64 == "" || publicB64 == "" {
		return nil, nil, fmt.Errorf("%s keypair is half-configured", name)
	}

	privatePEM, err = base64.StdEncoding.DecodeString(privateB64)
	if err != nil {
		return nil, nil, fmt.Errorf("%s private key is not valid base64: %w", name, err)
	}
	publicPEM, err = base64.StdEncoding.DecodeString(publicB64)
	if err != nil {
		return nil, nil, fmt.Errorf("%s public key is not valid base64: %w", name, err)
	}
	return privatePEM, publicPEM, nil
}
