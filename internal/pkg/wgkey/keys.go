// Package wgkey generates and validates WireGuard key material in-process,
// the way sharedco-cilo/internal/cloud/tunnel/keys.go does it: no "wg"
// binary shell-out, so it works on a control-plane host without
// wireguard-tools installed.
package wgkey

import (
	"github.com/HappyLadySauce/errors"
	"golang.zx2c4.com/wireguard/wgctrl/wgtypes"

	"github.com/wanoverlay/manager/internal/pkg/code"
)

// GeneratePrivateKey generates a new WireGuard private (Curve25519) key,
// base64-encoded.
func GeneratePrivateKey() (string, error) {
	key, err := wgtypes.GeneratePrivateKey()
	if err != nil {
		return "", errors.WithCode(code.ErrWGKeyGenerationFailed, "generate private key: %s", err.Error())
	}
	return key.String(), nil
}

// GeneratePublicKey derives the public key for a base64-encoded private key.
func GeneratePublicKey(privateKey string) (string, error) {
	key, err := wgtypes.ParseKey(privateKey)
	if err != nil {
		return "", errors.WithCode(code.ErrWGPrivateKeyInvalid, "%s", err.Error())
	}
	return key.PublicKey().String(), nil
}

// GenerateKeyPair generates a fresh private/public key pair.
func GenerateKeyPair() (privateKey, publicKey string, err error) {
	key, err := wgtypes.GeneratePrivateKey()
	if err != nil {
		return "", "", errors.WithCode(code.ErrWGKeyGenerationFailed, "generate private key: %s", err.Error())
	}
	return key.String(), key.PublicKey().String(), nil
}

// GeneratePresharedKey generates an optional per-peer pre-shared key.
func GeneratePresharedKey() (string, error) {
	key, err := wgtypes.GenerateKey()
	if err != nil {
		return "", errors.WithCode(code.ErrWGKeyGenerationFailed, "generate preshared key: %s", err.Error())
	}
	return key.String(), nil
}

// ValidatePrivateKey validates that s decodes to a 32-byte Curve25519 key.
func ValidatePrivateKey(s string) error {
	if _, err := wgtypes.ParseKey(s); err != nil {
		return errors.WithCode(code.ErrWGPrivateKeyInvalid, "private key: %s", err.Error())
	}
	return nil
}

// ValidatePublicKey validates that s decodes to a 32-byte Curve25519 key.
func ValidatePublicKey(s string) error {
	if _, err := wgtypes.ParseKey(s); err != nil {
		return errors.WithCode(code.ErrWGPrivateKeyInvalid, "public key: %s", err.Error())
	}
	return nil
}
