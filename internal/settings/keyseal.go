// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package settings

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/crypto/pbkdf2"

	"github.com/jeranaias/mumble-tui/internal/util"
)

const (
	sealIterations = 4096
	sealKeyLen     = 32
	sealSaltLen    = 16
	secretFileName = "settings.secret"
)

// =============================================================================
// API KEY SEALING
// =============================================================================

// Sealer encrypts API keys before they hit the settings database and
// decrypts them on load. Keys are sealed with AES-GCM under a key
// derived from a machine-local secret, so the database alone never
// contains plaintext credentials.
type Sealer struct {
	secret []byte
}

// NewSealer loads the machine-local secret from dataDir, generating
// one on first use.
func NewSealer(dataDir string) (*Sealer, error) {
	path := filepath.Join(dataDir, secretFileName)

	secret, err := os.ReadFile(path)
	if err == nil && len(secret) >= sealSaltLen {
		return &Sealer{secret: secret}, nil
	}

	secret = make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		return nil, fmt.Errorf("failed to generate sealing secret: %w", err)
	}
	if err := util.AtomicWriteFile(path, secret, 0600); err != nil {
		return nil, fmt.Errorf("failed to store sealing secret: %w", err)
	}
	return &Sealer{secret: secret}, nil
}

// Seal encrypts plaintext and returns a self-contained base64 token
// (salt + nonce + ciphertext).
func (s *Sealer) Seal(plaintext string) (string, error) {
	salt := make([]byte, sealSaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	gcm, err := s.cipher(salt)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	sealed := gcm.Seal(nil, nonce, []byte(plaintext), nil)

	out := make([]byte, 0, len(salt)+len(nonce)+len(sealed))
	out = append(out, salt...)
	out = append(out, nonce...)
	out = append(out, sealed...)
	return base64.StdEncoding.EncodeToString(out), nil
}

// Open decrypts a token produced by Seal.
func (s *Sealer) Open(token string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return "", fmt.Errorf("malformed sealed value: %w", err)
	}
	if len(raw) < sealSaltLen {
		return "", errors.New("malformed sealed value: too short")
	}

	salt, rest := raw[:sealSaltLen], raw[sealSaltLen:]

	gcm, err := s.cipher(salt)
	if err != nil {
		return "", err
	}
	if len(rest) < gcm.NonceSize() {
		return "", errors.New("malformed sealed value: too short")
	}

	nonce, sealed := rest[:gcm.NonceSize()], rest[gcm.NonceSize():]
	plaintext, err := gcm.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", fmt.Errorf("failed to unseal value: %w", err)
	}
	return string(plaintext), nil
}

func (s *Sealer) cipher(salt []byte) (cipher.AEAD, error) {
	key := pbkdf2.Key(s.secret, salt, sealIterations, sealKeyLen, sha256.New)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return gcm, nil
}
