// Package security hashes operator passwords and mints order codes.
package security

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"strings"

	"github.com/angelmondragon/backoffice/pkg/config"
	"github.com/angelmondragon/backoffice/pkg/enums"
)

var errEmptyPassword = errors.New("password cannot be empty")

// Hasher turns a password into a one-way digest and checks candidates against it.
type Hasher interface {
	Hash(password string) (string, error)
	Verify(password, encoded string) (bool, error)
}

// NewHasher returns the hasher named by cfg.Hasher.
func NewHasher(cfg config.PasswordConfig) (Hasher, error) {
	kind, err := enums.ParsePasswordHasher(strings.ToLower(strings.TrimSpace(cfg.Hasher)))
	if err != nil {
		return nil, err
	}
	if kind == enums.PasswordHasherArgon2ID {
		return NewArgon2ID(cfg), nil
	}
	return SHA256{}, nil
}

// SHA256 is an unsalted hex digest, so equal passwords store equal values.
type SHA256 struct{}

func (SHA256) Hash(password string) (string, error) {
	if password == "" {
		return "", errEmptyPassword
	}
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:]), nil
}

func (h SHA256) Verify(password, encoded string) (bool, error) {
	computed, err := h.Hash(password)
	if err != nil {
		return false, err
	}
	return subtle.ConstantTimeCompare([]byte(computed), []byte(encoded)) == 1, nil
}
