package security

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/angelmondragon/backoffice/pkg/config"
	"golang.org/x/crypto/argon2"
)

// ErrInvalidHash is returned when an encoded argon2id string cannot be parsed.
var ErrInvalidHash = errors.New("invalid argon2id hash")

var b64 = base64.RawStdEncoding

// Argon2ID salts every hash; the cost parameters travel in the encoded
// string so older hashes still verify after the config changes.
type Argon2ID struct {
	MemoryKB uint32
	Passes   uint32
	Threads  uint8
	SaltLen  uint32
	KeyLen   uint32
}

// NewArgon2ID clamps cfg into the ranges argon2 accepts.
func NewArgon2ID(cfg config.PasswordConfig) Argon2ID {
	return Argon2ID{
		MemoryKB: uint32(clamp(cfg.ArgonMemoryKB, 8, 512*1024)),
		Passes:   uint32(clamp(cfg.ArgonTime, 1, 10)),
		Threads:  uint8(clamp(cfg.ArgonParallelism, 1, 255)),
		SaltLen:  uint32(clamp(cfg.ArgonSaltLen, 8, 64)),
		KeyLen:   uint32(clamp(cfg.ArgonKeyLen, 16, 64)),
	}
}

func (a Argon2ID) Hash(password string) (string, error) {
	if password == "" {
		return "", errEmptyPassword
	}
	salt := make([]byte, a.SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	key := argon2.IDKey([]byte(password), salt, a.Passes, a.MemoryKB, a.Threads, a.KeyLen)
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, a.MemoryKB, a.Passes, a.Threads, b64.EncodeToString(salt), b64.EncodeToString(key)), nil
}

// Verify recomputes with the parameters stored in encoded, not the receiver's.
func (Argon2ID) Verify(password, encoded string) (bool, error) {
	stored, salt, key, err := parseArgon2ID(encoded)
	if err != nil {
		return false, err
	}
	computed := argon2.IDKey([]byte(password), salt, stored.Passes, stored.MemoryKB, stored.Threads, uint32(len(key)))
	return subtle.ConstantTimeCompare(key, computed) == 1, nil
}

// parseArgon2ID reads "$argon2id$v=19$m=..,t=..,p=..$salt$key".
func parseArgon2ID(encoded string) (Argon2ID, []byte, []byte, error) {
	fields := strings.Split(encoded, "$")
	if len(fields) != 6 || fields[0] != "" || fields[1] != "argon2id" {
		return Argon2ID{}, nil, nil, ErrInvalidHash
	}

	var version int
	if _, err := fmt.Sscanf(fields[2], "v=%d", &version); err != nil || version != argon2.Version {
		return Argon2ID{}, nil, nil, ErrInvalidHash
	}
	var params Argon2ID
	if _, err := fmt.Sscanf(fields[3], "m=%d,t=%d,p=%d", &params.MemoryKB, &params.Passes, &params.Threads); err != nil {
		return Argon2ID{}, nil, nil, ErrInvalidHash
	}
	// argon2.IDKey panics on zero passes or threads.
	if params.MemoryKB == 0 || params.Passes == 0 || params.Threads == 0 {
		return Argon2ID{}, nil, nil, ErrInvalidHash
	}

	salt, err := b64.DecodeString(fields[4])
	if err != nil || len(salt) == 0 {
		return Argon2ID{}, nil, nil, ErrInvalidHash
	}
	key, err := b64.DecodeString(fields[5])
	if err != nil || len(key) == 0 {
		return Argon2ID{}, nil, nil, ErrInvalidHash
	}
	params.SaltLen = uint32(len(salt))
	params.KeyLen = uint32(len(key))
	return params, salt, key, nil
}

func clamp(value, lo, hi int) int {
	return max(lo, min(value, hi))
}
