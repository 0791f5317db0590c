package enums

import "fmt"

// PasswordHasher names the one-way function applied to stored passwords.
type PasswordHasher string

const (
	PasswordHasherSHA256   PasswordHasher = "sha256"
	PasswordHasherArgon2ID PasswordHasher = "argon2id"
)

var validPasswordHashers = []PasswordHasher{
	PasswordHasherSHA256,
	PasswordHasherArgon2ID,
}

// IsValid reports whether the value is a supported hasher.
func (h PasswordHasher) IsValid() bool {
	for _, candidate := range validPasswordHashers {
		if candidate == h {
			return true
		}
	}
	return false
}

// ParsePasswordHasher converts raw input into a PasswordHasher.
func ParsePasswordHasher(value string) (PasswordHasher, error) {
	for _, candidate := range validPasswordHashers {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid password hasher %q", value)
}
