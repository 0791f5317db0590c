package security

import (
	"strings"
	"testing"

	"github.com/angelmondragon/backoffice/pkg/config"
)

func fastArgon() config.PasswordConfig {
	return config.PasswordConfig{
		Hasher:           "argon2id",
		ArgonMemoryKB:    64,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	}
}

func TestSHA256HasherIsDeterministic(t *testing.T) {
	h := SHA256{}
	first, err := h.Hash("Isha181901")
	if err != nil {
		t.Fatalf("hash error: %v", err)
	}
	second, _ := h.Hash("Isha181901")
	if first != second {
		t.Fatalf("expected deterministic digest")
	}
	if len(first) != 64 {
		t.Fatalf("expected 64 hex chars, got %d", len(first))
	}
	if strings.Contains(first, "Isha181901") {
		t.Fatalf("digest must not contain the password")
	}

	ok, err := h.Verify("Isha181901", first)
	if err != nil || !ok {
		t.Fatalf("expected verify ok, got ok=%v err=%v", ok, err)
	}
	ok, _ = h.Verify("wrong", first)
	if ok {
		t.Fatal("expected mismatch")
	}
	if _, err := h.Hash(""); err == nil {
		t.Fatal("expected empty password error")
	}
}

func TestArgon2IDHasher(t *testing.T) {
	h, err := NewHasher(fastArgon())
	if err != nil {
		t.Fatalf("NewHasher error: %v", err)
	}
	encoded, err := h.Hash("secret")
	if err != nil {
		t.Fatalf("hash error: %v", err)
	}
	if !strings.HasPrefix(encoded, "$argon2id$") {
		t.Fatalf("unexpected encoding %q", encoded)
	}
	again, _ := h.Hash("secret")
	if again == encoded {
		t.Fatal("salted hashes should differ")
	}
	ok, err := h.Verify("secret", encoded)
	if err != nil || !ok {
		t.Fatalf("expected verify ok, got ok=%v err=%v", ok, err)
	}
	ok, _ = h.Verify("other", encoded)
	if ok {
		t.Fatal("expected mismatch")
	}
	if _, err := h.Verify("secret", "not-a-hash"); err != ErrInvalidHash {
		t.Fatalf("expected ErrInvalidHash, got %v", err)
	}
}

func TestNewHasherDefaultsAndRejects(t *testing.T) {
	h, err := NewHasher(config.PasswordConfig{Hasher: "SHA256"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := h.(SHA256); !ok {
		t.Fatalf("expected SHA256 hasher, got %T", h)
	}
	if _, err := NewHasher(config.PasswordConfig{Hasher: "md5"}); err == nil {
		t.Fatal("expected unknown hasher error")
	}
}

func TestGenerateOrderCode(t *testing.T) {
	code, err := GenerateOrderCode(8)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(code) != 8 {
		t.Fatalf("expected 8 chars, got %q", code)
	}
	for _, r := range code {
		if !strings.ContainsRune(orderCodeAlphabet, r) {
			t.Fatalf("unexpected rune %q in %q", r, code)
		}
	}
	if _, err := GenerateOrderCode(0); err == nil {
		t.Fatal("expected error for zero length")
	}
}

func TestArgon2IDVerifiesWithStoredParameters(t *testing.T) {
	encoded, err := NewArgon2ID(fastArgon()).Hash("secret")
	if err != nil {
		t.Fatalf("hash error: %v", err)
	}

	// a later config with different costs still verifies the old hash
	tuned := fastArgon()
	tuned.ArgonTime = 2
	tuned.ArgonMemoryKB = 128
	ok, err := NewArgon2ID(tuned).Verify("secret", encoded)
	if err != nil || !ok {
		t.Fatalf("expected verify ok, got ok=%v err=%v", ok, err)
	}

	for _, bad := range []string{
		strings.Replace(encoded, "v=19", "v=16", 1),
		strings.Replace(encoded, "m=64", "m=x", 1),
		"$argon2i$v=19$m=64,t=1,p=1$c2FsdA$a2V5",
	} {
		if _, err := NewArgon2ID(tuned).Verify("secret", bad); err != ErrInvalidHash {
			t.Fatalf("expected ErrInvalidHash for %q, got %v", bad, err)
		}
	}
}

func TestNewArgon2IDClampsConfig(t *testing.T) {
	a := NewArgon2ID(config.PasswordConfig{ArgonParallelism: 1000, ArgonSaltLen: 1})
	if a.Threads != 255 || a.SaltLen != 8 || a.Passes != 1 || a.KeyLen != 16 || a.MemoryKB != 8 {
		t.Fatalf("unexpected clamp result %+v", a)
	}
}

func TestArgon2IDRejectsZeroCostHashes(t *testing.T) {
	encoded, err := NewArgon2ID(fastArgon()).Hash("secret")
	if err != nil {
		t.Fatalf("hash error: %v", err)
	}

	for _, bad := range []string{
		strings.Replace(encoded, "p=1", "p=0", 1),
		strings.Replace(encoded, "t=1", "t=0", 1),
		strings.Replace(encoded, "m=64", "m=0", 1),
	} {
		ok, err := NewArgon2ID(fastArgon()).Verify("secret", bad)
		if err != ErrInvalidHash || ok {
			t.Fatalf("expected ErrInvalidHash for %q, got ok=%v err=%v", bad, ok, err)
		}
	}
}
