package enums

import "testing"

func TestParseStorageBackend(t *testing.T) {
	for _, raw := range []string{"file", "sql", "redis", "memory"} {
		got, err := ParseStorageBackend(raw)
		if err != nil {
			t.Fatalf("ParseStorageBackend(%q) error: %v", raw, err)
		}
		if !got.IsValid() || got.String() != raw {
			t.Fatalf("unexpected backend %q for %q", got, raw)
		}
	}
	if _, err := ParseStorageBackend("s3"); err == nil {
		t.Fatal("expected error for unknown backend")
	}
}

func TestParsePasswordHasher(t *testing.T) {
	if h, err := ParsePasswordHasher("argon2id"); err != nil || h != PasswordHasherArgon2ID {
		t.Fatalf("unexpected hasher %q err=%v", h, err)
	}
	if PasswordHasher("md5").IsValid() {
		t.Fatal("md5 should not be valid")
	}
}

func TestParseLedgerEntryType(t *testing.T) {
	if typ, err := ParseLedgerEntryType("expense"); err != nil || typ != LedgerEntryTypeExpense {
		t.Fatalf("unexpected type %q err=%v", typ, err)
	}
	if _, err := ParseLedgerEntryType("refund"); err == nil {
		t.Fatal("expected error for refund")
	}
}
