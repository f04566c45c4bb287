package util

import (
	"strings"
	"testing"
)

func TestGeneratePasswordHash_SaltedPerRecord(t *testing.T) {
	h1, err := GeneratePasswordHash("secret123")
	if err != nil {
		t.Fatalf("GeneratePasswordHash failed: %v", err)
	}
	h2, err := GeneratePasswordHash("secret123")
	if err != nil {
		t.Fatalf("GeneratePasswordHash failed: %v", err)
	}

	// Same password, distinct salts, distinct hashes
	// 相同密码、不同盐，哈希必须不同
	if h1 == h2 {
		t.Error("two hashes of the same password should differ")
	}
	if !strings.HasPrefix(h1, "$argon2id$") {
		t.Errorf("unexpected hash format: %s", h1)
	}
}

func TestCheckPasswordHash(t *testing.T) {
	hash, err := GeneratePasswordHash("secret123")
	if err != nil {
		t.Fatalf("GeneratePasswordHash failed: %v", err)
	}

	tests := []struct {
		name     string
		hash     string
		password string
		want     bool
	}{
		{"correct password", hash, "secret123", true},
		{"wrong password", hash, "secret124", false},
		{"empty password", hash, "", false},
		{"malformed hash", "not-a-hash", "secret123", false},
		{"empty hash", "", "secret123", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CheckPasswordHash(tt.hash, tt.password); got != tt.want {
				t.Errorf("CheckPasswordHash() = %v, want %v", got, tt.want)
			}
		})
	}
}
