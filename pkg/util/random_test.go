package util

import "testing"

func TestGenerateShareToken_UniqueAndWellFormed(t *testing.T) {
	const n = 10000

	seen := make(map[string]struct{}, n)
	for i := 0; i < n; i++ {
		token, err := GenerateShareToken()
		if err != nil {
			t.Fatalf("GenerateShareToken failed: %v", err)
		}
		if len(token) != ShareTokenLength {
			t.Fatalf("token length = %d, want %d", len(token), ShareTokenLength)
		}
		if !IsValidShareToken(token) {
			t.Fatalf("generated token failed its own format check: %s", token)
		}
		if _, dup := seen[token]; dup {
			t.Fatalf("token collision after %d generations", i)
		}
		seen[token] = struct{}{}
	}
}

func TestIsValidShareToken(t *testing.T) {
	tests := []struct {
		name  string
		token string
		want  bool
	}{
		{"valid", "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef", true},
		{"too short", "abcdef", false},
		{"too long", "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef00", false},
		{"uppercase rejected", "0123456789ABCDEF0123456789ABCDEF0123456789ABCDEF0123456789ABCDEF", false},
		{"non-hex alphabet", "zzzz456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef", false},
		{"empty", "", false},
		{"sql-ish injection", "' OR '1'='1;----------------------------------------------------", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidShareToken(tt.token); got != tt.want {
				t.Errorf("IsValidShareToken(%q) = %v, want %v", tt.token, got, tt.want)
			}
		})
	}
}
