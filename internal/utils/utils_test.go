package utils

import (
	"net/http"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashAndVerifyPassword(t *testing.T) {
	password := "Str0ng!Password"

	hash, err := HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if hash == password {
		t.Fatal("hash must not equal the plaintext password")
	}

	if err := VerifyPassword(password, hash); err != nil {
		t.Errorf("VerifyPassword rejected the correct password: %v", err)
	}
	if err := VerifyPassword("wrong-password", hash); err == nil {
		t.Error("VerifyPassword accepted a wrong password")
	}
}

func TestValidatePasswordComplexity(t *testing.T) {
	testCases := []struct {
		name        string
		password    string
		expectError bool
	}{
		{
			name:        "valid password",
			password:    "Str0ng!Password",
			expectError: false,
		},
		{
			name:        "too short",
			password:    "S1!a",
			expectError: true,
		},
		{
			name:        "missing uppercase",
			password:    "str0ng!password",
			expectError: true,
		},
		{
			name:        "missing digit",
			password:    "Strong!Password",
			expectError: true,
		},
		{
			name:        "missing special character",
			password:    "Str0ngPassword",
			expectError: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidatePasswordComplexity(tc.password)
			if tc.expectError && err == nil {
				t.Errorf("expected error for %q", tc.password)
			}
			if !tc.expectError && err != nil {
				t.Errorf("unexpected error for %q: %v", tc.password, err)
			}
		})
	}
}

func TestNeedsRehash(t *testing.T) {
	hash, err := HashPassword("Str0ng!Password")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if NeedsRehash(hash) {
		t.Error("a fresh hash must not need a rehash")
	}

	weak, err := bcrypt.GenerateFromPassword([]byte("Str0ng!Password"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("GenerateFromPassword failed: %v", err)
	}
	if !NeedsRehash(string(weak)) {
		t.Error("a below-cost hash must be flagged for rehash")
	}

	if !NeedsRehash("not-a-bcrypt-hash") {
		t.Error("garbage must be flagged for rehash")
	}
}

func TestGenerateIDs(t *testing.T) {
	correlationID := GenerateCorrelationID()
	if correlationID == "" {
		t.Error("Expected non-empty correlation ID")
	}

	requestID := GenerateRequestID()
	if requestID == "" {
		t.Error("Expected non-empty request ID")
	}

	if GenerateRequestID() == requestID {
		t.Error("Expected unique request IDs")
	}
}

func TestGenerateSecureToken(t *testing.T) {
	token, err := GenerateSecureToken(16)
	if err != nil {
		t.Fatalf("GenerateSecureToken failed: %v", err)
	}
	// 16 bytes hex-encoded
	if len(token) != 32 {
		t.Errorf("token length = %d, want 32", len(token))
	}

	other, err := GenerateSecureToken(16)
	if err != nil {
		t.Fatalf("GenerateSecureToken failed: %v", err)
	}
	if token == other {
		t.Error("expected unique tokens")
	}
}

func TestInvalidVideoURLError(t *testing.T) {
	err := NewInvalidVideoURLError("https://vimeo.com/123", "This URL is not recognized.")

	if err.Code != ErrorCodeInvalidVideoURL {
		t.Errorf("Code = %q, want %q", err.Code, ErrorCodeInvalidVideoURL)
	}
	if err.StatusCode != http.StatusBadRequest {
		t.Errorf("StatusCode = %d, want %d", err.StatusCode, http.StatusBadRequest)
	}
	if err.Message != "This URL is not recognized." {
		t.Errorf("Message = %q, the validator message must pass through unchanged", err.Message)
	}
	if err.Details["provided"] != "https://vimeo.com/123" {
		t.Errorf("Details missing the provided URL: %+v", err.Details)
	}
}
