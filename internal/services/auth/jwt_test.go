package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/recapio/recapio/internal/models"
)

func testJWTService() *JWTService {
	return NewJWTService(JWTConfig{
		SecretKey:            "test-secret-key-that-is-long-enough-for-hs256",
		AccessTokenDuration:  15 * time.Minute,
		RefreshTokenDuration: 24 * time.Hour,
		Issuer:               "recapio-test",
	})
}

func testUser() *models.User {
	return &models.User{
		ID:    uuid.New(),
		Email: "user@example.com",
		Roles: []string{"customer"},
	}
}

func TestGenerateAndValidateTokenPair(t *testing.T) {
	svc := testJWTService()
	user := testUser()
	sessionID := uuid.New()

	pair, err := svc.GenerateTokenPair(user, sessionID)
	if err != nil {
		t.Fatalf("GenerateTokenPair failed: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatal("expected non-empty tokens")
	}
	if pair.TokenType != "Bearer" {
		t.Errorf("TokenType = %q, want Bearer", pair.TokenType)
	}

	claims, err := svc.ValidateAccessToken(pair.AccessToken)
	if err != nil {
		t.Fatalf("ValidateAccessToken failed: %v", err)
	}
	if claims.UserID != user.ID.String() {
		t.Errorf("UserID = %q, want %q", claims.UserID, user.ID.String())
	}
	if claims.Email != user.Email {
		t.Errorf("Email = %q, want %q", claims.Email, user.Email)
	}
	if claims.SessionID != sessionID.String() {
		t.Errorf("SessionID = %q, want %q", claims.SessionID, sessionID.String())
	}
	if claims.ID == "" {
		t.Error("expected non-empty JTI")
	}

	refreshClaims, err := svc.ValidateRefreshToken(pair.RefreshToken)
	if err != nil {
		t.Fatalf("ValidateRefreshToken failed: %v", err)
	}
	if refreshClaims.TokenType != "refresh" {
		t.Errorf("TokenType = %q, want refresh", refreshClaims.TokenType)
	}
}

func TestTokenTypeMismatch(t *testing.T) {
	svc := testJWTService()
	pair, err := svc.GenerateTokenPair(testUser(), uuid.New())
	if err != nil {
		t.Fatalf("GenerateTokenPair failed: %v", err)
	}

	if _, err := svc.ValidateAccessToken(pair.RefreshToken); err == nil {
		t.Error("refresh token accepted as access token")
	}
	if _, err := svc.ValidateRefreshToken(pair.AccessToken); err == nil {
		t.Error("access token accepted as refresh token")
	}
}

func TestValidateTokenRejectsWrongKey(t *testing.T) {
	svc := testJWTService()
	other := NewJWTService(JWTConfig{
		SecretKey:            "a-completely-different-secret-key-material",
		AccessTokenDuration:  15 * time.Minute,
		RefreshTokenDuration: 24 * time.Hour,
		Issuer:               "recapio-test",
	})

	pair, err := svc.GenerateTokenPair(testUser(), uuid.New())
	if err != nil {
		t.Fatalf("GenerateTokenPair failed: %v", err)
	}

	if _, err := other.ValidateToken(pair.AccessToken); err == nil {
		t.Error("token signed with a different key was accepted")
	}
}

func TestExtractTokenFromBearer(t *testing.T) {
	svc := testJWTService()

	if got := svc.ExtractTokenFromBearer("Bearer abc123"); got != "abc123" {
		t.Errorf("ExtractTokenFromBearer = %q, want abc123", got)
	}
	if got := svc.ExtractTokenFromBearer("abc123"); got != "abc123" {
		t.Errorf("ExtractTokenFromBearer without prefix = %q, want abc123", got)
	}
}
