package services

import (
	"testing"

	"session-demand-api/config"
)

func newTestAuthService() *AuthService {
	return NewAuthService(config.JWTConfig{
		Secret:             "test-secret-key",
		ExpiryHours:        24,
		RefreshExpiryHours: 168,
	})
}

func TestHashAndCheckPassword(t *testing.T) {
	svc := newTestAuthService()

	hash, err := svc.HashPassword("mypassword123")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if hash == "" {
		t.Fatal("hash should not be empty")
	}
	if hash == "mypassword123" {
		t.Fatal("hash should not equal plaintext")
	}

	if !svc.CheckPassword(hash, "mypassword123") {
		t.Error("CheckPassword should return true for correct password")
	}
	if svc.CheckPassword(hash, "wrongpassword") {
		t.Error("CheckPassword should return false for wrong password")
	}
}

func TestGenerateAndValidateTokenPair(t *testing.T) {
	svc := newTestAuthService()

	pair, err := svc.GenerateTokenPair(1, "user@test.com", "user")
	if err != nil {
		t.Fatalf("GenerateTokenPair failed: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatal("both tokens should be set")
	}
	if pair.AccessToken == pair.RefreshToken {
		t.Fatal("access and refresh tokens should differ")
	}

	claims, err := svc.ValidateAccessToken(pair.AccessToken)
	if err != nil {
		t.Fatalf("ValidateAccessToken failed: %v", err)
	}
	if claims.UserID != 1 {
		t.Errorf("UserID = %d, want 1", claims.UserID)
	}
	if claims.Email != "user@test.com" {
		t.Errorf("Email = %q, want %q", claims.Email, "user@test.com")
	}
	if claims.Role != "user" {
		t.Errorf("Role = %q, want %q", claims.Role, "user")
	}
	if claims.ExpiresAt == nil {
		t.Error("ExpiresAt should be set")
	}
	if claims.IssuedAt == nil {
		t.Error("IssuedAt should be set")
	}
}

func TestTokenTypesAreNotInterchangeable(t *testing.T) {
	svc := newTestAuthService()

	pair, err := svc.GenerateTokenPair(7, "user@test.com", "user")
	if err != nil {
		t.Fatalf("GenerateTokenPair failed: %v", err)
	}

	if _, err := svc.ValidateAccessToken(pair.RefreshToken); err == nil {
		t.Error("refresh token must not validate as access token")
	}
	if _, err := svc.ValidateRefreshToken(pair.AccessToken); err == nil {
		t.Error("access token must not validate as refresh token")
	}
	if _, err := svc.ValidateRefreshToken(pair.RefreshToken); err != nil {
		t.Errorf("ValidateRefreshToken failed: %v", err)
	}
}

func TestValidateTokenInvalid(t *testing.T) {
	svc := newTestAuthService()

	if _, err := svc.ValidateAccessToken("invalid.token.string"); err == nil {
		t.Error("expected error for invalid token")
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	svc1 := NewAuthService(config.JWTConfig{Secret: "secret-1", ExpiryHours: 24, RefreshExpiryHours: 168})
	svc2 := NewAuthService(config.JWTConfig{Secret: "secret-2", ExpiryHours: 24, RefreshExpiryHours: 168})

	pair, _ := svc1.GenerateTokenPair(1, "user@test.com", "user")

	if _, err := svc2.ValidateAccessToken(pair.AccessToken); err == nil {
		t.Error("expected error when validating with wrong secret")
	}
}

func TestHashPasswordDifferentEachTime(t *testing.T) {
	svc := newTestAuthService()

	hash1, _ := svc.HashPassword("same-password")
	hash2, _ := svc.HashPassword("same-password")

	if hash1 == hash2 {
		t.Error("bcrypt hashes should differ due to random salt")
	}

	// But both should validate
	if !svc.CheckPassword(hash1, "same-password") {
		t.Error("hash1 should validate")
	}
	if !svc.CheckPassword(hash2, "same-password") {
		t.Error("hash2 should validate")
	}
}
