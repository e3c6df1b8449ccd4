package auth

import (
	"testing"
	"time"
)

func testTokenConfig() TokenConfig {
	return TokenConfig{
		SecretKey:       "test-secret",
		AccessDuration:  15 * time.Minute,
		RefreshDuration: 24 * time.Hour,
		Issuer:          "taskboard-test",
	}
}

func TestTokenManager_IssueAndValidate(t *testing.T) {
	manager := NewTokenManager(testTokenConfig())

	access, err := manager.IssueAccessToken("user-1", "alice@example.com")
	if err != nil {
		t.Fatalf("IssueAccessToken() error = %v", err)
	}

	claims, err := manager.ValidateAccessToken(access)
	if err != nil {
		t.Fatalf("ValidateAccessToken() error = %v", err)
	}
	if claims.UserID != "user-1" {
		t.Errorf("expected user id 'user-1', got %q", claims.UserID)
	}
	if claims.Email != "alice@example.com" {
		t.Errorf("expected email 'alice@example.com', got %q", claims.Email)
	}
}

func TestTokenManager_KindMismatch(t *testing.T) {
	manager := NewTokenManager(testTokenConfig())

	access, err := manager.IssueAccessToken("user-1", "alice@example.com")
	if err != nil {
		t.Fatalf("IssueAccessToken() error = %v", err)
	}
	refresh, err := manager.IssueRefreshToken("user-1", "alice@example.com")
	if err != nil {
		t.Fatalf("IssueRefreshToken() error = %v", err)
	}

	if _, err := manager.ValidateRefreshToken(access); err != ErrInvalidToken {
		t.Errorf("access token validated as refresh, err = %v", err)
	}
	if _, err := manager.ValidateAccessToken(refresh); err != ErrInvalidToken {
		t.Errorf("refresh token validated as access, err = %v", err)
	}
}

func TestTokenManager_ExpiredToken(t *testing.T) {
	config := testTokenConfig()
	config.AccessDuration = -time.Minute
	manager := NewTokenManager(config)

	token, err := manager.IssueAccessToken("user-1", "alice@example.com")
	if err != nil {
		t.Fatalf("IssueAccessToken() error = %v", err)
	}

	if _, err := manager.ValidateAccessToken(token); err != ErrExpiredToken {
		t.Errorf("expected ErrExpiredToken, got %v", err)
	}
}

func TestTokenManager_WrongSecret(t *testing.T) {
	manager := NewTokenManager(testTokenConfig())
	other := NewTokenManager(TokenConfig{
		SecretKey:       "different-secret",
		AccessDuration:  15 * time.Minute,
		RefreshDuration: 24 * time.Hour,
		Issuer:          "taskboard-test",
	})

	token, err := manager.IssueAccessToken("user-1", "alice@example.com")
	if err != nil {
		t.Fatalf("IssueAccessToken() error = %v", err)
	}

	if _, err := other.ValidateAccessToken(token); err != ErrInvalidToken {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestTokenManager_GarbageToken(t *testing.T) {
	manager := NewTokenManager(testTokenConfig())

	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := manager.ValidateAccessToken(token); err != ErrInvalidToken {
			t.Errorf("expected ErrInvalidToken for %q, got %v", token, err)
		}
	}
}

func TestTokenManager_AccessTokenSeconds(t *testing.T) {
	manager := NewTokenManager(testTokenConfig())
	if got := manager.AccessTokenSeconds(); got != 900 {
		t.Errorf("expected 900 seconds, got %d", got)
	}
}
