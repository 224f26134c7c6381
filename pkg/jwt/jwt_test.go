package jwt

import (
	"testing"
	"time"

	"github.com/fibidydev01-sys/administrasi-pkbm-sub001/config"
)

func testManager(accessTTL time.Duration) *Manager {
	return NewManager(&config.AuthConfig{
		JWTSecret:       "test-secret-at-least-16-chars",
		AccessTokenTTL:  accessTTL,
		RefreshTokenTTL: 24 * time.Hour,
	})
}

func TestManager_GenerateAndParseAccessToken(t *testing.T) {
	m := testManager(15 * time.Minute)

	token, err := m.GenerateAccessToken("user-001", "guru")
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}

	claims, err := m.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken failed: %v", err)
	}
	if claims.UserID != "user-001" {
		t.Errorf("expected UserID=user-001, got %s", claims.UserID)
	}
	if claims.Role != "guru" {
		t.Errorf("expected Role=guru, got %s", claims.Role)
	}
	if claims.TokenType != "access" {
		t.Errorf("expected TokenType=access, got %s", claims.TokenType)
	}
	if claims.ID == "" {
		t.Error("expected non-empty jti")
	}
}

func TestManager_RefreshTokenType(t *testing.T) {
	m := testManager(15 * time.Minute)

	token, err := m.GenerateRefreshToken("user-001", "admin")
	if err != nil {
		t.Fatalf("GenerateRefreshToken failed: %v", err)
	}

	claims, err := m.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken failed: %v", err)
	}
	if claims.TokenType != "refresh" {
		t.Errorf("expected TokenType=refresh, got %s", claims.TokenType)
	}
}

func TestManager_ExpiredToken(t *testing.T) {
	m := testManager(-1 * time.Minute)

	token, err := m.GenerateAccessToken("user-001", "guru")
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}

	if _, err := m.ParseToken(token); err != ErrTokenExpired {
		t.Errorf("expected ErrTokenExpired, got %v", err)
	}
}

func TestManager_WrongSecret(t *testing.T) {
	m := testManager(15 * time.Minute)
	other := NewManager(&config.AuthConfig{
		JWTSecret:       "another-secret-16-chars-x",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 24 * time.Hour,
	})

	token, err := m.GenerateAccessToken("user-001", "guru")
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}

	if _, err := other.ParseToken(token); err != ErrTokenInvalid {
		t.Errorf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestManager_GarbageToken(t *testing.T) {
	m := testManager(15 * time.Minute)

	if _, err := m.ParseToken("not-a-token"); err != ErrTokenInvalid {
		t.Errorf("expected ErrTokenInvalid, got %v", err)
	}
}
