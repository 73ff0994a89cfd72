package auth

import (
	"errors"
	"testing"
	"time"
)

func TestJWTManager_GenerateAndVerify(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour)

	token, err := manager.Generate("admin")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	claims, err := manager.Verify(token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claims.Username != "admin" {
		t.Errorf("expected username admin, got %s", claims.Username)
	}
}

func TestJWTManager_ExpiredToken(t *testing.T) {
	manager := NewJWTManager("test-secret", -time.Minute)

	token, err := manager.Generate("admin")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := manager.Verify(token); !errors.Is(err, ErrExpiredToken) {
		t.Errorf("expected ErrExpiredToken, got %v", err)
	}
}

func TestJWTManager_InvalidToken(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour)

	if _, err := manager.Verify("not-a-token"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}

	// Token signed with a different secret.
	other := NewJWTManager("other-secret", time.Hour)
	token, err := other.Generate("admin")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := manager.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for wrong secret, got %v", err)
	}
}
