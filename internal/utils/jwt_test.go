package utils

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestTokenRoundTrip(t *testing.T) {
	secret := []byte("test-secret")
	userID := uuid.New()

	token, err := GenerateToken(secret, userID, TokenTypeAccess, time.Hour)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	claims, err := ParseToken(secret, token)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if claims.UserID != userID {
		t.Fatalf("expected user %s, got %s", userID, claims.UserID)
	}
	if claims.TokenType != TokenTypeAccess {
		t.Fatalf("expected access token, got %s", claims.TokenType)
	}
}

func TestParseTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken([]byte("secret-a"), uuid.New(), TokenTypeAccess, time.Hour)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	if _, err := ParseToken([]byte("secret-b"), token); err == nil {
		t.Fatal("expected parse to fail with the wrong secret")
	}
}

func TestParseExpiredToken(t *testing.T) {
	secret := []byte("test-secret")
	token, err := GenerateToken(secret, uuid.New(), TokenTypeRefresh, -time.Minute)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	if _, err := ParseToken(secret, token); err == nil {
		t.Fatal("expected parse to fail for an expired token")
	}
}
