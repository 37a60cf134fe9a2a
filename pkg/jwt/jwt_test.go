package jwt

import (
	"testing"
	"time"

	"clinic-api/config"

	"github.com/google/uuid"
)

func newTestService(expiry time.Duration) *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:        "test-secret",
		SessionExpiry: expiry,
	})
}

func TestSessionTokenRoundTrip(t *testing.T) {
	service := newTestService(time.Hour)
	userID := uuid.New()

	token, tokenID, err := service.GenerateSessionToken(userID, "doctor@clinic.com", "doctor", "Dr. Sharma")
	if err != nil {
		t.Fatalf("GenerateSessionToken() error = %v", err)
	}
	if tokenID == "" {
		t.Fatal("expected a non-empty token ID")
	}

	claims, err := service.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}

	if claims.UserID != userID {
		t.Errorf("user ID = %s, want %s", claims.UserID, userID)
	}
	if claims.Email != "doctor@clinic.com" {
		t.Errorf("email = %q, want doctor@clinic.com", claims.Email)
	}
	if claims.Role != "doctor" {
		t.Errorf("role = %q, want doctor", claims.Role)
	}
	if claims.TokenID != tokenID {
		t.Errorf("token ID = %q, want %q", claims.TokenID, tokenID)
	}
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	service := newTestService(-time.Minute)

	token, _, err := service.GenerateSessionToken(uuid.New(), "a@clinic.com", "patient", "A")
	if err != nil {
		t.Fatalf("GenerateSessionToken() error = %v", err)
	}

	if _, err := service.ValidateToken(token); err == nil {
		t.Error("expected an error for an expired token")
	}
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	token, _, err := newTestService(time.Hour).GenerateSessionToken(uuid.New(), "a@clinic.com", "patient", "A")
	if err != nil {
		t.Fatalf("GenerateSessionToken() error = %v", err)
	}

	other := NewJWTService(config.JWTConfig{Secret: "other-secret", SessionExpiry: time.Hour})
	if _, err := other.ValidateToken(token); err == nil {
		t.Error("expected an error for a token signed with another secret")
	}
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	service := newTestService(time.Hour)
	for _, tokenString := range []string{"", "not-a-token", "aaa.bbb.ccc"} {
		if _, err := service.ValidateToken(tokenString); err == nil {
			t.Errorf("expected an error for %q", tokenString)
		}
	}
}
