package auth

import (
	"errors"
	"testing"
)

const testJWTSecret = "0123456789abcdef0123456789abcdef"

func testAdmin() *Admin {
	return &Admin{
		ID:       "adm-12345678",
		Username: "gatekeeper",
	}
}

func TestGenerateAndParseToken(t *testing.T) {
	token, err := GenerateToken(testAdmin(), testJWTSecret, 60)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	claims, err := ParseToken(token, testJWTSecret)
	if err != nil {
		t.Fatalf("ParseToken() error = %v", err)
	}

	if claims.Subject != "adm-12345678" {
		t.Errorf("Subject = %q, want adm-12345678", claims.Subject)
	}
	if claims.Username != "gatekeeper" {
		t.Errorf("Username = %q, want gatekeeper", claims.Username)
	}
	if claims.ExpiresAt == nil {
		t.Error("ExpiresAt should be set")
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	token, err := GenerateToken(testAdmin(), testJWTSecret, 60)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	_, err = ParseToken(token, "a-completely-different-secret-value")
	if !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("error = %v, want ErrTokenInvalid", err)
	}
}

func TestParseToken_Garbage(t *testing.T) {
	_, err := ParseToken("not.a.token", testJWTSecret)
	if !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("error = %v, want ErrTokenInvalid", err)
	}
}

func TestGenerateToken_DefaultTTL(t *testing.T) {
	token, err := GenerateToken(testAdmin(), testJWTSecret, 0)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	claims, err := ParseToken(token, testJWTSecret)
	if err != nil {
		t.Fatalf("ParseToken() error = %v", err)
	}

	ttl := claims.ExpiresAt.Sub(claims.IssuedAt.Time)
	if ttl.Minutes() != defaultTokenTTLMinutes {
		t.Errorf("TTL = %v minutes, want %d", ttl.Minutes(), defaultTokenTTLMinutes)
	}
}
