package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/stitbu/satupintu/internal/config"
)

func setTestSecret(t *testing.T) {
	t.Helper()
	prev := config.AppConfig.JWTSecret
	config.AppConfig.JWTSecret = "unit-test-secret"
	t.Cleanup(func() { config.AppConfig.JWTSecret = prev })
}

func TestJWTRoundTrip(t *testing.T) {
	setTestSecret(t)

	token, err := GenerateJWT("u1")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	userID, err := ValidateJWT(token)
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if userID != "u1" {
		t.Fatalf("subject mangled: %q", userID)
	}
}

func TestValidateJWTRejectsForgedSignature(t *testing.T) {
	setTestSecret(t)

	claims := jwt.RegisteredClaims{
		Subject:   "u1",
		Issuer:    tokenIssuer,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("some-other-secret"))
	if err != nil {
		t.Fatalf("sign forged token: %v", err)
	}
	if _, err := ValidateJWT(forged); err == nil {
		t.Fatal("token signed with a different secret was accepted")
	}
}

func TestValidateJWTRejectsForeignIssuer(t *testing.T) {
	setTestSecret(t)

	claims := jwt.RegisteredClaims{
		Subject:   "u1",
		Issuer:    "someone-else",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(config.AppConfig.JWTSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	if _, err := ValidateJWT(token); err == nil {
		t.Fatal("token from a foreign issuer was accepted")
	}
}

func TestValidateJWTRejectsExpired(t *testing.T) {
	setTestSecret(t)

	claims := jwt.RegisteredClaims{
		Subject:   "u1",
		Issuer:    tokenIssuer,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(config.AppConfig.JWTSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	if _, err := ValidateJWT(token); err == nil {
		t.Fatal("expired token was accepted")
	}
}
