package utils

import (
	"errors"
	"testing"
	"time"

	"momnt-server/internal/config"

	"github.com/golang-jwt/jwt/v5"
)

func withSecret(t *testing.T, secret string) {
	t.Helper()
	prev := config.Get()
	t.Cleanup(func() { config.Set(prev) })
	cfg := prev
	cfg.JWT.Secret = secret
	config.Set(cfg)
}

func TestLoginToken_RoundTrip(t *testing.T) {
	withSecret(t, "test_secret")

	token, err := GenerateLoginToken("host-1", "a@x.com", time.Hour)
	if err != nil {
		t.Fatalf("GenerateLoginToken error: %v", err)
	}
	claims, err := ParseLoginToken(token)
	if err != nil {
		t.Fatalf("ParseLoginToken error: %v", err)
	}
	if claims.HostID != "host-1" || claims.Email != "a@x.com" || claims.Type != "login" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestParseLoginToken_Expired(t *testing.T) {
	withSecret(t, "test_secret")

	token, err := GenerateLoginToken("host-1", "a@x.com", -1*time.Second)
	if err != nil {
		t.Fatalf("GenerateLoginToken error: %v", err)
	}
	if _, err = ParseLoginToken(token); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestParseLoginToken_WrongSecret(t *testing.T) {
	withSecret(t, "secret_a")
	token, err := GenerateLoginToken("host-1", "a@x.com", time.Hour)
	if err != nil {
		t.Fatalf("GenerateLoginToken error: %v", err)
	}

	withSecret(t, "secret_b")
	if _, err = ParseLoginToken(token); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestParseLoginToken_RejectsWrongType(t *testing.T) {
	withSecret(t, "test_secret")

	claims := LoginClaims{
		HostID: "host-1",
		Type:   "email_verify",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test_secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err = ParseLoginToken(token); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestParseLoginToken_Garbage(t *testing.T) {
	withSecret(t, "test_secret")
	if _, err := ParseLoginToken("not-a-token"); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}
