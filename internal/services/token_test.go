package services

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/diebraga/daily-diet-api/internal/config"
)

func testIssuer(ttl time.Duration) *TokenIssuer {
	return NewTokenIssuer(&config.Config{JWTSecret: "test-secret", TokenTTL: ttl})
}

func TestIssueAndVerify_RoundTrip(t *testing.T) {
	t.Parallel()

	issuer := testIssuer(time.Hour)

	for _, tc := range []struct {
		userID  int64
		isAdmin bool
	}{
		{1, false},
		{7, true},
		{42, false},
	} {
		tok, err := issuer.Issue(tc.userID, tc.isAdmin)
		if err != nil {
			t.Fatalf("Issue error: %v", err)
		}

		claims, err := issuer.Verify(tok)
		if err != nil {
			t.Fatalf("Verify error: %v", err)
		}
		if claims.UserID != tc.userID {
			t.Fatalf("user_id mismatch: got %d want %d", claims.UserID, tc.userID)
		}
		if claims.IsAdmin != tc.isAdmin {
			t.Fatalf("is_admin mismatch: got %v want %v", claims.IsAdmin, tc.isAdmin)
		}
	}
}

func TestIssue_ExpirySetFromTTL(t *testing.T) {
	t.Parallel()

	issuer := testIssuer(24 * time.Hour)

	tok, err := issuer.Issue(1, false)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	claims, err := issuer.Verify(tok)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}

	want := time.Now().Add(24 * time.Hour)
	got := claims.ExpiresAt.Time
	if got.Before(want.Add(-time.Minute)) || got.After(want.Add(time.Minute)) {
		t.Fatalf("exp not ~24h out: got %v", got)
	}
}

func TestVerify_Expired(t *testing.T) {
	t.Parallel()

	issuer := testIssuer(-time.Second)

	tok, err := issuer.Issue(1, false)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	_, err = issuer.Verify(tok)
	if !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := testIssuer(time.Hour).Issue(1, true)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	other := NewTokenIssuer(&config.Config{JWTSecret: "other-secret", TokenTTL: time.Hour})
	_, err = other.Verify(tok)
	if !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestVerify_Malformed(t *testing.T) {
	t.Parallel()

	_, err := testIssuer(time.Hour).Verify("not.a.jwt")
	if !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestVerify_RejectsUnsignedToken(t *testing.T) {
	t.Parallel()

	claims := Claims{UserID: 1, IsAdmin: true, RegisteredClaims: jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, claims)
	tok, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign error: %v", err)
	}

	_, err = testIssuer(time.Hour).Verify(tok)
	if !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for alg=none, got %v", err)
	}
}
