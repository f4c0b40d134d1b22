package service

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/portfolio-cms/portfolio-api/internal/core/domain"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }

func newTestTokens(t *testing.T, clock *fakeClock) *TokenService {
	t.Helper()
	svc, err := NewTokenService("secret", "HS256", 30*time.Minute, WithClock(clock.Now))
	if err != nil {
		t.Fatalf("NewTokenService returned error: %v", err)
	}
	return svc
}

func TestTokenService_IssueValidate(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)}
	svc := newTestTokens(t, clock)

	token, issued, err := svc.Issue("alice")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	if issued.ID == "" {
		t.Fatalf("expected token id")
	}
	if !issued.ExpiresAt.Equal(clock.t.Add(30 * time.Minute)) {
		t.Fatalf("unexpected expiry %s", issued.ExpiresAt)
	}

	claims, err := svc.Validate(token)
	if err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
	if claims.Subject != "alice" || claims.ID != issued.ID {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestTokenService_ExpiredTokenIsInvalid(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)}
	svc := newTestTokens(t, clock)

	token, _, err := svc.Issue("alice")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	clock.t = clock.t.Add(31 * time.Minute)
	if _, err := svc.Validate(token); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
	if !errors.Is(domain.ErrInvalidToken, domain.ErrUnauthenticated) {
		t.Fatalf("ErrInvalidToken must be an unauthenticated error")
	}
}

func TestTokenService_RejectsForeignSignature(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	svc := newTestTokens(t, clock)

	other, err := NewTokenService("other-secret", "HS256", time.Minute, WithClock(clock.Now))
	if err != nil {
		t.Fatalf("NewTokenService returned error: %v", err)
	}
	token, _, _ := other.Issue("alice")

	if _, err := svc.Validate(token); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestTokenService_RejectsOtherAlgorithms(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	svc := newTestTokens(t, clock)

	claims := jwt.RegisteredClaims{
		Subject:   "alice",
		ExpiresAt: jwt.NewNumericDate(clock.t.Add(time.Hour)),
	}

	hs512, _ := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("secret"))
	if _, err := svc.Validate(hs512); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected HS512 token to be rejected, got %v", err)
	}

	none, _ := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if _, err := svc.Validate(none); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected alg=none token to be rejected, got %v", err)
	}
}

func TestTokenService_RequiresExpiry(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	svc := newTestTokens(t, clock)

	token, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "alice"}).SignedString([]byte("secret"))
	if _, err := svc.Validate(token); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected token without exp to be rejected, got %v", err)
	}
}

func TestTokenService_Malformed(t *testing.T) {
	svc := newTestTokens(t, &fakeClock{t: time.Now()})
	if _, err := svc.Validate("not-a-jwt"); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestNewTokenService_Validation(t *testing.T) {
	if _, err := NewTokenService("", "HS256", time.Minute); err == nil {
		t.Fatalf("expected error for empty secret")
	}
	if _, err := NewTokenService("secret", "RS256", time.Minute); err == nil {
		t.Fatalf("expected error for asymmetric algorithm")
	}
	if _, err := NewTokenService("secret", "HS384", time.Minute); err != nil {
		t.Fatalf("expected HS384 to be accepted, got %v", err)
	}
}
