package token

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func testManager(t *testing.T) *Manager {
	t.Helper()

	cfg := DefaultConfig()
	cfg.SecretKey = []byte("0123456789abcdef0123456789abcdef")

	m, err := NewManager(cfg)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	return m
}

func TestIssueAndVerify_RoundTrip(t *testing.T) {
	m := testManager(t)
	now := time.Now().UTC()

	tok, exp, err := m.Issue("3f6e2a0a-8f53-4c2b-9d3e-0c1b2a3d4e5f", now)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if want := now.Add(24 * time.Hour); !exp.Equal(want) {
		t.Fatalf("exp = %v, want %v", exp, want)
	}

	claims, err := m.Verify(tok, now.Add(time.Second))
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if claims.AccountID != "3f6e2a0a-8f53-4c2b-9d3e-0c1b2a3d4e5f" {
		t.Fatalf("account id = %q", claims.AccountID)
	}
	if claims.ExpiresAt.Unix() != exp.Unix() {
		t.Fatalf("claims exp = %v, want %v", claims.ExpiresAt, exp)
	}
}

func TestVerify_ExpiredIsDistinctFromForged(t *testing.T) {
	m := testManager(t)
	now := time.Now().UTC()

	tok, _, err := m.Issue("acct-1", now)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	_, err = m.Verify(tok, now.Add(25*time.Hour))
	if !errors.Is(err, ErrExpiredToken) {
		t.Fatalf("expected ErrExpiredToken, got %v", err)
	}
	if errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expired must not report as invalid")
	}
}

func TestVerify_TamperedToken(t *testing.T) {
	m := testManager(t)
	now := time.Now().UTC()

	tok, _, err := m.Issue("acct-1", now)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	// Flip a character in the signature segment.
	parts := strings.Split(tok, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape")
	}
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	forged := parts[0] + "." + parts[1] + "." + string(sig)

	if _, err := m.Verify(forged, now); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerify_WrongKey(t *testing.T) {
	m := testManager(t)
	now := time.Now().UTC()

	tok, _, err := m.Issue("acct-1", now)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	cfg := DefaultConfig()
	cfg.SecretKey = []byte("ffffffffffffffffffffffffffffffff")
	other, err := NewManager(cfg)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}

	if _, err := other.Verify(tok, now); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerify_Garbage(t *testing.T) {
	m := testManager(t)

	if _, err := m.Verify("not.a.token", time.Now().UTC()); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestNewManager_RejectsShortKey(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SecretKey = []byte("too short")

	if _, err := NewManager(cfg); !errors.Is(err, ErrConfig) {
		t.Fatalf("expected ErrConfig, got %v", err)
	}
}
