package token

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the verified session payload: the caller's account identity
// and its expiry.
type Claims struct {
	AccountID string
	ExpiresAt time.Time
	IssuedAt  time.Time
}

// Config defines runtime configuration for the token codec.
//
// The signing key is process-wide static configuration passed in
// explicitly; rotating it invalidates all outstanding tokens.
type Config struct {
	// Issuer is the value set in the "iss" claim.
	Issuer string

	// Lifetime defines the absolute expiry as issue-time + Lifetime.
	Lifetime time.Duration

	// Leeway is the allowed clock skew during validation.
	Leeway time.Duration

	// SecretKey is the HS256 signing key. Must be at least 32 bytes.
	SecretKey []byte
}

// DefaultConfig returns the codec defaults (one-day tokens).
// The secret key must still be provided by the caller.
func DefaultConfig() Config {
	return Config{
		Issuer:   "parley",
		Lifetime: 24 * time.Hour,
		Leeway:   0,
	}
}

// LoadConfigFromEnv loads codec configuration from environment variables.
//
// Required:
//   - PARLEY_TOKEN_SECRET (>= 32 bytes)
//
// Optional:
//   - PARLEY_TOKEN_ISSUER
//   - PARLEY_TOKEN_LIFETIME (Go duration string)
//   - PARLEY_TOKEN_LEEWAY (Go duration string)
func LoadConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()

	if v := os.Getenv("PARLEY_TOKEN_ISSUER"); v != "" {
		cfg.Issuer = v
	}
	if v := os.Getenv("PARLEY_TOKEN_LIFETIME"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return Config{}, ErrConfig
		}
		cfg.Lifetime = d
	}
	if v := os.Getenv("PARLEY_TOKEN_LEEWAY"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d < 0 {
			return Config{}, ErrConfig
		}
		cfg.Leeway = d
	}

	cfg.SecretKey = []byte(os.Getenv("PARLEY_TOKEN_SECRET"))

	return cfg, nil
}

// Manager issues and verifies session tokens.
type Manager struct {
	issuer   string
	lifetime time.Duration
	leeway   time.Duration
	secret   []byte
}

type sessionClaims struct {
	AccountID string `json:"uid"`
	jwt.RegisteredClaims
}

// NewManager constructs a Manager from config.
func NewManager(cfg Config) (*Manager, error) {
	if len(cfg.SecretKey) < 32 {
		return nil, ErrConfig
	}
	if cfg.Lifetime <= 0 || cfg.Leeway < 0 {
		return nil, ErrConfig
	}
	if cfg.Issuer == "" {
		return nil, ErrConfig
	}

	return &Manager{
		issuer:   cfg.Issuer,
		lifetime: cfg.Lifetime,
		leeway:   cfg.Leeway,
		secret:   cfg.SecretKey,
	}, nil
}

// Issue signs a session token for accountID with expiry now + lifetime.
func (m *Manager) Issue(accountID string, now time.Time) (string, time.Time, error) {
	if accountID == "" {
		return "", time.Time{}, ErrConfig
	}
	if now.IsZero() {
		now = time.Now().UTC()
	}

	exp := now.Add(m.lifetime)

	claims := sessionClaims{
		AccountID: accountID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// Verify checks integrity and freshness of a session token.
//
// Forged, tampered, or structurally bad tokens yield ErrInvalidToken;
// cryptographically valid tokens past their expiry yield ErrExpiredToken.
func (m *Manager) Verify(tokenStr string, now time.Time) (Claims, error) {
	if now.IsZero() {
		now = time.Now().UTC()
	}

	// Build a fresh parser per call; validation time is pinned to the
	// caller-supplied clock.
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(m.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(m.leeway),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)

	var claims sessionClaims
	_, err := parser.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (any, error) {
		return m.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, ErrExpiredToken
		}
		return Claims{}, ErrInvalidToken
	}

	if claims.AccountID == "" || claims.ExpiresAt == nil {
		return Claims{}, ErrInvalidToken
	}

	out := Claims{
		AccountID: claims.AccountID,
		ExpiresAt: claims.ExpiresAt.Time,
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}
	return out, nil
}
