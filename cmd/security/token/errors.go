package token

import "errors"

var (
	// ErrInvalidToken is returned for forged, tampered, or structurally
	// malformed tokens.
	ErrInvalidToken = errors.New("invalid token")

	// ErrExpiredToken is returned for tokens that verified cryptographically
	// but whose expiry has passed.
	ErrExpiredToken = errors.New("token expired")

	// ErrConfig is returned for invalid configuration.
	ErrConfig = errors.New("invalid config")
)
