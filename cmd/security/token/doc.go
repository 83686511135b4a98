// Package token issues and verifies Parley session tokens.
//
// A session token is a compact, self-contained HS256 JWT carrying the
// account id and an absolute expiry. Validity is entirely a function
// of the token's own content and the clock; there is no server-side
// revocation store. Verification distinguishes a well-formed but
// expired token (ErrExpiredToken) from a forged or malformed one
// (ErrInvalidToken) so callers can treat expiry more leniently.
package token
