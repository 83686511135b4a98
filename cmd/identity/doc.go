// Package identity owns Parley accounts and the signup/signin flows.
//
// It exposes the Store persistence boundary (Postgres and in-memory
// implementations), email validation/normalization, and the Service
// that orchestrates credential hashing and session-token issuance.
package identity
