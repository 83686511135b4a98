// Package password provides Argon2id password hashing and the Parley
// signup strength policy.
//
// Hashes are PHC-encoded strings with a fresh random salt per call, so
// hashing the same password twice yields different blobs. Verification
// is constant-time over the derived key and strictly separates
// "mismatch" from "malformed hash".
package password
