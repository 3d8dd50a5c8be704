package utils // package utils provides helper functions for token creation and hashing

import (
    "crypto/rand"   // secure random number generation
    "crypto/sha256" // SHA-256 hashing for tokens at rest
    "encoding/hex"  // hex encoding of random bytes and digests
    "time"          // expiry computation
)

// OpaqueToken is an unguessable random credential together with its
// expiration time.  The Raw field is what the client receives; in the
// database only a SHA-256 hash of the raw string is stored, so a stolen
// table dump cannot be replayed against the service.  Both session
// tokens and password reset tokens take this form.
type OpaqueToken struct {
    Raw string    // raw token string returned to the client
    Exp time.Time // UTC expiration time
}

// NewSessionToken returns a fresh session token valid for the given
// duration.  The caller chooses the horizon: 24 hours for a normal
// login, 30 days when the client asked to be remembered.
func NewSessionToken(ttl time.Duration) (OpaqueToken, error) {
    raw, err := randomHex(48) // 48 bytes -> 96 hex chars
    if err != nil {
        return OpaqueToken{}, err
    }
    return OpaqueToken{Raw: raw, Exp: time.Now().UTC().Add(ttl)}, nil
}

// NewResetToken returns a fresh password reset token valid for the
// given duration (one hour in production configuration).
func NewResetToken(ttl time.Duration) (OpaqueToken, error) {
    raw, err := randomHex(32) // 32 bytes -> 64 hex chars
    if err != nil {
        return OpaqueToken{}, err
    }
    return OpaqueToken{Raw: raw, Exp: time.Now().UTC().Add(ttl)}, nil
}

// HashTokenRaw returns the SHA-256 hash of a raw token as a hex string.
// Lookups hash the presented token first and match against the stored
// digest.
func HashTokenRaw(raw string) string {
    sum := sha256.Sum256([]byte(raw))
    return hex.EncodeToString(sum[:])
}

// randomHex returns a hex-encoded string generated from n bytes of
// cryptographically secure random data.
func randomHex(n int) (string, error) {
    buf := make([]byte, n)
    if _, err := rand.Read(buf); err != nil {
        return "", err
    }
    return hex.EncodeToString(buf), nil
}
