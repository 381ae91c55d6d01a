// Package cryptox derives non-reversible identifiers from bearer tokens so
// they can be used as cache keys or log fields without exposing the token.
package cryptox

import (
	"encoding/base64"

	"golang.org/x/crypto/blake2b"
)

// FingerprintToken returns a keyed BLAKE2b-256 digest of token, base64url
// encoded (43 chars). key may be nil; a per-process random key keeps
// fingerprints from being precomputed outside the process.
func FingerprintToken(key []byte, token string) string {
	h, err := blake2b.New256(key)
	if err != nil {
		// Only returned for keys longer than 64 bytes.
		panic("cryptox: fingerprint key too long")
	}
	_, _ = h.Write([]byte(token))
	return base64.RawURLEncoding.EncodeToString(h.Sum(nil))
}

// ShortFingerprint is the first 12 characters of an unkeyed fingerprint,
// enough to correlate log lines for one session.
func ShortFingerprint(token string) string {
	return FingerprintToken(nil, token)[:12]
}
