package domain

import (
	"encoding/hex"
	"strings"
)

// PublicKeySize is the length in bytes of an x-only public key.
const PublicKeySize = 32

// PublicKey is the account identity key held by the public_key setting.
//
// Text form is 64 lowercase hex characters.
type PublicKey [PublicKeySize]byte

// ParsePublicKey parses the hex text form of a public key.
//
// Only hex is accepted. The bech32 npub1 form is recognised so that
// pasting one gets a pointed error instead of a length mismatch.
func ParsePublicKey(s string) (PublicKey, error) {
	var pk PublicKey
	s = strings.TrimSpace(s)
	if strings.HasPrefix(strings.ToLower(s), "npub1") {
		return pk, ErrInvalidPublicKey.WithDetails("npub1 keys are not accepted, use the 64 hex character form")
	}
	if len(s) != hex.EncodedLen(PublicKeySize) {
		return pk, ErrInvalidPublicKey.WithDetails("expected 64 hex characters")
	}
	if _, err := hex.Decode(pk[:], []byte(s)); err != nil {
		return pk, ErrInvalidPublicKey.WithCause(err)
	}
	return pk, nil
}

// PublicKeyFromBytes copies b into a PublicKey.
func PublicKeyFromBytes(b []byte) (PublicKey, error) {
	var pk PublicKey
	if len(b) != PublicKeySize {
		return pk, ErrInvalidPublicKey.WithDetails("expected 32 bytes")
	}
	copy(pk[:], b)
	return pk, nil
}

// String returns the hex text form.
func (pk PublicKey) String() string {
	return hex.EncodeToString(pk[:])
}

// MarshalText implements encoding.TextMarshaler.
func (pk PublicKey) MarshalText() ([]byte, error) {
	return []byte(pk.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (pk *PublicKey) UnmarshalText(text []byte) error {
	parsed, err := ParsePublicKey(string(text))
	if err != nil {
		return err
	}
	*pk = parsed
	return nil
}
