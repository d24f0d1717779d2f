// Package types defines the primitive values exchanged with a Keeta gateway:
// account addresses, block hashes, token amounts and balances.
package types

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
)

// HashSize is the length of a hash in bytes.
const HashSize = 32

// Hash identifies a block or a published request.
// Its text form is upper-case hex, the form gateways print.
type Hash [HashSize]byte

// IsZero reports whether h is unset. An account's first block has a
// zero previous hash.
func (h Hash) IsZero() bool {
	return h == Hash{}
}

func (h Hash) String() string {
	return strings.ToUpper(hex.EncodeToString(h[:]))
}

// Bytes returns a copy of the hash.
func (h Hash) Bytes() []byte {
	return append([]byte(nil), h[:]...)
}

// MarshalJSON encodes the hash as hex. The zero hash encodes as "".
func (h Hash) MarshalJSON() ([]byte, error) {
	if h.IsZero() {
		return []byte(`""`), nil
	}
	return json.Marshal(h.String())
}

// UnmarshalJSON accepts any form ParseHash does, plus "" for the zero hash.
func (h *Hash) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*h = Hash{}
		return nil
	}
	parsed, err := ParseHash(s)
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}

// ParseHash decodes 64 hex characters in either case, with an optional
// 0x prefix.
func ParseHash(s string) (Hash, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if len(s) != 2*HashSize {
		return Hash{}, fmt.Errorf("hash must be %d hex characters, got %d", 2*HashSize, len(s))
	}
	var h Hash
	if _, err := hex.Decode(h[:], []byte(s)); err != nil {
		return Hash{}, fmt.Errorf("invalid hash: %w", err)
	}
	return h, nil
}
