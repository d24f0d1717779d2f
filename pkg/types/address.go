package types

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/btcsuite/btcd/btcutil/bech32"
)

// KeyType identifies the signature scheme behind an address.
// The value is the first byte of the encoded address payload.
type KeyType byte

const (
	KeyTypeED25519   KeyType = 0x01
	KeyTypeSECP256K1 KeyType = 0x02
	KeyTypeSECP256R1 KeyType = 0x03
)

// PublicKeySize returns the public key length for the key type, or 0 if unknown.
// ed25519 keys are 32 bytes; ECDSA keys are stored compressed (33 bytes).
func (k KeyType) PublicKeySize() int {
	switch k {
	case KeyTypeED25519:
		return 32
	case KeyTypeSECP256K1, KeyTypeSECP256R1:
		return 33
	default:
		return 0
	}
}

func (k KeyType) String() string {
	switch k {
	case KeyTypeED25519:
		return "ed25519"
	case KeyTypeSECP256K1:
		return "secp256k1"
	case KeyTypeSECP256R1:
		return "secp256r1"
	default:
		return fmt.Sprintf("keytype(%d)", byte(k))
	}
}

// maxPublicKeySize is the largest public key any KeyType carries.
const maxPublicKeySize = 33

// AddressSize is the length of an address in bytes: key type + public key.
// Shorter keys are zero-padded at the end.
const AddressSize = 1 + maxPublicKeySize

// Address HRP (human-readable part) constants for bech32 encoding.
const (
	MainnetHRP = "keeta"
	TestnetHRP = "tkeeta"
)

// activeHRP is the address HRP used by String() and MarshalJSON().
// Set once at startup via SetAddressHRP(). Default is testnet.
var activeHRP = TestnetHRP

// SetAddressHRP sets the active address HRP (call once at startup).
func SetAddressHRP(hrp string) {
	activeHRP = hrp
}

// GetAddressHRP returns the currently active address HRP.
func GetAddressHRP() string {
	return activeHRP
}

// Address is the network-visible identity of an account: the key type
// followed by the public key. Addresses are comparable with ==.
type Address [AddressSize]byte

// NewAddress builds an address from a key type and public key.
func NewAddress(kt KeyType, pubKey []byte) (Address, error) {
	size := kt.PublicKeySize()
	if size == 0 {
		return Address{}, fmt.Errorf("unknown key type %d", byte(kt))
	}
	if len(pubKey) != size {
		return Address{}, fmt.Errorf("%s public key must be %d bytes, got %d", kt, size, len(pubKey))
	}
	var a Address
	a[0] = byte(kt)
	copy(a[1:], pubKey)
	return a, nil
}

// IsZero returns true if the address is all zeros.
func (a Address) IsZero() bool {
	return a == Address{}
}

// KeyType returns the signature scheme of the address.
func (a Address) KeyType() KeyType {
	return KeyType(a[0])
}

// PublicKey returns a copy of the public key bytes.
func (a Address) PublicKey() []byte {
	size := a.KeyType().PublicKeySize()
	b := make([]byte, size)
	copy(b, a[1:1+size])
	return b
}

// payload returns the bytes that are bech32-encoded: key type + public key.
func (a Address) payload() []byte {
	return a[:1+a.KeyType().PublicKeySize()]
}

// String returns the bech32-encoded address (e.g. "keeta1...").
func (a Address) String() string {
	s, err := bech32.EncodeFromBase256(activeHRP, a.payload())
	if err != nil {
		// Fallback to hex if encoding fails (should never happen).
		return activeHRP + ":" + a.Hex()
	}
	return s
}

// Hex returns the hex-encoded payload without prefix.
func (a Address) Hex() string {
	return hex.EncodeToString(a.payload())
}

// MarshalJSON encodes the address as a bech32 string. The zero address
// encodes as "".
func (a Address) MarshalJSON() ([]byte, error) {
	if a.IsZero() {
		return []byte(`""`), nil
	}
	return json.Marshal(a.String())
}

// UnmarshalJSON decodes a bech32 string into an address.
func (a *Address) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*a = Address{}
		return nil
	}
	parsed, err := ParseAddress(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// ParseAddress parses a bech32 address with either the mainnet or testnet HRP.
func ParseAddress(s string) (Address, error) {
	if s == "" {
		return Address{}, fmt.Errorf("empty address")
	}
	hrp, data, err := bech32.DecodeToBase256(s)
	if err != nil {
		return Address{}, fmt.Errorf("invalid bech32 address: %w", err)
	}
	if hrp != MainnetHRP && hrp != TestnetHRP {
		return Address{}, fmt.Errorf("unknown address prefix %q", hrp)
	}
	if len(data) < 1 {
		return Address{}, fmt.Errorf("address payload is empty")
	}
	return NewAddress(KeyType(data[0]), data[1:])
}
