package account

import (
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/Klingon-tech/keeta-cli/pkg/crypto"
	"github.com/tyler-smith/go-bip32"
)

// SeedSize is the length of a wallet seed in bytes.
const SeedSize = 32

// MaxIndex is the largest derivation index. Indices are the last,
// non-hardened BIP-32 step for secp256k1, so the same bound applies
// to every algorithm.
const MaxIndex = bip32.FirstHardenedChild - 1

// Key derivation contexts. Changing either string changes every derived account.
const (
	contextED25519   = "keeta-cli account ed25519"
	contextSECP256R1 = "keeta-cli account secp256r1"
)

// p256Attempts bounds the rejection sampling for secp256r1 scalars.
// A 32-byte hash falls outside [1, N-1] with probability below 2^-32.
const p256Attempts = 16

var (
	// ErrInvalidSeed is returned for a seed that is not SeedSize bytes of hex.
	ErrInvalidSeed = errors.New("invalid seed")
	// ErrInvalidKey is returned for a malformed or unsupported private key.
	ErrInvalidKey = errors.New("invalid private key")
	// ErrIndexOutOfRange is returned for an index above MaxIndex.
	ErrIndexOutOfRange = errors.New("derivation index out of range")
)

// ParseSeed decodes a hex seed, accepting an optional 0x prefix.
func ParseSeed(s string) ([]byte, error) {
	seed, err := decodeHex(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSeed, err)
	}
	if len(seed) != SeedSize {
		return nil, fmt.Errorf("%w: must be %d bytes, got %d", ErrInvalidSeed, SeedSize, len(seed))
	}
	return seed, nil
}

// Derive returns the account at the given index under seed for an algorithm.
func Derive(seed []byte, index uint32, algo Algorithm) (*Account, error) {
	if len(seed) != SeedSize {
		return nil, fmt.Errorf("%w: must be %d bytes, got %d", ErrInvalidSeed, SeedSize, len(seed))
	}
	if index > MaxIndex {
		return nil, fmt.Errorf("%w: %d > %d", ErrIndexOutOfRange, index, MaxIndex)
	}

	switch algo {
	case ED25519:
		secret := crypto.DeriveKey(contextED25519, indexMaterial(seed, index))
		key, err := crypto.Ed25519FromSeed(secret[:])
		if err != nil {
			return nil, fmt.Errorf("derive ed25519 key: %w", err)
		}
		return newAccount(algo, key)

	case SECP256K1:
		master, err := NewMasterKey(seed)
		if err != nil {
			return nil, err
		}
		child, err := master.DeriveAccount(index)
		if err != nil {
			return nil, fmt.Errorf("derive secp256k1 key: %w", err)
		}
		key, err := child.Signer()
		if err != nil {
			return nil, fmt.Errorf("derive secp256k1 key: %w", err)
		}
		return newAccount(algo, key)

	case SECP256R1:
		material := indexMaterial(seed, index)
		for attempt := uint32(0); attempt < p256Attempts; attempt++ {
			secret := crypto.DeriveKey(contextSECP256R1, binary.BigEndian.AppendUint32(material, attempt))
			key, err := crypto.P256FromBytes(secret[:])
			if err != nil {
				continue
			}
			return newAccount(algo, key)
		}
		return nil, fmt.Errorf("derive secp256r1 key: no valid scalar after %d attempts", p256Attempts)

	default:
		return nil, &UnknownAlgorithmError{Value: string(algo)}
	}
}

// FromPrivateKey builds a secp256k1 account from a hex-encoded 32-byte key.
func FromPrivateKey(hexKey string) (*Account, error) {
	raw, err := decodeHex(hexKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	key, err := crypto.PrivateKeyFromBytes(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	return newAccount(SECP256K1, key)
}

// indexMaterial returns seed || big-endian index in a fresh slice.
func indexMaterial(seed []byte, index uint32) []byte {
	out := make([]byte, 0, len(seed)+8)
	out = append(out, seed...)
	return binary.BigEndian.AppendUint32(out, index)
}

func decodeHex(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if s == "" {
		return nil, errors.New("empty hex string")
	}
	return hex.DecodeString(s)
}
