package crypto

import (
	"crypto/ed25519"
	"fmt"

	"github.com/Klingon-tech/keeta-cli/pkg/types"
)

// Ed25519Key is an ed25519 signing key built from a 32-byte seed.
type Ed25519Key struct {
	key ed25519.PrivateKey
}

// Ed25519FromSeed expands a 32-byte seed into an ed25519 key (RFC 8032).
func Ed25519FromSeed(seed []byte) (*Ed25519Key, error) {
	if len(seed) != ed25519.SeedSize {
		return nil, fmt.Errorf("ed25519 seed must be %d bytes, got %d", ed25519.SeedSize, len(seed))
	}
	return &Ed25519Key{key: ed25519.NewKeyFromSeed(seed)}, nil
}

// Sign signs the 32-byte hash as an ed25519 message.
func (k *Ed25519Key) Sign(hash []byte) ([]byte, error) {
	if len(hash) != 32 {
		return nil, fmt.Errorf("hash must be 32 bytes, got %d", len(hash))
	}
	return ed25519.Sign(k.key, hash), nil
}

// PublicKey returns the 32-byte public key.
func (k *Ed25519Key) PublicKey() []byte {
	pub := k.key.Public().(ed25519.PublicKey)
	out := make([]byte, len(pub))
	copy(out, pub)
	return out
}

// Serialize returns the 32-byte seed the key was expanded from.
func (k *Ed25519Key) Serialize() []byte {
	return k.key.Seed()
}

// KeyType implements Signer.
func (k *Ed25519Key) KeyType() types.KeyType {
	return types.KeyTypeED25519
}

func verifyEd25519(hash, signature, publicKey []byte) bool {
	if len(publicKey) != ed25519.PublicKeySize || len(signature) != ed25519.SignatureSize {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(publicKey), hash, signature)
}
