package crypto

import (
	"fmt"

	"github.com/Klingon-tech/keeta-cli/pkg/types"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/schnorr"
)

// Signer signs 32-byte digests with an account key.
type Signer interface {
	// Sign produces a signature over a 32-byte hash.
	Sign(hash []byte) ([]byte, error)
	// PublicKey returns the public key in its address encoding
	// (32 bytes for ed25519, 33-byte compressed point otherwise).
	PublicKey() []byte
	// Serialize returns the raw private key material.
	Serialize() []byte
	// KeyType identifies the signature scheme.
	KeyType() types.KeyType
}

// PrivateKey wraps a secp256k1 private key for Schnorr signing.
type PrivateKey struct {
	key *secp256k1.PrivateKey
}

// GenerateKey creates a new random secp256k1 private key.
func GenerateKey() (*PrivateKey, error) {
	key, err := secp256k1.GeneratePrivateKey()
	if err != nil {
		return nil, fmt.Errorf("generate key: %w", err)
	}
	return &PrivateKey{key: key}, nil
}

// PrivateKeyFromBytes creates a secp256k1 PrivateKey from a 32-byte secret.
// The scalar must be in [1, N-1].
func PrivateKeyFromBytes(b []byte) (*PrivateKey, error) {
	if len(b) != 32 {
		return nil, fmt.Errorf("private key must be 32 bytes, got %d", len(b))
	}
	var scalar secp256k1.ModNScalar
	if overflow := scalar.SetByteSlice(b); overflow || scalar.IsZero() {
		return nil, fmt.Errorf("private key is out of range for secp256k1")
	}
	return &PrivateKey{key: secp256k1.NewPrivateKey(&scalar)}, nil
}

// Sign produces a Schnorr signature over a 32-byte hash.
func (pk *PrivateKey) Sign(hash []byte) ([]byte, error) {
	if len(hash) != 32 {
		return nil, fmt.Errorf("hash must be 32 bytes, got %d", len(hash))
	}
	sig, err := schnorr.Sign(pk.key, hash)
	if err != nil {
		return nil, fmt.Errorf("schnorr sign: %w", err)
	}
	return sig.Serialize(), nil
}

// PublicKey returns the compressed 33-byte public key.
func (pk *PrivateKey) PublicKey() []byte {
	return pk.key.PubKey().SerializeCompressed()
}

// Serialize returns the 32-byte private key scalar.
func (pk *PrivateKey) Serialize() []byte {
	return pk.key.Serialize()
}

// KeyType implements Signer.
func (pk *PrivateKey) KeyType() types.KeyType {
	return types.KeyTypeSECP256K1
}

// Zero securely zeroes the private key memory.
func (pk *PrivateKey) Zero() {
	pk.key.Zero()
}

// VerifySignature checks a signature against a 32-byte hash and a public key
// of the given type. Returns false on any error.
func VerifySignature(kt types.KeyType, hash, signature, publicKey []byte) bool {
	switch kt {
	case types.KeyTypeSECP256K1:
		return verifySchnorr(hash, signature, publicKey)
	case types.KeyTypeED25519:
		return verifyEd25519(hash, signature, publicKey)
	case types.KeyTypeSECP256R1:
		return verifyP256(hash, signature, publicKey)
	default:
		return false
	}
}

func verifySchnorr(hash, signature, publicKey []byte) bool {
	pubKey, err := secp256k1.ParsePubKey(publicKey)
	if err != nil {
		return false
	}
	sig, err := schnorr.ParseSignature(signature)
	if err != nil {
		return false
	}
	return sig.Verify(hash, pubKey)
}
