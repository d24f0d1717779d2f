package crypto

import (
	"crypto/ecdh"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/Klingon-tech/keeta-cli/pkg/types"
)

// P256Key is a secp256r1 (NIST P-256) ECDSA signing key.
type P256Key struct {
	key *ecdsa.PrivateKey
	raw []byte
}

// P256FromBytes creates a P-256 key from a 32-byte big-endian scalar.
// Returns an error if the scalar is zero or not below the curve order.
func P256FromBytes(b []byte) (*P256Key, error) {
	if len(b) != 32 {
		return nil, fmt.Errorf("private key must be 32 bytes, got %d", len(b))
	}
	// ecdh validates the scalar range and computes the public point.
	ek, err := ecdh.P256().NewPrivateKey(b)
	if err != nil {
		return nil, fmt.Errorf("invalid p256 scalar: %w", err)
	}
	uncompressed := ek.PublicKey().Bytes() // 0x04 || X || Y
	x := new(big.Int).SetBytes(uncompressed[1:33])
	y := new(big.Int).SetBytes(uncompressed[33:65])

	raw := make([]byte, 32)
	copy(raw, b)
	return &P256Key{
		key: &ecdsa.PrivateKey{
			PublicKey: ecdsa.PublicKey{Curve: elliptic.P256(), X: x, Y: y},
			D:         new(big.Int).SetBytes(b),
		},
		raw: raw,
	}, nil
}

// Sign produces an ASN.1 DER ECDSA signature over a 32-byte hash.
func (k *P256Key) Sign(hash []byte) ([]byte, error) {
	if len(hash) != 32 {
		return nil, fmt.Errorf("hash must be 32 bytes, got %d", len(hash))
	}
	sig, err := ecdsa.SignASN1(rand.Reader, k.key, hash)
	if err != nil {
		return nil, fmt.Errorf("ecdsa sign: %w", err)
	}
	return sig, nil
}

// PublicKey returns the compressed 33-byte public key.
func (k *P256Key) PublicKey() []byte {
	return elliptic.MarshalCompressed(elliptic.P256(), k.key.X, k.key.Y)
}

// Serialize returns the 32-byte private scalar.
func (k *P256Key) Serialize() []byte {
	out := make([]byte, len(k.raw))
	copy(out, k.raw)
	return out
}

// KeyType implements Signer.
func (k *P256Key) KeyType() types.KeyType {
	return types.KeyTypeSECP256R1
}

func verifyP256(hash, signature, publicKey []byte) bool {
	x, y := elliptic.UnmarshalCompressed(elliptic.P256(), publicKey)
	if x == nil {
		return false
	}
	pub := &ecdsa.PublicKey{Curve: elliptic.P256(), X: x, Y: y}
	return ecdsa.VerifyASN1(pub, hash, signature)
}
