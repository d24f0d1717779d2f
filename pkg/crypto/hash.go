// Package crypto provides the hashing and signing primitives used by keeta-cli.
package crypto

import (
	"github.com/Klingon-tech/keeta-cli/pkg/types"
	"github.com/zeebo/blake3"
)

// Hash computes a BLAKE3-256 hash of the input data.
func Hash(data []byte) types.Hash {
	return blake3.Sum256(data)
}

// DeriveKey derives 32 bytes of key material bound to a context string
// using BLAKE3's key derivation mode. The context must be a hardcoded,
// globally unique string; changing it changes every derived key.
func DeriveKey(context string, material []byte) [32]byte {
	var out [32]byte
	blake3.DeriveKey(context, material, out[:])
	return out
}
