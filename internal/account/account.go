// Package account derives on-chain account identities from wallet secrets.
//
// Every function here is a pure function of its inputs: the same seed, index
// and algorithm always produce the same account. Commands that read balances
// or sign operations depend on this, so the derivation contexts and paths
// below must never change.
package account

import (
	"encoding/hex"
	"fmt"

	"github.com/Klingon-tech/keeta-cli/pkg/crypto"
	"github.com/Klingon-tech/keeta-cli/pkg/types"
)

// Account is a resolved identity together with the key that controls it.
type Account struct {
	algo   Algorithm
	signer crypto.Signer
	addr   types.Address
}

func newAccount(algo Algorithm, signer crypto.Signer) (*Account, error) {
	addr, err := types.NewAddress(algo.KeyType(), signer.PublicKey())
	if err != nil {
		return nil, fmt.Errorf("build address: %w", err)
	}
	return &Account{algo: algo, signer: signer, addr: addr}, nil
}

// Algorithm returns the signature scheme of the account.
func (a *Account) Algorithm() Algorithm {
	return a.algo
}

// Address returns the public identity of the account.
func (a *Account) Address() types.Address {
	return a.addr
}

// PublicKey returns the public key bytes in address encoding.
func (a *Account) PublicKey() []byte {
	return a.signer.PublicKey()
}

// Sign signs a 32-byte digest with the account key.
func (a *Account) Sign(hash []byte) ([]byte, error) {
	return a.signer.Sign(hash)
}

// Signer exposes the underlying signer.
func (a *Account) Signer() crypto.Signer {
	return a.signer
}

// PrivateKeyHex returns the hex-encoded private key material.
// For ed25519 this is the 32-byte seed of the key pair.
func (a *Account) PrivateKeyHex() string {
	return hex.EncodeToString(a.signer.Serialize())
}
