package wallet

import (
	"encoding/hex"
	"fmt"

	"github.com/Klingon-tech/keeta-cli/internal/account"
	"github.com/tyler-smith/go-bip39"
)

// SeedFromMnemonic returns the wallet seed encoded by a 24-word mnemonic.
// The seed is the mnemonic's 256-bit entropy, so the mapping is reversible
// with MnemonicFromSeed.
func SeedFromMnemonic(mnemonic string) ([]byte, error) {
	if err := ValidateMnemonic(mnemonic); err != nil {
		return nil, err
	}
	seed, err := bip39.EntropyFromMnemonic(NormalizeMnemonic(mnemonic))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMnemonic, err)
	}
	if len(seed) != account.SeedSize {
		return nil, fmt.Errorf("%w: decoded %d bytes", ErrInvalidMnemonic, len(seed))
	}
	return seed, nil
}

// MnemonicFromSeed returns the 24-word mnemonic for a wallet seed.
func MnemonicFromSeed(seed []byte) (string, error) {
	if len(seed) != account.SeedSize {
		return "", fmt.Errorf("%w: must be %d bytes, got %d", account.ErrInvalidSeed, account.SeedSize, len(seed))
	}
	return bip39.NewMnemonic(seed)
}

// NewMnemonicRecord generates a fresh mnemonic and a seed record for it.
func NewMnemonicRecord(algo account.Algorithm) (string, *Record, error) {
	mnemonic, err := GenerateMnemonic()
	if err != nil {
		return "", nil, err
	}
	seed, err := SeedFromMnemonic(mnemonic)
	if err != nil {
		return "", nil, err
	}
	return mnemonic, NewSeedRecord(hex.EncodeToString(seed), 0, algo), nil
}
