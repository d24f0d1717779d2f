// Package wallet persists the wallet record and resolves it to an account.
package wallet

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tyler-smith/go-bip39"
)

// MnemonicWords is the only accepted mnemonic length.
const MnemonicWords = 24

// mnemonicEntropyBits is the entropy size for 24-word mnemonics.
const mnemonicEntropyBits = 256

var (
	// ErrMnemonicWordCount is returned for a mnemonic that is not 24 words.
	ErrMnemonicWordCount = errors.New("mnemonic must be 24 words")
	// ErrInvalidMnemonic is returned for unknown words or a bad checksum.
	ErrInvalidMnemonic = errors.New("invalid mnemonic")
)

// GenerateMnemonic creates a new 24-word BIP-39 mnemonic.
func GenerateMnemonic() (string, error) {
	entropy, err := bip39.NewEntropy(mnemonicEntropyBits)
	if err != nil {
		return "", fmt.Errorf("generate entropy: %w", err)
	}
	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", fmt.Errorf("generate mnemonic: %w", err)
	}
	return mnemonic, nil
}

// NormalizeMnemonic lowercases a mnemonic and collapses whitespace.
func NormalizeMnemonic(mnemonic string) string {
	return strings.Join(strings.Fields(strings.ToLower(mnemonic)), " ")
}

// ValidateMnemonic checks word count, words and checksum.
func ValidateMnemonic(mnemonic string) error {
	words := strings.Fields(mnemonic)
	if len(words) != MnemonicWords {
		return fmt.Errorf("%w, got %d", ErrMnemonicWordCount, len(words))
	}
	if !bip39.IsMnemonicValid(NormalizeMnemonic(mnemonic)) {
		return ErrInvalidMnemonic
	}
	return nil
}
