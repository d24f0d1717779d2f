package wallet

import (
	"bytes"
	"encoding/hex"
	"errors"
	"strings"
	"testing"

	"github.com/Klingon-tech/keeta-cli/internal/account"
)

// testMnemonic is the BIP-39 vector for 32 bytes of 0x7f.
const testMnemonic = "legal winner thank year wave sausage worth useful legal winner thank year wave sausage worth useful legal winner thank year wave sausage worth title"

func TestGenerateMnemonic(t *testing.T) {
	m, err := GenerateMnemonic()
	if err != nil {
		t.Fatalf("GenerateMnemonic() error: %v", err)
	}
	if n := len(strings.Fields(m)); n != MnemonicWords {
		t.Errorf("word count = %d, want %d", n, MnemonicWords)
	}
	if err := ValidateMnemonic(m); err != nil {
		t.Errorf("generated mnemonic should validate: %v", err)
	}

	m2, _ := GenerateMnemonic()
	if m == m2 {
		t.Error("two generated mnemonics should differ")
	}
}

func TestValidateMnemonic_WordCount(t *testing.T) {
	twelve := "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"
	tests := []string{"", twelve, testMnemonic + " legal"}
	for _, m := range tests {
		if err := ValidateMnemonic(m); !errors.Is(err, ErrMnemonicWordCount) {
			t.Errorf("ValidateMnemonic(%d words) error = %v, want ErrMnemonicWordCount", len(strings.Fields(m)), err)
		}
	}
}

func TestValidateMnemonic_Checksum(t *testing.T) {
	words := strings.Fields(testMnemonic)
	words[len(words)-1] = "winner"
	if err := ValidateMnemonic(strings.Join(words, " ")); !errors.Is(err, ErrInvalidMnemonic) {
		t.Errorf("bad checksum error = %v, want ErrInvalidMnemonic", err)
	}

	words[0] = "notaword"
	if err := ValidateMnemonic(strings.Join(words, " ")); !errors.Is(err, ErrInvalidMnemonic) {
		t.Errorf("unknown word error = %v, want ErrInvalidMnemonic", err)
	}
}

func TestSeedFromMnemonic(t *testing.T) {
	seed, err := SeedFromMnemonic(testMnemonic)
	if err != nil {
		t.Fatalf("SeedFromMnemonic() error: %v", err)
	}
	if want := bytes.Repeat([]byte{0x7f}, 32); !bytes.Equal(seed, want) {
		t.Errorf("seed = %x, want %x", seed, want)
	}

	// Case and spacing do not matter.
	messy := "  " + strings.ToUpper(strings.ReplaceAll(testMnemonic, " ", "\t ")) + "\n"
	seed2, err := SeedFromMnemonic(messy)
	if err != nil {
		t.Fatalf("SeedFromMnemonic(messy) error: %v", err)
	}
	if !bytes.Equal(seed, seed2) {
		t.Error("normalized mnemonic should give the same seed")
	}
}

func TestMnemonicFromSeed_Roundtrip(t *testing.T) {
	seed, _ := hex.DecodeString(testSeedHex)
	m, err := MnemonicFromSeed(seed)
	if err != nil {
		t.Fatalf("MnemonicFromSeed() error: %v", err)
	}
	back, err := SeedFromMnemonic(m)
	if err != nil {
		t.Fatalf("SeedFromMnemonic() error: %v", err)
	}
	if !bytes.Equal(back, seed) {
		t.Error("mnemonic round trip should return the original seed")
	}

	if _, err := MnemonicFromSeed(seed[:16]); !errors.Is(err, account.ErrInvalidSeed) {
		t.Errorf("short seed error = %v, want ErrInvalidSeed", err)
	}
}

func TestNewMnemonicRecord(t *testing.T) {
	m, rec, err := NewMnemonicRecord(account.SECP256K1)
	if err != nil {
		t.Fatalf("NewMnemonicRecord() error: %v", err)
	}
	seed, err := SeedFromMnemonic(m)
	if err != nil {
		t.Fatalf("SeedFromMnemonic() error: %v", err)
	}
	if rec.Seed == nil || rec.Seed.Seed != hex.EncodeToString(seed) {
		t.Errorf("record seed does not match mnemonic: %+v", rec.Seed)
	}
	if rec.Seed.Algorithm != account.SECP256K1 || rec.Seed.Index != 0 {
		t.Errorf("unexpected record: %+v", rec.Seed)
	}
	if _, err := Resolve(rec); err != nil {
		t.Errorf("Resolve() error: %v", err)
	}
}
