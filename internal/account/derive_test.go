package account

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/Klingon-tech/keeta-cli/pkg/crypto"
	"github.com/Klingon-tech/keeta-cli/pkg/types"
)

func TestDerive_Deterministic(t *testing.T) {
	seed := testSeed()
	for _, algo := range All() {
		a1, err := Derive(seed, 3, algo)
		if err != nil {
			t.Fatalf("Derive(%s) error: %v", algo, err)
		}
		a2, err := Derive(seed, 3, algo)
		if err != nil {
			t.Fatalf("Derive(%s) error: %v", algo, err)
		}
		if a1.Address() != a2.Address() {
			t.Errorf("%s: same inputs should derive the same address", algo)
		}
		if a1.Address().KeyType() != algo.KeyType() {
			t.Errorf("%s: address key type = %v, want %v", algo, a1.Address().KeyType(), algo.KeyType())
		}
	}
}

func TestDerive_Distinct(t *testing.T) {
	seed := testSeed()
	seen := make(map[types.Address]string)
	for _, algo := range All() {
		for index := uint32(0); index < 6; index++ {
			acct, err := Derive(seed, index, algo)
			if err != nil {
				t.Fatalf("Derive(%s, %d) error: %v", algo, index, err)
			}
			label := fmt.Sprintf("%s/%d", algo, index)
			if prev, ok := seen[acct.Address()]; ok {
				t.Errorf("%s collides with %s", label, prev)
			}
			seen[acct.Address()] = label
		}
	}
}

func TestDerive_SeedSensitivity(t *testing.T) {
	seed := testSeed()
	other := append([]byte(nil), seed...)
	other[0] ^= 0x01

	for _, algo := range All() {
		a, _ := Derive(seed, 0, algo)
		b, _ := Derive(other, 0, algo)
		if a.Address() == b.Address() {
			t.Errorf("%s: different seeds should derive different addresses", algo)
		}
	}
}

func TestDerive_SignVerify(t *testing.T) {
	hash := crypto.Hash([]byte("payload"))
	for _, algo := range All() {
		acct, err := Derive(testSeed(), 1, algo)
		if err != nil {
			t.Fatalf("Derive(%s) error: %v", algo, err)
		}
		sig, err := acct.Sign(hash[:])
		if err != nil {
			t.Fatalf("%s Sign() error: %v", algo, err)
		}
		if !crypto.VerifySignature(acct.Address().KeyType(), hash[:], sig, acct.Address().PublicKey()) {
			t.Errorf("%s: signature should verify against the address key", algo)
		}
	}
}

func TestDerive_Errors(t *testing.T) {
	if _, err := Derive(make([]byte, 16), 0, ED25519); !errors.Is(err, ErrInvalidSeed) {
		t.Errorf("short seed error = %v, want ErrInvalidSeed", err)
	}
	if _, err := Derive(testSeed(), MaxIndex+1, ED25519); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("hardened index error = %v, want ErrIndexOutOfRange", err)
	}
	var unknown *UnknownAlgorithmError
	if _, err := Derive(testSeed(), 0, Algorithm("rsa")); !errors.As(err, &unknown) {
		t.Errorf("unknown algorithm error = %v, want UnknownAlgorithmError", err)
	}
}

func TestParseSeed(t *testing.T) {
	valid := strings.Repeat("ab", SeedSize)
	if _, err := ParseSeed(valid); err != nil {
		t.Fatalf("ParseSeed() error: %v", err)
	}
	if _, err := ParseSeed("0x" + valid); err != nil {
		t.Fatalf("ParseSeed(0x...) error: %v", err)
	}

	tests := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"odd length", "abc"},
		{"not hex", strings.Repeat("zz", SeedSize)},
		{"too short", strings.Repeat("ab", SeedSize-1)},
		{"too long", strings.Repeat("ab", SeedSize+1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseSeed(tt.in); !errors.Is(err, ErrInvalidSeed) {
				t.Errorf("ParseSeed(%q) error = %v, want ErrInvalidSeed", tt.in, err)
			}
		})
	}
}

func TestFromPrivateKey(t *testing.T) {
	derived, err := Derive(testSeed(), 0, SECP256K1)
	if err != nil {
		t.Fatalf("Derive() error: %v", err)
	}

	imported, err := FromPrivateKey(derived.PrivateKeyHex())
	if err != nil {
		t.Fatalf("FromPrivateKey() error: %v", err)
	}
	if imported.Address() != derived.Address() {
		t.Error("importing an exported key should yield the same account")
	}
	if imported.Algorithm() != SECP256K1 {
		t.Errorf("Algorithm() = %s, want secp256k1", imported.Algorithm())
	}
}

func TestFromPrivateKey_Invalid(t *testing.T) {
	for _, in := range []string{"", "nothex", hex.EncodeToString(make([]byte, 16)), hex.EncodeToString(make([]byte, 32))} {
		if _, err := FromPrivateKey(in); !errors.Is(err, ErrInvalidKey) {
			t.Errorf("FromPrivateKey(%q) error = %v, want ErrInvalidKey", in, err)
		}
	}
}

func TestPrivateKeyHex_ED25519(t *testing.T) {
	acct, err := Derive(testSeed(), 0, ED25519)
	if err != nil {
		t.Fatalf("Derive() error: %v", err)
	}
	if got := len(acct.PrivateKeyHex()); got != 64 {
		t.Errorf("PrivateKeyHex() length = %d, want 64", got)
	}
}
