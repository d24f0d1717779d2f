package wallet

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Klingon-tech/keeta-cli/internal/account"
)

func TestResolve_Deterministic(t *testing.T) {
	records := []*Record{
		NewSeedRecord(testSeedHex, 0, account.ED25519),
		NewSeedRecord(testSeedHex, 4, account.SECP256K1),
		NewSeedRecord(testSeedHex, 1, account.SECP256R1),
		NewKeyRecord(testKeyHex),
	}

	for _, rec := range records {
		a1, err := Resolve(rec)
		if err != nil {
			t.Fatalf("Resolve(%+v) error: %v", rec, err)
		}
		a2, err := Resolve(rec)
		if err != nil {
			t.Fatalf("Resolve(%+v) error: %v", rec, err)
		}
		if a1.Address() != a2.Address() {
			t.Errorf("Resolve(%+v) is not deterministic", rec)
		}
		if a1.Address().String() != a2.Address().String() {
			t.Errorf("Resolve(%+v) address strings differ", rec)
		}
	}
}

func TestResolve_MatchesDerive(t *testing.T) {
	seed, _ := account.ParseSeed(testSeedHex)
	want, err := account.Derive(seed, 3, account.SECP256R1)
	if err != nil {
		t.Fatalf("Derive() error: %v", err)
	}
	got, err := Resolve(NewSeedRecord(testSeedHex, 3, account.SECP256R1))
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if got.Address() != want.Address() {
		t.Error("Resolve should derive the same account as account.Derive")
	}
}

func TestResolve_DefaultAlgorithm(t *testing.T) {
	implicit, err := Resolve(&Record{Seed: &SeedSource{Seed: testSeedHex}})
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	explicit, err := Resolve(NewSeedRecord(testSeedHex, 0, account.ED25519))
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if implicit.Address() != explicit.Address() {
		t.Error("missing algorithm should resolve as ed25519")
	}
	if implicit.Algorithm() != account.ED25519 {
		t.Errorf("Algorithm() = %s, want ed25519", implicit.Algorithm())
	}
}

func TestResolve_KeyPrecedence(t *testing.T) {
	keyOnly, err := Resolve(NewKeyRecord(testKeyHex))
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}

	both := &Record{
		Seed: &SeedSource{Seed: testSeedHex, Index: 5, Algorithm: account.ED25519},
		Key:  &KeySource{PrivateKey: testKeyHex, Algorithm: account.SECP256K1},
	}
	got, err := Resolve(both)
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if got.Address() != keyOnly.Address() {
		t.Error("raw private key must take precedence over seed")
	}

	// A broken seed is ignored when a key is present.
	both.Seed.Seed = "zz"
	if _, err := Resolve(both); err != nil {
		t.Errorf("Resolve() with ignored seed error: %v", err)
	}
}

func TestResolve_KeyPrecedenceFromFile(t *testing.T) {
	keyOnly, err := Resolve(NewKeyRecord(testKeyHex))
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}

	for _, algo := range []string{"ed25519", "secp256r1", "bogus"} {
		t.Run(algo, func(t *testing.T) {
			s := testStore(t)
			data := `{"seed":"` + testSeedHex + `","index":2,"algo":"` + algo + `","privateKeySecp256k1":"` + testKeyHex + `"}`
			if err := os.MkdirAll(filepath.Dir(s.Path()), 0o700); err != nil {
				t.Fatalf("MkdirAll() error: %v", err)
			}
			if err := os.WriteFile(s.Path(), []byte(data), 0o600); err != nil {
				t.Fatalf("WriteFile() error: %v", err)
			}

			rec, err := s.Load()
			if err != nil {
				t.Fatalf("Load() error: %v", err)
			}
			if rec.Seed.Algorithm != account.Algorithm(algo) {
				t.Errorf("seed algorithm = %q, want %q", rec.Seed.Algorithm, algo)
			}
			if rec.Key.Algorithm != account.SECP256K1 {
				t.Errorf("key algorithm = %q, want secp256k1", rec.Key.Algorithm)
			}

			got, err := Resolve(rec)
			if err != nil {
				t.Fatalf("Resolve() error: %v", err)
			}
			if got.Address() != keyOnly.Address() {
				t.Error("file with both secrets should resolve to the private key account")
			}
		})
	}
}

func TestResolve_InvalidSeed(t *testing.T) {
	seeds := []string{"", "zz", strings.Repeat("ab", 16), strings.Repeat("ab", 64)}
	for _, seed := range seeds {
		rec := &Record{Seed: &SeedSource{Seed: seed, Algorithm: account.ED25519}}
		if _, err := Resolve(rec); !errors.Is(err, account.ErrInvalidSeed) {
			t.Errorf("Resolve(seed=%q) error = %v, want ErrInvalidSeed", seed, err)
		}
	}
}

func TestResolve_InvalidKey(t *testing.T) {
	tests := []struct {
		name string
		key  KeySource
	}{
		{"not hex", KeySource{PrivateKey: "xyz", Algorithm: account.SECP256K1}},
		{"short", KeySource{PrivateKey: "abcd", Algorithm: account.SECP256K1}},
		{"zero", KeySource{PrivateKey: strings.Repeat("00", 32), Algorithm: account.SECP256K1}},
		{"ed25519 key", KeySource{PrivateKey: testKeyHex, Algorithm: account.ED25519}},
		{"unknown algorithm", KeySource{PrivateKey: testKeyHex, Algorithm: "rsa"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := tt.key
			if _, err := Resolve(&Record{Key: &key}); !errors.Is(err, account.ErrInvalidKey) {
				t.Errorf("Resolve() error = %v, want ErrInvalidKey", err)
			}
		})
	}
}

func TestResolve_UnknownAlgorithm(t *testing.T) {
	rec := &Record{Seed: &SeedSource{Seed: testSeedHex, Algorithm: "bogus"}}
	_, err := Resolve(rec)
	var unknown *account.UnknownAlgorithmError
	if !errors.As(err, &unknown) {
		t.Fatalf("Resolve() error = %v, want UnknownAlgorithmError", err)
	}
	if unknown.Value != "bogus" {
		t.Errorf("Value = %q, want bogus", unknown.Value)
	}
}

func TestResolve_EmptyRecord(t *testing.T) {
	if _, err := Resolve(&Record{}); !errors.Is(err, ErrEmptyRecord) {
		t.Errorf("Resolve(empty) error = %v, want ErrEmptyRecord", err)
	}
	if _, err := Resolve(nil); !errors.Is(err, ErrEmptyRecord) {
		t.Errorf("Resolve(nil) error = %v, want ErrEmptyRecord", err)
	}
}
