package wallet

import (
	"fmt"

	"github.com/Klingon-tech/keeta-cli/internal/account"
)

// Resolve maps a record to its account. The result depends only on the
// record's derivation fields: a raw key when present, otherwise the seed,
// index and algorithm. With both present the seed fields are ignored.
func Resolve(rec *Record) (*account.Account, error) {
	src, err := rec.Source()
	if err != nil {
		return nil, err
	}

	switch s := src.(type) {
	case *KeySource:
		if rec.Seed == nil && s.Algorithm != "" {
			algo, err := account.ParseAlgorithm(string(s.Algorithm))
			if err != nil || algo != account.SECP256K1 {
				return nil, fmt.Errorf("%w: raw keys must be secp256k1, got %q", account.ErrInvalidKey, s.Algorithm)
			}
		}
		return account.FromPrivateKey(s.PrivateKey)

	case *SeedSource:
		seed, err := account.ParseSeed(s.Seed)
		if err != nil {
			return nil, err
		}
		algo, err := account.ParseAlgorithm(string(s.Algorithm))
		if err != nil {
			return nil, err
		}
		return account.Derive(seed, s.Index, algo)
	}
	return nil, ErrEmptyRecord
}
