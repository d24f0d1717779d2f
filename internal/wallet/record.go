package wallet

import (
	"encoding/json"
	"errors"

	"github.com/Klingon-tech/keeta-cli/internal/account"
)

// ErrEmptyRecord is returned for a record that holds neither a seed nor a key.
var ErrEmptyRecord = errors.New("wallet record has neither seed nor private key")

// Source is one of the two ways a record can name its account:
// *SeedSource or *KeySource.
type Source interface {
	source()
}

// SeedSource derives the account from a hex seed, an index and an algorithm.
type SeedSource struct {
	Seed      string
	Index     uint32
	Algorithm account.Algorithm
}

// KeySource holds a raw hex-encoded secp256k1 private key.
type KeySource struct {
	PrivateKey string
	Algorithm  account.Algorithm
}

func (*SeedSource) source() {}
func (*KeySource) source()  {}

// Record is the persisted wallet. A usable record has at least one source;
// when both are set the key takes precedence.
type Record struct {
	Seed *SeedSource
	Key  *KeySource
}

// NewSeedRecord returns a seed-based record. An empty algorithm becomes the default.
func NewSeedRecord(seed string, index uint32, algo account.Algorithm) *Record {
	if algo == "" {
		algo = account.DefaultAlgorithm
	}
	return &Record{Seed: &SeedSource{Seed: seed, Index: index, Algorithm: algo}}
}

// NewKeyRecord returns a record for a raw secp256k1 private key.
func NewKeyRecord(privateKey string) *Record {
	return &Record{Key: &KeySource{PrivateKey: privateKey, Algorithm: account.SECP256K1}}
}

// Source returns the source that decides the account.
func (r *Record) Source() (Source, error) {
	switch {
	case r == nil:
		return nil, ErrEmptyRecord
	case r.Key != nil:
		return r.Key, nil
	case r.Seed != nil:
		return r.Seed, nil
	default:
		return nil, ErrEmptyRecord
	}
}

// Algorithm returns the algorithm of the effective source, or "" for an empty record.
func (r *Record) Algorithm() account.Algorithm {
	src, err := r.Source()
	if err != nil {
		return ""
	}
	switch s := src.(type) {
	case *KeySource:
		return s.Algorithm
	case *SeedSource:
		return s.Algorithm
	}
	return ""
}

// recordFile is the on-disk shape. Key names are shared with other tools
// that read the same file and must not change.
type recordFile struct {
	Seed       string `json:"seed,omitempty"`
	Index      uint32 `json:"index,omitempty"`
	Algo       string `json:"algo,omitempty"`
	PrivateKey string `json:"privateKeySecp256k1,omitempty"`
}

// MarshalJSON writes the record in keystore file format. The algo field
// describes the seed when one is present; a key is always secp256k1.
func (r Record) MarshalJSON() ([]byte, error) {
	var f recordFile
	if r.Key != nil {
		f.PrivateKey = r.Key.PrivateKey
		f.Algo = string(r.Key.Algorithm)
	}
	if r.Seed != nil {
		f.Seed = r.Seed.Seed
		f.Index = r.Seed.Index
		f.Algo = string(r.Seed.Algorithm)
	}
	return json.Marshal(f)
}

// UnmarshalJSON reads the keystore file format. Hex and algorithm values
// are checked when the record is resolved, not here.
func (r *Record) UnmarshalJSON(data []byte) error {
	var f recordFile
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*r = Record{}
	if f.Seed != "" {
		r.Seed = &SeedSource{Seed: f.Seed, Index: f.Index, Algorithm: account.Algorithm(f.Algo)}
	}
	if f.PrivateKey != "" {
		r.Key = &KeySource{PrivateKey: f.PrivateKey, Algorithm: account.Algorithm(f.Algo)}
		if r.Seed != nil {
			r.Key.Algorithm = account.SECP256K1
		}
	}
	if r.Seed == nil && r.Key == nil {
		return ErrEmptyRecord
	}
	return nil
}
