package account

import (
	"fmt"
	"strings"

	"github.com/Klingon-tech/keeta-cli/pkg/types"
)

// Algorithm names a signature scheme an account can be derived for.
type Algorithm string

const (
	ED25519   Algorithm = "ed25519"
	SECP256K1 Algorithm = "secp256k1"
	SECP256R1 Algorithm = "secp256r1"
)

// DefaultAlgorithm is used when a wallet record names no algorithm.
const DefaultAlgorithm = ED25519

// All returns every supported algorithm in canonical order.
// Search order (and therefore tie-breaking) follows this order.
func All() []Algorithm {
	return []Algorithm{ED25519, SECP256K1, SECP256R1}
}

// UnknownAlgorithmError reports an algorithm name outside the supported set.
type UnknownAlgorithmError struct {
	Value string
}

func (e *UnknownAlgorithmError) Error() string {
	return fmt.Sprintf("unknown algorithm %q (want one of ed25519, secp256k1, secp256r1)", e.Value)
}

// ParseAlgorithm validates an algorithm name. Matching is case-insensitive;
// an empty name yields DefaultAlgorithm.
func ParseAlgorithm(s string) (Algorithm, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" {
		return DefaultAlgorithm, nil
	}
	for _, a := range All() {
		if string(a) == name {
			return a, nil
		}
	}
	return "", &UnknownAlgorithmError{Value: s}
}

// KeyType returns the address key type for the algorithm.
func (a Algorithm) KeyType() types.KeyType {
	switch a {
	case ED25519:
		return types.KeyTypeED25519
	case SECP256K1:
		return types.KeyTypeSECP256K1
	case SECP256R1:
		return types.KeyTypeSECP256R1
	default:
		return 0
	}
}

func (a Algorithm) String() string {
	return string(a)
}
