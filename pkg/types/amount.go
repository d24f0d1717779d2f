package types

import (
	"encoding/json"
	"fmt"
	"math/big"
)

// Amount is an arbitrary-precision token quantity in base units.
// It travels as a decimal string on the wire.
type Amount struct {
	v *big.Int
}

// NewAmount wraps v. The value is copied.
func NewAmount(v *big.Int) Amount {
	if v == nil {
		return Amount{}
	}
	return Amount{v: new(big.Int).Set(v)}
}

// AmountFromUint64 returns an amount holding n.
func AmountFromUint64(n uint64) Amount {
	return Amount{v: new(big.Int).SetUint64(n)}
}

// ParseAmount parses a base-10 integer string.
func ParseAmount(s string) (Amount, error) {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return Amount{}, fmt.Errorf("invalid amount %q", s)
	}
	return Amount{v: v}, nil
}

// Int returns a copy of the value. A zero Amount yields 0.
func (a Amount) Int() *big.Int {
	if a.v == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(a.v)
}

// Sign returns -1, 0 or +1.
func (a Amount) Sign() int {
	if a.v == nil {
		return 0
	}
	return a.v.Sign()
}

// Bytes returns the big-endian magnitude.
func (a Amount) Bytes() []byte {
	if a.v == nil {
		return nil
	}
	return a.v.Bytes()
}

func (a Amount) String() string {
	if a.v == nil {
		return "0"
	}
	return a.v.String()
}

// MarshalJSON encodes the amount as a quoted decimal string.
func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// UnmarshalJSON accepts a decimal string or an integer JSON number.
func (a *Amount) UnmarshalJSON(data []byte) error {
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("amount: %w", err)
	}
	parsed, err := ParseAmount(n.String())
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
