package types

import (
	"encoding/json"
	"fmt"
	"math/big"
	"sort"
)

// Balances maps a token identifier to the account's balance of that token.
// Amounts are arbitrary precision; the network does not bound them to 64 bits.
type Balances map[string]*big.Int

// Sum returns the sum of the absolute values of all balances.
func (b Balances) Sum() *big.Int {
	total := new(big.Int)
	for _, v := range b {
		if v == nil {
			continue
		}
		total.Add(total, new(big.Int).Abs(v))
	}
	return total
}

// IsZero reports whether no token carries a non-zero balance.
func (b Balances) IsZero() bool {
	for _, v := range b {
		if v != nil && v.Sign() != 0 {
			return false
		}
	}
	return true
}

// Tokens returns the token identifiers in sorted order.
func (b Balances) Tokens() []string {
	out := make([]string, 0, len(b))
	for k := range b {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// UnmarshalJSON decodes a {"token": "decimal-string"} object.
// Plain JSON numbers are accepted as long as they are integers.
func (b *Balances) UnmarshalJSON(data []byte) error {
	var raw map[string]json.Number
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(Balances, len(raw))
	for token, num := range raw {
		v, ok := new(big.Int).SetString(num.String(), 10)
		if !ok {
			return fmt.Errorf("balance for %s: invalid integer %q", token, num.String())
		}
		out[token] = v
	}
	*b = out
	return nil
}

// MarshalJSON encodes balances as decimal strings.
func (b Balances) MarshalJSON() ([]byte, error) {
	raw := make(map[string]string, len(b))
	for token, v := range b {
		if v == nil {
			raw[token] = "0"
			continue
		}
		raw[token] = v.String()
	}
	return json.Marshal(raw)
}
