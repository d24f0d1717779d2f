package main

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Klingon-tech/keeta-cli/internal/log"
	"github.com/Klingon-tech/keeta-cli/internal/rpcclient"
)

// ── Formatting helpers ─────────────────────────────────────────────────

// formatAmount renders raw units as a decimal string with the token's
// number of decimal places.
func formatAmount(units *big.Int, decimals uint8) string {
	if units == nil {
		units = new(big.Int)
	}
	return decimal.NewFromBigInt(units, -int32(decimals)).StringFixed(int32(decimals))
}

// parseUnits converts a decimal string to raw units. Negative values and
// more fractional digits than decimals are rejected.
func parseUnits(s string, decimals uint8) (*big.Int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, errors.New("empty amount")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid amount %q", s)
	}
	if d.Sign() < 0 {
		return nil, errors.New("negative amount")
	}
	scaled := d.Shift(int32(decimals))
	if !scaled.Equal(scaled.Truncate(0)) {
		return nil, fmt.Errorf("too many decimal places (max %d)", decimals)
	}
	return scaled.BigInt(), nil
}

// parseAmount is parseUnits for values that must be positive.
func parseAmount(s string, decimals uint8) (*big.Int, error) {
	units, err := parseUnits(s, decimals)
	if err != nil {
		return nil, err
	}
	if units.Sign() == 0 {
		return nil, errors.New("amount must be positive")
	}
	return units, nil
}

// tokenBook caches token metadata for display.
type tokenBook struct {
	client *rpcclient.Client
	tokens map[string]*rpcclient.TokenInfo
}

func newTokenBook(client *rpcclient.Client) *tokenBook {
	return &tokenBook{client: client, tokens: make(map[string]*rpcclient.TokenInfo)}
}

// lookup returns metadata for token, or nil when the gateway cannot
// describe it.
func (b *tokenBook) lookup(ctx context.Context, token string) *rpcclient.TokenInfo {
	if info, ok := b.tokens[token]; ok {
		return info
	}
	info, err := b.client.TokenInfo(ctx, token)
	if err != nil {
		log.CLI.Debug().Err(err).Str("token", token).Msg("Token info unavailable")
		info = nil
	}
	b.tokens[token] = info
	return info
}

// format renders an amount of token, falling back to raw units with the
// token identifier when metadata is unavailable.
func (b *tokenBook) format(ctx context.Context, token string, units *big.Int) string {
	info := b.lookup(ctx, token)
	if info == nil {
		return fmt.Sprintf("%s units of %s", units.String(), token)
	}
	symbol := info.Symbol
	if symbol == "" {
		symbol = token
	}
	return formatAmount(units, info.Decimals) + " " + symbol
}
