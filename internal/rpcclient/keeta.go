package rpcclient

import (
	"context"
	"time"

	"github.com/Klingon-tech/keeta-cli/pkg/tx"
	"github.com/Klingon-tech/keeta-cli/pkg/types"
)

// Error codes returned by gateways.
const (
	CodeNotFound     = -32004
	CodeNotActivated = -32010
)

// accountParam addresses a single account.
type accountParam struct {
	Account string `json:"account"`
}

// historyParam pages through an account's history.
type historyParam struct {
	Account string `json:"account"`
	Limit   int    `json:"limit,omitempty"`
	Cursor  string `json:"cursor,omitempty"`
}

type tokenParam struct {
	Token string `json:"token"`
}

type balancesResult struct {
	Balances types.Balances `json:"balances"`
}

// AccountInfo is the on-ledger state of an account.
type AccountInfo struct {
	Account        types.Address `json:"account"`
	Head           types.Hash    `json:"head"`
	Height         uint64        `json:"height"`
	Representative types.Address `json:"representative"`
	Name           string        `json:"name,omitempty"`
	Description    string        `json:"description,omitempty"`
	Metadata       string        `json:"metadata,omitempty"`
}

// HistoryOperation is one operation within a history entry.
type HistoryOperation struct {
	Type   tx.OpType     `json:"type"`
	From   types.Address `json:"from"`
	To     types.Address `json:"to"`
	Token  string        `json:"token,omitempty"`
	Amount types.Amount  `json:"amount"`
}

// HistoryEntry is one block affecting an account.
type HistoryEntry struct {
	Hash       types.Hash         `json:"hash"`
	Timestamp  time.Time          `json:"timestamp"`
	Operations []HistoryOperation `json:"operations"`
}

// HistoryPage is one page of account history, newest first.
type HistoryPage struct {
	Entries []HistoryEntry `json:"history"`
	Cursor  string         `json:"cursor,omitempty"` // empty on the last page
}

// TokenInfo describes a token.
type TokenInfo struct {
	Token    string       `json:"token"`
	Name     string       `json:"name"`
	Symbol   string       `json:"symbol"`
	Decimals uint8        `json:"decimals"`
	Supply   types.Amount `json:"supply"`
}

// NetworkStatus describes the gateway and its view of the network.
type NetworkStatus struct {
	Network         string `json:"network"`
	Version         string `json:"version"`
	BaseToken       string `json:"base_token"`
	Height          uint64 `json:"height"`
	Representatives int    `json:"representatives"`
	Synced          bool   `json:"synced"`
}

type publishResult struct {
	Hash types.Hash `json:"hash"`
}

// Balances returns every token balance held by addr.
func (c *Client) Balances(ctx context.Context, addr types.Address) (types.Balances, error) {
	var res balancesResult
	if err := c.Call(ctx, "account_getBalances", accountParam{Account: addr.String()}, &res); err != nil {
		return nil, err
	}
	if res.Balances == nil {
		res.Balances = types.Balances{}
	}
	return res.Balances, nil
}

// AccountInfo returns the ledger state of addr.
func (c *Client) AccountInfo(ctx context.Context, addr types.Address) (*AccountInfo, error) {
	var info AccountInfo
	if err := c.Call(ctx, "account_getInfo", accountParam{Account: addr.String()}, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// History returns up to limit entries before cursor. An empty cursor starts at the newest entry.
func (c *Client) History(ctx context.Context, addr types.Address, limit int, cursor string) (*HistoryPage, error) {
	var page HistoryPage
	err := c.Call(ctx, "account_getHistory", historyParam{Account: addr.String(), Limit: limit, Cursor: cursor}, &page)
	if err != nil {
		return nil, err
	}
	return &page, nil
}

// TokenInfo returns metadata for a token.
func (c *Client) TokenInfo(ctx context.Context, token string) (*TokenInfo, error) {
	var info TokenInfo
	if err := c.Call(ctx, "token_getInfo", tokenParam{Token: token}, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// Publish submits a signed request and returns the hash the network assigned.
func (c *Client) Publish(ctx context.Context, req *tx.SignedRequest) (types.Hash, error) {
	var res publishResult
	if err := c.Call(ctx, "tx_publish", req, &res); err != nil {
		return types.Hash{}, err
	}
	return res.Hash, nil
}

// Status returns the gateway's network status.
func (c *Client) Status(ctx context.Context) (*NetworkStatus, error) {
	var st NetworkStatus
	if err := c.Call(ctx, "network_getStatus", nil, &st); err != nil {
		return nil, err
	}
	return &st, nil
}
