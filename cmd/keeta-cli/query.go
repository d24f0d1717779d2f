package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Klingon-tech/keeta-cli/internal/rpcclient"
	"github.com/Klingon-tech/keeta-cli/pkg/tx"
	"github.com/Klingon-tech/keeta-cli/pkg/types"
)

// ── balance ─────────────────────────────────────────────────────────────

func newBalanceCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "balance [address]",
		Short: "Show token balances of the wallet or of an address",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, err := a.targetAddress(args)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			client := a.client()
			balances, err := client.Balances(ctx, addr)
			if err != nil {
				return fmt.Errorf("query balances: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Address: %s\n", addr)
			if balances.IsZero() {
				fmt.Fprintln(out, "Balance: 0")
				return nil
			}
			book := newTokenBook(client)
			for _, tok := range balances.Tokens() {
				fmt.Fprintf(out, "  %s\n", book.format(ctx, tok, balances[tok]))
			}
			return nil
		},
	}
}

// targetAddress returns the address argument, or the wallet's address.
func (a *app) targetAddress(args []string) (types.Address, error) {
	if len(args) > 0 {
		addr, err := types.ParseAddress(args[0])
		if err != nil {
			return types.Address{}, fmt.Errorf("invalid address: %w", err)
		}
		return addr, nil
	}
	acct, err := a.account()
	if err != nil {
		return types.Address{}, err
	}
	return acct.Address(), nil
}

// ── history ─────────────────────────────────────────────────────────────

func newHistoryCmd(a *app) *cobra.Command {
	var limit int
	var cursor string
	cmd := &cobra.Command{
		Use:   "history [address]",
		Short: "Show account history, newest first",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit <= 0 {
				return fmt.Errorf("--limit must be positive")
			}
			addr, err := a.targetAddress(args)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			client := a.client()
			page, err := client.History(ctx, addr, limit, cursor)
			if err != nil {
				return fmt.Errorf("query history: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(page.Entries) == 0 {
				fmt.Fprintln(out, "No history.")
				return nil
			}
			book := newTokenBook(client)
			for _, e := range page.Entries {
				fmt.Fprintf(out, "%s  %s\n", e.Timestamp.UTC().Format("2006-01-02 15:04:05 UTC"), e.Hash)
				for _, op := range e.Operations {
					fmt.Fprintf(out, "  %s\n", describeOperation(ctx, book, addr, op))
				}
			}
			if page.Cursor != "" {
				fmt.Fprintf(out, "\nMore: keeta-cli history --cursor %s\n", page.Cursor)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "entries per page")
	cmd.Flags().StringVar(&cursor, "cursor", "", "continue from a previous page")
	return cmd
}

func describeOperation(ctx context.Context, book *tokenBook, self types.Address, op rpcclient.HistoryOperation) string {
	amount := book.format(ctx, op.Token, op.Amount.Int())
	switch op.Type {
	case tx.OpSend:
		if op.From == self {
			return fmt.Sprintf("sent %s to %s", amount, op.To)
		}
		return fmt.Sprintf("received %s from %s", amount, op.From)
	case tx.OpMint:
		return "minted " + amount
	case tx.OpBurn:
		return "burned " + amount
	case tx.OpCreateToken:
		return "created token " + op.Token
	default:
		return string(op.Type)
	}
}

// ── account ─────────────────────────────────────────────────────────────

func newAccountCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Inspect accounts on the ledger",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "info [address]",
		Short: "Show the ledger state of the wallet or of an address",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, err := a.targetAddress(args)
			if err != nil {
				return err
			}
			info, err := a.client().AccountInfo(cmd.Context(), addr)
			if err != nil {
				if isNotActivated(err) {
					return fmt.Errorf("account %s is not activated", addr)
				}
				return fmt.Errorf("query account: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Account:        %s\n", addr)
			fmt.Fprintf(out, "Height:         %d\n", info.Height)
			fmt.Fprintf(out, "Head:           %s\n", info.Head)
			if !info.Representative.IsZero() {
				fmt.Fprintf(out, "Representative: %s\n", info.Representative)
			}
			if info.Name != "" {
				fmt.Fprintf(out, "Name:           %s\n", info.Name)
			}
			if info.Description != "" {
				fmt.Fprintf(out, "Description:    %s\n", info.Description)
			}
			if info.Metadata != "" {
				fmt.Fprintf(out, "Metadata:       %s\n", info.Metadata)
			}
			return nil
		},
	})
	return cmd
}

// isNotActivated reports whether err is the gateway's "account has no
// blocks" error.
func isNotActivated(err error) bool {
	var rpcErr *rpcclient.RPCError
	return errors.As(err, &rpcErr) && rpcErr.Code == rpcclient.CodeNotActivated
}

// ── status ──────────────────────────────────────────────────────────────

func newStatusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show gateway and network status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client := a.client()
			start := time.Now()
			st, err := client.Status(cmd.Context())
			if err != nil {
				return fmt.Errorf("query status: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Gateway:         %s (%s)\n", client.Endpoint(), time.Since(start).Round(time.Millisecond))
			fmt.Fprintf(out, "Network:         %s\n", st.Network)
			if st.Version != "" {
				fmt.Fprintf(out, "Version:         %s\n", st.Version)
			}
			fmt.Fprintf(out, "Height:          %d\n", st.Height)
			fmt.Fprintf(out, "Representatives: %d\n", st.Representatives)
			fmt.Fprintf(out, "Synced:          %t\n", st.Synced)
			if st.BaseToken != "" {
				fmt.Fprintf(out, "Base token:      %s\n", st.BaseToken)
			}
			if !strings.EqualFold(st.Network, string(a.cfg.Network)) && st.Network != "" {
				fmt.Fprintf(cmd.ErrOrStderr(), "Warning: gateway reports network %q, configured %q\n", st.Network, a.cfg.Network)
			}
			return nil
		},
	}
}
