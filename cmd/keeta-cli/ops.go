package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"

	"github.com/spf13/cobra"

	"github.com/Klingon-tech/keeta-cli/internal/log"
	"github.com/Klingon-tech/keeta-cli/internal/rpcclient"
	"github.com/Klingon-tech/keeta-cli/pkg/tx"
	"github.com/Klingon-tech/keeta-cli/pkg/types"
)

// submitOptions are flags shared by commands that publish requests.
type submitOptions struct {
	dryRun bool
	raw    bool
}

func (o *submitOptions) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&o.dryRun, "dry-run", false, "print the signed request instead of publishing it")
	cmd.Flags().BoolVar(&o.raw, "raw", false, "amounts are raw units, not token decimals")
}

// amount parses s for token, using the token's decimals unless raw.
func (o *submitOptions) amount(ctx context.Context, client *rpcclient.Client, token, s string) (*big.Int, error) {
	if o.raw {
		return parseAmount(s, 0)
	}
	info, err := client.TokenInfo(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("token %s: %w (use --raw to give raw units)", token, err)
	}
	return parseAmount(s, info.Decimals)
}

// submit builds, signs and publishes a request for the wallet account.
func (a *app) submit(cmd *cobra.Command, opts submitOptions, build func(b *tx.Builder) error) error {
	ctx := cmd.Context()
	acct, err := a.account()
	if err != nil {
		return err
	}
	client := a.client()

	head, err := headOf(ctx, client, acct.Address())
	if err != nil {
		return err
	}

	b := tx.NewBuilder(string(a.cfg.Network), acct.Address()).
		SetPrevious(head).
		SetTimestamp(now())
	if err := build(b); err != nil {
		return err
	}
	signed, err := b.Build().Sign(acct.Signer())
	if err != nil {
		return fmt.Errorf("sign request: %w", err)
	}

	out := cmd.OutOrStdout()
	if opts.dryRun {
		data, err := json.MarshalIndent(signed, "", "  ")
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	hash, err := client.Publish(ctx, signed)
	if err != nil {
		return fmt.Errorf("publish: %w", err)
	}
	log.CLI.Info().Str("hash", hash.String()).Int("ops", len(signed.Request.Operations)).Msg("Request published")
	fmt.Fprintf(out, "Submitted: %s\n", hash)
	return nil
}

// headOf returns the account's head block, or the zero hash for an
// account with no blocks yet.
func headOf(ctx context.Context, client *rpcclient.Client, addr types.Address) (types.Hash, error) {
	info, err := client.AccountInfo(ctx, addr)
	if err != nil {
		if isNotActivated(err) {
			return types.Hash{}, nil
		}
		return types.Hash{}, fmt.Errorf("query account: %w", err)
	}
	return info.Head, nil
}

// ── send ────────────────────────────────────────────────────────────────

func newSendCmd(a *app) *cobra.Command {
	var to, amountStr, token string
	var opts submitOptions
	cmd := &cobra.Command{
		Use:   "send",
		Short: "Send tokens to another account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			recipient, err := types.ParseAddress(to)
			if err != nil {
				return fmt.Errorf("invalid recipient address: %w", err)
			}
			ctx := cmd.Context()
			client := a.client()
			if token == "" {
				st, err := client.Status(ctx)
				if err != nil {
					return fmt.Errorf("query base token: %w", err)
				}
				if st.BaseToken == "" {
					return errors.New("gateway reports no base token; pass --token")
				}
				token = st.BaseToken
			}
			amount, err := opts.amount(ctx, client, token, amountStr)
			if err != nil {
				return err
			}
			return a.submit(cmd, opts, func(b *tx.Builder) error {
				b.Send(recipient, token, amount)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&to, "to", "", "recipient address")
	cmd.Flags().StringVar(&amountStr, "amount", "", "amount to send (e.g. 1.5)")
	cmd.Flags().StringVar(&token, "token", "", "token to send (default: the network's base token)")
	cmd.MarkFlagRequired("to")
	cmd.MarkFlagRequired("amount")
	opts.register(cmd)
	return cmd
}

// ── token ───────────────────────────────────────────────────────────────

func newTokenCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Create, mint, burn and inspect tokens",
	}
	cmd.AddCommand(
		newTokenCreateCmd(a),
		newTokenSupplyCmd(a, tx.OpMint),
		newTokenSupplyCmd(a, tx.OpBurn),
		newTokenInfoCmd(a),
	)
	return cmd
}

func newTokenCreateCmd(a *app) *cobra.Command {
	var name, symbol, supplyStr string
	var decimals uint8
	var opts submitOptions
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new token controlled by the wallet account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if decimals > tx.MaxTokenDecimals {
				return fmt.Errorf("--decimals must be at most %d", tx.MaxTokenDecimals)
			}
			supply := new(big.Int)
			if supplyStr != "" {
				var err error
				if opts.raw {
					supply, err = parseUnits(supplyStr, 0)
				} else {
					supply, err = parseUnits(supplyStr, decimals)
				}
				if err != nil {
					return fmt.Errorf("invalid supply: %w", err)
				}
			}
			return a.submit(cmd, opts, func(b *tx.Builder) error {
				b.CreateToken(name, symbol, decimals, supply)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "token name")
	cmd.Flags().StringVar(&symbol, "symbol", "", "token symbol")
	cmd.Flags().Uint8Var(&decimals, "decimals", 0, "number of decimal places")
	cmd.Flags().StringVar(&supplyStr, "supply", "", "initial supply credited to the account")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("symbol")
	opts.register(cmd)
	return cmd
}

// newTokenSupplyCmd builds "token mint" or "token burn".
func newTokenSupplyCmd(a *app, op tx.OpType) *cobra.Command {
	var token, amountStr string
	var opts submitOptions
	short := "Mint new supply of a token the wallet account controls"
	if op == tx.OpBurn {
		short = "Burn tokens held by the wallet account"
	}
	cmd := &cobra.Command{
		Use:   string(op),
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			amount, err := opts.amount(cmd.Context(), a.client(), token, amountStr)
			if err != nil {
				return err
			}
			return a.submit(cmd, opts, func(b *tx.Builder) error {
				if op == tx.OpBurn {
					b.Burn(token, amount)
				} else {
					b.Mint(token, amount)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&token, "token", "", "token address")
	cmd.Flags().StringVar(&amountStr, "amount", "", "amount (e.g. 100.25)")
	cmd.MarkFlagRequired("token")
	cmd.MarkFlagRequired("amount")
	opts.register(cmd)
	return cmd
}

func newTokenInfoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "info <token>",
		Short: "Show token metadata",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := a.client().TokenInfo(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("query token: %w", err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Token:    %s\n", info.Token)
			fmt.Fprintf(out, "Name:     %s\n", info.Name)
			fmt.Fprintf(out, "Symbol:   %s\n", info.Symbol)
			fmt.Fprintf(out, "Decimals: %d\n", info.Decimals)
			fmt.Fprintf(out, "Supply:   %s\n", formatAmount(info.Supply.Int(), info.Decimals))
			return nil
		},
	}
}
