package main

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/skip2/go-qrcode"
	"github.com/spf13/cobra"

	"github.com/Klingon-tech/keeta-cli/internal/account"
	"github.com/Klingon-tech/keeta-cli/internal/log"
	"github.com/Klingon-tech/keeta-cli/internal/search"
	"github.com/Klingon-tech/keeta-cli/internal/wallet"
)

// ── wallet ──────────────────────────────────────────────────────────────

func newWalletCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wallet",
		Short: "Create, import and inspect the local wallet",
	}
	cmd.AddCommand(
		newWalletNewCmd(a),
		newWalletImportCmd(a),
		newWalletShowCmd(a),
		newWalletAddressCmd(a),
		newWalletMnemonicCmd(a),
		newWalletExportKeyCmd(a),
		newWalletBackupCmd(a),
		newWalletRestoreCmd(a),
	)
	return cmd
}

func newWalletNewCmd(a *app) *cobra.Command {
	var algo string
	var force bool
	cmd := &cobra.Command{
		Use:   "new",
		Short: "Generate a new 24-word mnemonic and save it as the wallet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			alg, err := account.ParseAlgorithm(algo)
			if err != nil {
				return err
			}
			store := a.store()
			if store.Exists() && !force {
				return fmt.Errorf("wallet already exists at %s (use --force to replace it)", store.Path())
			}

			mnemonic, rec, err := wallet.NewMnemonicRecord(alg)
			if err != nil {
				return fmt.Errorf("generate mnemonic: %w", err)
			}
			acct, err := wallet.Resolve(rec)
			if err != nil {
				return fmt.Errorf("derive account: %w", err)
			}
			if err := store.Save(rec); err != nil {
				return fmt.Errorf("save wallet: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Mnemonic (write this down!):")
			fmt.Fprintf(out, "  %s\n\n", mnemonic)
			fmt.Fprintf(out, "Wallet saved: %s\n", store.Path())
			fmt.Fprintf(out, "Algorithm:    %s\n", acct.Algorithm())
			fmt.Fprintf(out, "Address:      %s\n", acct.Address())
			return nil
		},
	}
	cmd.Flags().StringVar(&algo, "algo", string(account.DefaultAlgorithm), "key algorithm: ed25519, secp256k1 or secp256r1")
	cmd.Flags().BoolVar(&force, "force", false, "replace an existing wallet")
	return cmd
}

func newWalletImportCmd(a *app) *cobra.Command {
	var (
		seedHex    string
		mnemonic   string
		privateKey string
		index      uint32
		algo       string
		autoDetect bool
	)
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import a wallet from a seed, a mnemonic or a private key",
		Long: `Import a wallet, replacing any existing one.

Exactly one of --seed, --mnemonic or --private-key is required. With
--auto-detect the seed is searched for the funded account among every
algorithm at indices 0-5 and the import fails if none holds a balance.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			given := 0
			for _, s := range []string{seedHex, mnemonic, privateKey} {
				if s != "" {
					given++
				}
			}
			switch {
			case given == 0:
				return errors.New("one of --seed, --mnemonic or --private-key is required")
			case given > 1:
				return errors.New("--seed, --mnemonic and --private-key are mutually exclusive")
			}
			flags := cmd.Flags()
			if autoDetect && (flags.Changed("index") || flags.Changed("algo")) {
				return errors.New("--auto-detect picks the index and algorithm itself")
			}
			if index > account.MaxIndex {
				return fmt.Errorf("%w: %d > %d", account.ErrIndexOutOfRange, index, account.MaxIndex)
			}

			var rec *wallet.Record
			if privateKey != "" {
				if autoDetect {
					return errors.New("--auto-detect needs --seed or --mnemonic")
				}
				if flags.Changed("index") {
					return errors.New("--index applies only to seed wallets")
				}
				alg, err := account.ParseAlgorithm(algo)
				if err != nil {
					return err
				}
				if flags.Changed("algo") && alg != account.SECP256K1 {
					return fmt.Errorf("%w: private keys are secp256k1 only", account.ErrInvalidKey)
				}
				rec = wallet.NewKeyRecord(strings.TrimSpace(privateKey))
			} else {
				seed, err := importSeed(seedHex, mnemonic)
				if err != nil {
					return err
				}
				if autoDetect {
					best, err := a.autoDetect(cmd, seed)
					if err != nil {
						return err
					}
					index, algo = best.Index, string(best.Algorithm)
				}
				alg, err := account.ParseAlgorithm(algo)
				if err != nil {
					return err
				}
				rec = wallet.NewSeedRecord(hex.EncodeToString(seed), index, alg)
			}

			acct, err := wallet.Resolve(rec)
			if err != nil {
				return err
			}
			store := a.store()
			if err := store.Save(rec); err != nil {
				return fmt.Errorf("save wallet: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wallet saved: %s\n", store.Path())
			printAccount(out, rec, acct)
			return nil
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&seedHex, "seed", "", "32-byte hex seed")
	flags.StringVar(&mnemonic, "mnemonic", "", "24-word mnemonic")
	flags.StringVar(&privateKey, "private-key", "", "hex secp256k1 private key")
	flags.Uint32Var(&index, "index", 0, "derivation index")
	flags.StringVar(&algo, "algo", string(account.DefaultAlgorithm), "key algorithm: ed25519, secp256k1 or secp256r1")
	flags.BoolVar(&autoDetect, "auto-detect", false, "search indices 0-5 of every algorithm for a funded account")
	return cmd
}

// importSeed decodes the seed given as hex or as a mnemonic.
func importSeed(seedHex, mnemonic string) ([]byte, error) {
	if mnemonic != "" {
		return wallet.SeedFromMnemonic(mnemonic)
	}
	return account.ParseSeed(seedHex)
}

// autoDetect runs the derivation search and prints every probe.
func (a *app) autoDetect(cmd *cobra.Command, seed []byte) (*search.Candidate, error) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Searching %d indices of %d algorithms on %s...\n",
		search.AutoDetectIndices, len(account.All()), a.cfg.Network)

	report, err := a.engine().SearchReport(cmd.Context(), seed)
	if report != nil {
		fmt.Fprintln(out, renderCandidates(report.Probes, report.Best))
	}
	if errors.Is(err, search.ErrNotFound) {
		return nil, fmt.Errorf("auto-detect: %w (import with explicit --index and --algo instead)", err)
	}
	if err != nil {
		return nil, fmt.Errorf("auto-detect: %w", err)
	}
	log.CLI.Info().
		Str("algo", string(report.Best.Algorithm)).
		Uint32("index", report.Best.Index).
		Msg("Auto-detected account")
	return report.Best, nil
}

func printAccount(out io.Writer, rec *wallet.Record, acct *account.Account) {
	src, _ := rec.Source()
	switch s := src.(type) {
	case *wallet.KeySource:
		fmt.Fprintln(out, "Source:       private key")
	case *wallet.SeedSource:
		fmt.Fprintln(out, "Source:       seed")
		fmt.Fprintf(out, "Index:        %d\n", s.Index)
	}
	fmt.Fprintf(out, "Algorithm:    %s\n", acct.Algorithm())
	fmt.Fprintf(out, "Address:      %s\n", acct.Address())
}

func newWalletShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the wallet's account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rec, err := a.loadRecord()
			if err != nil {
				return err
			}
			acct, err := wallet.Resolve(rec)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wallet:       %s\n", a.store().Path())
			printAccount(out, rec, acct)
			return nil
		},
	}
}

func newWalletAddressCmd(a *app) *cobra.Command {
	var qr bool
	var png string
	cmd := &cobra.Command{
		Use:   "address",
		Short: "Print the wallet address",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			acct, err := a.account()
			if err != nil {
				return err
			}
			addr := acct.Address().String()
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, addr)

			if !qr && png == "" {
				return nil
			}
			code, err := qrcode.New(addr, qrcode.Medium)
			if err != nil {
				return fmt.Errorf("create QR code: %w", err)
			}
			if qr {
				fmt.Fprint(out, code.ToSmallString(false))
			}
			if png != "" {
				if err := code.WriteFile(256, png); err != nil {
					return fmt.Errorf("write QR code: %w", err)
				}
				fmt.Fprintf(out, "QR code written to %s\n", png)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&qr, "qr", false, "also print the address as a QR code")
	cmd.Flags().StringVar(&png, "qr-png", "", "write the QR code as a PNG file")
	return cmd
}

func newWalletMnemonicCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "mnemonic",
		Short: "Print the 24-word mnemonic of a seed wallet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rec, err := a.loadRecord()
			if err != nil {
				return err
			}
			if rec.Seed == nil {
				return errors.New("wallet holds a private key, not a seed")
			}
			seed, err := account.ParseSeed(rec.Seed.Seed)
			if err != nil {
				return err
			}
			mnemonic, err := wallet.MnemonicFromSeed(seed)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), mnemonic)
			return nil
		},
	}
}

func newWalletExportKeyCmd(a *app) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "export-key",
		Short: "Export the private key of the wallet account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			acct, err := a.account()
			if err != nil {
				return err
			}
			privHex := acct.PrivateKeyHex()
			out := cmd.OutOrStdout()

			if output == "" {
				fmt.Fprintln(cmd.ErrOrStderr(), "Warning: anyone with this key controls the account.")
				fmt.Fprintln(out, privHex)
				return nil
			}
			if err := os.WriteFile(output, []byte(privHex+"\n"), 0600); err != nil {
				return fmt.Errorf("write key file: %w", err)
			}
			fmt.Fprintf(out, "Exported %s key to: %s\n", acct.Algorithm(), output)
			fmt.Fprintf(out, "  Address: %s\n", acct.Address())
			return nil
		},
	}
	cmd.Flags().StringVar(&output, "output", "", "write the key to this file instead of stdout")
	return cmd
}

func newWalletBackupCmd(a *app) *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Write a password-encrypted copy of the wallet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rec, err := a.loadRecord()
			if err != nil {
				return err
			}
			password, err := a.newPassword()
			if err != nil {
				return err
			}
			if err := wallet.WriteBackup(path, rec, password, a.backupParams); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Backup written to %s\n", path)
			return nil
		},
	}
	cmd.Flags().StringVar(&path, "out", "", "backup file to create")
	cmd.MarkFlagRequired("out")
	return cmd
}

func newWalletRestoreCmd(a *app) *cobra.Command {
	var path string
	var force bool
	cmd := &cobra.Command{
		Use:   "restore",
		Short: "Restore the wallet from an encrypted backup",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store := a.store()
			if store.Exists() && !force {
				return fmt.Errorf("wallet already exists at %s (use --force to replace it)", store.Path())
			}
			password, err := a.readPassword("Enter password: ")
			if err != nil {
				return fmt.Errorf("read password: %w", err)
			}
			rec, err := wallet.ReadBackup(path, password)
			if err != nil {
				return err
			}
			acct, err := wallet.Resolve(rec)
			if err != nil {
				return err
			}
			if err := store.Save(rec); err != nil {
				return fmt.Errorf("save wallet: %w", err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wallet restored: %s\n", store.Path())
			printAccount(out, rec, acct)
			return nil
		},
	}
	cmd.Flags().StringVar(&path, "in", "", "backup file to read")
	cmd.Flags().BoolVar(&force, "force", false, "replace an existing wallet")
	cmd.MarkFlagRequired("in")
	return cmd
}
