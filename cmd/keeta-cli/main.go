// keeta-cli is a command-line client for the Keeta network.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Klingon-tech/keeta-cli/config"
	"github.com/Klingon-tech/keeta-cli/internal/account"
	"github.com/Klingon-tech/keeta-cli/internal/log"
	"github.com/Klingon-tech/keeta-cli/internal/rpcclient"
	"github.com/Klingon-tech/keeta-cli/internal/search"
	"github.com/Klingon-tech/keeta-cli/internal/wallet"
	"github.com/Klingon-tech/keeta-cli/pkg/types"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd(newApp()).ExecuteContext(ctx)
	stop()
	if err != nil {
		fatal("%v", err)
	}
}

// app carries state shared by every command of one invocation.
type app struct {
	flags config.Overrides
	cfg   *config.Config

	// readPassword prompts for a secret without echo.
	readPassword func(prompt string) ([]byte, error)
	backupParams wallet.BackupParams
}

func newApp() *app {
	return &app{
		readPassword: readPassword,
		backupParams: wallet.DefaultBackupParams(),
	}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "keeta-cli",
		Short: "Command-line client for the Keeta network",
		Long: `keeta-cli manages a local wallet and talks to a Keeta gateway.

Settings are read from <datadir>/keeta.conf, then KEETA_* environment
variables, then flags.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.flags.Network, "network", "", "network: main or test (default test)")
	flags.StringVar(&a.flags.RPCURL, "rpc", "", "gateway URL (default depends on network)")
	flags.StringVar(&a.flags.WalletFile, "wallet", "", "keystore file (default <datadir>/wallet.json)")
	flags.StringVar(&a.flags.DataDir, "datadir", "", "data directory (default ~/.keeta)")
	flags.StringVar(&a.flags.LogLevel, "log-level", "", "log level: trace, debug, info, warn, error, off")
	flags.BoolVar(&a.flags.LogJSON, "log-json", false, "log as JSON")
	flags.DurationVar(&a.flags.Timeout, "timeout", 0, "gateway request timeout (default 10s)")

	root.AddCommand(
		newWalletCmd(a),
		newBalanceCmd(a),
		newScanCmd(a),
		newHistoryCmd(a),
		newAccountCmd(a),
		newStatusCmd(a),
		newSendCmd(a),
		newTokenCmd(a),
		newConfigCmd(a),
	)
	return root
}

// setup resolves configuration and logging before any command runs.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.flags)
	if err != nil {
		return err
	}
	if err := log.Init(cfg.Log.Level, cfg.Log.JSON, cfg.Log.File); err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	if cfg.Network == config.Mainnet {
		types.SetAddressHRP(types.MainnetHRP)
	} else {
		types.SetAddressHRP(types.TestnetHRP)
	}
	a.cfg = cfg

	log.CLI.Debug().
		Str("command", cmd.CommandPath()).
		Str("network", string(cfg.Network)).
		Str("rpc", cfg.RPCEndpoint()).
		Str("wallet", cfg.WalletPath()).
		Msg("Configuration loaded")
	return nil
}

func (a *app) store() *wallet.Store {
	return wallet.NewStore(a.cfg.WalletPath())
}

func (a *app) client() *rpcclient.Client {
	return rpcclient.NewWithTimeout(a.cfg.RPCEndpoint(), a.cfg.Timeout)
}

func (a *app) engine() *search.Engine {
	return search.New(a.client(),
		search.WithProbeTimeout(a.cfg.ProbeTimeout),
		search.WithLogger(log.Search),
	)
}

// loadRecord reads the keystore, turning a missing file into a hint.
func (a *app) loadRecord() (*wallet.Record, error) {
	store := a.store()
	rec, err := store.Load()
	if errors.Is(err, wallet.ErrNoWallet) {
		return nil, fmt.Errorf("no wallet at %s (run 'keeta-cli wallet new' or 'keeta-cli wallet import')", store.Path())
	}
	return rec, err
}

// account loads the keystore and resolves the wallet's account.
func (a *app) account() (*account.Account, error) {
	rec, err := a.loadRecord()
	if err != nil {
		return nil, err
	}
	acct, err := wallet.Resolve(rec)
	if err != nil {
		return nil, fmt.Errorf("resolve wallet account: %w", err)
	}
	return acct, nil
}

// now stamps built requests; tests replace it.
var now = time.Now

// ── Error helper ────────────────────────────────────────────────────────

func fatal(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
