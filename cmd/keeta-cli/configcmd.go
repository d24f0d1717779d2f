package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Klingon-tech/keeta-cli/config"
)

// ── config ──────────────────────────────────────────────────────────────

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the configuration file",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write a default keeta.conf into the data directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := os.MkdirAll(a.cfg.DataDir, 0700); err != nil {
				return fmt.Errorf("create data directory: %w", err)
			}
			path := a.cfg.ConfigFile()
			if err := config.WriteDefaultConfig(path, a.cfg.Network); err != nil {
				if os.IsExist(err) {
					return fmt.Errorf("%s already exists", path)
				}
				return fmt.Errorf("write config: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Config written to %s\n", path)
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := a.cfg
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "network        = %s\n", c.Network)
			fmt.Fprintf(out, "datadir        = %s\n", c.DataDir)
			fmt.Fprintf(out, "rpc.url        = %s\n", c.RPCEndpoint())
			fmt.Fprintf(out, "rpc.timeout    = %s\n", c.Timeout)
			fmt.Fprintf(out, "wallet.file    = %s\n", c.WalletPath())
			fmt.Fprintf(out, "search.timeout = %s\n", c.ProbeTimeout)
			fmt.Fprintf(out, "log.level      = %s\n", c.Log.Level)
			fmt.Fprintf(out, "log.file       = %s\n", c.Log.File)
			fmt.Fprintf(out, "log.json       = %t\n", c.Log.JSON)
			return nil
		},
	})
	return cmd
}
