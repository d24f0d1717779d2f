package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/Klingon-tech/keeta-cli/internal/account"
	"github.com/Klingon-tech/keeta-cli/internal/search"
)

var (
	subtle    = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#383838"}
	special   = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	warning   = lipgloss.AdaptiveColor{Light: "#E0457B", Dark: "#F25D94"}
	highlight = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}

	headerStyle = lipgloss.NewStyle().Foreground(highlight).Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	foundStyle  = cellStyle.Foreground(special)
	errorStyle  = cellStyle.Foreground(warning)
	bestStyle   = foundStyle.Bold(true)
)

// ── scan ────────────────────────────────────────────────────────────────

func newScanCmd(a *app) *cobra.Command {
	var (
		algos       []string
		start, end  int
		includeZero bool
		seedHex     string
		mnemonic    string
	)
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "List derived accounts that hold a balance",
		Long: `Probe every algorithm and index in a range and list the accounts
holding a balance. The seed comes from --seed, --mnemonic or the wallet.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if seedHex != "" && mnemonic != "" {
				return fmt.Errorf("--seed and --mnemonic are mutually exclusive")
			}
			var seed []byte
			var err error
			if seedHex != "" || mnemonic != "" {
				seed, err = importSeed(seedHex, mnemonic)
			} else {
				seed, err = a.walletSeed()
			}
			if err != nil {
				return err
			}

			results, err := a.engine().Scan(cmd.Context(), seed, search.ScanRequest{
				Algorithms:  algos,
				Start:       start,
				End:         end,
				IncludeZero: includeZero,
			})
			if err != nil {
				return err
			}

			var found []search.Candidate
			for c := range results {
				found = append(found, c)
			}
			if err := cmd.Context().Err(); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(found) == 0 {
				fmt.Fprintln(out, "No derived account holds a balance.")
				return nil
			}
			fmt.Fprintln(out, renderCandidates(found, nil))
			return nil
		},
	}
	flags := cmd.Flags()
	flags.StringSliceVar(&algos, "algos", algorithmNames(), "algorithms to probe, in order")
	flags.IntVar(&start, "start", 0, "first index")
	flags.IntVar(&end, "end", search.AutoDetectIndices-1, "last index (inclusive)")
	flags.BoolVar(&includeZero, "include-zero", false, "also list accounts without a balance")
	flags.StringVar(&seedHex, "seed", "", "32-byte hex seed to scan instead of the wallet's")
	flags.StringVar(&mnemonic, "mnemonic", "", "24-word mnemonic to scan instead of the wallet's")
	return cmd
}

// walletSeed returns the seed of the stored wallet.
func (a *app) walletSeed() ([]byte, error) {
	rec, err := a.loadRecord()
	if err != nil {
		return nil, err
	}
	if rec.Seed == nil {
		return nil, fmt.Errorf("wallet holds a private key; pass --seed or --mnemonic to scan")
	}
	return account.ParseSeed(rec.Seed.Seed)
}

func algorithmNames() []string {
	var names []string
	for _, a := range account.All() {
		names = append(names, string(a))
	}
	return names
}

// renderCandidates draws probes as a table. best, when set, is marked.
func renderCandidates(probes []search.Candidate, best *search.Candidate) string {
	rows := make([][]string, 0, len(probes))
	for _, c := range probes {
		addr := "-"
		if c.Account != nil {
			addr = c.Address().String()
		}
		rows = append(rows, []string{
			string(c.Algorithm),
			strconv.FormatUint(uint64(c.Index), 10),
			addr,
			candidateDetail(c),
		})
	}

	isBest := func(c search.Candidate) bool {
		return best != nil && c.Algorithm == best.Algorithm && c.Index == best.Index
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(subtle)).
		Headers("ALGORITHM", "INDEX", "ADDRESS", "BALANCE").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if row < 0 || row >= len(probes) {
				return cellStyle
			}
			c := probes[row]
			switch {
			case isBest(c):
				return bestStyle
			case c.Status == search.StatusFound:
				return foundStyle
			case c.Status == search.StatusError:
				return errorStyle
			}
			return cellStyle
		})
	return t.String()
}

// candidateDetail summarises a probe for display.
func candidateDetail(c search.Candidate) string {
	switch c.Status {
	case search.StatusError:
		return "error: " + c.Err.Error()
	case search.StatusZero:
		return "0"
	}
	tokens := c.Balances.Tokens()
	if len(tokens) == 1 {
		return fmt.Sprintf("%s %s", c.Balances[tokens[0]], shortToken(tokens[0]))
	}
	parts := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		parts = append(parts, fmt.Sprintf("%s %s", c.Balances[tok], shortToken(tok)))
	}
	return fmt.Sprintf("%s (total %s)", strings.Join(parts, ", "), c.Total)
}

// shortToken abbreviates a token address for table cells.
func shortToken(tok string) string {
	if len(tok) <= 16 {
		return tok
	}
	return tok[:10] + "…" + tok[len(tok)-4:]
}
