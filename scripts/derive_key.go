// derive_key.go prints the public key and address for a hex-encoded
// secp256k1 private key file, such as one written by "wallet export-key".
// Usage: go run scripts/derive_key.go <keyfile> [main|test]
package main

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/Klingon-tech/keeta-cli/config"
	"github.com/Klingon-tech/keeta-cli/internal/account"
	"github.com/Klingon-tech/keeta-cli/pkg/types"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: derive_key <keyfile> [main|test]")
		os.Exit(1)
	}
	network := config.DefaultNetwork
	if len(os.Args) > 2 {
		n, ok := config.ParseNetwork(os.Args[2])
		if !ok {
			fmt.Fprintf(os.Stderr, "unknown network %q\n", os.Args[2])
			os.Exit(1)
		}
		network = n
	}
	if network == config.Mainnet {
		types.SetAddressHRP(types.MainnetHRP)
	} else {
		types.SetAddressHRP(types.TestnetHRP)
	}

	data, err := os.ReadFile(os.Args[1])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	acct, err := account.FromPrivateKey(string(data))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Printf("pubkey=%s\n", hex.EncodeToString(acct.PublicKey()))
	fmt.Printf("address=%s\n", acct.Address())
}
