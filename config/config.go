// Package config handles keeta-cli configuration.
//
// Values are layered with increasing precedence: built-in defaults, the
// keeta.conf file in the data directory, KEETA_* environment variables,
// then command-line flags.
package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"
)

// NetworkType identifies the Keeta network a command talks to.
type NetworkType string

const (
	Mainnet NetworkType = "main"
	Testnet NetworkType = "test"
)

// DefaultNetwork is used when nothing selects a network.
const DefaultNetwork = Testnet

// ParseNetwork accepts "main"/"test" and the "mainnet"/"testnet" spellings.
func ParseNetwork(s string) (NetworkType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "main", "mainnet":
		return Mainnet, true
	case "test", "testnet":
		return Testnet, true
	}
	return NetworkType(s), false
}

// Config holds CLI settings.
type Config struct {
	Network NetworkType
	DataDir string
	RPCURL  string // empty selects the network default
	Timeout time.Duration

	// WalletFile is the keystore path; empty selects <datadir>/wallet.json.
	WalletFile string

	// ProbeTimeout bounds each balance query during scans; 0 disables it.
	ProbeTimeout time.Duration

	Log LogConfig
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string
	File  string
	JSON  bool
}

// DefaultDataDir returns the platform-specific default data directory.
//
//	Linux:   ~/.keeta
//	macOS:   ~/.keeta
//	Windows: %APPDATA%\Keeta
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".keeta"
	}
	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "Keeta")
		}
		return filepath.Join(home, "AppData", "Roaming", "Keeta")
	}
	return filepath.Join(home, ".keeta")
}

// DefaultRPCURL returns the public gateway for a network.
func DefaultRPCURL(network NetworkType) string {
	if network == Mainnet {
		return "https://rpc.main.keeta.com"
	}
	return "https://rpc.test.keeta.com"
}

// ConfigFile returns the config file path.
func (c *Config) ConfigFile() string {
	return filepath.Join(c.DataDir, "keeta.conf")
}

// WalletPath returns the keystore file path.
func (c *Config) WalletPath() string {
	if c.WalletFile != "" {
		return c.WalletFile
	}
	return filepath.Join(c.DataDir, "wallet.json")
}

// RPCEndpoint returns the gateway URL.
func (c *Config) RPCEndpoint() string {
	if c.RPCURL != "" {
		return c.RPCURL
	}
	return DefaultRPCURL(c.Network)
}

// expandHome replaces a leading ~ with the user's home directory.
func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
