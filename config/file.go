package config

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"
)

// LoadFile reads a .conf file. A missing file yields an empty map.
// Format: key = value (one per line, # for comments)
func LoadFile(path string) (map[string]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[string]string), nil
		}
		return nil, err
	}
	defer file.Close()

	values := make(map[string]string)
	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return nil, fmt.Errorf("%s:%d: invalid format (expected key = value)", path, lineNum)
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		if len(value) >= 2 {
			if (value[0] == '"' && value[len(value)-1] == '"') ||
				(value[0] == '\'' && value[len(value)-1] == '\'') {
				value = value[1 : len(value)-1]
			}
		}

		values[key] = value
	}

	return values, scanner.Err()
}

// ApplyFileConfig applies file values to cfg.
func ApplyFileConfig(cfg *Config, values map[string]string) error {
	for key, value := range values {
		if err := setConfigValue(cfg, key, value); err != nil {
			return fmt.Errorf("config key %q: %w", key, err)
		}
	}
	return nil
}

// setConfigValue sets a config value by key.
func setConfigValue(cfg *Config, key, value string) error {
	switch key {
	case "network":
		network, ok := ParseNetwork(value)
		if !ok {
			return fmt.Errorf("unknown network %q", value)
		}
		cfg.Network = network
	case "datadir":
		cfg.DataDir = expandHome(value)

	case "rpc.url", "rpc":
		cfg.RPCURL = value
	case "rpc.timeout":
		d, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		cfg.Timeout = d

	case "wallet.file", "wallet":
		cfg.WalletFile = expandHome(value)

	case "search.timeout":
		d, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		cfg.ProbeTimeout = d

	case "log.level":
		cfg.Log.Level = value
	case "log.file":
		cfg.Log.File = expandHome(value)
	case "log.json":
		cfg.Log.JSON = parseBool(value)

	default:
		// Unknown keys are ignored
	}
	return nil
}

// parseBool parses a boolean value.
func parseBool(s string) bool {
	s = strings.ToLower(s)
	return s == "true" || s == "1" || s == "yes" || s == "on"
}

// WriteDefaultConfig writes a commented default config file. Existing files
// are left untouched and reported as an error.
func WriteDefaultConfig(path string, network NetworkType) error {
	content := `# keeta-cli configuration
#
# Environment variables (KEETA_NETWORK, KEETA_RPC, KEETA_WALLET,
# KEETA_DATADIR, KEETA_LOG_LEVEL, KEETA_TIMEOUT) override this file;
# command-line flags override both.

# Network: main or test
network = ` + string(network) + `

# Gateway URL (default depends on network)
# rpc.url = ` + DefaultRPCURL(network) + `
rpc.timeout = 10s

# Keystore file (default: <datadir>/wallet.json)
# wallet.file = ~/.keeta/wallet.json

# Per-probe timeout for scan and auto-detect (0 = none)
# search.timeout = 5s

# Logging goes to stderr
log.level = warn
# log.file =
log.json = false
`
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return err
	}
	if _, err := f.WriteString(content); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
