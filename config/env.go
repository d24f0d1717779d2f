package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is the prefix of every environment variable keeta-cli reads.
const EnvPrefix = "KEETA"

// Overrides are settings given outside the config file, from the
// environment or from flags. Zero values leave the config unchanged.
type Overrides struct {
	Network    string        `envconfig:"NETWORK"`
	DataDir    string        `envconfig:"DATADIR"`
	RPCURL     string        `envconfig:"RPC"`
	WalletFile string        `envconfig:"WALLET"`
	LogLevel   string        `envconfig:"LOG_LEVEL"`
	LogJSON    bool          `envconfig:"LOG_JSON"`
	Timeout    time.Duration `envconfig:"TIMEOUT"`
}

// FromEnv reads KEETA_* variables.
func FromEnv() (Overrides, error) {
	var o Overrides
	if err := envconfig.Process(EnvPrefix, &o); err != nil {
		return Overrides{}, fmt.Errorf("read environment: %w", err)
	}
	return o, nil
}

// Apply copies every set field onto cfg.
func (o Overrides) Apply(cfg *Config) error {
	if o.Network != "" {
		network, ok := ParseNetwork(o.Network)
		if !ok {
			return fmt.Errorf("unknown network %q", o.Network)
		}
		cfg.Network = network
	}
	if o.DataDir != "" {
		cfg.DataDir = expandHome(o.DataDir)
	}
	if o.RPCURL != "" {
		cfg.RPCURL = o.RPCURL
	}
	if o.WalletFile != "" {
		cfg.WalletFile = expandHome(o.WalletFile)
	}
	if o.LogLevel != "" {
		cfg.Log.Level = o.LogLevel
	}
	if o.LogJSON {
		cfg.Log.JSON = true
	}
	if o.Timeout != 0 {
		cfg.Timeout = o.Timeout
	}
	return nil
}
