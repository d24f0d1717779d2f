package config

import (
	"fmt"
	"net/url"
	"strings"

	klog "github.com/Klingon-tech/keeta-cli/internal/log"
)

// Validate checks config for obvious operator mistakes.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}
	if cfg.Network != Mainnet && cfg.Network != Testnet {
		return fmt.Errorf("network must be %q or %q, got %q", Mainnet, Testnet, cfg.Network)
	}
	if cfg.DataDir == "" {
		return fmt.Errorf("datadir is empty")
	}
	if cfg.Timeout <= 0 {
		return fmt.Errorf("rpc.timeout must be positive")
	}
	if cfg.ProbeTimeout < 0 {
		return fmt.Errorf("search.timeout must not be negative")
	}

	u, err := url.Parse(cfg.RPCEndpoint())
	if err != nil {
		return fmt.Errorf("rpc.url: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("rpc.url must be an http(s) URL, got %q", cfg.RPCEndpoint())
	}

	if !klog.ValidLevel(cfg.Log.Level) {
		return fmt.Errorf("log.level %q is not one of %s", cfg.Log.Level, strings.Join(klog.Levels(), ", "))
	}
	return nil
}
