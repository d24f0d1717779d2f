package config

import "time"

// Default returns the default configuration for the given network.
func Default(network NetworkType) *Config {
	if network == "" {
		network = DefaultNetwork
	}
	return &Config{
		Network: network,
		DataDir: DefaultDataDir(),
		Timeout: 10 * time.Second,
		Log: LogConfig{
			Level: "warn",
		},
	}
}
