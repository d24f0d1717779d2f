package config

import "fmt"

// Load builds the effective configuration: defaults, then the config file,
// then the environment, then flags.
//
// The data directory and network are resolved from flags and environment
// first because they pick the config file and the defaults.
func Load(flags Overrides) (*Config, error) {
	env, err := FromEnv()
	if err != nil {
		return nil, err
	}
	return load(env, flags)
}

func load(env, flags Overrides) (*Config, error) {
	network := DefaultNetwork
	for _, name := range []string{env.Network, flags.Network} {
		if name == "" {
			continue
		}
		n, ok := ParseNetwork(name)
		if !ok {
			return nil, fmt.Errorf("unknown network %q", name)
		}
		network = n
	}

	cfg := Default(network)
	for _, dir := range []string{env.DataDir, flags.DataDir} {
		if dir != "" {
			cfg.DataDir = expandHome(dir)
		}
	}

	fileValues, err := LoadFile(cfg.ConfigFile())
	if err != nil {
		return nil, fmt.Errorf("loading config file: %w", err)
	}
	if err := ApplyFileConfig(cfg, fileValues); err != nil {
		return nil, fmt.Errorf("applying config file: %w", err)
	}

	if err := env.Apply(cfg); err != nil {
		return nil, fmt.Errorf("applying environment: %w", err)
	}
	if err := flags.Apply(cfg); err != nil {
		return nil, fmt.Errorf("applying flags: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
