// =================================
// File: internal/config/config.go
// =================================
package config

import (
	"errors"
	"net/url"
	"strings"
	"sync"

	"github.com/spf13/viper"
)

// Config holds everything the CLI entrypoint needs to wire the core and
// its optional boundary/storage adapters. The core package tree (internal/account,
// internal/graph, internal/builder, ...) takes none of this directly; it only
// ever sees the values after cmd/solgraph has read them.
type Config struct {
	RPCList         []string `mapstructure:"rpc_list"`
	Workers         int      `mapstructure:"workers"`
	Retries         int      `mapstructure:"retries"`
	RPCDelayMs      int      `mapstructure:"rpc_delay_ms"`
	DebugLogging    bool     `mapstructure:"debug_logging"`
	PostgresURL     string   `mapstructure:"postgres_url"`
	CatalogOverlay  string   `mapstructure:"catalog_overlay"`
	LinkSequential  bool     `mapstructure:"link_sequential"`
	ReferenceMints  []string `mapstructure:"reference_mints"`
}

const (
	DefaultWorkers    = 5
	DefaultRetries    = 3
	DefaultRPCDelayMs = 100
)

func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	defaults := map[string]interface{}{
		"workers":      DefaultWorkers,
		"retries":      DefaultRetries,
		"rpc_delay_ms": DefaultRPCDelayMs,
	}
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	loadEnvironmentVariables(v, &cfg)

	return &cfg, validateConfig(&cfg)
}

func validateConfig(cfg *Config) error {
	for _, rpcURL := range cfg.RPCList {
		if err := validateURLWithCache(rpcURL, "http"); err != nil {
			return errors.New("invalid RPC URL protocol: " + rpcURL)
		}
	}
	if cfg.Workers < 0 {
		return errors.New("invalid workers count")
	}
	if cfg.RPCDelayMs <= 0 {
		return errors.New("invalid rpc_delay_ms")
	}
	if cfg.Retries < 0 {
		return errors.New("invalid retries count")
	}
	return nil
}

var urlCache sync.Map

func validateURLWithCache(rawURL string, protocol string) error {
	if _, ok := urlCache.Load(rawURL); ok {
		return nil
	}
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return errors.New("invalid URL format")
	}
	if !strings.HasPrefix(parsed.Scheme, protocol) {
		return errors.New("invalid URL protocol")
	}
	urlCache.Store(rawURL, parsed)
	return nil
}

func loadEnvironmentVariables(v *viper.Viper, cfg *Config) {
	v.AutomaticEnv()
	v.SetEnvPrefix("SOLGRAPH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if envRPCList := v.GetString("RPC_LIST"); envRPCList != "" {
		rpcs := strings.Split(envRPCList, ",")
		var cleanRPCs []string
		for _, rpcURL := range rpcs {
			clean := strings.TrimSpace(rpcURL)
			if clean != "" {
				cleanRPCs = append(cleanRPCs, clean)
			}
		}
		if len(cleanRPCs) > 0 {
			cfg.RPCList = cleanRPCs
		}
	}
}
