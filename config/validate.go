package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/Klingon-tech/quai-shadow-wallet/internal/log"
	"github.com/Klingon-tech/quai-shadow-wallet/pkg/types"
)

// Validate checks the config for obvious operator mistakes and normalizes
// the zone name.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}
	if cfg.Network != Mainnet && cfg.Network != Testnet {
		return fmt.Errorf("network must be %q or %q", Mainnet, Testnet)
	}
	if cfg.DataDir == "" {
		return fmt.Errorf("datadir must not be empty")
	}
	if err := validateURL(cfg.RPC.URL, "rpc.url"); err != nil {
		return err
	}
	if err := validateURL(cfg.Explorer.URL, "explorer.url"); err != nil {
		return err
	}
	if cfg.RPC.Timeout < 0 || cfg.Explorer.Timeout < 0 {
		return fmt.Errorf("timeouts must not be negative")
	}
	if cfg.RPC.Namespace == "" || strings.ContainsAny(cfg.RPC.Namespace, "_ ") {
		return fmt.Errorf("rpc.namespace %q is invalid", cfg.RPC.Namespace)
	}

	zone, err := types.ParseZone(cfg.Wallet.Zone)
	if err != nil {
		return fmt.Errorf("wallet.zone: %w", err)
	}
	cfg.Wallet.Zone = zone.String()

	if !log.ValidLevel(cfg.Log.Level) {
		return fmt.Errorf("log.level must be debug, info, warn or error")
	}
	return nil
}

func validateURL(raw, field string) error {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("%s must be an http(s) URL, got %q", field, raw)
	}
	return nil
}
