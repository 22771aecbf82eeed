// Package config handles application configuration.
//
// Settings are layered: built-in defaults per network, then the config
// file in the data directory, then QUAIWALLET_* environment variables, then
// command-line flags.
package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/Klingon-tech/quai-shadow-wallet/pkg/types"
)

// NetworkType identifies mainnet or testnet.
type NetworkType string

const (
	Mainnet NetworkType = "mainnet"
	Testnet NetworkType = "testnet"
)

// Config holds the wallet's runtime configuration.
type Config struct {
	// Core
	Network NetworkType `conf:"network"`
	DataDir string      `conf:"datadir"`

	// Node JSON-RPC
	RPC RPCConfig

	// Block explorer API
	Explorer ExplorerConfig

	// Wallet
	Wallet WalletConfig

	// Logging
	Log LogConfig
}

// RPCConfig holds node connection settings.
type RPCConfig struct {
	URL     string        `conf:"rpc.url"`
	Timeout time.Duration `conf:"rpc.timeout"`
	// Namespace prefixes every method name, e.g. "quai" for quai_getBalance.
	Namespace string `conf:"rpc.namespace"`
	// Pathing appends the zone name to URL, as the public Quai endpoints
	// serve each zone under its own path.
	Pathing bool `conf:"rpc.pathing"`
}

// ExplorerConfig holds block explorer settings.
type ExplorerConfig struct {
	URL     string        `conf:"explorer.url"`
	Timeout time.Duration `conf:"explorer.timeout"`
}

// WalletConfig holds wallet settings.
type WalletConfig struct {
	Zone       string `conf:"wallet.zone"`
	Account    uint32 `conf:"wallet.account"`
	RecordFile string `conf:"wallet.file"` // empty means <datadir>/<network>/.env
	Journal    bool   `conf:"wallet.journal"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `conf:"log.level"`
	File  string `conf:"log.file"`
	JSON  bool   `conf:"log.json"`
}

// =============================================================================
// Directory helpers
// =============================================================================

// DefaultDataDir returns the platform-specific default data directory.
//
//	Linux:   ~/.quaiwallet
//	macOS:   ~/Library/Application Support/QuaiWallet
//	Windows: %APPDATA%\QuaiWallet
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".quaiwallet"
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "QuaiWallet")
	case "windows":
		appData := os.Getenv("APPDATA")
		if appData != "" {
			return filepath.Join(appData, "QuaiWallet")
		}
		return filepath.Join(home, "AppData", "Roaming", "QuaiWallet")
	default:
		return filepath.Join(home, ".quaiwallet")
	}
}

// NetworkDir returns the network-specific data directory.
func (c *Config) NetworkDir() string {
	return filepath.Join(c.DataDir, string(c.Network))
}

// RecordPath returns the secret record file path.
func (c *Config) RecordPath() string {
	if c.Wallet.RecordFile != "" {
		return c.Wallet.RecordFile
	}
	return filepath.Join(c.NetworkDir(), ".env")
}

// JournalDir returns the send journal database directory.
func (c *Config) JournalDir() string {
	return filepath.Join(c.NetworkDir(), "journal")
}

// ConfigFile returns the config file path.
func (c *Config) ConfigFile() string {
	return filepath.Join(c.DataDir, "quaiwallet.conf")
}

// Zone returns the configured zone. Validate has already rejected unknown
// names, so errors fall back to Cyprus1.
func (c *Config) Zone() types.Zone {
	z, err := types.ParseZone(c.Wallet.Zone)
	if err != nil {
		return types.Cyprus1
	}
	return z
}

// RPCEndpoint returns the node URL for the configured zone.
func (c *Config) RPCEndpoint() string {
	url := strings.TrimRight(c.RPC.URL, "/")
	if c.RPC.Pathing {
		return url + "/" + c.Zone().String()
	}
	return url
}
