package config

import (
	"fmt"
	"strings"

	"github.com/urfave/cli"
)

// Flag names.
const (
	FlagNetwork      = "network"
	FlagTestnet      = "testnet"
	FlagDataDir      = "datadir"
	FlagConfig       = "config"
	FlagRPCURL       = "rpc-url"
	FlagRPCTimeout   = "rpc-timeout"
	FlagRPCNamespace = "rpc-namespace"
	FlagNoPathing    = "no-pathing"
	FlagExplorerURL  = "explorer-url"
	FlagZone         = "zone"
	FlagAccount      = "account"
	FlagWalletFile   = "wallet-file"
	FlagNoJournal    = "no-journal"
	FlagLogLevel     = "log-level"
	FlagLogFile      = "log-file"
	FlagLogJSON      = "log-json"
)

// Flags returns the global command-line flags. Defaults are left empty so
// that unset flags never override the file or the environment.
func Flags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{Name: FlagNetwork, Usage: "network: mainnet or testnet"},
		cli.BoolFlag{Name: FlagTestnet, Usage: "shorthand for --network=testnet"},
		cli.StringFlag{Name: FlagDataDir, Usage: "data directory (default: " + DefaultDataDir() + ")"},
		cli.StringFlag{Name: FlagConfig + ", c", Usage: "config file path (default: <datadir>/quaiwallet.conf)"},
		cli.StringFlag{Name: FlagRPCURL, Usage: "node JSON-RPC URL"},
		cli.DurationFlag{Name: FlagRPCTimeout, Usage: "node request timeout"},
		cli.StringFlag{Name: FlagRPCNamespace, Usage: "JSON-RPC method prefix: quai or eth"},
		cli.BoolFlag{Name: FlagNoPathing, Usage: "do not append the zone name to the RPC URL"},
		cli.StringFlag{Name: FlagExplorerURL, Usage: "block explorer API URL"},
		cli.StringFlag{Name: FlagZone, Usage: "zone to derive addresses in (e.g. cyprus1)"},
		cli.UintFlag{Name: FlagAccount, Usage: "BIP-44 account index"},
		cli.StringFlag{Name: FlagWalletFile, Usage: "secret record file (default: <datadir>/<network>/.env)"},
		cli.BoolFlag{Name: FlagNoJournal, Usage: "do not keep a local journal of sent transactions"},
		cli.StringFlag{Name: FlagLogLevel, Usage: "log level: debug, info, warn, error"},
		cli.StringFlag{Name: FlagLogFile, Usage: "also write logs to this file"},
		cli.BoolFlag{Name: FlagLogJSON, Usage: "output logs as JSON"},
	}
}

// isSet reports whether name was given on the command line, before or
// after the subcommand.
func isSet(c *cli.Context, name string) bool {
	return c.IsSet(name) || c.GlobalIsSet(name)
}

func stringFlag(c *cli.Context, name string) string {
	if v := c.String(name); v != "" {
		return v
	}
	return c.GlobalString(name)
}

// ApplyFlags applies explicitly set command-line flags to cfg.
func ApplyFlags(cfg *Config, c *cli.Context) {
	if isSet(c, FlagRPCURL) {
		cfg.RPC.URL = stringFlag(c, FlagRPCURL)
	}
	if isSet(c, FlagRPCTimeout) {
		cfg.RPC.Timeout = c.GlobalDuration(FlagRPCTimeout)
	}
	if isSet(c, FlagRPCNamespace) {
		cfg.RPC.Namespace = stringFlag(c, FlagRPCNamespace)
	}
	if isSet(c, FlagNoPathing) {
		cfg.RPC.Pathing = false
	}
	if isSet(c, FlagExplorerURL) {
		cfg.Explorer.URL = stringFlag(c, FlagExplorerURL)
	}
	if isSet(c, FlagZone) {
		cfg.Wallet.Zone = stringFlag(c, FlagZone)
	}
	if isSet(c, FlagAccount) {
		cfg.Wallet.Account = uint32(c.GlobalUint(FlagAccount))
	}
	if isSet(c, FlagWalletFile) {
		cfg.Wallet.RecordFile = stringFlag(c, FlagWalletFile)
	}
	if isSet(c, FlagNoJournal) {
		cfg.Wallet.Journal = false
	}
	if isSet(c, FlagLogLevel) {
		cfg.Log.Level = stringFlag(c, FlagLogLevel)
	}
	if isSet(c, FlagLogFile) {
		cfg.Log.File = stringFlag(c, FlagLogFile)
	}
	if isSet(c, FlagLogJSON) {
		cfg.Log.JSON = true
	}
}

// Load builds the configuration with the following precedence:
// 1. Default values for the selected network
// 2. Config file
// 3. QUAIWALLET_* environment variables
// 4. Command-line flags
//
// The data directory and a default config file are created on first use.
func Load(c *cli.Context) (*Config, error) {
	env, err := ReadEnv()
	if err != nil {
		return nil, err
	}

	// Network and datadir decide which defaults and which file apply.
	network := env.Network
	if isSet(c, FlagNetwork) {
		network = stringFlag(c, FlagNetwork)
	}
	if isSet(c, FlagTestnet) {
		network = string(Testnet)
	}
	switch strings.ToLower(network) {
	case "", string(Mainnet):
		network = string(Mainnet)
	case string(Testnet):
		network = string(Testnet)
	default:
		return nil, fmt.Errorf("invalid config: network must be %q or %q", Mainnet, Testnet)
	}

	cfg := Default(NetworkType(network))
	if env.DataDir != "" {
		cfg.DataDir = env.DataDir
	}
	if isSet(c, FlagDataDir) {
		cfg.DataDir = stringFlag(c, FlagDataDir)
	}

	if err := EnsureDataDirs(cfg); err != nil {
		return nil, fmt.Errorf("ensuring data dirs: %w", err)
	}

	configPath := stringFlag(c, FlagConfig)
	if configPath == "" {
		configPath = cfg.ConfigFile()
	}
	fileValues, err := LoadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config file: %w", err)
	}
	if err := ApplyFileConfig(cfg, fileValues); err != nil {
		return nil, fmt.Errorf("applying config file: %w", err)
	}

	ApplyEnv(cfg, env)
	ApplyFlags(cfg, c)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
