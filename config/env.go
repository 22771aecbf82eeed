package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix prefixes every environment variable the wallet reads.
const EnvPrefix = "QUAIWALLET"

// Env mirrors the settings that can come from the environment. Unset
// variables leave the corresponding setting untouched.
type Env struct {
	Network         string        `envconfig:"NETWORK"`
	DataDir         string        `envconfig:"DATADIR"`
	RPCURL          string        `envconfig:"RPC_URL"`
	RPCTimeout      time.Duration `envconfig:"RPC_TIMEOUT"`
	RPCNamespace    string        `envconfig:"RPC_NAMESPACE"`
	RPCPathing      *bool         `envconfig:"RPC_PATHING"`
	ExplorerURL     string        `envconfig:"EXPLORER_URL"`
	ExplorerTimeout time.Duration `envconfig:"EXPLORER_TIMEOUT"`
	Zone            string        `envconfig:"ZONE"`
	Account         *uint32       `envconfig:"ACCOUNT"`
	RecordFile      string        `envconfig:"WALLET_FILE"`
	Journal         *bool         `envconfig:"JOURNAL"`
	LogLevel        string        `envconfig:"LOG_LEVEL"`
	LogFile         string        `envconfig:"LOG_FILE"`
	LogJSON         *bool         `envconfig:"LOG_JSON"`
}

// ReadEnv reads QUAIWALLET_* variables.
func ReadEnv() (*Env, error) {
	var env Env
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}
	return &env, nil
}

// ApplyEnv overrides cfg with every variable that was set. Network and
// datadir are resolved earlier by Load.
func ApplyEnv(cfg *Config, env *Env) {
	if env.RPCURL != "" {
		cfg.RPC.URL = env.RPCURL
	}
	if env.RPCTimeout != 0 {
		cfg.RPC.Timeout = env.RPCTimeout
	}
	if env.RPCNamespace != "" {
		cfg.RPC.Namespace = env.RPCNamespace
	}
	if env.RPCPathing != nil {
		cfg.RPC.Pathing = *env.RPCPathing
	}
	if env.ExplorerURL != "" {
		cfg.Explorer.URL = env.ExplorerURL
	}
	if env.ExplorerTimeout != 0 {
		cfg.Explorer.Timeout = env.ExplorerTimeout
	}
	if env.Zone != "" {
		cfg.Wallet.Zone = env.Zone
	}
	if env.Account != nil {
		cfg.Wallet.Account = *env.Account
	}
	if env.RecordFile != "" {
		cfg.Wallet.RecordFile = env.RecordFile
	}
	if env.Journal != nil {
		cfg.Wallet.Journal = *env.Journal
	}
	if env.LogLevel != "" {
		cfg.Log.Level = env.LogLevel
	}
	if env.LogFile != "" {
		cfg.Log.File = env.LogFile
	}
	if env.LogJSON != nil {
		cfg.Log.JSON = *env.LogJSON
	}
}
