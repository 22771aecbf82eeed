package config

import (
	"time"

	"github.com/Klingon-tech/quai-shadow-wallet/internal/log"
	"github.com/Klingon-tech/quai-shadow-wallet/internal/rpcclient"
)

// DefaultZone is the zone addresses are derived in unless configured.
const DefaultZone = "cyprus1"

// DefaultMainnet returns the default configuration for mainnet.
func DefaultMainnet() *Config {
	return &Config{
		Network: Mainnet,
		DataDir: DefaultDataDir(),
		RPC: RPCConfig{
			URL:       "https://rpc.quai.network",
			Timeout:   30 * time.Second,
			Namespace: rpcclient.DefaultNamespace,
			Pathing:   true,
		},
		Explorer: ExplorerConfig{
			URL:     "https://quaiscan.io/api",
			Timeout: 30 * time.Second,
		},
		Wallet: WalletConfig{
			Zone:    DefaultZone,
			Account: 0,
			Journal: true,
		},
		Log: LogConfig{
			Level: log.DefaultLevel,
		},
	}
}

// DefaultTestnet returns the default configuration for the Orchard testnet.
func DefaultTestnet() *Config {
	cfg := DefaultMainnet()
	cfg.Network = Testnet
	cfg.RPC.URL = "https://orchard.rpc.quai.network"
	cfg.Explorer.URL = "https://orchard.quaiscan.io/api"
	return cfg
}

// Default returns the default config for the given network.
func Default(network NetworkType) *Config {
	if network == Testnet {
		return DefaultTestnet()
	}
	return DefaultMainnet()
}
