package config

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// LoadFile loads configuration from a .conf file.
// Format: key = value (one per line, # for comments)
func LoadFile(path string) (map[string]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[string]string), nil
		}
		return nil, err
	}
	defer file.Close()

	values := make(map[string]string)
	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("line %d: invalid format (expected key = value)", lineNum)
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		if len(value) >= 2 {
			if (value[0] == '"' && value[len(value)-1] == '"') ||
				(value[0] == '\'' && value[len(value)-1] == '\'') {
				value = value[1 : len(value)-1]
			}
		}

		values[key] = value
	}

	return values, scanner.Err()
}

// ApplyFileConfig applies file configuration to a Config struct.
func ApplyFileConfig(cfg *Config, values map[string]string) error {
	for key, value := range values {
		if err := setConfigValue(cfg, key, value); err != nil {
			return fmt.Errorf("config key %q: %w", key, err)
		}
	}
	return nil
}

// setConfigValue sets a config value by key. Network and datadir are
// chosen before the file is found and are ignored here.
func setConfigValue(cfg *Config, key, value string) error {
	switch key {
	// RPC
	case "rpc.url":
		cfg.RPC.URL = value
	case "rpc.timeout":
		d, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		cfg.RPC.Timeout = d
	case "rpc.namespace":
		cfg.RPC.Namespace = value
	case "rpc.pathing":
		cfg.RPC.Pathing = parseBool(value)

	// Explorer
	case "explorer.url":
		cfg.Explorer.URL = value
	case "explorer.timeout":
		d, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		cfg.Explorer.Timeout = d

	// Wallet
	case "wallet.zone":
		cfg.Wallet.Zone = value
	case "wallet.account":
		n, err := strconv.ParseUint(value, 10, 31)
		if err != nil {
			return err
		}
		cfg.Wallet.Account = uint32(n)
	case "wallet.file":
		cfg.Wallet.RecordFile = value
	case "wallet.journal":
		cfg.Wallet.Journal = parseBool(value)

	// Logging
	case "log.level":
		cfg.Log.Level = value
	case "log.file":
		cfg.Log.File = value
	case "log.json":
		cfg.Log.JSON = parseBool(value)

	default:
		// Unknown keys are ignored
	}
	return nil
}

// parseBool parses a boolean value.
func parseBool(s string) bool {
	s = strings.ToLower(s)
	return s == "true" || s == "1" || s == "yes" || s == "on"
}

// WriteDefaultConfig writes a commented default configuration file.
func WriteDefaultConfig(path string, cfg *Config) error {
	content := `# Quai wallet configuration
#
# The encrypted seed record is NOT stored here; it lives in
# <datadir>/<network>/.env and is created by the setup wizard.

# ============================================================================
# Node RPC
# ============================================================================

rpc.url = ` + cfg.RPC.URL + `
rpc.timeout = ` + cfg.RPC.Timeout.String() + `
# Method prefix: quai or eth
rpc.namespace = ` + cfg.RPC.Namespace + `
# Append the zone name to rpc.url (public endpoints need this)
rpc.pathing = ` + strconv.FormatBool(cfg.RPC.Pathing) + `

# ============================================================================
# Block explorer
# ============================================================================

explorer.url = ` + cfg.Explorer.URL + `
explorer.timeout = ` + cfg.Explorer.Timeout.String() + `

# ============================================================================
# Wallet
# ============================================================================

# Zone addresses are derived in: cyprus1..3, paxos1..3, hydra1..3
wallet.zone = ` + cfg.Wallet.Zone + `
wallet.account = ` + strconv.FormatUint(uint64(cfg.Wallet.Account), 10) + `
# Keep a local journal of sent transactions
wallet.journal = ` + strconv.FormatBool(cfg.Wallet.Journal) + `

# ============================================================================
# Logging
# ============================================================================

log.level = ` + cfg.Log.Level + `
# log.file =
log.json = false
`
	return os.WriteFile(path, []byte(content), 0o600)
}

// EnsureDataDirs creates the data directory structure and a default config
// file if they don't already exist. Safe to call on every startup.
func EnsureDataDirs(cfg *Config) error {
	for _, dir := range []string{cfg.DataDir, cfg.NetworkDir()} {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}

	configPath := cfg.ConfigFile()
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := WriteDefaultConfig(configPath, cfg); err != nil {
			return fmt.Errorf("writing config file: %w", err)
		}
	}
	return nil
}
