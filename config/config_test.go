package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/urfave/cli"
)

func TestDefaults(t *testing.T) {
	main := DefaultMainnet()
	if err := Validate(main); err != nil {
		t.Fatalf("mainnet defaults invalid: %v", err)
	}
	if main.RPC.URL != "https://rpc.quai.network" || main.Explorer.URL != "https://quaiscan.io/api" {
		t.Errorf("mainnet URLs = %s, %s", main.RPC.URL, main.Explorer.URL)
	}
	if main.Wallet.Zone != "cyprus1" || main.Log.Level != "warn" {
		t.Errorf("mainnet wallet/log = %+v %+v", main.Wallet, main.Log)
	}

	test := Default(Testnet)
	if err := Validate(test); err != nil {
		t.Fatalf("testnet defaults invalid: %v", err)
	}
	if test.Network != Testnet || test.RPC.URL == main.RPC.URL {
		t.Errorf("testnet defaults = %+v", test.RPC)
	}
}

func TestPaths(t *testing.T) {
	cfg := DefaultMainnet()
	cfg.DataDir = "/data"

	if got := cfg.RecordPath(); got != filepath.Join("/data", "mainnet", ".env") {
		t.Errorf("RecordPath() = %s", got)
	}
	if got := cfg.JournalDir(); got != filepath.Join("/data", "mainnet", "journal") {
		t.Errorf("JournalDir() = %s", got)
	}
	cfg.Wallet.RecordFile = "/elsewhere/.env"
	if got := cfg.RecordPath(); got != "/elsewhere/.env" {
		t.Errorf("RecordPath() override = %s", got)
	}
}

func TestRPCEndpoint(t *testing.T) {
	cfg := DefaultMainnet()
	cfg.Wallet.Zone = "paxos2"
	if got := cfg.RPCEndpoint(); got != "https://rpc.quai.network/paxos2" {
		t.Errorf("RPCEndpoint() = %s", got)
	}
	cfg.RPC.Pathing = false
	cfg.RPC.URL = "http://localhost:9001/"
	if got := cfg.RPCEndpoint(); got != "http://localhost:9001" {
		t.Errorf("RPCEndpoint() without pathing = %s", got)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"zone by hex", func(c *Config) { c.Wallet.Zone = "0x21" }, false},
		{"bad network", func(c *Config) { c.Network = "devnet" }, true},
		{"empty datadir", func(c *Config) { c.DataDir = "" }, true},
		{"bad rpc url", func(c *Config) { c.RPC.URL = "rpc.quai.network" }, true},
		{"bad explorer url", func(c *Config) { c.Explorer.URL = "ftp://x" }, true},
		{"negative timeout", func(c *Config) { c.RPC.Timeout = -time.Second }, true},
		{"bad namespace", func(c *Config) { c.RPC.Namespace = "quai_" }, true},
		{"bad zone", func(c *Config) { c.Wallet.Zone = "atlantis" }, true},
		{"bad log level", func(c *Config) { c.Log.Level = "trace" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultMainnet()
			cfg.DataDir = t.TempDir()
			tt.mutate(cfg)
			err := Validate(cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}

	cfg := DefaultMainnet()
	cfg.Wallet.Zone = "0x21"
	if err := Validate(cfg); err != nil {
		t.Fatal(err)
	}
	if cfg.Wallet.Zone != "hydra2" {
		t.Errorf("zone normalized to %q, want hydra2", cfg.Wallet.Zone)
	}
}

func TestApplyFileConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quaiwallet.conf")
	content := `# comment
rpc.url = "http://127.0.0.1:9001"
rpc.timeout = 5s
rpc.pathing = false
wallet.zone = hydra1
wallet.account = 3
wallet.journal = no
log.level = debug
unknown.key = ignored
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	values, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}

	cfg := DefaultMainnet()
	if err := ApplyFileConfig(cfg, values); err != nil {
		t.Fatalf("ApplyFileConfig() error: %v", err)
	}
	if cfg.RPC.URL != "http://127.0.0.1:9001" || cfg.RPC.Timeout != 5*time.Second || cfg.RPC.Pathing {
		t.Errorf("rpc = %+v", cfg.RPC)
	}
	if cfg.Wallet.Zone != "hydra1" || cfg.Wallet.Account != 3 || cfg.Wallet.Journal {
		t.Errorf("wallet = %+v", cfg.Wallet)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("log level = %s", cfg.Log.Level)
	}
}

func TestApplyFileConfig_BadValue(t *testing.T) {
	cfg := DefaultMainnet()
	if err := ApplyFileConfig(cfg, map[string]string{"rpc.timeout": "soon"}); err == nil {
		t.Error("bad duration should fail")
	}
	if err := ApplyFileConfig(cfg, map[string]string{"wallet.account": "-1"}); err == nil {
		t.Error("negative account should fail")
	}
}

func TestLoadFile_Missing(t *testing.T) {
	values, err := LoadFile(filepath.Join(t.TempDir(), "none.conf"))
	if err != nil || len(values) != 0 {
		t.Errorf("LoadFile() = %v, %v", values, err)
	}
}

func TestLoadFile_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.conf")
	os.WriteFile(path, []byte("just words\n"), 0o600)
	if _, err := LoadFile(path); err == nil {
		t.Error("line without = should fail")
	}
}

// runLoad runs a cli app with the global flags and returns the loaded config.
func runLoad(t *testing.T, args ...string) (*Config, error) {
	t.Helper()
	var (
		cfg     *Config
		loadErr error
	)
	app := cli.NewApp()
	app.Flags = Flags()
	app.Action = func(c *cli.Context) error {
		cfg, loadErr = Load(c)
		return nil
	}
	app.Commands = []cli.Command{{
		Name: "balance",
		Action: func(c *cli.Context) error {
			cfg, loadErr = Load(c)
			return nil
		},
	}}
	if err := app.Run(append([]string{"quaiwallet"}, args...)); err != nil {
		t.Fatalf("app.Run() error: %v", err)
	}
	return cfg, loadErr
}

func TestLoad_Precedence(t *testing.T) {
	dir := t.TempDir()
	conf := filepath.Join(dir, "quaiwallet.conf")
	if err := os.WriteFile(conf, []byte("wallet.zone = paxos1\nlog.level = info\nrpc.namespace = eth\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("QUAIWALLET_LOG_LEVEL", "error")
	t.Setenv("QUAIWALLET_ZONE", "paxos3")

	cfg, err := runLoad(t, "--datadir", dir, "--testnet", "--zone", "hydra3", "balance")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Network != Testnet {
		t.Errorf("network = %s, want testnet", cfg.Network)
	}
	if cfg.Wallet.Zone != "hydra3" {
		t.Errorf("zone = %s, want flag value hydra3", cfg.Wallet.Zone)
	}
	if cfg.Log.Level != "error" {
		t.Errorf("log level = %s, want env value error", cfg.Log.Level)
	}
	if cfg.RPC.Namespace != "eth" {
		t.Errorf("namespace = %s, want file value eth", cfg.RPC.Namespace)
	}
	if _, err := os.Stat(filepath.Join(dir, "testnet")); err != nil {
		t.Errorf("network dir not created: %v", err)
	}
}

func TestLoad_WritesDefaultConfig(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "fresh")
	cfg, err := runLoad(t, "--datadir", dir)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Network != Mainnet {
		t.Errorf("network = %s, want mainnet", cfg.Network)
	}
	data, err := os.ReadFile(filepath.Join(dir, "quaiwallet.conf"))
	if err != nil {
		t.Fatalf("default config not written: %v", err)
	}
	if !strings.Contains(string(data), "wallet.zone = cyprus1") {
		t.Errorf("default config missing zone:\n%s", data)
	}

	// The written file must load back to the same settings.
	again, err := runLoad(t, "--datadir", dir)
	if err != nil {
		t.Fatalf("reload error: %v", err)
	}
	if again.RPC != cfg.RPC || again.Wallet != cfg.Wallet || again.Explorer != cfg.Explorer {
		t.Errorf("reloaded config differs: %+v vs %+v", again, cfg)
	}
}

func TestLoad_EnvBooleans(t *testing.T) {
	t.Setenv("QUAIWALLET_JOURNAL", "false")
	t.Setenv("QUAIWALLET_RPC_PATHING", "false")
	t.Setenv("QUAIWALLET_ACCOUNT", "2")

	cfg, err := runLoad(t, "--datadir", t.TempDir())
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Wallet.Journal || cfg.RPC.Pathing || cfg.Wallet.Account != 2 {
		t.Errorf("env overrides not applied: %+v %+v", cfg.Wallet, cfg.RPC)
	}
}

func TestLoad_BadNetwork(t *testing.T) {
	if _, err := runLoad(t, "--datadir", t.TempDir(), "--network", "devnet"); err == nil {
		t.Error("Load() should reject an unknown network")
	}
}
