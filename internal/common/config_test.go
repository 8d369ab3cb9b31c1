package common

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestConfig_Defaults(t *testing.T) {
	cfg := NewDefaultConfig()
	if cfg.Server.Port != 8000 {
		t.Errorf("Server.Port default = %d, want %d", cfg.Server.Port, 8000)
	}
	if got := cfg.Clients.AlphaVantage.GetMinInterval(); got != 30*time.Second {
		t.Errorf("AlphaVantage.GetMinInterval() = %v, want 30s", got)
	}
	if got := cfg.Clients.AlphaVantage.GetCacheWindow(); got != 30*time.Second {
		t.Errorf("AlphaVantage.GetCacheWindow() = %v, want 30s", got)
	}
	if cfg.Valuation.BondReturnMultiplier != 1.02 {
		t.Errorf("BondReturnMultiplier = %v, want 1.02", cfg.Valuation.BondReturnMultiplier)
	}
	if cfg.Valuation.FundReturnMultiplier != 1.05 {
		t.Errorf("FundReturnMultiplier = %v, want 1.05", cfg.Valuation.FundReturnMultiplier)
	}
}

func TestConfig_PortEnvOverride(t *testing.T) {
	t.Setenv("KB_PORT", "9090")

	cfg := NewDefaultConfig()
	applyEnvOverrides(cfg)

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d after env override, want %d", cfg.Server.Port, 9090)
	}
}

func TestConfig_APIKeyEnvOverride(t *testing.T) {
	t.Setenv("ALPHAVANTAGE_API_KEY", "av-key")
	t.Setenv("GEMINI_API_KEY", "gm-key")

	cfg := NewDefaultConfig()
	applyEnvOverrides(cfg)

	if cfg.Clients.AlphaVantage.APIKey != "av-key" {
		t.Errorf("AlphaVantage.APIKey = %q, want %q", cfg.Clients.AlphaVantage.APIKey, "av-key")
	}
	if cfg.Clients.Gemini.APIKey != "gm-key" {
		t.Errorf("Gemini.APIKey = %q, want %q", cfg.Clients.Gemini.APIKey, "gm-key")
	}
}

func TestLoadConfig_FileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[server]
port = 8123

[valuation]
bond_return_multiplier = 1.03

[clients.alphavantage]
min_interval = "45s"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Server.Port != 8123 {
		t.Errorf("Server.Port = %d, want 8123", cfg.Server.Port)
	}
	if cfg.Valuation.BondReturnMultiplier != 1.03 {
		t.Errorf("BondReturnMultiplier = %v, want 1.03", cfg.Valuation.BondReturnMultiplier)
	}
	if got := cfg.Clients.AlphaVantage.GetMinInterval(); got != 45*time.Second {
		t.Errorf("GetMinInterval() = %v, want 45s", got)
	}
	// Untouched fields keep their defaults
	if cfg.Valuation.FundReturnMultiplier != 1.05 {
		t.Errorf("FundReturnMultiplier = %v, want default 1.05", cfg.Valuation.FundReturnMultiplier)
	}
}

func TestLoadConfig_MissingFileIsSkipped(t *testing.T) {
	cfg, err := LoadConfig("does/not/exist.toml")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Server.Port != 8000 {
		t.Errorf("Server.Port = %d, want default 8000", cfg.Server.Port)
	}
}

func TestConfig_IsProduction(t *testing.T) {
	cfg := NewDefaultConfig()
	if cfg.IsProduction() {
		t.Error("development config reported as production")
	}
	cfg.Environment = "Production"
	if !cfg.IsProduction() {
		t.Error("production config not detected")
	}
}
