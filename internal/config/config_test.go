package config

import (
	"os"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	// Create a temporary YAML config file.
	yamlContent := []byte(`
storage:
  data_dir: "/tmp/quantra/data"
  sqlite_path: "/tmp/quantra/quantra.db"
server:
  host: "0.0.0.0"
  grpc_port: 50061
alpaca:
  api_key: "test-key"
  api_secret: "test-secret"
  base_url: "https://paper-api.alpaca.markets"
  data_url: "https://data.alpaca.markets"
logging:
  level: "info"
  format: "json"
trading:
  symbol: "SPY"
  quantity: 1
  tick_size: 0.01
  max_daily_trades: 10
  min_trade_spacing: "60s"
  submit_timeout: "5s"
  paper_mode: true
reconcile:
  interval: "10s"
  grace_cycles: 2
cleanup:
  interval: "5s"
  cancel_attempts: 3
  cancel_backoff: "500ms"
`)

	tmpFile, err := os.CreateTemp("", "quantra-config-*.yaml")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	defer os.Remove(tmpFile.Name())

	if _, err := tmpFile.Write(yamlContent); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}
	if err := tmpFile.Close(); err != nil {
		t.Fatalf("failed to close temp file: %v", err)
	}

	// Clear any environment overrides that might interfere.
	os.Unsetenv("ALPACA_API_KEY")
	os.Unsetenv("ALPACA_API_SECRET")
	os.Unsetenv("APCA_API_KEY_ID")
	os.Unsetenv("APCA_API_SECRET_KEY")
	os.Unsetenv("DATA_DIR")
	os.Unsetenv("QUANTRA_SYMBOL")

	cfg, err := Load(tmpFile.Name())
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	// -- Storage --
	if cfg.Storage.DataDir != "/tmp/quantra/data" {
		t.Errorf("Storage.DataDir = %q, want %q", cfg.Storage.DataDir, "/tmp/quantra/data")
	}
	if cfg.Storage.SQLitePath != "/tmp/quantra/quantra.db" {
		t.Errorf("Storage.SQLitePath = %q, want %q", cfg.Storage.SQLitePath, "/tmp/quantra/quantra.db")
	}

	// -- Server --
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Server.Host = %q, want %q", cfg.Server.Host, "0.0.0.0")
	}
	if cfg.Server.GRPCPort != 50061 {
		t.Errorf("Server.GRPCPort = %d, want %d", cfg.Server.GRPCPort, 50061)
	}

	// -- Alpaca --
	if cfg.Alpaca.APIKey != "test-key" {
		t.Errorf("Alpaca.APIKey = %q, want %q", cfg.Alpaca.APIKey, "test-key")
	}
	if cfg.Alpaca.APISecret != "test-secret" {
		t.Errorf("Alpaca.APISecret = %q, want %q", cfg.Alpaca.APISecret, "test-secret")
	}
	if cfg.Alpaca.BaseURL != "https://paper-api.alpaca.markets" {
		t.Errorf("Alpaca.BaseURL = %q, want %q", cfg.Alpaca.BaseURL, "https://paper-api.alpaca.markets")
	}

	// -- Trading --
	if cfg.Trading.Symbol != "SPY" {
		t.Errorf("Trading.Symbol = %q, want %q", cfg.Trading.Symbol, "SPY")
	}
	if cfg.Trading.TickSize != 0.01 {
		t.Errorf("Trading.TickSize = %f, want %f", cfg.Trading.TickSize, 0.01)
	}
	if cfg.Trading.MinTradeSpacing.Std() != 60*time.Second {
		t.Errorf("Trading.MinTradeSpacing = %v, want %v", cfg.Trading.MinTradeSpacing.Std(), 60*time.Second)
	}
	if cfg.Trading.SubmitTimeout.Std() != 5*time.Second {
		t.Errorf("Trading.SubmitTimeout = %v, want %v", cfg.Trading.SubmitTimeout.Std(), 5*time.Second)
	}
	if !cfg.Trading.PaperMode {
		t.Error("Trading.PaperMode = false, want true")
	}

	// -- Loops --
	if cfg.Reconcile.Interval.Std() != 10*time.Second {
		t.Errorf("Reconcile.Interval = %v, want %v", cfg.Reconcile.Interval.Std(), 10*time.Second)
	}
	if cfg.Reconcile.GraceCycles != 2 {
		t.Errorf("Reconcile.GraceCycles = %d, want %d", cfg.Reconcile.GraceCycles, 2)
	}
	if cfg.Cleanup.CancelAttempts != 3 {
		t.Errorf("Cleanup.CancelAttempts = %d, want %d", cfg.Cleanup.CancelAttempts, 3)
	}
	if cfg.Cleanup.CancelBackoff.Std() != 500*time.Millisecond {
		t.Errorf("Cleanup.CancelBackoff = %v, want %v", cfg.Cleanup.CancelBackoff.Std(), 500*time.Millisecond)
	}
}

func TestLoadAppliesLoopDefaults(t *testing.T) {
	yamlContent := []byte(`
trading:
  symbol: "WDO"
`)

	tmpFile, err := os.CreateTemp("", "quantra-config-defaults-*.yaml")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	defer os.Remove(tmpFile.Name())

	if _, err := tmpFile.Write(yamlContent); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}
	tmpFile.Close()

	cfg, err := Load(tmpFile.Name())
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if cfg.Trading.Quantity != 1 {
		t.Errorf("default Trading.Quantity = %d, want 1", cfg.Trading.Quantity)
	}
	if cfg.Reconcile.Interval.Std() != 10*time.Second {
		t.Errorf("default Reconcile.Interval = %v, want 10s", cfg.Reconcile.Interval.Std())
	}
	if cfg.Reconcile.OpeningTimeout.Std() != 30*time.Second {
		t.Errorf("default Reconcile.OpeningTimeout = %v, want 30s", cfg.Reconcile.OpeningTimeout.Std())
	}
	if cfg.Cleanup.Interval.Std() != 5*time.Second {
		t.Errorf("default Cleanup.Interval = %v, want 5s", cfg.Cleanup.Interval.Std())
	}
	if cfg.Cleanup.CancelAttempts != 3 {
		t.Errorf("default Cleanup.CancelAttempts = %d, want 3", cfg.Cleanup.CancelAttempts)
	}
	if cfg.Trading.DegradeAfterFailures != 3 {
		t.Errorf("default Trading.DegradeAfterFailures = %d, want 3", cfg.Trading.DegradeAfterFailures)
	}
	if cfg.Strategy.Name != "breakout" {
		t.Errorf("default Strategy.Name = %q, want %q", cfg.Strategy.Name, "breakout")
	}
	if cfg.Strategy.Lookback != 20 {
		t.Errorf("default Strategy.Lookback = %d, want 20", cfg.Strategy.Lookback)
	}
	if cfg.Alpaca.Feed != "iex" {
		t.Errorf("default Alpaca.Feed = %q, want %q", cfg.Alpaca.Feed, "iex")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	yamlContent := []byte(`
alpaca:
  api_key: "yaml-key"
  api_secret: "yaml-secret"
storage:
  data_dir: "/original/data"
`)

	tmpFile, err := os.CreateTemp("", "quantra-config-env-*.yaml")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	defer os.Remove(tmpFile.Name())

	if _, err := tmpFile.Write(yamlContent); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}
	tmpFile.Close()

	// Set environment overrides.
	os.Setenv("ALPACA_API_KEY", "env-key")
	os.Setenv("DATA_DIR", "/env/data")
	os.Unsetenv("APCA_API_KEY_ID")
	os.Unsetenv("APCA_API_SECRET_KEY")
	defer os.Unsetenv("ALPACA_API_KEY")
	defer os.Unsetenv("DATA_DIR")

	cfg, err := Load(tmpFile.Name())
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if cfg.Alpaca.APIKey != "env-key" {
		t.Errorf("Alpaca.APIKey = %q, want %q (env override)", cfg.Alpaca.APIKey, "env-key")
	}
	// api_secret should remain from YAML since no env override was set.
	if cfg.Alpaca.APISecret != "yaml-secret" {
		t.Errorf("Alpaca.APISecret = %q, want %q (from YAML)", cfg.Alpaca.APISecret, "yaml-secret")
	}
	if cfg.Storage.DataDir != "/env/data" {
		t.Errorf("Storage.DataDir = %q, want %q (env override)", cfg.Storage.DataDir, "/env/data")
	}
}
