package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ---------------------------------------------------------------------------
// Configuration structs
// ---------------------------------------------------------------------------

// Config is the top-level configuration for the quantra trading client.
type Config struct {
	Storage   Storage         `yaml:"storage"`
	Server    Server          `yaml:"server"`
	Alpaca    Alpaca          `yaml:"alpaca"`
	Logging   Logging         `yaml:"logging"`
	Trading   TradingConfig   `yaml:"trading"`
	Strategy  StrategyConfig  `yaml:"strategy"`
	Reconcile ReconcileConfig `yaml:"reconcile"`
	Cleanup   CleanupConfig   `yaml:"cleanup"`
}

// Storage holds paths for data persistence.
type Storage struct {
	DataDir    string `yaml:"data_dir"`
	SQLitePath string `yaml:"sqlite_path"`
}

// Server holds network listener configuration.
type Server struct {
	Host     string `yaml:"host"`
	GRPCPort int    `yaml:"grpc_port"`
	// HTTPPort enables the REST API when non-zero.
	HTTPPort int `yaml:"http_port"`
}

// Alpaca holds credentials and endpoints for the Alpaca broker API.
type Alpaca struct {
	APIKey    string `yaml:"api_key"`
	APISecret string `yaml:"api_secret"`
	BaseURL   string `yaml:"base_url"`
	DataURL   string `yaml:"data_url"`
	// Feed selects the market data feed ("iex" or "sip").
	Feed string `yaml:"feed"`
}

// Logging configures the application logger.
type Logging struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// TradingConfig defines execution parameters for the bracket engine.
type TradingConfig struct {
	Symbol               string   `yaml:"symbol"`
	Quantity             int      `yaml:"quantity"`
	TickSize             float64  `yaml:"tick_size"`
	MaxDailyTrades       int      `yaml:"max_daily_trades"`
	MinTradeSpacing      Duration `yaml:"min_trade_spacing"`
	SubmitTimeout        Duration `yaml:"submit_timeout"`
	PaperMode            bool     `yaml:"paper_mode"`
	DegradeAfterFailures int      `yaml:"degrade_after_failures"`
}

// StrategyConfig selects and parameterizes the signal strategy.
type StrategyConfig struct {
	Name      string `yaml:"name"`
	Lookback  int    `yaml:"lookback"`
	StopTicks int    `yaml:"stop_ticks"`
	TakeTicks int    `yaml:"take_ticks"`
}

// ReconcileConfig controls the position reconciliation loop.
type ReconcileConfig struct {
	Interval Duration `yaml:"interval"`
	// GraceCycles is how many consecutive cycles a ghost position (local
	// open, venue flat) is tolerated while the local protective orders are
	// still confirmed working at the venue.
	GraceCycles int `yaml:"grace_cycles"`
	// OpeningTimeout bounds how long a group may sit in OPENING before the
	// cleanup loop rolls it back.
	OpeningTimeout Duration `yaml:"opening_timeout"`
}

// CleanupConfig controls the orphan-order cleanup loop.
type CleanupConfig struct {
	Interval       Duration `yaml:"interval"`
	CancelAttempts int      `yaml:"cancel_attempts"`
	CancelBackoff  Duration `yaml:"cancel_backoff"`
}

// Duration wraps time.Duration so YAML values like "10s" parse directly.
type Duration time.Duration

// UnmarshalYAML parses a duration string ("500ms", "10s", "2m").
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("parsing duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// ---------------------------------------------------------------------------
// Loading
// ---------------------------------------------------------------------------

// Load reads the YAML configuration file at the given path, parses it into a
// Config struct, applies defaults for unset loop parameters, and then applies
// environment variable overrides.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	applyDefaults(cfg)
	applyEnvOverrides(cfg)

	return cfg, nil
}

// applyDefaults fills loop and engine parameters that are mandatory for safe
// operation but commonly omitted from config files.
func applyDefaults(cfg *Config) {
	if cfg.Trading.Quantity == 0 {
		cfg.Trading.Quantity = 1
	}
	if cfg.Trading.SubmitTimeout == 0 {
		cfg.Trading.SubmitTimeout = Duration(10 * time.Second)
	}
	if cfg.Trading.DegradeAfterFailures == 0 {
		cfg.Trading.DegradeAfterFailures = 3
	}
	if cfg.Alpaca.Feed == "" {
		cfg.Alpaca.Feed = "iex"
	}
	if cfg.Strategy.Name == "" {
		cfg.Strategy.Name = "breakout"
	}
	if cfg.Strategy.Lookback == 0 {
		cfg.Strategy.Lookback = 20
	}
	if cfg.Strategy.StopTicks == 0 {
		cfg.Strategy.StopTicks = 20
	}
	if cfg.Strategy.TakeTicks == 0 {
		cfg.Strategy.TakeTicks = 40
	}
	if cfg.Reconcile.Interval == 0 {
		cfg.Reconcile.Interval = Duration(10 * time.Second)
	}
	if cfg.Reconcile.GraceCycles == 0 {
		cfg.Reconcile.GraceCycles = 2
	}
	if cfg.Reconcile.OpeningTimeout == 0 {
		cfg.Reconcile.OpeningTimeout = Duration(30 * time.Second)
	}
	if cfg.Cleanup.Interval == 0 {
		cfg.Cleanup.Interval = Duration(5 * time.Second)
	}
	if cfg.Cleanup.CancelAttempts == 0 {
		cfg.Cleanup.CancelAttempts = 3
	}
	if cfg.Cleanup.CancelBackoff == 0 {
		cfg.Cleanup.CancelBackoff = Duration(500 * time.Millisecond)
	}
}

// applyEnvOverrides checks well-known environment variables and overrides the
// corresponding configuration fields when they are set.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("DATA_DIR"); v != "" {
		cfg.Storage.DataDir = v
	}

	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Storage.SQLitePath = v
	}

	if v := os.Getenv("ALPACA_API_KEY"); v != "" {
		cfg.Alpaca.APIKey = v
	}

	if v := os.Getenv("ALPACA_API_SECRET"); v != "" {
		cfg.Alpaca.APISecret = v
	}

	if v := os.Getenv("ALPACA_BASE_URL"); v != "" {
		cfg.Alpaca.BaseURL = v
	}

	if v := os.Getenv("ALPACA_DATA_URL"); v != "" {
		cfg.Alpaca.DataURL = v
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}

	if v := os.Getenv("QUANTRA_SYMBOL"); v != "" {
		cfg.Trading.Symbol = v
	}

	// Canonical Alpaca env vars take highest priority, matching the SDK.
	if v := os.Getenv("APCA_API_KEY_ID"); v != "" {
		cfg.Alpaca.APIKey = v
	}
	if v := os.Getenv("APCA_API_SECRET_KEY"); v != "" {
		cfg.Alpaca.APISecret = v
	}
}
