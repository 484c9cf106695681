package config

import "time"

// Config represents the complete application configuration. Values come
// from the config file, environment variables, and flag overrides, with
// defaults applied by the CLI layer.
type Config struct {
	Corpus    CorpusConfig    `mapstructure:"corpus"`
	Run       RunConfig       `mapstructure:"run"`
	Dict      DictConfig      `mapstructure:"dict"`
	Discovery DiscoveryConfig `mapstructure:"discovery"`
	Store     StoreConfig     `mapstructure:"store"`
	Server    ServerConfig    `mapstructure:"server"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
	Health    HealthConfig    `mapstructure:"health"`
	Debug     DebugConfig     `mapstructure:"debug"`
}

// CorpusConfig locates the corpus artifacts on disk.
type CorpusConfig struct {
	// Dir holds the word lists, metadata, promotion log, progress
	// checkpoint, and changelog.
	Dir string `mapstructure:"dir"`
}

// RunConfig tunes reclamation runs.
type RunConfig struct {
	Limit     int `mapstructure:"limit"`
	BatchSize int `mapstructure:"batch_size"`
	Workers   int `mapstructure:"workers"`

	// Ruleset optionally points at a YAML heuristics override file.
	Ruleset string `mapstructure:"ruleset"`
}

// DictConfig configures the dictionary lookup chain.
type DictConfig struct {
	CollegiateKey string        `mapstructure:"collegiate_key"`
	MedicalKey    string        `mapstructure:"medical_key"`
	RequestDelay  time.Duration `mapstructure:"request_delay"`
	Timeout       time.Duration `mapstructure:"timeout"`
	MaxRetries    int           `mapstructure:"max_retries"`
	DailyBudget   int           `mapstructure:"daily_budget"`
	CacheTTL      time.Duration `mapstructure:"cache_ttl"`
}

// DiscoveryConfig configures new-word discovery sources.
type DiscoveryConfig struct {
	WordnikKey   string `mapstructure:"wordnik_key"`
	LookbackDays int    `mapstructure:"lookback_days"`
	MWFeedURL    string `mapstructure:"mw_feed_url"`
	WordnikURL   string `mapstructure:"wordnik_url"`

	// ManualFile is a plain word list curators maintain by hand.
	ManualFile string `mapstructure:"manual_file"`
}

// StoreConfig contains database configuration for libsql/Turso.
type StoreConfig struct {
	Driver    string `mapstructure:"driver"`
	Path      string `mapstructure:"path"`
	URL       string `mapstructure:"url"`
	AuthToken string `mapstructure:"auth_token"`
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// SchedulerConfig controls the serve-mode daily pipeline trigger.
type SchedulerConfig struct {
	Enabled bool `mapstructure:"enabled"`

	// Hour is the UTC hour of day the daily run fires at.
	Hour int `mapstructure:"hour"`
}

// LoggingConfig contains logging configuration
// Supports progressive logging profiles per Fulmen Forge Workhorse Standard:
// - SIMPLE: Console output only, minimal configuration (CLI tools)
// - STRUCTURED: Structured sinks, correlation IDs (API services)
type LoggingConfig struct {
	// Level controls the minimum log level
	// Valid values: trace, debug, info, warn, error
	Level string `mapstructure:"level"`

	// Profile selects the logging complexity level
	// Valid values: SIMPLE, STRUCTURED, ENTERPRISE
	Profile string `mapstructure:"profile"`
}

// MetricsConfig contains Prometheus metrics configuration
type MetricsConfig struct {
	// Enabled controls whether metrics are exposed
	Enabled bool `mapstructure:"enabled"`

	// Port is the dedicated metrics endpoint port (Prometheus format)
	// Metrics are also available at the main HTTP port in JSON format
	Port int `mapstructure:"port"`
}

// HealthConfig contains health check configuration
type HealthConfig struct {
	// Enabled controls whether health endpoints are exposed
	Enabled bool `mapstructure:"enabled"`
}

// DebugConfig contains debug and profiling configuration
type DebugConfig struct {
	// Enabled controls whether debug mode is active
	Enabled bool `mapstructure:"enabled"`

	// PprofEnabled controls whether pprof endpoints are exposed
	// WARNING: Only enable in development/staging environments
	PprofEnabled bool `mapstructure:"pprof_enabled"`
}
