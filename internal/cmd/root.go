package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	gfconfig "github.com/fulmenhq/gofulmen/config"
	"github.com/fulmenhq/gofulmen/telemetry"

	"github.com/wordlens/wordlens/internal/config"
	"github.com/wordlens/wordlens/internal/observability"
)

const (
	appName   = "wordlens"
	envPrefix = "WORDLENS"
)

var (
	cfgFile string
	verbose bool

	// Version info set by main package
	versionInfo struct {
		Version   string
		Commit    string
		BuildDate string
	}
)

// SetVersionInfo is called by main package to set version information
func SetVersionInfo(version, commit, buildDate string) {
	versionInfo.Version = version
	versionInfo.Commit = commit
	versionInfo.BuildDate = buildDate
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   appName,
	Short: "Reclaim real words from a rejected-word corpus",
	Long: `wordlens maintains a word corpus: it re-checks previously rejected
words against dictionary backends, promotes the ones that turn out to
be real, and folds in newly discovered words.

Use the subcommands to perform specific operations.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Disable global telemetry early to prevent config loading from emitting
	// metrics to stdout. Server mode will initialize proper telemetry later.
	disabledConfig := &telemetry.Config{Enabled: false}
	if sys, err := telemetry.NewSystem(disabledConfig); err == nil {
		telemetry.SetGlobalSystem(sys)
	}

	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default is $XDG_CONFIG_HOME/"+appName+"/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"verbose output (sets log level to debug)")

	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	// API keys commonly live in a local .env during development.
	_ = godotenv.Load() // nolint:errcheck

	observability.InitCLILogger(appName, verbose)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		if appConfigDir := gfconfig.GetAppConfigDir(appName); appConfigDir != "" {
			viper.AddConfigPath(appConfigDir)
		}
		viper.AddConfigPath("./config")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix(envPrefix)
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		if verbose {
			observability.CLILogger.Debug("Using config file", zap.String("path", viper.ConfigFileUsed()))
		}
	} else {
		// A missing config file is fine, defaults and env cover it.
		if verbose {
			if _, ok := err.(viper.ConfigFileNotFoundError); ok {
				observability.CLILogger.Debug("No config file found, using defaults and environment variables")
			} else {
				observability.CLILogger.Warn("Error reading config file", zap.Error(err))
			}
		}
	}

	setDefaults()
}

// setDefaults sets default configuration values
func setDefaults() {
	// Corpus defaults
	viper.SetDefault("corpus.dir", config.DefaultCorpusDir())

	// Run defaults
	viper.SetDefault("run.limit", 100)
	viper.SetDefault("run.batch_size", 50)
	viper.SetDefault("run.workers", 5)
	viper.SetDefault("run.ruleset", "")

	// Dictionary chain defaults
	viper.SetDefault("dict.collegiate_key", "")
	viper.SetDefault("dict.medical_key", "")
	viper.SetDefault("dict.request_delay", "100ms")
	viper.SetDefault("dict.timeout", "30s")
	viper.SetDefault("dict.max_retries", 3)
	viper.SetDefault("dict.daily_budget", 1000)
	viper.SetDefault("dict.cache_ttl", "720h")

	// Discovery defaults
	viper.SetDefault("discovery.wordnik_key", "")
	viper.SetDefault("discovery.lookback_days", 30)
	viper.SetDefault("discovery.mw_feed_url", "")
	viper.SetDefault("discovery.wordnik_url", "")
	viper.SetDefault("discovery.manual_file", "")

	// Store defaults
	viper.SetDefault("store.driver", "libsql")
	viper.SetDefault("store.path", config.DefaultStorePath())
	viper.SetDefault("store.url", "")
	viper.SetDefault("store.auth_token", "")

	// Server defaults
	viper.SetDefault("server.host", "localhost")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", "30s")
	viper.SetDefault("server.write_timeout", "30s")
	viper.SetDefault("server.idle_timeout", "120s")
	viper.SetDefault("server.shutdown_timeout", "10s")

	// Scheduler defaults
	viper.SetDefault("scheduler.enabled", false)
	viper.SetDefault("scheduler.hour", 6)

	// Logging defaults
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.profile", "structured")

	// Metrics defaults
	viper.SetDefault("metrics.enabled", true)
	viper.SetDefault("metrics.port", 9090)

	// Health check defaults
	viper.SetDefault("health.enabled", true)

	// Debug defaults
	viper.SetDefault("debug.enabled", false)
	viper.SetDefault("debug.pprof_enabled", false)
}
