package config

import (
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/sells-group/medclean-cli/internal/termcache"
)

// Config holds the full application configuration.
type Config struct {
	Cache      CacheConfig      `yaml:"cache" mapstructure:"cache"`
	Anthropic  AnthropicConfig  `yaml:"anthropic" mapstructure:"anthropic"`
	Processing ProcessingConfig `yaml:"processing" mapstructure:"processing"`
	Log        LogConfig        `yaml:"log" mapstructure:"log"`
}

// CacheConfig configures the term cache backend.
type CacheConfig struct {
	Driver      string               `yaml:"driver" mapstructure:"driver"`
	Path        string               `yaml:"path" mapstructure:"path"`
	DatabaseURL string               `yaml:"database_url" mapstructure:"database_url"`
	Pool        termcache.PoolConfig `yaml:"pool" mapstructure:"pool"`
}

// AnthropicConfig holds Anthropic API settings for term enrichment.
type AnthropicConfig struct {
	Key           string  `yaml:"key" mapstructure:"key"`
	Model         string  `yaml:"model" mapstructure:"model"`
	MaxTokens     int     `yaml:"max_tokens" mapstructure:"max_tokens"`
	RatePerSecond float64 `yaml:"rate_per_second" mapstructure:"rate_per_second"`
}

// ProcessingConfig configures column processing behavior.
type ProcessingConfig struct {
	RowLimit         int  `yaml:"row_limit" mapstructure:"row_limit"`
	SampleSize       int  `yaml:"sample_size" mapstructure:"sample_size"`
	BatchSize        int  `yaml:"batch_size" mapstructure:"batch_size"`
	BatchDelayMs     int  `yaml:"batch_delay_ms" mapstructure:"batch_delay_ms"`
	EnableEnrichment bool `yaml:"enable_enrichment" mapstructure:"enable_enrichment"`
}

// BatchDelay returns the configured inter-batch pause.
func (p ProcessingConfig) BatchDelay() time.Duration {
	return time.Duration(p.BatchDelayMs) * time.Millisecond
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Validate checks that the settings a command scope depends on are present.
// Scope "clean" covers dataset processing; "enrich" additionally requires
// API credentials.
func (c *Config) Validate(scope string) error {
	var missing []string

	switch c.Cache.Driver {
	case "sqlite":
		if c.Cache.Path == "" {
			missing = append(missing, "cache.path is required for the sqlite driver")
		}
	case "postgres":
		if c.Cache.DatabaseURL == "" {
			missing = append(missing, "cache.database_url is required for the postgres driver")
		}
	default:
		missing = append(missing, "cache.driver must be sqlite or postgres")
	}

	if scope == "enrich" || (scope == "clean" && c.Processing.EnableEnrichment) {
		if c.Anthropic.Key == "" {
			missing = append(missing, "anthropic.key is required for enrichment")
		}
	}

	if len(missing) > 0 {
		return eris.New("config: " + strings.Join(missing, "; "))
	}
	return nil
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("MEDCLEAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("cache.driver", "sqlite")
	v.SetDefault("cache.path", "medclean.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("anthropic.model", "claude-haiku-4-5-20251001")
	v.SetDefault("anthropic.max_tokens", 64)
	v.SetDefault("anthropic.rate_per_second", 1.0)
	v.SetDefault("processing.sample_size", 100)
	v.SetDefault("processing.batch_size", 50)
	v.SetDefault("processing.batch_delay_ms", 1000)
	v.SetDefault("processing.enable_enrichment", false)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
