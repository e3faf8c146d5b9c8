package config

import (
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Input     InputConfig     `yaml:"input" mapstructure:"input"`
	Roster    RosterConfig    `yaml:"roster" mapstructure:"roster"`
	Segment   SegmentConfig   `yaml:"segment" mapstructure:"segment"`
	Normalize NormalizeConfig `yaml:"normalize" mapstructure:"normalize"`
	Pipeline  PipelineConfig  `yaml:"pipeline" mapstructure:"pipeline"`
	Output    OutputConfig    `yaml:"output" mapstructure:"output"`
	Store     StoreConfig     `yaml:"store" mapstructure:"store"`
	Fetch     FetchConfig     `yaml:"fetch" mapstructure:"fetch"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// InputConfig locates the session sources.
type InputConfig struct {
	SessionsPath string `yaml:"sessions_path" mapstructure:"sessions_path"`
	MetadataPath string `yaml:"metadata_path" mapstructure:"metadata_path"`
	Separator    string `yaml:"separator" mapstructure:"separator"`
	Sheet        string `yaml:"sheet" mapstructure:"sheet"`
}

// RosterConfig configures roster download and build.
type RosterConfig struct {
	Dir             string `yaml:"dir" mapstructure:"dir"`
	Endpoint        string `yaml:"endpoint" mapstructure:"endpoint"`
	Download        bool   `yaml:"download" mapstructure:"download"`
	StartDatePolicy string `yaml:"start_date_policy" mapstructure:"start_date_policy"`
}

// SegmentConfig configures speech segmentation.
type SegmentConfig struct {
	PresidentPolicy string `yaml:"president_policy" mapstructure:"president_policy"`
}

// NormalizeConfig configures text normalization.
type NormalizeConfig struct {
	ExtraStopwordsPath string `yaml:"extra_stopwords_path" mapstructure:"extra_stopwords_path"`
}

// PipelineConfig configures session processing.
type PipelineConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"`
}

// OutputConfig configures corpus output.
type OutputConfig struct {
	Path       string `yaml:"path" mapstructure:"path"`
	ReportPath string `yaml:"report_path" mapstructure:"report_path"`
}

// StoreConfig configures the optional corpus database.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// FetchConfig configures HTTP downloads.
type FetchConfig struct {
	UserAgent   string  `yaml:"user_agent" mapstructure:"user_agent"`
	TimeoutSecs int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	Retries     int     `yaml:"retries" mapstructure:"retries"`
	RatePerSec  float64 `yaml:"rate_per_sec" mapstructure:"rate_per_sec"`
}

// Timeout returns the HTTP timeout as a duration.
func (f FetchConfig) Timeout() time.Duration {
	return time.Duration(f.TimeoutSecs) * time.Second
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("DISCORSI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("input.sessions_path", "")
	v.SetDefault("input.metadata_path", "")
	v.SetDefault("input.separator", ";")
	v.SetDefault("input.sheet", "")
	v.SetDefault("roster.dir", "deputati")
	v.SetDefault("roster.endpoint", "http://dati.camera.it/sparql")
	v.SetDefault("roster.download", false)
	v.SetDefault("roster.start_date_policy", "drop_unparsable")
	v.SetDefault("segment.president_policy", "literal")
	v.SetDefault("normalize.extra_stopwords_path", "")
	v.SetDefault("pipeline.workers", 4)
	v.SetDefault("output.path", "discorsi_cleaned_ext.csv")
	v.SetDefault("output.report_path", "")
	v.SetDefault("store.driver", "")
	v.SetDefault("store.database_url", "")
	v.SetDefault("fetch.user_agent", "discorsi-cli/1.0")
	v.SetDefault("fetch.timeout_secs", 60)
	v.SetDefault("fetch.retries", 3)
	v.SetDefault("fetch.rate_per_sec", 2.0)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

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

// SeparatorRune returns the configured CSV separator, defaulting to a semicolon.
func (c InputConfig) SeparatorRune() rune {
	for _, r := range c.Separator {
		return r
	}
	return ';'
}

// Validate checks the settings a command needs before it starts work.
// Mode is one of "process", "segment" or "roster".
func (c *Config) Validate(mode string) error {
	var missing []string

	switch mode {
	case "process":
		if c.Input.SessionsPath == "" {
			missing = append(missing, "input.sessions_path")
		}
		if c.Input.MetadataPath == "" {
			missing = append(missing, "input.metadata_path")
		}
		if c.Output.Path == "" {
			missing = append(missing, "output.path")
		}
	case "segment":
		if c.Input.SessionsPath == "" {
			missing = append(missing, "input.sessions_path")
		}
		if c.Output.Path == "" {
			missing = append(missing, "output.path")
		}
	case "roster":
		if c.Roster.Dir == "" {
			missing = append(missing, "roster.dir")
		}
	case "runs":
		if c.Store.Driver == "" {
			missing = append(missing, "store.driver")
		}
	default:
		return eris.Errorf("config: unknown validation mode %q", mode)
	}

	if len(missing) > 0 {
		return eris.Errorf("config: missing required fields: %s", strings.Join(missing, ", "))
	}

	if len([]rune(c.Input.Separator)) > 1 {
		return eris.Errorf("config: input.separator must be a single character, got %q", c.Input.Separator)
	}
	if c.Pipeline.Workers < 1 || c.Pipeline.Workers > 256 {
		return eris.Errorf("config: pipeline.workers must be between 1 and 256, got %d", c.Pipeline.Workers)
	}
	switch c.Store.Driver {
	case "", "sqlite", "postgres":
	default:
		return eris.Errorf("config: unknown store.driver %q (valid: sqlite, postgres)", c.Store.Driver)
	}
	if c.Store.Driver == "postgres" && c.Store.DatabaseURL == "" {
		return eris.New("config: store.database_url is required for the postgres driver")
	}
	if c.Fetch.Retries < 1 {
		return eris.Errorf("config: fetch.retries must be at least 1, got %d", c.Fetch.Retries)
	}

	return nil
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
