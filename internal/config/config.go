package config

import (
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Search providers accepted by search.provider.
const (
	SearchGoogle = "google"
	SearchJina   = "jina"
)

// Config holds the full application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server" mapstructure:"server"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
	Apollo   ApolloConfig   `yaml:"apollo" mapstructure:"apollo"`
	GitHub   GitHubConfig   `yaml:"github" mapstructure:"github"`
	Gravatar GravatarConfig `yaml:"gravatar" mapstructure:"gravatar"`
	Search   SearchConfig   `yaml:"search" mapstructure:"search"`
	Google   GoogleConfig   `yaml:"google" mapstructure:"google"`
	Jina     JinaConfig     `yaml:"jina" mapstructure:"jina"`
	Lookup   LookupConfig   `yaml:"lookup" mapstructure:"lookup"`
	Batch    BatchConfig    `yaml:"batch" mapstructure:"batch"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port             int    `yaml:"port" mapstructure:"port"`
	StaticDir        string `yaml:"static_dir" mapstructure:"static_dir"`
	ReadTimeoutSecs  int    `yaml:"read_timeout_secs" mapstructure:"read_timeout_secs"`
	WriteTimeoutSecs int    `yaml:"write_timeout_secs" mapstructure:"write_timeout_secs"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// ApolloConfig configures the paid identity-match API. An empty key
// disables the source.
type ApolloConfig struct {
	Key     string `yaml:"key" mapstructure:"key"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
}

// GitHubConfig configures the GitHub users API.
type GitHubConfig struct {
	Token             string `yaml:"token" mapstructure:"token"`
	BaseURL           string `yaml:"base_url" mapstructure:"base_url"`
	RequestsPerMinute      int    `yaml:"requests_per_minute" mapstructure:"requests_per_minute"`
	TokenRequestsPerMinute int    `yaml:"token_requests_per_minute" mapstructure:"token_requests_per_minute"`
}

// SearchRequestsPerMinute returns the user-search cap for the configured
// credentials. An authenticated client gets the higher quota.
func (c GitHubConfig) SearchRequestsPerMinute() int {
	if c.Token != "" {
		return c.TokenRequestsPerMinute
	}
	return c.RequestsPerMinute
}

// GravatarConfig configures the Gravatar profile API.
type GravatarConfig struct {
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
}

// SearchConfig selects the web search backend.
type SearchConfig struct {
	Provider string `yaml:"provider" mapstructure:"provider"`
}

// GoogleConfig configures the Custom Search JSON API.
type GoogleConfig struct {
	Key              string  `yaml:"key" mapstructure:"key"`
	CX               string  `yaml:"cx" mapstructure:"cx"`
	BaseURL          string  `yaml:"base_url" mapstructure:"base_url"`
	QueriesPerSecond float64 `yaml:"queries_per_second" mapstructure:"queries_per_second"`
}

// JinaConfig configures Jina AI Search.
type JinaConfig struct {
	Key           string `yaml:"key" mapstructure:"key"`
	SearchBaseURL string `yaml:"search_base_url" mapstructure:"search_base_url"`
}

// LookupConfig bounds individual source and search calls. A source that
// fails BreakerFailures times in a row is skipped for BreakerResetSecs.
type LookupConfig struct {
	SourceTimeoutSecs int `yaml:"source_timeout_secs" mapstructure:"source_timeout_secs"`
	SearchTimeoutSecs int `yaml:"search_timeout_secs" mapstructure:"search_timeout_secs"`
	BreakerFailures   int `yaml:"breaker_failures" mapstructure:"breaker_failures"`
	BreakerResetSecs  int `yaml:"breaker_reset_secs" mapstructure:"breaker_reset_secs"`
}

// BatchConfig configures the batch command.
type BatchConfig struct {
	MaxConcurrent int `yaml:"max_concurrent" mapstructure:"max_concurrent"`
}

// SourceTimeout returns the per-source timeout.
func (c LookupConfig) SourceTimeout() time.Duration {
	return time.Duration(c.SourceTimeoutSecs) * time.Second
}

// SearchTimeout returns the per-query search timeout.
func (c LookupConfig) SearchTimeout() time.Duration {
	return time.Duration(c.SearchTimeoutSecs) * time.Second
}

// SearchEnabled reports whether the selected search backend has the
// credentials it needs.
func (c *Config) SearchEnabled() bool {
	switch c.Search.Provider {
	case SearchGoogle:
		return c.Google.Key != "" && c.Google.CX != ""
	case SearchJina:
		return c.Jina.Key != ""
	default:
		return false
	}
}

// Validate checks settings that would otherwise fail at request time.
// Missing credentials are not errors; those sources are skipped.
func (c *Config) Validate() error {
	switch c.Search.Provider {
	case SearchGoogle, SearchJina:
	default:
		return eris.Errorf("config: unknown search.provider %q", c.Search.Provider)
	}
	if c.Lookup.SourceTimeoutSecs <= 0 {
		return eris.New("config: lookup.source_timeout_secs must be positive")
	}
	if c.Lookup.SearchTimeoutSecs <= 0 {
		return eris.New("config: lookup.search_timeout_secs must be positive")
	}
	if c.Server.ReadTimeoutSecs <= 0 || c.Server.WriteTimeoutSecs <= 0 {
		return eris.New("config: server timeouts must be positive")
	}
	if c.Batch.MaxConcurrent <= 0 {
		return eris.New("config: batch.max_concurrent must be positive")
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
	v.SetEnvPrefix("LOOKUP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Conventional variable names, checked after the prefixed ones.
	legacy := map[string]string{
		"server.port":  "PORT",
		"apollo.key":   "APOLLO_API_KEY",
		"github.token": "GITHUB_TOKEN",
		"google.key":   "GOOGLE_API_KEY",
		"google.cx":    "GOOGLE_CX",
		"jina.key":     "JINA_API_KEY",
	}
	for key, env := range legacy {
		prefixed := "LOOKUP_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, prefixed, env); err != nil {
			return nil, eris.Wrapf(err, "config: bind env %s", env)
		}
	}

	// Defaults
	v.SetDefault("server.port", 3001)
	v.SetDefault("server.static_dir", "frontend/dist")
	v.SetDefault("server.read_timeout_secs", 15)
	v.SetDefault("server.write_timeout_secs", 120)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("apollo.key", "")
	v.SetDefault("apollo.base_url", "https://api.apollo.io/v1")
	v.SetDefault("github.token", "")
	v.SetDefault("github.base_url", "https://api.github.com")
	v.SetDefault("github.requests_per_minute", 10)
	v.SetDefault("github.token_requests_per_minute", 30)
	v.SetDefault("gravatar.base_url", "https://en.gravatar.com")
	v.SetDefault("search.provider", SearchGoogle)
	v.SetDefault("google.key", "")
	v.SetDefault("google.cx", "")
	v.SetDefault("google.base_url", "https://www.googleapis.com/customsearch/v1")
	v.SetDefault("google.queries_per_second", 5)
	v.SetDefault("jina.key", "")
	v.SetDefault("jina.search_base_url", "https://s.jina.ai")
	v.SetDefault("lookup.source_timeout_secs", 10)
	v.SetDefault("lookup.search_timeout_secs", 15)
	v.SetDefault("lookup.breaker_failures", 5)
	v.SetDefault("lookup.breaker_reset_secs", 60)
	v.SetDefault("batch.max_concurrent", 3)

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
