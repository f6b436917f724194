package config

// AppConfig holds application-level settings.
type AppConfig struct {
	LogLevel string `mapstructure:"log_level"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

// RedisConfig holds redis connection settings.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// AuthConfig controls JWT issuance and verification.
type AuthConfig struct {
	Secret   string `mapstructure:"secret"`
	TokenTTL string `mapstructure:"token_ttl"` // duration string, e.g., "1h"
}

// HNConfig controls the Hacker News data source.
type HNConfig struct {
	BaseAPI string `mapstructure:"base_api"`
	TopN    int    `mapstructure:"top_n"` // how many top-story IDs to resolve
}

// V2EXConfig controls the optional V2EX data source.
type V2EXConfig struct {
	Token   string   `mapstructure:"token"`
	BaseURL string   `mapstructure:"base_url"`
	Nodes   []string `mapstructure:"nodes"`
}

// DataSources groups available feed sources.
type DataSources struct {
	HN   HNConfig   `mapstructure:"hn"`
	V2EX V2EXConfig `mapstructure:"v2ex"`
}

// OpenAIConfig controls the LLM tag extractor. Leave APIKey empty to use the
// dictionary extractor instead.
type OpenAIConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"`
}

// StripeConfig holds payment provider credentials.
type StripeConfig struct {
	SecretKey string `mapstructure:"secret_key"`
}

// Config is the top-level configuration structure.
type Config struct {
	App     AppConfig    `mapstructure:"app"`
	Server  ServerConfig `mapstructure:"server"`
	Redis   RedisConfig  `mapstructure:"redis"`
	Auth    AuthConfig   `mapstructure:"auth"`
	Sources DataSources  `mapstructure:"sources"`
	OpenAI  OpenAIConfig `mapstructure:"openai"`
	Stripe  StripeConfig `mapstructure:"stripe"`
}

// FillDefaults applies default values if not provided.
func (c *Config) FillDefaults() {
	if c.App.LogLevel == "" {
		c.App.LogLevel = "info"
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":5000"
	}
	if c.Redis.Addr == "" {
		c.Redis.Addr = "127.0.0.1:6379"
	}
	if c.Auth.TokenTTL == "" {
		c.Auth.TokenTTL = "1h"
	}
	if c.Sources.HN.BaseAPI == "" {
		c.Sources.HN.BaseAPI = "https://hacker-news.firebaseio.com/v0"
	}
	if c.Sources.HN.TopN <= 0 {
		c.Sources.HN.TopN = 10
	}
	if c.Sources.HN.TopN > 250 {
		c.Sources.HN.TopN = 250
	}
	if c.Sources.V2EX.BaseURL == "" {
		c.Sources.V2EX.BaseURL = "https://www.v2ex.com"
	}
	if c.OpenAI.Model == "" {
		c.OpenAI.Model = "gpt-4o-mini"
	}
}
