package config

import "time"

// Config holds runtime configuration for the 3C assistant bot.
type Config struct {
	AppEnv string

	Server    ServerConfig    `mapstructure:"server"`
	Line      LineConfig      `mapstructure:"line"`
	OpenAI    OpenAIConfig    `mapstructure:"openai"`
	State     StateConfig     `mapstructure:"state"`
	Policy    PolicyConfig    `mapstructure:"policy"`
	Wishlist  WishlistConfig  `mapstructure:"wishlist"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Log       LogConfig       `mapstructure:"log"`
	Sentry    SentryConfig    `mapstructure:"sentry"`
}

type ServerConfig struct {
	Port            int           `mapstructure:"port" validate:"required,gt=0,lte=65535"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type LineConfig struct {
	ChannelSecret string `mapstructure:"channel_secret" validate:"required"`
	ChannelToken  string `mapstructure:"channel_token" validate:"required"`
}

type OpenAIConfig struct {
	APIKey  string        `mapstructure:"api_key" validate:"required"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type StateConfig struct {
	// TTL is the idle time after which a user's conversation state expires.
	TTL           time.Duration `mapstructure:"ttl"`
	CleanInterval time.Duration `mapstructure:"clean_interval"`
}

type PolicyConfig struct {
	Mode         string `mapstructure:"mode" validate:"omitempty,oneof=keywords model"`
	KeywordsFile string `mapstructure:"keywords_file"`
}

type WishlistConfig struct {
	Dir string `mapstructure:"dir"`
}

type RateLimitConfig struct {
	// Limit of zero or below disables rate limiting.
	Limit  int           `mapstructure:"limit"`
	Window time.Duration `mapstructure:"window"`
}

type LogConfig struct {
	Level         string `mapstructure:"level"`
	File          string `mapstructure:"file"`
	FileMaxSizeMB int    `mapstructure:"file_max_size_mb"`
	FileMaxAge    int    `mapstructure:"file_max_age"`
}

type SentryConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	DSN     string `mapstructure:"dsn"`
}
