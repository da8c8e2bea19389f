package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server     ServerConfig
	Completion CompletionConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	Host         string        `mapstructure:"host"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// CompletionConfig holds the settings for the hosted chat-completion API.
// BaseURL, APIKey and Model are also read from the legacy GPT_URL,
// AZURE_OPENAI_KEY and MODEL variables.
type CompletionConfig struct {
	BaseURL   string `mapstructure:"base_url"`
	APIKey    string `mapstructure:"api_key"`
	Model     string `mapstructure:"model"`
	MaxTokens int    `mapstructure:"max_tokens"`
	// Timeout bounds the whole HTTP exchange; zero leaves the client default.
	Timeout time.Duration `mapstructure:"timeout"`
	// DetectMIME declares the sniffed image type in the data URI instead of image/jpeg.
	DetectMIME bool `mapstructure:"detect_mime"`
}

// Validate checks that the completion configuration is usable in the given environment.
// Development is permissive: a missing value only surfaces when a request is made.
func (c *CompletionConfig) Validate(environment string) error {
	if environment != EnvProduction && environment != EnvStaging {
		return nil
	}
	var missing []string
	if c.BaseURL == "" {
		missing = append(missing, "GPT_URL")
	}
	if c.APIKey == "" {
		missing = append(missing, "AZURE_OPENAI_KEY")
	}
	if c.Model == "" {
		missing = append(missing, "MODEL")
	}
	if len(missing) > 0 {
		return errors.New(strings.Join(missing, ", ") + " required in " + environment)
	}
	if c.MaxTokens <= 0 {
		return fmt.Errorf("completion.max_tokens must be positive, got %d", c.MaxTokens)
	}
	return nil
}

// CompletionFitsWriteTimeout reports whether a completion call is bounded
// tighter than the server's write timeout. When it is not, a slow model
// drops the client connection instead of producing a failure response.
func (c *Config) CompletionFitsWriteTimeout() bool {
	if c.Server.WriteTimeout <= 0 {
		return true
	}
	return c.Completion.Timeout > 0 && c.Completion.Timeout < c.Server.WriteTimeout
}

// Load loads configuration from environment and config files.
// Missing completion settings are tolerated; use LoadWithValidation to fail fast.
func Load(serviceName string) (*Config, error) {
	return loadConfig(serviceName)
}

// LoadWithValidation loads configuration and validates it for the current environment.
// In production/staging environments, this will fail if required configuration is missing.
func LoadWithValidation(serviceName string) (*Config, error) {
	cfg, err := loadConfig(serviceName)
	if err != nil {
		return nil, err
	}

	if err := cfg.Completion.Validate(cfg.Server.Environment); err != nil {
		return nil, fmt.Errorf("completion configuration error: %w", err)
	}

	return cfg, nil
}

// LoadDotEnv loads KEY=VALUE pairs from the given files (".env" when none are given)
// into the process environment. Variables that are already set win.
// Missing files are ignored.
func LoadDotEnv(filenames ...string) error {
	if len(filenames) == 0 {
		filenames = []string{".env"}
	}
	for _, name := range filenames {
		if err := godotenv.Load(name); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", name, err)
		}
	}
	return nil
}

// loadConfig is the internal configuration loader
func loadConfig(serviceName string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	// Read from environment variables
	v.SetEnvPrefix("SEALSTAMP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Prefixed names first, then the variables the service has always used
	for key, legacy := range legacyEnv {
		prefixed := "SEALSTAMP_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, prefixed, legacy); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", legacy, err)
		}
	}

	// Read from config file if exists
	v.SetConfigName(serviceName)
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/sealstamp")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.Server.Environment = strings.ToLower(cfg.Server.Environment)

	return &cfg, nil
}

var legacyEnv = map[string]string{
	"completion.base_url": "GPT_URL",
	"completion.api_key":  "AZURE_OPENAI_KEY",
	"completion.model":    "MODEL",
}

func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.read_timeout", 30*time.Second)
	// The completion call alone can take longer than a typical API timeout
	v.SetDefault("server.write_timeout", 120*time.Second)
	v.SetDefault("server.environment", EnvDevelopment)

	// Completion defaults
	v.SetDefault("completion.base_url", "")
	v.SetDefault("completion.api_key", "")
	v.SetDefault("completion.model", "")
	v.SetDefault("completion.max_tokens", 500)
	// Stays under server.write_timeout so a slow model still gets a failure envelope
	v.SetDefault("completion.timeout", 110*time.Second)
	v.SetDefault("completion.detect_mime", false)
}
