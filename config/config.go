package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server     ServerConfig
	Storage    StorageConfig
	Extraction ExtractionConfig
	LLM        LLMConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// StorageConfig selects and locates the persistence backend
type StorageConfig struct {
	Type       string `mapstructure:"type"` // "file" or "sqlite"
	DataDir    string `mapstructure:"data_dir"`
	SQLitePath string `mapstructure:"sqlite_path"`
}

// ExtractionConfig holds text-extraction pipeline configuration
type ExtractionConfig struct {
	PrimaryEngine  string `mapstructure:"primary_engine"`
	FallbackEngine string `mapstructure:"fallback_engine"` // empty disables the fallback hop
	UploadDir      string `mapstructure:"upload_dir"`
	MaxUploadSize  int64  `mapstructure:"max_upload_size"`
}

// LLMConfig holds language model provider configuration
type LLMConfig struct {
	Model    string        `mapstructure:"model"`
	BaseURL  string        `mapstructure:"base_url"`
	Timeout  time.Duration `mapstructure:"timeout"`
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/platewise/")

	// Environment variable settings
	v.SetEnvPrefix("PLATEWISE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using environment variables and defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})

	// Storage defaults
	v.SetDefault("storage.type", "file")
	v.SetDefault("storage.data_dir", "data")
	v.SetDefault("storage.sqlite_path", "data/platewise.db")

	// Extraction defaults
	v.SetDefault("extraction.primary_engine", "doctext")
	v.SetDefault("extraction.fallback_engine", "imageocr")
	v.SetDefault("extraction.upload_dir", "data/uploads")
	v.SetDefault("extraction.max_upload_size", 10*1024*1024) // 10MB

	// LLM defaults
	v.SetDefault("llm.model", "llama3")
	v.SetDefault("llm.base_url", "http://localhost:11434/api")
	v.SetDefault("llm.timeout", "30s")
	v.SetDefault("llm.cache_ttl", "5m")
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Storage.Type != "file" && config.Storage.Type != "sqlite" {
		return fmt.Errorf("storage type must be 'file' or 'sqlite', got: %s", config.Storage.Type)
	}

	if config.Extraction.PrimaryEngine == "" {
		return fmt.Errorf("a primary extraction engine is required")
	}

	if config.LLM.BaseURL == "" {
		return fmt.Errorf("LLM base URL is required (set PLATEWISE_LLM_BASE_URL)")
	}

	if config.LLM.Timeout <= 0 {
		return fmt.Errorf("LLM timeout must be positive, got: %s", config.LLM.Timeout)
	}

	return nil
}
