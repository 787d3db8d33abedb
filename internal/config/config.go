// Package config loads transdoc settings from a YAML config file and the
// environment. File values are overridden by environment variables, which
// are in turn overridden by command-line flags (handled in cmd).
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// OpenAI holds settings for the OpenAI-compatible backend.
type OpenAI struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
	Model   string `mapstructure:"model"`
}

// Azure holds settings for the Azure OpenAI backend.
type Azure struct {
	Endpoint   string `mapstructure:"endpoint"`
	APIKey     string `mapstructure:"api_key"`
	APIVersion string `mapstructure:"api_version"`
	Deployment string `mapstructure:"deployment"`
}

// Google holds settings for the Google Cloud Translation backend.
type Google struct {
	Credentials string `mapstructure:"credentials"`
}

// Config is the full transdoc configuration.
type Config struct {
	Backend     string `mapstructure:"backend"`
	MaxAttempts int    `mapstructure:"max_attempts"`
	DBPath      string `mapstructure:"db_path"`
	OpenAI      OpenAI `mapstructure:"openai"`
	Azure       Azure  `mapstructure:"azure"`
	Google      Google `mapstructure:"google"`
}

// Load reads the configuration. When cfgFile is non-empty it must exist;
// otherwise transdoc.yaml is searched for in the working directory and
// $HOME/.config/transdoc/, and a missing file just yields the defaults.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	v.SetDefault("backend", "openai")
	v.SetDefault("max_attempts", 3)
	v.SetDefault("db_path", "./data/transdoc.db")
	v.SetDefault("openai.base_url", "https://api.openai.com/v1")
	v.SetDefault("openai.model", "gpt-4")
	v.SetDefault("azure.api_version", "2024-02-01")
	v.SetDefault("azure.deployment", "gpt-4o")

	v.BindEnv("openai.api_key", "OPENAI_API_KEY")
	v.BindEnv("openai.base_url", "OPENAI_BASE_URL")
	v.BindEnv("azure.endpoint", "AZURE_OPENAI_ENDPOINT")
	v.BindEnv("azure.api_key", "AZURE_OPENAI_API_KEY")
	v.BindEnv("google.credentials", "GOOGLE_APPLICATION_CREDENTIALS")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		v.SetConfigName("transdoc")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "transdoc"))
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}
