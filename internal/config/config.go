package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration settings
type Config struct {
	// Mining pipeline settings
	Mining MiningConfig `yaml:"mining" mapstructure:"mining"`

	// Decision store settings
	Store StoreConfig `yaml:"store" mapstructure:"store"`

	// Output settings
	Output OutputConfig `yaml:"output" mapstructure:"output"`
}

type MiningConfig struct {
	MinConfidence  float64  `yaml:"min_confidence" mapstructure:"min_confidence"`
	MinClusterSize int      `yaml:"min_cluster_size" mapstructure:"min_cluster_size"`
	MaxCommits     int      `yaml:"max_commits" mapstructure:"max_commits"`
	IncludeMerges  bool     `yaml:"include_merges" mapstructure:"include_merges"`
	ExcludePaths   []string `yaml:"exclude_paths" mapstructure:"exclude_paths"`
}

type StoreConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

type OutputConfig struct {
	Format string `yaml:"format" mapstructure:"format"` // "text", "json"
}

// Default returns default configuration
func Default() *Config {
	homeDir, _ := os.UserHomeDir()
	return &Config{
		Mining: MiningConfig{
			MinConfidence:  0.5,
			MinClusterSize: 2,
			ExcludePaths:   []string{"vendor/", "node_modules/"},
		},
		Store: StoreConfig{
			Path: filepath.Join(homeDir, ".archmine", "decisions.db"),
		},
		Output: OutputConfig{
			Format: "text",
		},
	}
}

// Load loads configuration from file, environment, and defaults
func Load(path string) (*Config, error) {
	loadEnvFiles()

	v := viper.New()
	v.SetConfigType("yaml")

	cfg := Default()
	v.SetDefault("mining", cfg.Mining)
	v.SetDefault("store", cfg.Store)
	v.SetDefault("output", cfg.Output)

	v.SetEnvPrefix("ARCHMINE")
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".archmine")
		v.AddConfigPath(".")
		homeDir, _ := os.UserHomeDir()
		v.AddConfigPath(filepath.Join(homeDir, ".archmine"))
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// No config file is fine, defaults apply
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return cfg, nil
}

// loadEnvFiles loads .env files in order of precedence
func loadEnvFiles() {
	for _, file := range []string{".env.local", ".env"} {
		if _, err := os.Stat(file); err == nil {
			_ = godotenv.Load(file)
		}
	}
}
