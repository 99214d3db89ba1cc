package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	KsmaiConfigPathEnvVar = "KSMAI_CONFIG_PATH" // Environment variable for config path
)

// Config holds all configuration for the application
type Config struct {
	// Debug enables verbose logging and additional debug information
	Debug bool `mapstructure:"debug"`

	// Harness configuration for matrix validation runs
	Harness struct {
		// Concurrency bounds the number of configurations generated in parallel
		Concurrency int `mapstructure:"concurrency"`
		// ParseTimeout bounds each per-file syntax parse
		ParseTimeout time.Duration `mapstructure:"parse_timeout"`
		// KeepOutput retains generated project directories for diagnostics
		KeepOutput bool `mapstructure:"keep_output"`
		// TemplateRoot is the template tree rendered for each configuration
		TemplateRoot string `mapstructure:"template_root"`
		// Manifest is the required-paths manifest file
		Manifest string `mapstructure:"manifest"`
		// PythonBin is the interpreter used for parse-only syntax checks
		PythonBin string `mapstructure:"python_bin"`
		// Output selects the report format (table, json, yaml)
		Output string `mapstructure:"output"`
	} `mapstructure:"harness"`

	// Server configuration
	Server struct {
		Host    string        `mapstructure:"host"`
		Port    int           `mapstructure:"port"`
		Timeout time.Duration `mapstructure:"timeout"`
	} `mapstructure:"server"`
}

// Load initializes and returns the configuration from all sources:
// 1. Command-line flags (highest priority)
// 2. Environment variables (prefixed with KSMAI_)
// 3. Configuration file (lowest priority)
func Load(configPath string) (*Config, error) {
	// Check for environment variable config path if not explicitly provided
	if configPath == "" {
		if envPath := os.Getenv(KsmaiConfigPathEnvVar); envPath != "" {
			if _, err := os.Stat(envPath); os.IsNotExist(err) {
				return nil, fmt.Errorf("config file specified in %s not found: %s", KsmaiConfigPathEnvVar, envPath)
			}
			configPath = envPath
		}
	} else {
		// Verify explicitly provided config file exists
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s", configPath)
		}
	}
	v := viper.New()

	// Set default values
	setDefaults(v)

	// Read config file if specified
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Look for config.yml in the current directory
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	// Read environment variables
	v.SetEnvPrefix("KSMAI")
	v.AutomaticEnv()
	// Replace dots with underscores in env vars
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		} else if configPath != "" {
			// Only error if config file was explicitly specified
			return nil, fmt.Errorf("specified config file not found: %s", configPath)
		}
		// If no config file was specified, we'll use defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &config, nil
}

// setDefaults sets default values for all configuration options
func setDefaults(v *viper.Viper) {
	// Harness defaults
	v.SetDefault("harness.concurrency", 4)
	v.SetDefault("harness.parse_timeout", "30s")
	v.SetDefault("harness.keep_output", false)
	v.SetDefault("harness.template_root", "templates/fastapi-ai")
	v.SetDefault("harness.manifest", "configs/required_paths.yaml")
	v.SetDefault("harness.python_bin", "python3")
	v.SetDefault("harness.output", "table")

	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.timeout", "30s")
}
