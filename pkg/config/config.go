/*
Package config manages the TOML config for seshat services.
*/
package config

import (
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/velum/seshat/internal/utils"
	"github.com/velum/seshat/pkg/loader"
)

// Config holds the entire config structure.
type Config struct {
	Server ServerConfig `toml:"server"`
	Loader LoaderConfig `toml:"loader"`
	CLI    CliConfig    `toml:"cli"`
}

// ServerConfig caps what the IPC adapter accepts before a request reaches
// the engine; the engine itself imposes no limits.
type ServerConfig struct {
	MaxWord    int `toml:"max_word"`
	MaxPattern int `toml:"max_pattern"`
	MaxBatch   int `toml:"max_batch"`
}

// LoaderConfig holds bulk loading options.
type LoaderConfig struct {
	ChunkSize int `toml:"chunk_size"`
}

// CliConfig holds debug CLI defaults.
type CliConfig struct {
	DefaultLimit int `toml:"default_limit"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			MaxWord:    512,
			MaxPattern: 128,
			MaxBatch:   4096,
		},
		Loader: LoaderConfig{
			ChunkSize: loader.DefaultChunkSize,
		},
		CLI: CliConfig{
			DefaultLimit: 24,
		},
	}
}

// GetConfigDir returns the config directory with fallback priority:
// 1. ~/.config/seshat
// 2. Current executable dir
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Errorf("Failed to get home directory: %v", err)
		return utils.GetExecutableDir()
	}
	primaryPath := filepath.Join(homeDir, ".config", "seshat")
	if result := utils.CheckDirStatus(primaryPath); result.Writable {
		return primaryPath, nil
	}
	execDir, err := utils.GetExecutableDir()
	if err != nil {
		log.Errorf("Failed to get executable directory: %v", err)
		return "", err
	}
	return execDir, nil
}

// GetDefaultConfigPath returns the default path for config.toml.
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from --config flag
// 2. Default path: ~/.config/seshat/config.toml
// 3. Builtin defaults
func LoadConfigWithPriority(customConfigPath string) (*Config, string, error) {
	if customConfigPath != "" {
		if _, statErr := os.Stat(customConfigPath); statErr == nil {
			config, err := LoadConfig(customConfigPath)
			if err != nil {
				log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customConfigPath, err)
			} else {
				log.Debugf("Loaded config from custom path: %s", customConfigPath)
				return config, customConfigPath, nil
			}
		} else {
			log.Warnf("Custom config file not found at %s: %v. Trying default path...", customConfigPath, statErr)
		}
	}

	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		log.Warnf("Failed to determine default config path: %v. Using built-in defaults...", err)
		return DefaultConfig(), "", nil
	}

	config, err := InitConfig(defaultPath)
	if err != nil {
		log.Warnf("Failed to load/create config at default path %s: %v. Using builtin defaults...", defaultPath, err)
		return DefaultConfig(), "", nil
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return config, defaultPath, nil
}

// InitConfig loads config from file or creates a default one if missing.
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)

	if err := utils.EnsureDir(configDir); err != nil {
		log.Warnf("Failed to create config directory %s: %v. Using built-in defaults...", configDir, err)
		return DefaultConfig(), nil
	}

	if !utils.FileExists(configPath) {
		config := DefaultConfig()
		if err := SaveConfig(config, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return DefaultConfig(), nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return config, nil
	}

	return LoadConfig(configPath)
}

// LoadConfig decodes a TOML file over the defaults, so missing keys keep
// their builtin values. A file that cannot be parsed at all falls back to
// the defaults with a warning instead of failing the caller.
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if err := utils.LoadTOMLFile(configPath, config); err != nil {
		log.Warnf("Could not parse configuration from %s: %v. Using all defaults.", configPath, err)
		return DefaultConfig(), nil
	}
	return config, nil
}

// SaveConfig saves into a TOML file.
func SaveConfig(config *Config, configPath string) error {
	return utils.SaveTOMLFile(config, configPath)
}
