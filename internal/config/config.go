// Package config handles Relay configuration loading and management.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Default returns the default configuration.
func Default() *Config {
	homeDir, _ := os.UserHomeDir()
	dataDir := filepath.Join(homeDir, ".relay")

	return &Config{
		Model: ModelConfig{
			Provider:    "nvidia",
			Model:       "meta/llama-3.1-8b-instruct",
			BaseURL:     "https://integrate.api.nvidia.com/v1",
			Temperature: 0.1,
			MaxTokens:   1000,
			TimeoutSec:  60,
		},
		Parser: ParserConfig{
			ConfidenceFloor: 3,
			UseLLM:          true,
			UsePatterns:     true,
		},
		Server: ServerConfig{
			ShellTimeoutSec: 30,
			MaxFileSize:     100 * 1024 * 1024,
			RestrictedPaths: []string{`C:\Windows\System32`, "/bin", "/sbin"},
			DefaultEncoding: "utf-8",
		},
		Paths: PathsConfig{
			DataDir:   dataDir,
			HistoryDB: filepath.Join(dataDir, "history.db"),
		},
		Session: SessionConfig{
			WorkingDir: "",
		},
	}
}

// Load loads the configuration from the given path.
// If the file doesn't exist, returns defaults. Environment variables
// override the API key so it never needs to live in the file.
func Load(configPath string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			applyEnv(cfg)
			return cfg, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	cfg = expandPaths(cfg)
	applyEnv(cfg)

	return cfg, nil
}

// Save saves the configuration to the given path.
func (c *Config) Save(configPath string) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	file, err := os.Create(configPath)
	if err != nil {
		return err
	}
	defer file.Close()

	encoder := toml.NewEncoder(file)
	return encoder.Encode(c)
}

// applyEnv applies environment variable overrides.
func applyEnv(cfg *Config) {
	if key := os.Getenv("NVIDIA_API_KEY"); key != "" {
		cfg.Model.APIKey = key
	}
	if dir := os.Getenv("RELAY_WORKING_DIR"); dir != "" {
		cfg.Session.WorkingDir = dir
	}
}

// expandPaths expands ~ in paths.
func expandPaths(cfg *Config) *Config {
	homeDir, _ := os.UserHomeDir()

	if len(cfg.Paths.DataDir) > 0 && cfg.Paths.DataDir[0] == '~' {
		cfg.Paths.DataDir = filepath.Join(homeDir, cfg.Paths.DataDir[1:])
	}
	if len(cfg.Paths.HistoryDB) > 0 && cfg.Paths.HistoryDB[0] == '~' {
		cfg.Paths.HistoryDB = filepath.Join(homeDir, cfg.Paths.HistoryDB[1:])
	}

	return cfg
}

// WorkingDir returns the configured working directory, defaulting to
// the process working directory.
func (c *Config) WorkingDir() string {
	if c.Session.WorkingDir != "" {
		return c.Session.WorkingDir
	}
	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return wd
}

// HasModel returns true if a model backend is configured.
func (c *Config) HasModel() bool {
	return c.Model.APIKey != ""
}
