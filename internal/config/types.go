package config

// Config represents the main Relay configuration.
type Config struct {
	Model   ModelConfig   `toml:"model"`
	Parser  ParserConfig  `toml:"parser"`
	Server  ServerConfig  `toml:"server"`
	Paths   PathsConfig   `toml:"paths"`
	Session SessionConfig `toml:"session"`
}

// ModelConfig configures the language model backend.
type ModelConfig struct {
	Provider    string  `toml:"provider"`    // "nvidia"
	Model       string  `toml:"model"`       // e.g. "meta/llama-3.1-8b-instruct"
	BaseURL     string  `toml:"base_url"`    // OpenAI-compatible endpoint
	APIKey      string  `toml:"api_key"`     // overridden by NVIDIA_API_KEY
	Temperature float64 `toml:"temperature"` // sampling temperature
	MaxTokens   int     `toml:"max_tokens"`  // completion token ceiling
	TimeoutSec  int     `toml:"timeout_sec"`
}

// ParserConfig configures the command parsing pipeline.
type ParserConfig struct {
	// ConfidenceFloor is the minimum intent score the pattern
	// classifier requires before trusting its top pick.
	ConfidenceFloor int `toml:"confidence_floor"`

	// UseLLM enables the model-backed parsing tier.
	UseLLM bool `toml:"use_llm"`

	// UsePatterns enables the scored pattern tier.
	UsePatterns bool `toml:"use_patterns"`
}

// ServerConfig configures the tool server and its policies.
type ServerConfig struct {
	// Command launches the tool server subprocess ("" means in-process defaults).
	Command string   `toml:"command"`
	Args    []string `toml:"args"`

	ShellTimeoutSec int      `toml:"shell_timeout_sec"`
	MaxFileSize     int64    `toml:"max_file_size"`
	RestrictedPaths []string `toml:"restricted_paths"`
	DefaultEncoding string   `toml:"default_encoding"`
}

// PathsConfig contains file path settings.
type PathsConfig struct {
	DataDir   string `toml:"data_dir"`
	HistoryDB string `toml:"history_db"`
}

// SessionConfig contains per-session defaults.
type SessionConfig struct {
	WorkingDir string `toml:"working_dir"` // "" means process cwd
}
