package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Environment variables recognized by LoadConfig. They override the file.
const (
	EnvUserID      = "DOTMEM_USER_ID"
	EnvMemoryPath  = "DOTMEM_MEMORY_PATH"
	EnvDotfilesDir = "DOTMEM_DOTFILES_DIR"
	EnvLLMProvider = "DOTMEM_LLM_PROVIDER"
	EnvLLMModel    = "LLM_MODEL"
	EnvLLMKey      = "DOTMEM_LLM_KEY"
	EnvLogLevel    = "LOG_LEVEL"
	EnvVCSTimeout  = "DOTMEM_VCS_TIMEOUT"
)

type LLMConfig struct {
	// Provider selects the backend for memory-side LLM operations:
	// openai, anthropic, openrouter or ollama.
	Provider string `yaml:"provider" validate:"omitempty,oneof=openai anthropic openrouter ollama"`
	Model    string `yaml:"model"`
	// Key holds the API key, or the base URL when the provider is ollama.
	Key string `yaml:"key,omitempty"`
}

type EmbeddingsConfig struct {
	// Provider selects how embeddings are computed by the engine:
	// openai or ollama (any OpenAI-compatible endpoint).
	Provider  string `yaml:"provider" validate:"omitempty,oneof=openai ollama"`
	Model     string `yaml:"model"`
	BaseURL   string `yaml:"base_url,omitempty"`
	APIKey    string `yaml:"api_key,omitempty"`
	Dimension int    `yaml:"dimension" validate:"omitempty,gt=0"`
}

type Config struct {
	// UserID partitions memories per user in the vector store.
	UserID string `yaml:"user_id" validate:"required,min=1,max=50"`
	// MemoryPath is where the vector database persists on disk.
	MemoryPath string `yaml:"memory_path" validate:"required"`
	// DotfilesDir is the repository the drift and history tools inspect.
	// Empty means the current working directory.
	DotfilesDir string `yaml:"dotfiles_dir"`

	LLM        LLMConfig        `yaml:"llm"`
	Embeddings EmbeddingsConfig `yaml:"embeddings"`

	LogLevel string `yaml:"log_level" validate:"omitempty,oneof=debug info warn error"`

	// VCSTimeout bounds every subprocess call to git/jj.
	VCSTimeout time.Duration `yaml:"vcs_timeout" validate:"min=1s,max=5m"`

	EnableSecretsScan bool `yaml:"enable_secrets_scan"`
	EnableJournal     bool `yaml:"enable_journal"`
	// EnableDistillation condenses every new memory into durable facts
	// through the LLM before storage. Off by default.
	EnableDistillation bool `yaml:"enable_distillation"`
}

func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()
	user := os.Getenv("USER")
	if user == "" {
		user = "default_user"
	}

	return &Config{
		UserID:     user,
		MemoryPath: filepath.Join(home, ".dotmem", "store"),
		LLM: LLMConfig{
			Provider: "openai",
			Model:    "gpt-4o-mini",
		},
		Embeddings: EmbeddingsConfig{
			Provider:  "openai",
			Model:     "text-embedding-3-small",
			Dimension: 384,
		},
		LogLevel:          "info",
		VCSTimeout:        10 * time.Second,
		EnableSecretsScan: true,
		EnableJournal:     true,
	}
}

// ConfigPath returns the default config file location.
func ConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".dotmem", "config.yaml")
}

// LoadConfig reads the config file at path (defaults apply when absent),
// applies environment overrides and validates the result. The parent of
// MemoryPath is created so the engine can open its store.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnvOverrides(cfg)

	cfg.MemoryPath = expandHome(cfg.MemoryPath)
	cfg.DotfilesDir = expandHome(cfg.DotfilesDir)

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.MemoryPath), 0755); err != nil {
		return nil, fmt.Errorf("create memory directory: %w", err)
	}

	return cfg, nil
}

func SaveConfig(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv(EnvUserID); v != "" {
		cfg.UserID = v
	}
	if v := os.Getenv(EnvMemoryPath); v != "" {
		cfg.MemoryPath = v
	}
	if v := os.Getenv(EnvDotfilesDir); v != "" {
		cfg.DotfilesDir = v
	}
	if v := os.Getenv(EnvLLMProvider); v != "" {
		cfg.LLM.Provider = v
	}
	if v := os.Getenv(EnvLLMModel); v != "" {
		cfg.LLM.Model = v
	}
	if v := os.Getenv(EnvLLMKey); v != "" {
		cfg.LLM.Key = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv(EnvVCSTimeout); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.VCSTimeout = d
		}
	}
}

func expandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if path == "~" {
		return home
	}
	return filepath.Join(home, path[1:])
}

// JournalPath is where the git-backed audit journal lives, next to the
// vector store.
func (c *Config) JournalPath() string {
	return filepath.Join(filepath.Dir(c.MemoryPath), "journal")
}
