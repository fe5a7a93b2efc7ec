// Package config loads agentkit configuration from a YAML file and
// environment variables via viper. Credentials live here and are handed to
// tool constructors explicitly; nothing in the orchestration core reads the
// environment on its own.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the agentkit runtime.
type Config struct {
	General  GeneralConfig  `mapstructure:"general"`
	Model    ModelConfig    `mapstructure:"model"`
	Planner  PlannerConfig  `mapstructure:"planner"`
	Executor ExecutorConfig `mapstructure:"executor"`
	Tools    ToolsConfig    `mapstructure:"tools"`
	Store    StoreConfig    `mapstructure:"store"`
}

// GeneralConfig contains general application settings.
type GeneralConfig struct {
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"` // json or text
}

// ModelConfig selects and configures the language model provider.
type ModelConfig struct {
	Provider    string  `mapstructure:"provider"` // openai or anthropic
	Name        string  `mapstructure:"name"`
	Temperature float64 `mapstructure:"temperature"`
	MaxTokens   int64   `mapstructure:"max_tokens"`
	APIKey      string  `mapstructure:"api_key"`
	// MaxCalls caps model calls per orchestration cycle. 0 means unlimited.
	MaxCalls int `mapstructure:"max_calls"`
	// StreamSummary requests token streaming during summarization.
	StreamSummary bool `mapstructure:"stream_summary"`
}

// PlannerConfig tunes the planning stage.
type PlannerConfig struct {
	Retries int `mapstructure:"retries"`
}

// ExecutorConfig tunes tool execution.
type ExecutorConfig struct {
	MaxConcurrency int           `mapstructure:"max_concurrency"`
	StepTimeout    time.Duration `mapstructure:"step_timeout"`
}

// ToolsConfig carries per-tool credentials and endpoints.
type ToolsConfig struct {
	Serper   SerperConfig   `mapstructure:"serper"`
	GitHub   GitHubConfig   `mapstructure:"github"`
	Supabase SupabaseConfig `mapstructure:"supabase"`
}

// SerperConfig configures the Google search tool.
type SerperConfig struct {
	APIKey string `mapstructure:"api_key"`
}

// GitHubConfig configures the repository fetcher tool.
type GitHubConfig struct {
	Token string `mapstructure:"token"`
}

// SupabaseConfig configures the code search tool's vector store.
type SupabaseConfig struct {
	URL string `mapstructure:"url"`
	Key string `mapstructure:"key"`
}

// StoreConfig configures the local repo index database.
type StoreConfig struct {
	Path string `mapstructure:"path"`
}

// Load reads configuration from the given file path (optional) plus
// AGENTKIT_* environment variables. A missing config file is not an error;
// defaults and the environment still apply.
func Load(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix("AGENTKIT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("agentkit")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.agentkit")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("general.log_level", "info")
	v.SetDefault("general.log_format", "text")
	v.SetDefault("model.provider", "openai")
	v.SetDefault("model.temperature", 0.7)
	v.SetDefault("model.max_tokens", 4096)
	v.SetDefault("model.max_calls", 10)
	v.SetDefault("planner.retries", 0)
	v.SetDefault("executor.max_concurrency", 4)
	v.SetDefault("executor.step_timeout", 30*time.Second)
	v.SetDefault("store.path", ".agentkit/index.db")
}
