package config

import (
	"log"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	configPathEnv  = "NEWS_SUMMARY_CONFIG"
	llmAPIKeyEnv   = "LLM_API_KEY"
	llmModelEnv    = "LLM_MODEL"
	llmBaseURLEnv  = "LLM_BASE_URL"
	databaseDSNEnv = "DATABASE_DSN"
)

// Config holds high-level settings required across the application.
type Config struct {
	Logging  LoggingConfig  `yaml:"logging"`
	LLM      LLMConfig      `yaml:"llm"`
	Pipeline PipelineConfig `yaml:"pipeline"`
	Ingest   IngestConfig   `yaml:"ingest"`
	Database DatabaseConfig `yaml:"database"`
}

// LoggingConfig controls the slog handler.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// LLMConfig defines how to contact the OpenAI-compatible API. The values
// are fixed at startup and injected into the chat client; nothing mutates
// them afterwards.
type LLMConfig struct {
	BaseURL     string  `yaml:"baseUrl"`
	Model       string  `yaml:"model"`
	APIKey      string  `yaml:"apiKey"`
	Temperature float32 `yaml:"temperature"`
	MaxTokens   int     `yaml:"maxTokens"`
}

// PipelineConfig locates the compiled pipeline state and bounds the
// few-shot demonstration count used during optimization.
type PipelineConfig struct {
	StatePath string `yaml:"statePath"`
	MaxDemos  int    `yaml:"maxDemos"`
}

// IngestConfig optionally overrides the column-alias table used to map
// spreadsheet headers onto the logical input fields.
type IngestConfig struct {
	ColumnAliases map[string][]string `yaml:"columnAliases"`
}

// DatabaseConfig describes the optional Postgres dedup store.
type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

// Load reads YAML configuration (if present) and applies environment overrides.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()
	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(llmAPIKeyEnv); v != "" {
		c.LLM.APIKey = v
	}

	if v := os.Getenv(llmModelEnv); v != "" {
		c.LLM.Model = v
	}

	if v := os.Getenv(llmBaseURLEnv); v != "" {
		c.LLM.BaseURL = v
	}

	if v := os.Getenv(databaseDSNEnv); v != "" {
		c.Database.DSN = v
	}
}

func mergeConfig(base, override Config) Config {
	if override.Logging.Level != "" {
		base.Logging = override.Logging
	}

	if override.LLM.BaseURL != "" {
		base.LLM.BaseURL = override.LLM.BaseURL
	}
	if override.LLM.Model != "" {
		base.LLM.Model = override.LLM.Model
	}
	if override.LLM.APIKey != "" {
		base.LLM.APIKey = override.LLM.APIKey
	}
	if override.LLM.Temperature != 0 {
		base.LLM.Temperature = override.LLM.Temperature
	}
	if override.LLM.MaxTokens != 0 {
		base.LLM.MaxTokens = override.LLM.MaxTokens
	}

	if override.Pipeline.StatePath != "" {
		base.Pipeline.StatePath = override.Pipeline.StatePath
	}
	if override.Pipeline.MaxDemos != 0 {
		base.Pipeline.MaxDemos = override.Pipeline.MaxDemos
	}

	if len(override.Ingest.ColumnAliases) > 0 {
		base.Ingest.ColumnAliases = override.Ingest.ColumnAliases
	}

	if override.Database.DSN != "" {
		base.Database = override.Database
	}

	return base
}

func defaultConfig() Config {
	return Config{
		Logging: LoggingConfig{Level: "info"},
		LLM: LLMConfig{
			BaseURL:     "https://api.chatanywhere.tech/v1",
			Model:       "deepseek-v3-2-exp",
			APIKey:      "",
			Temperature: 0.3,
			MaxTokens:   1024,
		},
		Pipeline: PipelineConfig{
			StatePath: "best_pipeline.json",
			MaxDemos:  4,
		},
	}
}
