package config

import (
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Project struct {
		Root          string   `yaml:"root"`
		IgnoreFolders []string `yaml:"ignore_folders"`
	} `yaml:"project"`
	Cache struct {
		Path string `yaml:"path"` // SQLite database for generated docstrings
	} `yaml:"cache"`
	AI struct {
		Provider string `yaml:"provider"`
		Model    string `yaml:"model"`
		APIKey   string `yaml:"api_key"`
		BaseURL  string `yaml:"base_url"` // OpenAI-compatible endpoint override
	} `yaml:"ai"`
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	var cfg Config
	cfg.Project.Root = "."
	cfg.Cache.Path = ".docforge/docs.db"
	cfg.AI.Provider = "openai"
	cfg.AI.Model = "gpt-4o-mini"
	applyEnv(&cfg)
	return &cfg
}

// Load reads the YAML config at path, layered over .env and overridden by
// environment variables. A missing config file is not an error; defaults
// apply.
func Load(path string) (*Config, error) {
	// 1. Load .env if present
	_ = godotenv.Load()

	cfg := Default()

	// 2. Load YAML config
	file, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}
	if err := yaml.Unmarshal(file, cfg); err != nil {
		return nil, err
	}

	// 3. Override with environment variables if present
	applyEnv(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if apiKey := os.Getenv("DOCFORGE_API_KEY"); apiKey != "" {
		cfg.AI.APIKey = apiKey
	}
	if apiKey := os.Getenv("OPENAI_API_KEY"); apiKey != "" && cfg.AI.APIKey == "" {
		cfg.AI.APIKey = apiKey
	}
	if provider := os.Getenv("DOCFORGE_AI_PROVIDER"); provider != "" {
		cfg.AI.Provider = provider
	}
	if model := os.Getenv("DOCFORGE_MODEL"); model != "" {
		cfg.AI.Model = model
	}
}
