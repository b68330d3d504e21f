package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// AnalysisConfig tunes the document-analysis pipeline.
type AnalysisConfig struct {
	SummarySentences int `yaml:"summary_sentences"`
	KeywordCount     int `yaml:"keyword_count"`
}

// StoreConfig selects and configures the record store implementation.
type StoreConfig struct {
	Type     string          `yaml:"type"`
	Postgres *PostgresConfig `yaml:"postgres,omitempty"`
}

// PostgresConfig contains connection details for the Postgres store.
type PostgresConfig struct {
	DSN      string `yaml:"dsn"`
	MaxConns int32  `yaml:"max_conns"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Port            string `yaml:"port"`
	ReadTimeoutSecs int    `yaml:"read_timeout_secs"`
	Environment     string `yaml:"environment"`
}

// LogConfig configures the structured logger.
type LogConfig struct {
	Level string `yaml:"level"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Analysis AnalysisConfig `yaml:"analysis"`
	Store    StoreConfig    `yaml:"store"`
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
}

// Load reads a config from a specified path. If the file does not exist, returns defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := defaultConfig()
			applyEnvOverrides(cfg)
			return cfg, nil
		}
		return nil, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyConfigDefaults(&cfg)
	applyEnvOverrides(&cfg)
	return &cfg, nil
}

// LoadDefault tries ./config.yaml first, then ~/.config/policypulse/config.yaml.
// If neither exists, it writes defaults to ~/.config/policypulse/config.yaml and returns them.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "config.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	cfg := defaultConfig()
	if err := Save(userPath, cfg); err != nil {
		return nil, "", err
	}
	applyEnvOverrides(cfg)
	return cfg, userPath, nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "policypulse", "config.yaml"), nil
}

func defaultConfig() *AppConfig {
	return &AppConfig{
		Analysis: AnalysisConfig{SummarySentences: 5, KeywordCount: 8},
		Store:    StoreConfig{Type: "memory"},
		Server:   ServerConfig{Port: "8080", ReadTimeoutSecs: 15, Environment: "development"},
		Log:      LogConfig{Level: "info"},
	}
}

func applyConfigDefaults(cfg *AppConfig) {
	if cfg.Analysis.SummarySentences == 0 {
		cfg.Analysis.SummarySentences = 5
	}
	if cfg.Analysis.KeywordCount == 0 {
		cfg.Analysis.KeywordCount = 8
	}
	if cfg.Store.Type == "" {
		cfg.Store.Type = "memory"
	}
	if cfg.Server.Port == "" {
		cfg.Server.Port = "8080"
	}
	if cfg.Server.ReadTimeoutSecs == 0 {
		cfg.Server.ReadTimeoutSecs = 15
	}
	if cfg.Server.Environment == "" {
		cfg.Server.Environment = "development"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Store.Type == "postgres" && cfg.Store.Postgres != nil && cfg.Store.Postgres.MaxConns == 0 {
		cfg.Store.Postgres.MaxConns = 4
	}
}

// applyEnvOverrides lets DATABASE_URL, PORT and LOG_LEVEL win over the file.
func applyEnvOverrides(cfg *AppConfig) {
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		if cfg.Store.Postgres == nil {
			cfg.Store.Postgres = &PostgresConfig{MaxConns: 4}
		}
		cfg.Store.Postgres.DSN = dsn
	}
	if port := os.Getenv("PORT"); port != "" {
		cfg.Server.Port = port
	}
	if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
		cfg.Log.Level = lvl
	}
}
