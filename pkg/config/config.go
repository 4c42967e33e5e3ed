package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config carries everything the indexer needs at process start. Values come
// from an optional YAML file and can be overridden by environment variables.
type Config struct {
	Database Database `yaml:"database"`
	Sync     Sync     `yaml:"sync"`
	GitHub   GitHub   `yaml:"github"`
	GitLab   GitLab   `yaml:"gitlab"`
	HTTP     HTTP     `yaml:"http"`
}

type Database struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"sslmode"`
}

type Sync struct {
	// Timeout bounds a single repository sync; indexing stops early once
	// exceeded and keeps whatever was ingested so far.
	Timeout     time.Duration `yaml:"timeout"`
	Incremental bool          `yaml:"incremental"`
}

type GitHub struct {
	Token string `yaml:"token"`
}

type GitLab struct {
	BaseURL string `yaml:"base_url"`
	Token   string `yaml:"token"`
}

type HTTP struct {
	Addr string `yaml:"addr"`
}

// Load builds a Config from defaults, then the YAML file at path when one
// is given, then environment overrides.
func Load(path string) (Config, error) {
	cfg := Config{
		Database: Database{
			Host:    "localhost",
			Port:    "5432",
			User:    "postgres",
			Name:    "indexer",
			SSLMode: "disable",
		},
		Sync: Sync{
			Timeout:     8 * time.Hour,
			Incremental: true,
		},
		GitLab: GitLab{BaseURL: "https://gitlab.com"},
		HTTP:   HTTP{Addr: ":8080"},
	}

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	cfg.Database.Host = getEnv("DB_HOST", cfg.Database.Host)
	cfg.Database.Port = getEnv("DB_PORT", cfg.Database.Port)
	cfg.Database.User = getEnv("DB_USER", cfg.Database.User)
	cfg.Database.Password = getEnv("DB_PASSWORD", cfg.Database.Password)
	cfg.Database.Name = getEnv("DB_NAME", cfg.Database.Name)
	cfg.GitHub.Token = getEnv("GITHUB_TOKEN", cfg.GitHub.Token)
	cfg.GitLab.Token = getEnv("GITLAB_TOKEN", cfg.GitLab.Token)
	cfg.GitLab.BaseURL = getEnv("GITLAB_URL", cfg.GitLab.BaseURL)
	cfg.HTTP.Addr = getEnv("HTTP_ADDR", cfg.HTTP.Addr)

	if v, ok := os.LookupEnv("SYNC_TIMEOUT_SECONDS"); ok {
		seconds, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("invalid SYNC_TIMEOUT_SECONDS: %w", err)
		}
		cfg.Sync.Timeout = time.Duration(seconds) * time.Second
	}

	return cfg, nil
}

// DSN renders the PostgreSQL connection string.
func (d Database) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		d.Host, d.User, d.Password, d.Name, d.Port, d.SSLMode)
}

// Helper function to fetch environment variables with a fallback value
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
