package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type APIConfig struct {
	BaseURL string `yaml:"base_url"`
	Prefix  string `yaml:"prefix"`
	Timeout string `yaml:"timeout"`
}

type ClientConfig struct {
	SignInPath     string   `yaml:"sign_in_path"`
	PublicPaths    []string `yaml:"public_paths"`
	PublicPrefixes []string `yaml:"public_prefixes"`
	AllowedRoles   []string `yaml:"allowed_roles"`
}

type ConfigFile struct {
	API    APIConfig    `yaml:"api"`
	Client ClientConfig `yaml:"client"`
}

// Config is the resolved runtime configuration.
type Config struct {
	BaseURL        string
	APIPrefix      string
	Timeout        time.Duration
	SignInPath     string
	PublicPaths    []string
	PublicPrefixes []string
	AllowedRoles   []string
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// Load reads config/config.yml (or $NETWORKSTORE_CONFIG) and applies
// environment overrides. A .env file is honored when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	path := env("NETWORKSTORE_CONFIG", "config/config.yml")
	configFile, err := loadConfigFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	timeout, err := time.ParseDuration(env("NETWORKSTORE_API_TIMEOUT", configFile.API.Timeout))
	if err != nil {
		return nil, fmt.Errorf("invalid api timeout: %w", err)
	}

	cfg := &Config{
		BaseURL:        env("NETWORKSTORE_API_URL", configFile.API.BaseURL),
		APIPrefix:      configFile.API.Prefix,
		Timeout:        timeout,
		SignInPath:     configFile.Client.SignInPath,
		PublicPaths:    configFile.Client.PublicPaths,
		PublicPrefixes: configFile.Client.PublicPrefixes,
		AllowedRoles:   configFile.Client.AllowedRoles,
	}

	if v := os.Getenv("NETWORKSTORE_ALLOWED_ROLES"); v != "" {
		cfg.AllowedRoles = splitList(v)
	}

	applyDefaults(cfg)
	return cfg, nil
}

// Default returns a configuration usable without a config file, for tests
// and ad hoc tooling.
func Default(baseURL string) *Config {
	cfg := &Config{BaseURL: baseURL}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.APIPrefix == "" {
		cfg.APIPrefix = "/api/v1"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 15 * time.Second
	}
	if cfg.SignInPath == "" {
		cfg.SignInPath = "/signin"
	}
	if len(cfg.PublicPaths) == 0 {
		cfg.PublicPaths = []string{"/", "/signin", "/signup", "/shop", "/products", "/about", "/contact"}
	}
	if len(cfg.PublicPrefixes) == 0 {
		cfg.PublicPrefixes = []string{"/products/"}
	}
	if len(cfg.AllowedRoles) == 0 {
		cfg.AllowedRoles = []string{"customer"}
	}
}

func loadConfigFile(path string) (*ConfigFile, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read config file at %s: %w", path, err)
	}

	var config ConfigFile
	if err := yaml.Unmarshal(bytes, &config); err != nil {
		return nil, fmt.Errorf("could not parse config yaml: %w", err)
	}

	return &config, nil
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
