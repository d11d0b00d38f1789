package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Load loads configuration from a layered set of sources.
//
// The loading order is:
//  1. Built-in defaults
//  2. YAML config file (explicit path, GIFTWISH_CONFIG env, ./config.yaml,
//     /etc/giftwish/config.yaml)
//  3. Environment variable overrides
//  4. File reference resolution (_file suffix)
//  5. Validation
func Load(configPath string) (*Config, error) {
	cfg := Defaults()

	filePath := discoverConfigFile(configPath)
	if filePath != "" {
		if err := loadYAMLFile(filePath, &cfg); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", filePath, err)
		}
	}

	applyEnvOverrides(&cfg)

	if err := resolveFileReferences(&cfg); err != nil {
		return nil, fmt.Errorf("resolving file references: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return &cfg, nil
}

// discoverConfigFile finds the config file path using the discovery order:
// 1. Explicit configPath argument
// 2. GIFTWISH_CONFIG environment variable
// 3. ./config.yaml in the current directory
// 4. /etc/giftwish/config.yaml
//
// Returns empty string if no config file is found.
func discoverConfigFile(configPath string) string {
	if configPath != "" {
		return configPath
	}

	if envPath := os.Getenv("GIFTWISH_CONFIG"); envPath != "" {
		return envPath
	}

	candidates := []string{
		"config.yaml",
		"/etc/giftwish/config.yaml",
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// loadYAMLFile reads and parses a YAML file into the Config struct.
// Fields not present in the YAML retain their current (default) values.
func loadYAMLFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// applyEnvOverrides maps GIFTWISH_* environment variables to config fields.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("GIFTWISH_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("GIFTWISH_STORAGE"); v != "" {
		cfg.Storage.Type = v
	}
	if v := os.Getenv("GIFTWISH_DSN"); v != "" {
		cfg.Storage.Postgres.DSN = v
	}
	if v := os.Getenv("GIFTWISH_MIGRATE_ON_START"); v != "" {
		cfg.Storage.Postgres.MigrateOnStart = v == "true" || v == "1"
	}
	if v := os.Getenv("GIFTWISH_SIGNING_SECRET"); v != "" {
		cfg.Auth.SigningSecret = v
	}
	if v := os.Getenv("GIFTWISH_API_KEY"); v != "" {
		cfg.Auth.APIKey = v
	}
	if v := os.Getenv("GIFTWISH_BCRYPT_COST"); v != "" {
		if cost, err := strconv.Atoi(v); err == nil {
			cfg.Auth.BcryptCost = cost
		}
	}
	if v := os.Getenv("GIFTWISH_READ_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Server.ReadTimeout = d
		}
	}
	if v := os.Getenv("GIFTWISH_WRITE_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Server.WriteTimeout = d
		}
	}
}

// resolveFileReferences reads _file fields and populates the corresponding
// value fields. For each field ending in _file, if the value field is empty
// and the file field is set, the file is read, whitespace is trimmed, and
// the value field is populated.
func resolveFileReferences(cfg *Config) error {
	if cfg.Auth.SigningSecretFile != "" && cfg.Auth.SigningSecret == "" {
		val, err := readSecretFile(cfg.Auth.SigningSecretFile)
		if err != nil {
			return fmt.Errorf("auth.signing_secret_file: %w", err)
		}
		cfg.Auth.SigningSecret = val
	}

	if cfg.Auth.APIKeyFile != "" && cfg.Auth.APIKey == "" {
		val, err := readSecretFile(cfg.Auth.APIKeyFile)
		if err != nil {
			return fmt.Errorf("auth.api_key_file: %w", err)
		}
		cfg.Auth.APIKey = val
	}

	if cfg.Storage.Postgres.DSNFile != "" && cfg.Storage.Postgres.DSN == "" {
		val, err := readSecretFile(cfg.Storage.Postgres.DSNFile)
		if err != nil {
			return fmt.Errorf("storage.postgres.dsn_file: %w", err)
		}
		cfg.Storage.Postgres.DSN = val
	}

	return nil
}

// readSecretFile reads a file and returns its content with surrounding
// whitespace trimmed.
func readSecretFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}
