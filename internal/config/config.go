package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/mywallet-dev/mywallet/internal/envelope"
)

// FileName is the config file at the wallet root.
const FileName = "mywallet.yaml"

// Environment variables read from the process or <root>/.env.
const (
	EnvLogLevel = "MYWALLET_LOG_LEVEL"
	EnvPIN      = "MYWALLET_PIN"
)

// Config represents the top-level mywallet.yaml configuration.
type Config struct {
	Wallet WalletConfig `yaml:"wallet"`
	Backup BackupConfig `yaml:"backup"`
	Git    GitConfig    `yaml:"git"`
	Log    LogConfig    `yaml:"log"`
}

// WalletConfig identifies the wallet.
type WalletConfig struct {
	Name     string `yaml:"name"`
	Currency string `yaml:"currency"` // ISO 4217, e.g. "USD"
}

// BackupConfig locates exports and the import inbox, relative to the wallet root.
type BackupConfig struct {
	Dir   string          `yaml:"dir"`
	Inbox string          `yaml:"inbox"`
	KDF   envelope.Params `yaml:"kdf"`
}

// GitConfig controls git integration.
type GitConfig struct {
	AutoCommit  bool   `yaml:"auto_commit"`
	AuthorName  string `yaml:"author_name"`
	AuthorEmail string `yaml:"author_email"`
}

// LogConfig sets the log level: debug, info, warn or error.
type LogConfig struct {
	Level string `yaml:"level"`
}

// Env holds settings taken from environment variables.
type Env struct {
	LogLevel string
	PIN      string
}

// Load reads a mywallet.yaml file from disk. Zero backup fields fall back to
// their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.fillDefaults()
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new wallet.
func Default(walletName, currency string) *Config {
	cfg := &Config{
		Wallet: WalletConfig{
			Name:     walletName,
			Currency: currency,
		},
		Git: GitConfig{
			AutoCommit:  true,
			AuthorName:  "MyWallet",
			AuthorEmail: "wallet@mywallet.dev",
		},
		Log: LogConfig{Level: "warn"},
	}
	cfg.fillDefaults()
	return cfg
}

func (c *Config) fillDefaults() {
	if c.Wallet.Currency == "" {
		c.Wallet.Currency = "USD"
	}
	if c.Backup.Dir == "" {
		c.Backup.Dir = "backups"
	}
	if c.Backup.Inbox == "" {
		c.Backup.Inbox = "import"
	}
	if c.Backup.KDF == (envelope.Params{}) {
		c.Backup.KDF = envelope.DefaultParams
	}
	if c.Log.Level == "" {
		c.Log.Level = "warn"
	}
}

// BackupDir returns the export directory resolved against root.
func (c *Config) BackupDir(root string) string {
	return resolve(root, c.Backup.Dir)
}

// InboxDir returns the import inbox resolved against root.
func (c *Config) InboxDir(root string) string {
	return resolve(root, c.Backup.Inbox)
}

func resolve(root, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(root, p)
}

// LoadEnv reads <root>/.env if present and overlays the process
// environment, which wins.
func LoadEnv(root string) (Env, error) {
	vars, err := godotenv.Read(filepath.Join(root, ".env"))
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return Env{}, fmt.Errorf("reading .env: %w", err)
		}
		vars = map[string]string{}
	}
	for _, key := range []string{EnvLogLevel, EnvPIN} {
		if v, ok := os.LookupEnv(key); ok {
			vars[key] = v
		}
	}
	return Env{LogLevel: vars[EnvLogLevel], PIN: vars[EnvPIN]}, nil
}

// Apply lets environment settings override the file config.
func (e Env) Apply(cfg *Config) {
	if e.LogLevel != "" {
		cfg.Log.Level = e.LogLevel
	}
}
