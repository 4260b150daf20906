// Package config loads the YAML configuration shared by the sshcrypt tools.
package config

import (
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration file.
type Config struct {
	Cipher   Cipher   `yaml:"cipher"`
	KeyBlob  KeyBlob  `yaml:"keyblob"`
	Keystore Keystore `yaml:"keystore"`
	Plugins  []Plugin `yaml:"plugins"`
	Log      Log      `yaml:"log"`
}

// Cipher holds defaults for the file encryptor.
type Cipher struct {
	Name    string `yaml:"name"`
	IV      string `yaml:"iv"`      // hex, empty for all zeros
	Padding string `yaml:"padding"` // "pkcs7" or "none"
}

// KeyBlob holds defaults for reading and writing key blobs.
type KeyBlob struct {
	Headers string `yaml:"headers"`
	// MaxSize caps blob files read by the tools, in bytes. 0 means the
	// format limit of 64 KiB.
	MaxSize int `yaml:"max_size"`
}

// Keystore selects and configures the key blob store.
type Keystore struct {
	Backend string `yaml:"backend"` // "keyring", "memory" or "postgres"

	// Keyring backend
	ServiceName     string   `yaml:"service_name"`
	AllowedBackends []string `yaml:"allowed_backends"`
	FileDir         string   `yaml:"file_dir"`
	FilePassword    string   `yaml:"file_password"`

	// Postgres backend
	Database DatabaseConfig `yaml:"database"`
}

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     net.JoinHostPort(d.Host, strconv.Itoa(d.Port)),
		Path:     "/" + d.DBName,
		RawQuery: url.Values{"sslmode": {d.SSLMode}}.Encode(),
	}
	return u.String()
}

// Plugin describes an external cipher engine.
type Plugin struct {
	Type        string `yaml:"type"` // loader type, e.g. "wasm"
	Name        string `yaml:"name"`
	Path        string `yaml:"path"`
	BlockLength int    `yaml:"block_length"`
	KeyLength   int    `yaml:"key_length"`
}

// Log configures the CLI loggers.
type Log struct {
	Level string `yaml:"level"`
}

// SlogLevel maps Level to a slog level, defaulting to info.
func (l Log) SlogLevel() slog.Level {
	switch strings.ToLower(l.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Cipher: Cipher{
			Name:    "twofish-cbc",
			Padding: "pkcs7",
		},
		Keystore: Keystore{
			Backend:     "keyring",
			ServiceName: "sshcrypt",
			Database: DatabaseConfig{
				Host:     "127.0.0.1",
				Port:     5432,
				User:     "sshcrypt",
				Password: "sshcrypt",
				DBName:   "sshcrypt",
				SSLMode:  "disable",
			},
		},
		Log: Log{Level: "info"},
	}
}

// Load reads the configuration at path over the defaults. A missing file
// yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}
