package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

const (
	envPrefix         = "RETROLOG_"
	maxConfigFileSize = 1024 * 1024
	defaultUser       = "me"
)

type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

type ServerConfig struct {
	Addr string `koanf:"addr"`
}

type SuggestConfig struct {
	Plugin  string        `koanf:"plugin"`
	Timeout time.Duration `koanf:"timeout"`
}

type Config struct {
	VaultPath string        `koanf:"-"`
	DBPath    string        `koanf:"db_path"`
	User      string        `koanf:"user"`
	WeekStart string        `koanf:"week_start"`
	Timezone  string        `koanf:"timezone"`
	Log       LogConfig     `koanf:"log"`
	Server    ServerConfig  `koanf:"server"`
	Suggest   SuggestConfig `koanf:"suggest"`
}

// New returns the defaults for a vault without reading any file or env.
func New(vaultPath string) (Config, error) {
	if vaultPath == "" {
		return Config{}, fmt.Errorf("vault path is required")
	}
	cfg := Config{VaultPath: vaultPath}
	applyDefaults(&cfg)
	return cfg, nil
}

// DefaultConfigPath is where Load looks when no explicit file is given.
func DefaultConfigPath(vaultPath string) string {
	return filepath.Join(vaultPath, ".retrolog", "config.yaml")
}

// Load layers <vault>/.env, the YAML config file and RETROLOG_* variables
// over the defaults. Both files are optional.
func Load(vaultPath, configPath string) (Config, error) {
	if vaultPath == "" {
		return Config{}, fmt.Errorf("vault path is required")
	}
	dotenv := filepath.Join(vaultPath, ".env")
	if _, err := os.Stat(dotenv); err == nil {
		if err := godotenv.Load(dotenv); err != nil {
			return Config{}, fmt.Errorf("load %s: %w", dotenv, err)
		}
	}

	k := koanf.New(".")
	if configPath == "" {
		configPath = DefaultConfigPath(vaultPath)
	}
	content, err := readConfigFile(configPath)
	if err != nil {
		return Config{}, err
	}
	if content != nil {
		if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("load config file %s: %w", configPath, err)
		}
	}
	if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		return Config{}, fmt.Errorf("load environment: %w", err)
	}

	cfg := Config{}
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.VaultPath = vaultPath
	applyDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func readConfigFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open config file: %w", err)
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat config file: %w", err)
	}
	if info.Size() > maxConfigFileSize {
		return nil, fmt.Errorf("config file %s exceeds %d bytes", path, maxConfigFileSize)
	}
	content, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	return content, nil
}

// envKey maps RETROLOG_LOG_LEVEL to log.level and RETROLOG_WEEK_START to
// week_start: only known sections are split on the first underscore.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, envPrefix))
	parts := strings.SplitN(key, "_", 2)
	if len(parts) == 2 {
		switch parts[0] {
		case "log", "server", "suggest":
			return parts[0] + "." + parts[1]
		}
	}
	return key
}

func applyDefaults(cfg *Config) {
	if cfg.DBPath == "" {
		cfg.DBPath = filepath.Join(cfg.VaultPath, ".retrolog", "retrolog.db")
	}
	if cfg.User == "" {
		cfg.User = defaultUser
	}
	if cfg.WeekStart == "" {
		cfg.WeekStart = "monday"
	}
	if cfg.Timezone == "" {
		cfg.Timezone = "UTC"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "warn"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = "127.0.0.1:8787"
	}
	if cfg.Suggest.Timeout <= 0 {
		cfg.Suggest.Timeout = 5 * time.Second
	}
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.User) == "" {
		return fmt.Errorf("user is required")
	}
	switch strings.ToLower(c.WeekStart) {
	case "sunday", "monday":
	default:
		return fmt.Errorf("week_start must be sunday or monday, got %q", c.WeekStart)
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("invalid log format %q", c.Log.Format)
	}
	return nil
}

func (c Config) WeekStartDay() time.Weekday {
	if strings.EqualFold(c.WeekStart, "sunday") {
		return time.Sunday
	}
	return time.Monday
}

// Location falls back to UTC; Validate reports bad zones.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
