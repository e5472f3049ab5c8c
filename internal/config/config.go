package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
	BackendMemory = "memory"
)

// FileName is the config file looked up inside the data dir.
const FileName = "config.yaml"

// Config is the user-tunable part of qrlog.
type Config struct {
	DataDir  string `mapstructure:"data_dir" yaml:"data_dir"`
	Backend  string `mapstructure:"backend"  yaml:"backend"`
	Locale   string `mapstructure:"locale"   yaml:"locale"`
	Timezone string `mapstructure:"timezone" yaml:"timezone"`
	LogLevel string `mapstructure:"log_level" yaml:"log_level"`
}

// DefaultDataDir is $HOME/.qrlog, or .qrlog when there is no home dir.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".qrlog"
	}
	return filepath.Join(home, ".qrlog")
}

func Defaults() Config {
	return Config{
		DataDir:  DefaultDataDir(),
		Backend:  BackendSQLite,
		Locale:   "en",
		Timezone: "Local",
		LogLevel: "warn",
	}
}

// SetDefaults registers Defaults on v.
func SetDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("data_dir", d.DataDir)
	v.SetDefault("backend", d.Backend)
	v.SetDefault("locale", d.Locale)
	v.SetDefault("timezone", d.Timezone)
	v.SetDefault("log_level", d.LogLevel)
}

// Load reads configuration into v and decodes it. With an empty path the
// config file is looked up in the data dir; a missing file is not an error.
// Environment variables prefixed QRLOG_ override the file.
func Load(v *viper.Viper, path string) (Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix("qrlog")
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigFile(filepath.Join(v.GetString("data_dir"), FileName))
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Backend {
	case BackendSQLite, BackendFile, BackendMemory:
	default:
		return fmt.Errorf("invalid backend %q (want sqlite, file or memory)", c.Backend)
	}
	switch c.Locale {
	case "en", "zh":
	default:
		return fmt.Errorf("invalid locale %q (want en or zh)", c.Locale)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	if c.Backend != BackendMemory && strings.TrimSpace(c.DataDir) == "" {
		return fmt.Errorf("data_dir cannot be empty")
	}
	return nil
}

// Location resolves Timezone.
func (c Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// Level resolves LogLevel.
func (c Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("invalid log_level %q", c.LogLevel)
	}
	return l, nil
}

// WriteDefault writes cfg to path unless a file already exists there.
// It reports whether a file was written.
func WriteDefault(path string, cfg Config) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return false, fmt.Errorf("create config dir: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return false, fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return false, fmt.Errorf("write config: %w", err)
	}
	return true, nil
}
