package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/sirupsen/logrus"
)

type Duration struct{ time.Duration }

// [Duration] implements [json.Marshaler]
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Duration) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch value := v.(type) {
	case float64:
		d.Duration = time.Duration(value)
		return nil
	case string:
		var err error
		d.Duration, err = time.ParseDuration(value)
		if err != nil {
			return err
		}
		return nil

	default:
		return errors.New("invalid duration")
	}
}

// [Duration] implements [encoding.TextUnmarshaler] for TOML files and
// environment variables.
func (d *Duration) UnmarshalText(text []byte) (err error) {
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

type Config struct {
	Mode            string   `json:"mode" toml:"mode" env:"MINES_MODE"`
	Addr            string   `json:"addr" toml:"addr" env:"MINES_ADDR"`
	LogLevel        string   `json:"log_level" toml:"log_level" env:"MINES_LOG_LEVEL"`
	LogFile         string   `json:"log_file" toml:"log_file" env:"MINES_LOG_FILE"`
	SessionTTL      Duration `json:"session_ttl" toml:"session_ttl" env:"MINES_SESSION_TTL"`
	JanitorInterval Duration `json:"janitor_interval" toml:"janitor_interval" env:"MINES_JANITOR_INTERVAL"`
	MaxCells        int      `json:"max_cells" toml:"max_cells" env:"MINES_MAX_CELLS"`
	AllowedOrigins  []string `json:"allowed_origins" toml:"allowed_origins" env:"MINES_ALLOWED_ORIGINS" envSeparator:","`
}

func Default() Config {
	return Config{
		Mode:            "development",
		Addr:            ":8080",
		SessionTTL:      Duration{time.Hour},
		JanitorInterval: Duration{time.Minute},
		MaxCells:        10000,
	}
}

func (c Config) Fields() logrus.Fields {
	return map[string]any{
		"mode":             c.Mode,
		"addr":             c.Addr,
		"log_level":        c.LogLevel,
		"log_file":         c.LogFile,
		"session_ttl":      c.SessionTTL.String(),
		"janitor_interval": c.JanitorInterval.String(),
		"max_cells":        c.MaxCells,
		"allowed_origins":  c.AllowedOrigins,
	}
}

func (c Config) Production() bool {
	return c.Mode == "production"
}

func (c Config) Development() bool {
	return c.Mode != "production"
}

func (c Config) Validate() error {
	switch {
	case c.Mode != "development" && c.Mode != "production":
		return fmt.Errorf("unknown mode %q", c.Mode)
	case c.Addr == "":
		return errors.New("addr must not be empty")
	case c.SessionTTL.Duration <= 0:
		return errors.New("session_ttl must be positive")
	case c.JanitorInterval.Duration <= 0:
		return errors.New("janitor_interval must be positive")
	case c.MaxCells <= 0:
		return errors.New("max_cells must be positive")
	}
	return nil
}

// ReadConfig decodes a JSON file, or a TOML file when path ends in .toml,
// over the values already in config.
func ReadConfig(path string, config *Config) error {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		_, err := toml.DecodeFile(path, config)
		return err
	}
	if b, err := os.ReadFile(path); err != nil {
		return err
	} else {
		return json.Unmarshal(b, config)
	}
}

// Load applies, in order, the defaults, the file at path (if any) and the
// MINES_* environment variables.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		if err := ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("unable to read config %s: %w", path, err)
		}
	}
	if err := ParseEnv(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}
