package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/janekbaraniewski/openactivity/internal/core"
)

const (
	EnvDataPath = "OPENACTIVITY_DATA"
	EnvTheme    = "OPENACTIVITY_THEME"
	EnvDebug    = "OPENACTIVITY_DEBUG"
)

type Config struct {
	Theme         string         `json:"theme" toml:"theme"`
	DataPath      string         `json:"data_path" toml:"data_path"`
	WeekStart     core.WeekStart `json:"week_start,omitempty" toml:"week_start,omitempty"`
	DefaultMetric core.MetricKey `json:"default_metric" toml:"default_metric"`
	LogLevel      string         `json:"log_level" toml:"log_level"`
}

func DefaultConfig() Config {
	return Config{
		Theme:         "GitHub Dark",
		DefaultMetric: core.MetricActiveDays,
		LogLevel:      "info",
	}
}

func ConfigDir() string {
	if runtime.GOOS == "windows" {
		return filepath.Join(os.Getenv("APPDATA"), "openactivity")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "openactivity")
}

func ConfigPath() string {
	return filepath.Join(ConfigDir(), "settings.json")
}

func Load() (Config, error) {
	return LoadFrom(ConfigPath())
}

// LoadFrom reads a JSON or, for .toml paths, TOML config. A missing file
// yields the defaults. Environment overrides are applied last.
func LoadFrom(path string) (Config, error) {
	cfg, err := readFile(path)
	if err != nil {
		return cfg, err
	}
	applyEnv(&cfg)
	return cfg, nil
}

func normalize(cfg *Config) {
	def := DefaultConfig()
	if strings.TrimSpace(cfg.Theme) == "" {
		cfg.Theme = def.Theme
	}
	if m, ok := core.ParseMetricKey(string(cfg.DefaultMetric)); ok {
		cfg.DefaultMetric = m
	} else {
		cfg.DefaultMetric = def.DefaultMetric
	}
	if cfg.WeekStart != "" {
		cfg.WeekStart = cfg.WeekStart.Normalize()
	}
	if strings.TrimSpace(cfg.LogLevel) == "" {
		cfg.LogLevel = def.LogLevel
	}
}

func applyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv(EnvDataPath)); v != "" {
		cfg.DataPath = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvTheme)); v != "" {
		cfg.Theme = v
	}
}

// LoadEnv loads .env files into the process environment without overriding
// variables that are already set. Missing files are skipped.
func LoadEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env", filepath.Join(ConfigDir(), ".env")}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("loading %s: %w", p, err)
		}
	}
	return nil
}

// saveMu guards read-modify-write cycles on the config file.
var saveMu sync.Mutex

func Save(cfg Config) error {
	return SaveTo(ConfigPath(), cfg)
}

func SaveTo(path string, cfg Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	var data []byte
	if isTOML(path) {
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
			return fmt.Errorf("marshaling config: %w", err)
		}
		data = buf.Bytes()
	} else {
		var err error
		data, err = json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling config: %w", err)
		}
		data = append(data, '\n')
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// SaveThemeTo persists a theme name into the config file (read-modify-write).
func SaveThemeTo(path string, theme string) error {
	saveMu.Lock()
	defer saveMu.Unlock()

	cfg, err := readFile(path)
	if err != nil {
		cfg = DefaultConfig()
	}
	cfg.Theme = theme
	return SaveTo(path, cfg)
}

// readFile is LoadFrom without environment overrides, so that saving never
// writes an env value back to disk.
func readFile(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if isTOML(path) {
		_, err = toml.Decode(string(data), &cfg)
	} else {
		err = json.Unmarshal(data, &cfg)
	}
	if err != nil {
		return DefaultConfig(), fmt.Errorf("parsing config %s: %w", path, err)
	}

	normalize(&cfg)
	return cfg, nil
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}
