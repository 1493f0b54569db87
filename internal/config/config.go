package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	defaultConfigRelPath = ".sdkdoc/config.yaml"
	defaultStoreRelPath  = ".sdkdoc/sdkdoc.db"
)

type ModelsConfig struct {
	Dir string `yaml:"dir"`
}

type OutputConfig struct {
	Dir string `yaml:"dir"`
}

type StoreConfig struct {
	Path string `yaml:"path"`
}

// AutoPopulatedRule marks a request parameter the client fills in itself.
type AutoPopulatedRule struct {
	Service     string `yaml:"service"`
	Operation   string `yaml:"operation"`
	Param       string `yaml:"param"`
	Description string `yaml:"description"`
}

// HiddenRule removes a parameter from the request docs of some operations.
type HiddenRule struct {
	Service    string   `yaml:"service"`
	Param      string   `yaml:"param"`
	Operations []string `yaml:"operations"`
}

// AppendRule adds text to a request parameter's description.
type AppendRule struct {
	Service   string `yaml:"service"`
	Operation string `yaml:"operation"`
	Param     string `yaml:"param"`
	Doc       string `yaml:"doc"`
}

// FilterConfig selects operations by case-insensitive glob patterns.
type FilterConfig struct {
	Include []string `yaml:"include"`
	Exclude []string `yaml:"exclude"`
}

type DocsConfig struct {
	AutoPopulated []AutoPopulatedRule `yaml:"auto_populated"`
	Hidden        []HiddenRule        `yaml:"hidden"`
	Appended      []AppendRule        `yaml:"appended"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type Config struct {
	Models ModelsConfig `yaml:"models"`
	Output OutputConfig `yaml:"output"`
	Store  StoreConfig  `yaml:"store"`
	Docs   DocsConfig   `yaml:"docs"`
	Filter FilterConfig `yaml:"filter"`
	Server ServerConfig `yaml:"server"`
	Log    LogConfig    `yaml:"log"`
}

// Load loads YAML config, then applies env overrides.
func Load(configPath string) (*Config, error) {
	cfg := &Config{}

	if configPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		configPath = filepath.Join(home, defaultConfigRelPath)
	}

	if data, err := os.ReadFile(configPath); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg.SetDefaults()
	applyEnvOverrides(cfg)
	return cfg, nil
}

func (c *Config) SetDefaults() {
	if c.Models.Dir == "" {
		c.Models.Dir = "./models"
	}
	if c.Output.Dir == "" {
		c.Output.Dir = "./output"
	}
	if c.Store.Path == "" {
		if home, err := os.UserHomeDir(); err == nil {
			c.Store.Path = filepath.Join(home, defaultStoreRelPath)
		} else {
			c.Store.Path = "sdkdoc.db"
		}
	}
	if c.Server.Host == "" {
		c.Server.Host = "127.0.0.1"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 3000
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.Output.Dir) == "" {
		return errors.New("output.dir cannot be empty")
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	for _, p := range append(append([]string{}, c.Filter.Include...), c.Filter.Exclude...) {
		if _, err := path.Match(p, ""); err != nil {
			return fmt.Errorf("filter pattern %q: %w", p, err)
		}
	}
	for i, r := range c.Docs.AutoPopulated {
		if r.Service == "" || r.Operation == "" || r.Param == "" {
			return fmt.Errorf("docs.auto_populated[%d]: service, operation and param are required", i)
		}
	}
	for i, r := range c.Docs.Hidden {
		if r.Service == "" || r.Param == "" || len(r.Operations) == 0 {
			return fmt.Errorf("docs.hidden[%d]: service, param and operations are required", i)
		}
	}
	for i, r := range c.Docs.Appended {
		if r.Service == "" || r.Operation == "" || r.Param == "" || r.Doc == "" {
			return fmt.Errorf("docs.appended[%d]: service, operation, param and doc are required", i)
		}
	}
	return nil
}

// ValidateRender enforces render-specific requirements.
func (c *Config) ValidateRender() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if err := ensureWritableDir(c.Output.Dir); err != nil {
		return fmt.Errorf("output.dir not writable: %w", err)
	}
	return nil
}

// SlogLevel parses log.level.
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return 0, fmt.Errorf("log.level: %w", err)
	}
	return level, nil
}

func ensureWritableDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, ".writable-*")
	if err != nil {
		return err
	}
	name := f.Name()
	_ = f.Close()
	return os.Remove(name)
}

func applyEnvOverrides(c *Config) {
	setString(&c.Models.Dir, "SDKDOC_MODELS_DIR")
	setString(&c.Output.Dir, "SDKDOC_OUTPUT_DIR")
	setString(&c.Store.Path, "SDKDOC_STORE_PATH")
	setString(&c.Server.Host, "SDKDOC_SERVER_HOST")
	setInt(&c.Server.Port, "SDKDOC_SERVER_PORT")
	setString(&c.Log.Level, "SDKDOC_LOG_LEVEL")
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}
