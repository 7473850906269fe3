package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"thumbnailer/fetcher"
	"thumbnailer/parser"
	"thumbnailer/validation"
)

const (
	// AppName is used for the config directory and the window title.
	AppName = "thumbnailer"

	ConfigFileName = "config.yaml"
	EnvFileName    = ".env"
	LogFileName    = "thumbnailer.log"

	// Environment variables that override the config file.
	EnvRandomImageURL = "THUMBNAILER_RANDOM_IMAGE_URL"
	EnvLogLevel       = "THUMBNAILER_LOG_LEVEL"
)

// defaultDirectory is where config, .env and logs live unless --config says otherwise.
const defaultDirectory = "~/.config/" + AppName

// Config holds the user settings read from config.yaml.
type Config struct {
	RandomImageURL string        `yaml:"random_image_url" validate:"required,url"`
	RequestTimeout time.Duration `yaml:"request_timeout" validate:"gt=0"`
	MinInterval    time.Duration `yaml:"min_request_interval" validate:"gte=0"`
	UserAgent      string        `yaml:"user_agent" validate:"required"`
	PreviewWidth   int           `yaml:"preview_width" validate:"gt=0"`
	PreviewHeight  int           `yaml:"preview_height" validate:"gt=0"`
	LogLevel       string        `yaml:"log_level" validate:"loglevel"`

	// Path is the file the config was loaded from.
	Path string `yaml:"-"`
	// Created is true when Load wrote a fresh default file.
	Created bool `yaml:"-"`
}

// Default returns the settings used for a brand new config file.
func Default() Config {
	return Config{
		RandomImageURL: fetcher.DefaultEndpoint,
		RequestTimeout: fetcher.DefaultTimeout,
		MinInterval:    time.Second,
		UserAgent:      fetcher.DefaultUserAgent,
		PreviewWidth:   640,
		PreviewHeight:  360,
		LogLevel:       "info",
	}
}

// Dir returns the directory holding the config file.
func (c *Config) Dir() string {
	return filepath.Dir(c.Path)
}

// LogPath returns where the rotating log file is written.
func (c *Config) LogPath() string {
	return filepath.Join(c.Dir(), LogFileName)
}

// Load reads the config at path, creating it with defaults when missing.
// An empty path means ~/.config/thumbnailer/config.yaml.
//
// Values are layered: defaults, then the YAML file, then the .env file next
// to it, then the process environment. The result is validated before it is
// returned.
func Load(path string) (*Config, error) {
	if path == "" {
		dir, err := verifyConfigDirectory(defaultDirectory)
		if err != nil {
			return nil, err
		}
		path = filepath.Join(dir, ConfigFileName)
	} else {
		expanded, err := parser.ExpandPath(path)
		if err != nil {
			return nil, fmt.Errorf("cannot expand config path %s: %w", path, err)
		}
		if _, err := verifyConfigDirectory(filepath.Dir(expanded)); err != nil {
			return nil, err
		}
		path = expanded
	}

	created, err := verifyConfigFile(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file %s: %w", path, err)
	}
	cfg.Path = path
	cfg.Created = created

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := validation.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return &cfg, nil
}

// Save writes cfg to path as YAML.
func Save(path string, cfg Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error encoding config: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}

// applyEnv overlays the .env file and then the process environment.
func (c *Config) applyEnv() error {
	envFile := filepath.Join(c.Dir(), EnvFileName)

	fileVars, err := godotenv.Read(envFile)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("error reading %s: %w", envFile, err)
	}

	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := fileVars[key]
		return v, ok
	}

	if v, ok := lookup(EnvRandomImageURL); ok && strings.TrimSpace(v) != "" {
		c.RandomImageURL = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvLogLevel); ok && strings.TrimSpace(v) != "" {
		c.LogLevel = strings.ToLower(strings.TrimSpace(v))
	}

	return nil
}

// check config directory exists or create it
func verifyConfigDirectory(dir string) (string, error) {
	configDirectory, expandError := parser.ExpandPath(dir)
	if expandError != nil {
		return "", fmt.Errorf("cannot verify local configuration directory: %w", expandError)
	}

	_, err := os.Stat(configDirectory)
	if os.IsNotExist(err) {
		if err := os.MkdirAll(configDirectory, 0755); err != nil {
			return "", fmt.Errorf("error creating directory %s: %w", configDirectory, err)
		}
	} else if err != nil {
		return "", fmt.Errorf("error checking directory %s: %w", configDirectory, err)
	}

	return configDirectory, nil
}

// check the config file exists or create it from defaults
func verifyConfigFile(path string) (bool, error) {
	_, err := os.Stat(path)
	if os.IsNotExist(err) {
		if saveErr := Save(path, Default()); saveErr != nil {
			return false, fmt.Errorf("error creating config file: %w", saveErr)
		}
		return true, nil
	} else if err != nil {
		return false, fmt.Errorf("error checking file existence: %w", err)
	}

	return false, nil
}
