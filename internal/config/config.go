package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// DefaultAPIURL is used when api_url is unset.
const DefaultAPIURL = "http://localhost:8000"

// DefaultTagPlaceholder is shown in empty tag inputs.
const DefaultTagPlaceholder = "add tags…"

// Config holds dashboard configuration stored at ~/.nebula/dashboard.yaml.
type Config struct {
	APIURL         string `yaml:"api_url" validate:"omitempty,api_url"`
	APIKey         string `yaml:"api_key,omitempty" validate:"max=256"`
	DevMode        bool   `yaml:"dev_mode"`
	LogPath        string `yaml:"log_path,omitempty"`
	TagPlaceholder string `yaml:"tag_placeholder,omitempty" validate:"max=64"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report fields by their YAML key.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("api_url", func(fl validator.FieldLevel) bool {
		return checkAPIURL(fl.Field().String()) == nil
	}); err != nil {
		panic(fmt.Sprintf("failed to register api_url validator: %v", err))
	}
	return v
}

// Dir returns the directory holding config and logs.
func Dir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".nebula")
}

// Path returns the config file path.
func Path() string {
	return filepath.Join(Dir(), "dashboard.yaml")
}

// Default returns a config with every optional field filled in.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads and parses the config file. A missing file yields an error
// wrapping os.ErrNotExist; insecure permissions are rejected.
func Load() (*Config, error) {
	path := Path()

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("config not found: %w", err)
	}

	perm := info.Mode().Perm()
	if perm != 0600 {
		return nil, fmt.Errorf("config permissions too open: %04o (want 0600)", perm)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return &cfg, nil
}

// LoadOrDefault is Load, falling back to Default when the file does not exist.
func LoadOrDefault() (*Config, error) {
	cfg, err := Load()
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Validate checks fields that cannot be defaulted.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("validate config: %w", err)
	}
	fe := fieldErrs[0]
	if fe.Tag() == "api_url" {
		return checkAPIURL(c.APIURL)
	}
	return fmt.Errorf("invalid %s: must satisfy %s=%s", fe.Field(), fe.Tag(), fe.Param())
}

func checkAPIURL(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid api_url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid api_url: scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid api_url: missing host")
	}
	return nil
}

func (c *Config) applyDefaults() {
	c.APIURL = strings.TrimSpace(c.APIURL)
	if c.APIURL == "" {
		c.APIURL = DefaultAPIURL
	}
	if c.LogPath == "" {
		c.LogPath = filepath.Join(Dir(), "dashboard.log")
	}
	if c.TagPlaceholder == "" {
		c.TagPlaceholder = DefaultTagPlaceholder
	}
}

// MaskKey hides the middle of an API key for display.
func MaskKey(k string) string {
	if k == "" {
		return "(none)"
	}
	if len(k) <= 8 {
		return strings.Repeat("•", len(k))
	}
	return k[:4] + strings.Repeat("•", 4) + k[len(k)-4:]
}

// Save writes the config to disk with secure permissions.
func (c *Config) Save() error {
	if err := c.Validate(); err != nil {
		return err
	}
	path := Path()

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	// WriteFile keeps the mode of an existing file.
	return os.Chmod(path, 0600)
}
