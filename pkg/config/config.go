// Package config loads the formguard configuration file: server settings and
// the forms whose submissions are guarded.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// EnvConfigPath names the variable consulted when no --config flag is set.
	EnvConfigPath = "FORMGUARD_CONFIG"
	// EnvAddr overrides server.addr.
	EnvAddr = "FORMGUARD_ADDR"

	DefaultAddr         = ":8080"
	DefaultMaxBodyBytes = int64(10 << 20)
	DefaultCacheTTL     = 5 * time.Minute
)

// Config is the root of the configuration file.
type Config struct {
	Server Server `yaml:"server"`
	Cache  Cache  `yaml:"cache"`
	Forms  []Form `yaml:"forms"`
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr         string `yaml:"addr"`
	MaxBodyBytes int64  `yaml:"max_body_bytes"`
}

// Cache configures how long OpenAPI derived definitions are reused.
type Cache struct {
	TTL time.Duration `yaml:"ttl"`
}

// Form declares one guarded form. Required lists the fields that must hold a
// value; when OpenAPI is set the list is derived from the operation instead.
// Declared optionally restricts the field names a submission may reference.
type Form struct {
	ID       string      `yaml:"id"`
	Path     string      `yaml:"path"`
	Required []string    `yaml:"required"`
	Declared []string    `yaml:"declared"`
	HelpHTML string      `yaml:"help_html"`
	OpenAPI  *OpenAPIRef `yaml:"openapi"`
}

// OpenAPIRef points at the operation describing a form's request body.
type OpenAPIRef struct {
	Source    string `yaml:"source"`
	Operation string `yaml:"operation"`
}

// Default returns a configuration with no forms and default server settings.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads the file at path. JSON files are accepted since JSON is valid
// YAML. Environment overrides are applied before validation.
func Load(path string) (*Config, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("config: path is required")
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json":
	default:
		return nil, fmt.Errorf("config: unsupported file extension %q", filepath.Ext(path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a configuration document held in memory.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	cfg.applyDefaults()
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks form declarations for mistakes that would otherwise surface
// per request.
func (c *Config) Validate() error {
	if c.Server.MaxBodyBytes < 0 {
		return errors.New("config: server.max_body_bytes must not be negative")
	}
	seen := make(map[string]struct{}, len(c.Forms))
	for idx, form := range c.Forms {
		id := strings.TrimSpace(form.ID)
		if id == "" {
			return fmt.Errorf("config: forms[%d]: id is required", idx)
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf("config: forms[%d]: duplicate id %q", idx, id)
		}
		seen[id] = struct{}{}

		if form.OpenAPI != nil {
			if strings.TrimSpace(form.OpenAPI.Source) == "" || strings.TrimSpace(form.OpenAPI.Operation) == "" {
				return fmt.Errorf("config: form %q: openapi needs source and operation", id)
			}
			continue
		}
		if len(form.Required) == 0 {
			return fmt.Errorf("config: form %q: declare required fields or an openapi operation", id)
		}
	}
	return nil
}

// Form returns the declaration for id.
func (c *Config) Form(id string) (Form, bool) {
	for _, form := range c.Forms {
		if form.ID == id {
			return form, true
		}
	}
	return Form{}, false
}

// RoutePath returns the path a form is served on, defaulting to "/<id>".
func (f Form) RoutePath() string {
	path := strings.TrimSpace(f.Path)
	if path == "" {
		return "/" + f.ID
	}
	if !strings.HasPrefix(path, "/") {
		return "/" + path
	}
	return path
}

func (c *Config) applyDefaults() {
	if strings.TrimSpace(c.Server.Addr) == "" {
		c.Server.Addr = DefaultAddr
	}
	if c.Server.MaxBodyBytes == 0 {
		c.Server.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if c.Cache.TTL <= 0 {
		c.Cache.TTL = DefaultCacheTTL
	}
	for idx := range c.Forms {
		c.Forms[idx].ID = strings.TrimSpace(c.Forms[idx].ID)
	}
}

func (c *Config) applyEnv() {
	if addr := strings.TrimSpace(os.Getenv(EnvAddr)); addr != "" {
		c.Server.Addr = addr
	}
}
