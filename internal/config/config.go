// Package config loads user defaults for the tak command.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/adrg/xdg"
	"github.com/icco/takrules"
	"gopkg.in/yaml.v3"
)

var (
	cfgFile = "takrules/config.yaml"
	dbFile  = "takrules/takrules.db"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds the defaults applied before command line flags.
type Config struct {
	Size        int    `yaml:"size"`
	Packed      bool   `yaml:"packed"`
	RoadTie     string `yaml:"road_tie"`
	DatabaseURL string `yaml:"database_url"`
	Verbose     bool   `yaml:"verbose"`
}

// Default is the configuration used when no file exists.
func Default() Config {
	return Config{
		Size:    5,
		RoadTie: takrules.RoadTieEvaluationOrder.String(),
	}
}

// ApplyDefaults fills in zero values.
func (c *Config) ApplyDefaults() {
	d := Default()
	if c.Size == 0 {
		c.Size = d.Size
	}
	if c.RoadTie == "" {
		c.RoadTie = d.RoadTie
	}
}

// Validate checks the values a game can be built from.
func (c *Config) Validate() error {
	if c.Size < takrules.MinSize || c.Size > takrules.MaxSize {
		return fmt.Errorf("%w: size %d", ErrInvalidConfig, c.Size)
	}
	if c.Packed && c.Size != 5 {
		return fmt.Errorf("%w: packed boards are 5x5, size is %d", ErrInvalidConfig, c.Size)
	}
	if _, ok := takrules.ParseRoadTieRule(c.RoadTie); !ok {
		return fmt.Errorf("%w: road_tie %q", ErrInvalidConfig, c.RoadTie)
	}
	return nil
}

// RoadTieRule is the parsed road_tie value.
func (c *Config) RoadTieRule() takrules.RoadTieRule {
	rule, _ := takrules.ParseRoadTieRule(c.RoadTie)
	return rule
}

// Parse reads YAML and applies defaults.
func Parse(b []byte) (*Config, error) {
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	c.ApplyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Load reads the file at path.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(b)
}

// Init looks for takrules/config.yaml in the XDG config directories and
// falls back to the defaults when there is none. An empty database_url is
// filled in by Database.
func Init() (*Config, error) {
	c := Default()
	if path, err := xdg.SearchConfigFile(cfgFile); err == nil {
		loaded, err := Load(path)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		c = *loaded
	}

	dsn, err := c.Database()
	if err != nil {
		return nil, err
	}
	c.DatabaseURL = dsn
	return &c, nil
}

// Database returns the configured DSN, or a sqlite file in the XDG data
// directory when none is set.
func (c *Config) Database() (string, error) {
	if c.DatabaseURL != "" {
		return c.DatabaseURL, nil
	}
	return xdg.DataFile(dbFile)
}

// Save writes c to the user's XDG config directory.
func (c *Config) Save() (string, error) {
	path, err := xdg.ConfigFile(cfgFile)
	if err != nil {
		return "", err
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return "", err
	}
	return path, os.WriteFile(path, b, 0o644)
}
