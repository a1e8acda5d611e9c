package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/kilianp07/prosumption/core/factory"
)

// EnvPrefix prefixes environment overrides, e.g. PROSUMPTION_RANGE__START.
const EnvPrefix = "PROSUMPTION_"

type Config struct {
	Input     InputConfig            `json:"input"`
	Range     RangeConfig            `json:"range"`
	Scaling   ScalingConfig          `json:"scaling"`
	Preview   PreviewConfig          `json:"preview"`
	Reporters []factory.ModuleConfig `json:"reporters"`
	Log       LogConfig              `json:"log"`
}

// Load reads the file at path, applies environment overrides, then defaults
// and validation. An empty path uses defaults and the environment only.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	if path != "" {
		ext := strings.ToLower(filepath.Ext(path))
		var parser koanf.Parser
		switch ext {
		case ".yaml", ".yml":
			parser = yaml.Parser()
		case ".json":
			parser = json.Parser()
		default:
			return nil, fmt.Errorf("unsupported config format: %s", ext)
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, err
		}
	}
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		s = strings.TrimPrefix(s, EnvPrefix)
		return strings.ReplaceAll(strings.ToLower(s), "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the configuration used when nothing is provided.
func Default() *Config {
	var cfg Config
	cfg.SetDefaults()
	return &cfg
}

// SetDefaults fills every section.
func (c *Config) SetDefaults() {
	c.Input.SetDefaults()
	c.Range.SetDefaults()
	c.Scaling.SetDefaults()
	c.Preview.SetDefaults()
	c.Log.SetDefaults()
	if len(c.Reporters) == 0 {
		c.Reporters = []factory.ModuleConfig{{Type: "console"}, {Type: "plot"}}
	}
	for i := range c.Reporters {
		if c.Reporters[i].Type != "console" {
			continue
		}
		if c.Reporters[i].Conf == nil {
			c.Reporters[i].Conf = map[string]any{}
		}
		if _, ok := c.Reporters[i].Conf["rows"]; !ok {
			c.Reporters[i].Conf["rows"] = c.Preview.Rows
		}
	}
}

// Validate checks every section.
func (c Config) Validate() error {
	if err := c.Input.Validate(); err != nil {
		return fmt.Errorf("input: %w", err)
	}
	if err := c.Range.Validate(); err != nil {
		return fmt.Errorf("range: %w", err)
	}
	if err := c.Scaling.Validate(); err != nil {
		return fmt.Errorf("scaling: %w", err)
	}
	if err := c.Preview.Validate(); err != nil {
		return fmt.Errorf("preview: %w", err)
	}
	if err := c.Log.Validate(); err != nil {
		return fmt.Errorf("log: %w", err)
	}
	for i, r := range c.Reporters {
		if r.Type == "" {
			return fmt.Errorf("reporters[%d]: type is required", i)
		}
	}
	return nil
}
