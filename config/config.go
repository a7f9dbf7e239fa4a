/*
Package config holds the configuration of a stylesheet editor.

Configuration is read from YAML. Missing entries keep their defaults:

	suggestions:
	  limit: 8
	  min_property_prefix: 1
	normalizer:
	  auto_wrap: true
	  iteration_factor: 8
	history:
	  enabled: true
	  depth: 100
	oracle:
	  data: ""        # path to a property table, empty for the built-in one
	tracing:
	  level: error    # error, info or debug

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/npillmayer/cssed/oracle"
	"github.com/npillmayer/cssed/oracle/cssdata"
	"github.com/npillmayer/schuko/tracing"
	"gopkg.in/yaml.v3"
)

// tracer traces with key 'cssed.config'.
func tracer() tracing.Trace {
	return tracing.Select("cssed.config")
}

// ErrConfig is returned for unreadable or invalid configurations.
var ErrConfig = errors.New("invalid configuration")

// TraceKeys lists the tracing keys of all packages of the editor.
var TraceKeys = []string{
	"cssed.tree",
	"cssed.doc",
	"cssed.normalize",
	"cssed.token",
	"cssed.suggest",
	"cssed.command",
	"cssed.codec",
	"cssed.config",
}

// Config is the editor configuration.
type Config struct {
	Suggestions SuggestionsConfig `yaml:"suggestions"`
	Normalizer  NormalizerConfig  `yaml:"normalizer"`
	History     HistoryConfig     `yaml:"history"`
	Oracle      OracleConfig      `yaml:"oracle"`
	Tracing     TracingConfig     `yaml:"tracing"`
}

// SuggestionsConfig configures completion candidates.
type SuggestionsConfig struct {
	Limit             int `yaml:"limit"`
	MinPropertyPrefix int `yaml:"min_property_prefix"`
}

// NormalizerConfig configures structural repairs.
type NormalizerConfig struct {
	AutoWrap        bool `yaml:"auto_wrap"`
	IterationFactor int  `yaml:"iteration_factor"`
}

// HistoryConfig configures undo/redo.
type HistoryConfig struct {
	Enabled bool `yaml:"enabled"`
	Depth   int  `yaml:"depth"`
}

// OracleConfig selects the property table.
type OracleConfig struct {
	Data string `yaml:"data"`
}

// TracingConfig sets the trace level of all editor packages.
type TracingConfig struct {
	Level string `yaml:"level"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Suggestions: SuggestionsConfig{Limit: 8, MinPropertyPrefix: 1},
		Normalizer:  NormalizerConfig{AutoWrap: true, IterationFactor: 8},
		History:     HistoryConfig{Enabled: true, Depth: 100},
		Tracing:     TracingConfig{Level: "error"},
	}
}

// Load reads a configuration in YAML format. Entries not present in the
// input keep their default values.
func Load(r io.Reader) (*Config, error) {
	c := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && err != io.EOF {
		return nil, fmt.Errorf("%w: %v", ErrConfig, err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadFile reads a configuration file.
func LoadFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfig, err)
	}
	defer f.Close()
	tracer().Infof("reading configuration from %s", path)
	return Load(f)
}

// Validate checks the bounds of configuration values.
func (c *Config) Validate() error {
	switch {
	case c.Suggestions.Limit < 1:
		return fmt.Errorf("%w: suggestions.limit must be positive", ErrConfig)
	case c.Suggestions.MinPropertyPrefix < 0:
		return fmt.Errorf("%w: suggestions.min_property_prefix must not be negative", ErrConfig)
	case c.Normalizer.IterationFactor < 1:
		return fmt.Errorf("%w: normalizer.iteration_factor must be positive", ErrConfig)
	case c.History.Depth < 1:
		return fmt.Errorf("%w: history.depth must be positive", ErrConfig)
	}
	if _, ok := levels[strings.ToLower(c.Tracing.Level)]; !ok {
		return fmt.Errorf("%w: unknown trace level %q", ErrConfig, c.Tracing.Level)
	}
	return nil
}

var levels = map[string]tracing.TraceLevel{
	"":      tracing.LevelError,
	"error": tracing.LevelError,
	"info":  tracing.LevelInfo,
	"debug": tracing.LevelDebug,
}

// TraceLevel returns the configured trace level.
func (c *Config) TraceLevel() tracing.TraceLevel {
	if l, ok := levels[strings.ToLower(c.Tracing.Level)]; ok {
		return l
	}
	return tracing.LevelError
}

// ApplyTracing sets the configured trace level for all editor packages.
func (c *Config) ApplyTracing() {
	l := c.TraceLevel()
	for _, key := range TraceKeys {
		tracing.Select(key).SetTraceLevel(l)
	}
}

// LoadOracle returns the configured property table.
func (c *Config) LoadOracle() (oracle.Oracle, error) {
	if c.Oracle.Data == "" {
		return cssdata.Default(), nil
	}
	f, err := os.Open(c.Oracle.Data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfig, err)
	}
	defer f.Close()
	t, err := cssdata.Load(f)
	if err != nil {
		return nil, fmt.Errorf("%w: oracle data %s: %v", ErrConfig, c.Oracle.Data, err)
	}
	return t, nil
}
