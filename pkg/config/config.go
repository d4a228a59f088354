package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/TechXTT/modelgen/internal/dsl"
	"github.com/TechXTT/modelgen/internal/typeconv"
)

// DefaultFile is looked up in the working directory when no config path is given.
const DefaultFile = "modelgen.yaml"

// DefaultOutDir is the generator-managed output directory.
const DefaultOutDir = "generated-models"

// Table name strategies.
const (
	PluralizeSuffix     = "suffix"
	PluralizeInflection = "inflection"
)

// Config holds all settings for code generation.
type Config struct {
	OutDir     string                      `yaml:"outDir"`
	FileSuffix string                      `yaml:"fileSuffix"`
	Pluralize  string                      `yaml:"pluralize"`
	Types      map[string]typeconv.Mapping `yaml:"types"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		OutDir:     DefaultOutDir,
		FileSuffix: dsl.DefaultFileSuffix,
		Pluralize:  PluralizeSuffix,
	}
}

// Load reads a YAML config file and fills defaults. An empty path loads
// DefaultFile if it exists and the defaults otherwise.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML config data over the defaults.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	if cfg.OutDir == "" {
		cfg.OutDir = DefaultOutDir
	}
	if cfg.FileSuffix == "" {
		cfg.FileSuffix = dsl.DefaultFileSuffix
	}
	if cfg.Pluralize == "" {
		cfg.Pluralize = PluralizeSuffix
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the pluralization strategy and type overrides.
func (c *Config) Validate() error {
	if _, err := c.Pluralizer(); err != nil {
		return err
	}
	if _, err := c.Vocabulary(); err != nil {
		return err
	}
	return nil
}

// Vocabulary builds the type table with the configured overrides.
func (c *Config) Vocabulary() (*typeconv.Vocabulary, error) {
	return typeconv.New(c.Types)
}

// Pluralizer resolves the table name strategy.
func (c *Config) Pluralizer() (dsl.Pluralizer, error) {
	switch c.Pluralize {
	case "", PluralizeSuffix:
		return dsl.SuffixPlural, nil
	case PluralizeInflection:
		return dsl.InflectionPlural, nil
	default:
		return nil, fmt.Errorf("unknown pluralize strategy %q (want %q or %q)", c.Pluralize, PluralizeSuffix, PluralizeInflection)
	}
}

// Generator builds a dsl.Generator from the config.
func (c *Config) Generator() (*dsl.Generator, error) {
	vocab, err := c.Vocabulary()
	if err != nil {
		return nil, err
	}
	plural, err := c.Pluralizer()
	if err != nil {
		return nil, err
	}
	return dsl.NewGenerator(
		dsl.WithVocabulary(vocab),
		dsl.WithPluralizer(plural),
		dsl.WithFileSuffix(c.FileSuffix),
	), nil
}
