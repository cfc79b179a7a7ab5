// Package config resolves fileattrs settings from defaults, an optional
// config file, FILEATTRS_* environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/idelchi/fileattrs/internal/attrs"
	"github.com/idelchi/fileattrs/internal/report"
)

// EnvPrefix prefixes environment variable overrides, e.g. FILEATTRS_WORKERS.
const EnvPrefix = "FILEATTRS"

// DefaultOutput is the report written when no output is configured.
const DefaultOutput = "file_attributes.csv"

// Stdout as an output writes the report to standard output.
const Stdout = "-"

// Config stores all configuration of the application.
// The values are read by viper from flags, environment variables or a config file.
type Config struct {
	Attributes []string `mapstructure:"attributes"`
	Workers    int      `mapstructure:"workers"`
	Algorithm  string   `mapstructure:"algorithm"`
	PathStyle  string   `mapstructure:"path-style"`
	Output     string   `mapstructure:"output"`
	Format     string   `mapstructure:"format"`
	Tolerant   bool     `mapstructure:"tolerant"`
	Debug      bool     `mapstructure:"debug"`
}

// Load reads configuration with precedence flags > environment > file > defaults.
// An empty configPath searches for .fileattrs.yaml in the working and home directories;
// a missing file there is not an error.
func Load(flags *pflag.FlagSet, configPath string) (*Config, error) {
	v := viper.New()

	v.SetDefault("attributes", []string{string(attrs.AttributeSize), string(attrs.AttributeHash)})
	v.SetDefault("workers", attrs.DefaultWorkers())
	v.SetDefault("algorithm", string(attrs.DefaultAlgorithm))
	v.SetDefault("path-style", string(attrs.PathAsWalked))
	v.SetDefault("output", DefaultOutput)
	v.SetDefault("format", string(report.CSV))
	v.SetDefault("tolerant", false)
	v.SetDefault("debug", false)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("binding flags: %w", err)
		}
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName(".fileattrs")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	return &cfg, nil
}

// Options validates the configuration and converts it into run options for root.
func (c *Config) Options(root string) (attrs.Options, error) {
	attributes, err := attrs.ParseAttributes(splitList(c.Attributes))
	if err != nil {
		return attrs.Options{}, err
	}

	if len(attributes) == 0 {
		return attrs.Options{}, errors.New("no attributes requested")
	}

	algorithm, err := attrs.ParseAlgorithm(c.Algorithm)
	if err != nil {
		return attrs.Options{}, err
	}

	style, err := attrs.ParsePathStyle(c.PathStyle)
	if err != nil {
		return attrs.Options{}, err
	}

	if c.Workers < 0 {
		return attrs.Options{}, errors.New("workers cannot be negative")
	}

	if root == "" {
		root = "."
	}

	return attrs.Options{
		Root:       filepath.Clean(root),
		Attributes: attributes,
		Algorithm:  algorithm,
		Workers:    c.Workers,
		PathStyle:  style,
		Tolerant:   c.Tolerant,
	}, nil
}

// OutputFormat validates the configured report format.
func (c *Config) OutputFormat() (report.Format, error) {
	return report.ParseFormat(c.Format)
}

// splitList accepts both repeated values and comma separated strings,
// as environment variables only carry the latter.
func splitList(values []string) []string {
	var out []string

	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}

	return out
}
