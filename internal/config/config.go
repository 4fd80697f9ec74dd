// Package config provides Viper-based configuration loading for the seekearth CLI.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// FilesConfig names the four input files read by the search pipeline.
type FilesConfig struct {
	// Prefix is the map-name-to-prefix file.
	Prefix string `mapstructure:"prefix" yaml:"prefix"`
	// XYZ is the map geometry file.
	XYZ string `mapstructure:"xyz" yaml:"xyz"`
	// Rooms is the room placement file.
	Rooms string `mapstructure:"rooms" yaml:"rooms"`
	// Treasures is the treasure index file.
	Treasures string `mapstructure:"treasures" yaml:"treasures"`
}

// SearchConfig holds the query parameters.
type SearchConfig struct {
	// Find is the item name to search for, matched exactly.
	Find string `mapstructure:"find" yaml:"find"`
	// Start is the global room id distances are measured from.
	Start string `mapstructure:"start" yaml:"start"`
	// Number is the maximum number of results to print.
	Number int `mapstructure:"number" yaml:"number"`
}

// ParseConfig controls how the line loaders treat malformed lines.
type ParseConfig struct {
	// Malformed is the policy for lines with the wrong field count: "skip", "warn", or "error".
	Malformed string `mapstructure:"malformed" yaml:"malformed"`
}

// OutputConfig controls what is written to stdout.
type OutputConfig struct {
	// Dump enables the diagnostic dumps printed before the result table.
	Dump bool `mapstructure:"dump" yaml:"dump"`
	// Color is "auto", "always", or "never".
	Color string `mapstructure:"color" yaml:"color"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level" yaml:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format" yaml:"format"`
}

// Config is the top-level application configuration.
type Config struct {
	Files   FilesConfig   `mapstructure:"files" yaml:"files"`
	Search  SearchConfig  `mapstructure:"search" yaml:"search"`
	Parse   ParseConfig   `mapstructure:"parse" yaml:"parse"`
	Output  OutputConfig  `mapstructure:"output" yaml:"output"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// flagKeys maps each CLI flag name to the configuration key it overrides.
var flagKeys = map[string]string{
	"prefix":     "files.prefix",
	"xyz":        "files.xyz",
	"rooms":      "files.rooms",
	"treasures":  "files.treasures",
	"find":       "search.find",
	"start":      "search.start",
	"number":     "search.number",
	"malformed":  "parse.malformed",
	"dump":       "output.dump",
	"color":      "output.color",
	"log-level":  "logging.level",
	"log-format": "logging.format",
}

// RegisterFlags defines the seekearth flags on fs.
//
// Postcondition: every key in flagKeys has a matching flag on fs, plus "config".
func RegisterFlags(fs *pflag.FlagSet) {
	fs.StringP("config", "c", "", "optional YAML configuration file")
	fs.StringP("prefix", "p", "", "path to map prefixes file")
	fs.StringP("xyz", "x", "", "path to map xyz file")
	fs.StringP("rooms", "r", "", "path to room xy coordinates file")
	fs.StringP("treasures", "t", "", "path to treasures file")
	fs.StringP("find", "f", "", "thing to find")
	fs.StringP("start", "s", "", "room to search from")
	fs.IntP("number", "n", 10, "number of results to return")
	fs.String("malformed", "skip", "malformed line policy: skip, warn, or error")
	fs.Bool("dump", true, "print parsed inputs before the result table")
	fs.String("color", "never", "colorize the result table: auto, always, or never")
	fs.String("log-level", "warn", "log level: debug, info, warn, or error")
	fs.String("log-format", "console", "log format: json or console")
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateFiles(c.Files); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateSearch(c.Search); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateParse(c.Parse); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateOutput(c.Output); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateFiles(f FilesConfig) error {
	var errs []string
	if f.Prefix == "" {
		errs = append(errs, "files.prefix must not be empty (--prefix)")
	}
	if f.XYZ == "" {
		errs = append(errs, "files.xyz must not be empty (--xyz)")
	}
	if f.Rooms == "" {
		errs = append(errs, "files.rooms must not be empty (--rooms)")
	}
	if f.Treasures == "" {
		errs = append(errs, "files.treasures must not be empty (--treasures)")
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateSearch(s SearchConfig) error {
	var errs []string
	if strings.TrimSpace(s.Find) == "" {
		errs = append(errs, "search.find must not be empty (--find)")
	}
	if strings.TrimSpace(s.Start) == "" {
		errs = append(errs, "search.start must not be empty (--start)")
	}
	if s.Number < 0 {
		errs = append(errs, fmt.Sprintf("search.number must be >= 0, got %d", s.Number))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateParse(p ParseConfig) error {
	validPolicies := map[string]bool{"skip": true, "warn": true, "error": true}
	if !validPolicies[p.Malformed] {
		return fmt.Errorf("parse.malformed must be one of [skip, warn, error], got %q", p.Malformed)
	}
	return nil
}

func validateOutput(o OutputConfig) error {
	validColors := map[string]bool{"auto": true, "always": true, "never": true}
	if !validColors[o.Color] {
		return fmt.Errorf("output.color must be one of [auto, always, never], got %q", o.Color)
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

// Load builds a Config from defaults, an optional YAML file, SEEKEARTH_
// environment variables, and flags, in increasing order of precedence.
//
// Precondition: path may be empty, meaning no configuration file; flags may be nil.
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()

	v.SetEnvPrefix("SEEKEARTH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if flags != nil {
		if err := bindFlags(v, flags); err != nil {
			return Config{}, err
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := flags.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("binding flag --%s: %w", name, err)
		}
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("files.prefix", "")
	v.SetDefault("files.xyz", "")
	v.SetDefault("files.rooms", "")
	v.SetDefault("files.treasures", "")

	v.SetDefault("search.find", "")
	v.SetDefault("search.start", "")
	v.SetDefault("search.number", 10)

	v.SetDefault("parse.malformed", "skip")

	v.SetDefault("output.dump", true)
	v.SetDefault("output.color", "never")

	v.SetDefault("logging.level", "warn")
	v.SetDefault("logging.format", "console")
}
