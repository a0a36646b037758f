// Package config loads the headerfix configuration. Settings come from a TOML
// file and may be overridden by environment variables, which may in turn be
// set from a .env file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"runtime"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/zostay/headerfix/header"
	"github.com/zostay/headerfix/header/field"
	"github.com/zostay/headerfix/repair"
)

// Names of the files and environment variables consulted by Load.
const (
	DefaultFile = "headerfix.toml"
	EnvFile     = ".env"

	EnvConfig           = "HEADERFIX_CONFIG"
	EnvWorkers          = "HEADERFIX_WORKERS"
	EnvMaxLineLength    = "HEADERFIX_MAX_LINE_LENGTH"
	EnvMaxMessageLength = "HEADERFIX_MAX_MESSAGE_LENGTH"
	EnvVerbose          = "HEADERFIX_VERBOSE"
)

// Config holds the settings for a headerfix run.
type Config struct {
	// Headers lists field names to recognize in addition to the built-in
	// vocabulary.
	Headers []string `toml:"headers"`

	// ReplaceHeaders makes Headers the whole vocabulary instead of an
	// extension of it.
	ReplaceHeaders bool `toml:"replace_headers"`

	// MaxLineLength is the longest header line accepted.
	MaxLineLength int `toml:"max_line_length"`

	// MaxMessageLength is the largest message that will be read.
	MaxMessageLength int `toml:"max_message_length"`

	// Workers is the number of files repaired at once in batch mode.
	Workers int `toml:"workers"`

	// Verbose turns on debug logging.
	Verbose bool `toml:"verbose"`
}

// Default returns the configuration used when nothing else is set.
func Default() *Config {
	return &Config{
		MaxLineLength:    field.MaxLineLength,
		MaxMessageLength: repair.DefaultMaxMessageLength,
		Workers:          runtime.NumCPU(),
	}
}

// Load builds the configuration. The .env file in the working directory is
// loaded first, if there is one. Then the TOML file at path is read. When path
// is empty, the file named by HEADERFIX_CONFIG is used, or else DefaultFile if
// it exists. Finally, the HEADERFIX_* environment variables are applied and
// the result is validated.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(EnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("unable to load %s: %w", EnvFile, err)
	}

	c := Default()

	required := true
	if path == "" {
		path = os.Getenv(EnvConfig)
	}
	if path == "" {
		path = DefaultFile
		required = false
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := c.decode(data); err != nil {
			return nil, fmt.Errorf("unable to parse config file %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && !required:
	default:
		return nil, fmt.Errorf("unable to read config file: %w", err)
	}

	if err := c.applyEnv(); err != nil {
		return nil, err
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Config) decode(data []byte) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(c)
}

func (c *Config) applyEnv() error {
	for _, v := range []struct {
		name string
		dest *int
	}{
		{EnvWorkers, &c.Workers},
		{EnvMaxLineLength, &c.MaxLineLength},
		{EnvMaxMessageLength, &c.MaxMessageLength},
	} {
		s := os.Getenv(v.name)
		if s == "" {
			continue
		}

		n, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("%s must be an integer: %w", v.name, err)
		}
		*v.dest = n
	}

	if s := os.Getenv(EnvVerbose); s != "" {
		b, err := strconv.ParseBool(s)
		if err != nil {
			return fmt.Errorf("%s must be a boolean: %w", EnvVerbose, err)
		}
		c.Verbose = b
	}

	return nil
}

// Validate checks the configuration for values that cannot work.
func (c *Config) Validate() error {
	if c.MaxLineLength <= 0 {
		return fmt.Errorf("max_line_length must be greater than 0, got %d", c.MaxLineLength)
	}

	if c.Workers <= 0 {
		return fmt.Errorf("workers must be greater than 0, got %d", c.Workers)
	}

	if c.ReplaceHeaders && len(c.Headers) == 0 {
		return errors.New("replace_headers is set but no headers are listed")
	}

	if _, err := c.Registry(); err != nil {
		return err
	}

	return nil
}

// Registry returns the header field vocabulary described by the configuration.
func (c *Config) Registry() (*header.Registry, error) {
	if c.ReplaceHeaders {
		return header.NewRegistry(c.Headers...)
	}

	if len(c.Headers) == 0 {
		return header.Default(), nil
	}

	return header.Default().With(c.Headers...)
}

// FixerOptions returns the repair options described by the configuration.
func (c *Config) FixerOptions() ([]repair.Option, error) {
	reg, err := c.Registry()
	if err != nil {
		return nil, err
	}

	return []repair.Option{
		repair.WithRegistry(reg),
		repair.WithMaxLineLength(c.MaxLineLength),
		repair.WithMaxMessageLength(c.MaxMessageLength),
	}, nil
}

// Fixer returns a repair.Fixer configured from c.
func (c *Config) Fixer() (*repair.Fixer, error) {
	opts, err := c.FixerOptions()
	if err != nil {
		return nil, err
	}
	return repair.New(opts...), nil
}
