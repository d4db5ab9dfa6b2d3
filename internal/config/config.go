// Package config loads the TOML configuration for the substance CLI.
//
// A missing config file is not an error: Load returns the defaults so
// the tool runs without any configuration at all. Parse failures are
// reported as *ParseError with the file position when the decoder
// provides one.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog"
)

// Config is the root of the TOML configuration.
type Config struct {
	Log      LogConfig      `toml:"log"`
	Document DocumentConfig `toml:"document"`
	Script   ScriptConfig   `toml:"script"`
}

// LogConfig controls CLI logging.
type LogConfig struct {
	// Level is the logging verbosity ("trace", "debug", "info",
	// "warn", "error", "disabled").
	Level string `toml:"level"`

	// Pretty switches from JSON to human-readable console output.
	Pretty bool `toml:"pretty"`
}

// DocumentConfig controls how documents are built.
type DocumentConfig struct {
	// ContainerID is the id of the default container node.
	ContainerID string `toml:"container_id"`
}

// ScriptConfig controls the Lua engine.
type ScriptConfig struct {
	// TimeoutMS bounds a single script run in milliseconds. Zero
	// disables the bound.
	TimeoutMS int `toml:"timeout_ms"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Log:      LogConfig{Level: "info", Pretty: false},
		Document: DocumentConfig{ContainerID: "body"},
		Script:   ScriptConfig{TimeoutMS: 5000},
	}
}

// Load reads the configuration at path. A missing file yields the
// defaults, not an error.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("reading config file %s: %w", path, err)
	}
	return parse(path, data)
}

// LoadFromReader reads the configuration from a reader.
func LoadFromReader(r io.Reader) (Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	return parse("<reader>", data)
}

// parse decodes TOML over the defaults, so absent keys keep their
// default values.
func parse(source string, data []byte) (Config, error) {
	cfg := Default()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		perr := &ParseError{Path: source, Message: err.Error(), Err: err}
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			perr.Line, perr.Column = derr.Position()
		}
		return Config{}, perr
	}
	return cfg, nil
}

// Validate checks enum and range fields.
func (c Config) Validate() error {
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if c.Script.TimeoutMS < 0 {
		return fmt.Errorf("script.timeout_ms must not be negative, got %d", c.Script.TimeoutMS)
	}
	return nil
}

// ParseLevel returns the configured zerolog level.
func (c LogConfig) ParseLevel() (zerolog.Level, error) {
	return zerolog.ParseLevel(c.Level)
}

// Timeout returns the script run bound as a duration.
func (c ScriptConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutMS) * time.Millisecond
}

// ParseError reports a configuration file that could not be parsed.
type ParseError struct {
	Path    string
	Line    int
	Column  int
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Line > 0 && e.Column > 0 {
		return fmt.Sprintf("parse error in %s at line %d, column %d: %s", e.Path, e.Line, e.Column, e.Message)
	}
	if e.Line > 0 {
		return fmt.Sprintf("parse error in %s at line %d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
