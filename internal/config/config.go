// Package config loads interpreter settings from a YAML file with
// environment variable overrides.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	EnvConfig       = "MINILISP_CONFIG"
	EnvHistory      = "MINILISP_HISTORY"
	EnvTranscriptDB = "MINILISP_TRANSCRIPT_DB"
	EnvHaltOnError  = "MINILISP_HALT_ON_ERROR"

	defaultFile    = ".minilisp.yaml"
	defaultHistory = ".minilisp_history"
)

type Config struct {
	// HistoryFile is where the REPL keeps line history.
	HistoryFile string `yaml:"history_file"`
	// TranscriptDB, when set, is a SQLite file receiving a trace per form.
	TranscriptDB string `yaml:"transcript_db"`
	// HaltOnError stops a program at the first failing form.
	HaltOnError bool `yaml:"halt_on_error"`
	// MaxTraces caps in-memory traces.
	MaxTraces int `yaml:"max_traces"`
}

func Default() Config {
	home, _ := os.UserHomeDir()
	return Config{
		HistoryFile: filepath.Join(home, defaultHistory),
		MaxTraces:   1000,
	}
}

// Load resolves configuration: defaults, then the file named by
// MINILISP_CONFIG (or ~/.minilisp.yaml when it exists), then environment
// overrides. An explicitly named file that is missing is an error.
func Load() (Config, error) {
	cfg := Default()
	path := os.Getenv(EnvConfig)
	explicit := path != ""
	if !explicit {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, defaultFile)
		}
	}
	if path != "" {
		err := cfg.mergeFile(path)
		switch {
		case err == nil:
		case errors.Is(err, os.ErrNotExist) && !explicit:
		default:
			return Config{}, err
		}
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()
	if err := c.decode(file); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	return nil
}

func (c *Config) decode(r io.Reader) error {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	if c.MaxTraces < 0 {
		return fmt.Errorf("max_traces must not be negative, got %d", c.MaxTraces)
	}
	return nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvHistory); ok && v != "" {
		c.HistoryFile = v
	}
	if v, ok := lookup(EnvTranscriptDB); ok && v != "" {
		c.TranscriptDB = v
	}
	if v, ok := lookup(EnvHaltOnError); ok && strings.TrimSpace(v) != "" {
		halt, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("config: %s: %w", EnvHaltOnError, err)
		}
		c.HaltOnError = halt
	}
	return nil
}
