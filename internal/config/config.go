// Package config loads the engine configuration from TOML and watches
// it for live reload.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/modekeys/internal/input/keymap"
)

// Input holds the key-handling settings.
type Input struct {
	// PartialTimeout is how long a partially matched keychain may stall
	// before it is abandoned, in milliseconds. 0 disables the timeout.
	PartialTimeout int `toml:"partial_timeout"`

	// ModeLockTime is how long key presses are dropped after entering
	// normal mode, in milliseconds. It keeps keys still in flight from
	// the previous mode from triggering bindings.
	ModeLockTime int `toml:"mode_lock_time"`

	// ForwardUnboundKeys forwards keys no binding claims to the focused
	// widget in passthrough-style modes.
	ForwardUnboundKeys bool `toml:"forward_unbound_keys"`
}

// Config is the full engine configuration.
type Config struct {
	Input Input `toml:"input"`

	// Bindings maps mode -> key sequence -> command. User entries are
	// merged over the built-in defaults; an empty command unbinds.
	Bindings map[string]map[string]string `toml:"bindings"`

	// KeyMappings translates keys before matching, e.g. "<Ctrl+j>" ->
	// "<Enter>".
	KeyMappings map[string]string `toml:"key_mappings"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Input: Input{
			PartialTimeout: 5000,
			ModeLockTime:   0,
		},
	}
}

// Load reads path and merges it over the defaults. A missing file is
// not an error; the defaults apply.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks that every binding and key mapping parses.
func (c *Config) Validate() error {
	if c.Input.PartialTimeout < 0 {
		return fmt.Errorf("input.partial_timeout must not be negative")
	}
	if c.Input.ModeLockTime < 0 {
		return fmt.Errorf("input.mode_lock_time must not be negative")
	}
	for mode, bindings := range c.Bindings {
		if _, err := keymap.BuildTable(mode, nil, bindings); err != nil {
			return fmt.Errorf("bindings.%s: %w", mode, err)
		}
	}
	if _, err := keymap.ParseRemap(c.KeyMappings); err != nil {
		return fmt.Errorf("key_mappings: %w", err)
	}
	return nil
}

// PartialTimeoutDuration returns the partial-match timeout.
func (c *Config) PartialTimeoutDuration() time.Duration {
	return time.Duration(c.Input.PartialTimeout) * time.Millisecond
}

// ModeLockDuration returns the normal-mode input inhibition window.
func (c *Config) ModeLockDuration() time.Duration {
	return time.Duration(c.Input.ModeLockTime) * time.Millisecond
}

// Table builds the binding table for mode: built-in defaults with the
// user's entries merged over them.
func (c *Config) Table(mode string) (*keymap.Table, error) {
	return keymap.BuildTable(mode, keymap.DefaultBindings(mode), c.Bindings[mode])
}

// Remap builds the key translation map.
func (c *Config) Remap() (keymap.Remap, error) {
	return keymap.ParseRemap(c.KeyMappings)
}
