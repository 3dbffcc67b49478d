package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	if err := c.validateOutput(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if c.Paths.StateDir == "" {
		return errors.New("paths.state_dir must be set")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q (want console or json)", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q (want debug, info, warn or error)", c.Logging.Level)
	}
	return nil
}

func (c *Config) validateOutput() error {
	if !ValidOutputMode(c.Output.Mode) {
		return fmt.Errorf("output.mode: unsupported value %q (want text, json or bar)", c.Output.Mode)
	}
	switch c.Output.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("output.color: unsupported value %q (want auto, always or never)", c.Output.Color)
	}
	return nil
}

// ValidOutputMode reports whether mode names a known progress renderer.
func ValidOutputMode(mode string) bool {
	switch mode {
	case OutputText, OutputJSON, OutputBar:
		return true
	default:
		return false
	}
}
