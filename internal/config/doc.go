// Package config loads, normalizes, and validates fileorg configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files. The configuration only shapes the CLI
// shell: where logs, the run lock, and the optional run history live, and how
// progress is rendered. The category table and the organizer's inputs are not
// configurable here.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
