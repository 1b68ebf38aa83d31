// Package config loads, normalizes, and validates converter configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files. The Config type carries the output and
// work directories, the ordered cleaner chain and exporter for each entity
// kind, and logging preferences. Command-line flags override individual
// fields after loading; call Validate again once overrides are applied.
package config
