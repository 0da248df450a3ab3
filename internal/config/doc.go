// Package config loads, normalizes, and validates thermo configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and resolves the configuration location
// from an explicit flag, ~/.config/thermo/config.toml, or ./thermo.toml in
// that order. Obtain settings through this package so downstream code
// receives sanitized paths, canonical log formats, and clear validation
// errors.
package config
