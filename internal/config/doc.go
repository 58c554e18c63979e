// Package config loads, normalizes, and validates tvconvert configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks for the
// ffmpeg and ffprobe binaries. The Config type also carries the conversion
// targets, exposed to callers as naming.Target values through Targets.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths and clear validation errors.
package config
