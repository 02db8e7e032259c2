// Package config loads, normalizes, and validates esrup configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files. The Config type centralizes every knob
// the CLI needs: the output root the upscaled hierarchy mirrors into, the
// named root presets behind --root_preset, and the location of the
// Real-ESRGAN inference script.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths and clear validation errors.
package config
