package config

import (
	"errors"
	"fmt"
	"strings"
)

var validPresetKeys = func() map[string]struct{} {
	keys := make(map[string]struct{}, len(PresetKeys))
	for _, key := range PresetKeys {
		keys[key] = struct{}{}
	}
	return keys
}()

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePresets(); err != nil {
		return err
	}
	if err := c.validateRealESRGAN(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePresets() error {
	for key := range c.Presets {
		if _, ok := validPresetKeys[key]; !ok {
			return fmt.Errorf("presets.%s: unknown preset key (expected %s)", key, strings.Join(PresetKeys, ", "))
		}
	}
	return nil
}

func (c *Config) validateRealESRGAN() error {
	if strings.TrimSpace(c.RealESRGAN.Script) == "" {
		return errors.New("realesrgan.script must be set")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
