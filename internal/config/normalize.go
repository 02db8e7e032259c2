package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizePresets(); err != nil {
		return err
	}
	if err := c.normalizeRealESRGAN(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.OutputRoot, err = expandPath(c.Paths.OutputRoot); err != nil {
		return fmt.Errorf("paths.output_root: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizePresets() error {
	if c.Presets == nil {
		c.Presets = make(map[string]string)
	}
	for key, value := range c.Presets {
		value = strings.TrimSpace(value)
		if value == "" {
			c.Presets[key] = ""
			continue
		}
		expanded, err := expandPath(value)
		if err != nil {
			return fmt.Errorf("presets.%s: %w", key, err)
		}
		c.Presets[key] = expanded
	}
	return nil
}

func (c *Config) normalizeRealESRGAN() error {
	if strings.TrimSpace(c.RealESRGAN.Python) == "" {
		c.RealESRGAN.Python = defaultPython
	}
	var err error
	if c.RealESRGAN.Script, err = expandPath(c.RealESRGAN.Script); err != nil {
		return fmt.Errorf("realesrgan.script: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
