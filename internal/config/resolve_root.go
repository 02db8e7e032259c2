package config

import (
	"fmt"
	"os"
	"strings"

	"esrup/internal/services"
)

// ResolveRoot turns the mutually exclusive --root / --root_preset pair into
// one validated library root path. Exactly one of the two must be supplied;
// the result must be an existing readable directory. Resolving happens once,
// before any enumeration, so downstream components only ever see a concrete
// root.
func ResolveRoot(c *Config, literal, preset string) (string, error) {
	literal = strings.TrimSpace(literal)
	preset = strings.TrimSpace(preset)

	switch {
	case literal != "" && preset != "":
		return "", services.Wrap(services.ErrValidation, "config", "resolve root", "--root and --root_preset are mutually exclusive", nil)
	case literal == "" && preset == "":
		return "", services.Wrap(services.ErrValidation, "config", "resolve root", "one of --root or --root_preset is required", nil)
	}

	var root string
	if literal != "" {
		expanded, err := expandPath(literal)
		if err != nil {
			return "", services.Wrap(services.ErrValidation, "config", "resolve root", literal, err)
		}
		root = expanded
	} else {
		if _, ok := validPresetKeys[preset]; !ok {
			return "", services.Wrap(services.ErrValidation, "config", "resolve root", fmt.Sprintf("unknown preset %q (expected %s)", preset, strings.Join(PresetKeys, ", ")), nil)
		}
		configured := ""
		if c != nil {
			configured = strings.TrimSpace(c.Presets[preset])
		}
		if configured == "" {
			return "", services.Wrap(services.ErrValidation, "config", "resolve root", fmt.Sprintf("preset %q is not configured", preset), nil)
		}
		root = configured
	}

	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return "", services.Wrap(services.ErrValidation, "config", "resolve root", fmt.Sprintf("%q is not a valid directory", root), nil)
	}
	return root, nil
}
