package config

const (
	defaultOutputRoot = "~/upscaled"
	defaultLogDir     = "~/.local/share/esrup/logs"
	defaultPython     = "python3"
	defaultScript     = "~/Real-ESRGAN/inference_realesrgan.py"
	defaultLogFormat  = "console"
	defaultLogLevel   = "info"
)

// PresetKeys are the accepted --root_preset values in display order.
var PresetKeys = []string{"p1", "p2", "p3", "p4", "p5", "p6"}

// Default returns a Config populated with repository defaults. Preset slots
// are present but empty until the user fills them in.
func Default() Config {
	presets := make(map[string]string, len(PresetKeys))
	for _, key := range PresetKeys {
		presets[key] = ""
	}
	return Config{
		Paths: Paths{
			OutputRoot: defaultOutputRoot,
			LogDir:     defaultLogDir,
		},
		Presets: presets,
		RealESRGAN: RealESRGAN{
			Python: defaultPython,
			Script: defaultScript,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
