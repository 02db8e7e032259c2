package realesrgan

import (
	"fmt"
)

// Options holds the upscaler settings applied uniformly to every job in a
// run. They are resolved once from the CLI and passed through untouched.
type Options struct {
	Model       string
	FaceEnhance bool
	Tile        int
	TilePad     int
	Outscale    float64
	GPUID       int
	Suffix      string
	Ext         string
}

// Default CLI values for upscaler settings.
const (
	DefaultModel    = "x4v3"
	DefaultTile     = 800
	DefaultTilePad  = 10
	DefaultOutscale = 1.0
	DefaultGPUID    = 0
	DefaultExt      = "png"
)

// inferenceModels maps the short CLI model names onto the weight names the
// inference script expects.
var inferenceModels = map[string]string{
	"x4v3":            "realesr-general-x4v3",
	"x4plus":          "RealESRGAN_x4plus",
	"net_x4plus":      "RealESRNet_x4plus",
	"x2plus":          "RealESRGAN_x2plus",
	"x4plus_anime_6B": "RealESRGAN_x4plus_anime_6B",
}

// ModelNames returns the accepted CLI model names in display order.
func ModelNames() []string {
	return []string{"x4v3", "x4plus", "net_x4plus", "x2plus", "x4plus_anime_6B"}
}

// InferenceModel resolves a CLI model name to the inference script weight
// name.
func InferenceModel(model string) (string, error) {
	name, ok := inferenceModels[model]
	if !ok {
		return "", fmt.Errorf("unknown model %q", model)
	}
	return name, nil
}

// DefaultOptions returns Options populated with the documented CLI defaults.
func DefaultOptions() Options {
	return Options{
		Model:    DefaultModel,
		Tile:     DefaultTile,
		TilePad:  DefaultTilePad,
		Outscale: DefaultOutscale,
		GPUID:    DefaultGPUID,
		Ext:      DefaultExt,
	}
}
