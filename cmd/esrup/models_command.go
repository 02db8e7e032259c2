package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// modelGuidance mirrors the upscaler's model catalog; keep the order in sync
// with realesrgan.ModelNames.
var modelGuidance = [][]string{
	{"x4v3", "Small and fast; a good all-rounder for fine detail and natural textures. Default choice for speed and quality."},
	{"x4plus", "Larger model with more detail recovery, noticeably slower."},
	{"net_x4plus", "Less aggressive sharpening, more faithful to the original. Try it when output looks over-processed or plastic."},
	{"x2plus", "2x upscale; gentler enhancement with less risk of artifacts."},
	{"x4plus_anime_6B", "Optimized for line art and flat colors; suits images with strong edges or stylized elements."},
}

func newModelsCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "models",
		Short:       "Describe the available upscaler models",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Model", "Guidance"}, modelGuidance, nil))
			return nil
		},
	}
}
