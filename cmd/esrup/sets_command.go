package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"esrup/internal/config"
	"esrup/internal/naming"
	"esrup/internal/services"
	"esrup/internal/sets"
)

func newSetsCommand(ctx *commandContext) *cobra.Command {
	var rootFlag string
	var presetFlag string
	var relPath string

	cmd := &cobra.Command{
		Use:   "sets",
		Short: "List the populated sets under a Studio/Model path",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			root, err := config.ResolveRoot(cfg, rootFlag, presetFlag)
			if err != nil {
				return err
			}
			if strings.TrimSpace(relPath) == "" {
				return services.Wrap(services.ErrValidation, "cli", "options", "--Path is required", nil)
			}

			available, err := sets.Available(filepath.Join(root, relPath))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(available) == 0 {
				fmt.Fprintf(out, "no populated sets under %s\n", relPath)
				return nil
			}
			rows := make([][]string, 0, len(available))
			for _, set := range available {
				rows = append(rows, []string{naming.FormatSet(set)})
			}
			fmt.Fprintln(out, renderTable([]string{"Set"}, rows, nil))
			fmt.Fprintf(out, "%d sets under %s\n", len(available), relPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&rootFlag, "root", "", "Library root directory")
	cmd.Flags().StringVar(&presetFlag, "root_preset", "", "Configured library root preset ("+strings.Join(config.PresetKeys, ", ")+")")
	cmd.Flags().StringVar(&relPath, "Path", "", "Studio/Model path relative to the root")
	return cmd
}
