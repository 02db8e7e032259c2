package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"esrup/internal/naming"
	"esrup/internal/plan"
)

func newPlanCommand(ctx *commandContext) *cobra.Command {
	var flags selectionFlags

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Enumerate jobs and print the plan without upscaling",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			req, err := flags.request(cfg)
			if err != nil {
				return err
			}
			jobs, report, err := plan.Enumerate(req)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(jobs) > 0 {
				rows := make([][]string, 0, len(jobs))
				for i, job := range jobs {
					rows = append(rows, []string{
						strconv.Itoa(i + 1),
						naming.FormatSet(job.Set),
						job.Source,
						job.Dest,
					})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"#", "Set", "Source", "Destination"},
					rows,
					[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft},
				))
			}
			writeReport(out, report)
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}
