package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func newInfoCommand(ctx *commandContext) *cobra.Command {
	var selection selectionFlags

	cmd := &cobra.Command{
		Use:   "info",
		Short: "Show stage availability and labels of the selected workpieces",
		RunE: func(cmd *cobra.Command, args []string) error {
			builder, err := ctx.newBuilder()
			if err != nil {
				return err
			}
			d, err := selection.buildDataset(cmd, builder)
			if err != nil {
				return err
			}

			rows := make([][]string, 0, d.Len())
			for _, info := range d.GetExperimentInfo() {
				kinds := make([]string, 0, len(info.Available))
				for _, k := range info.Available {
					kinds = append(kinds, k.String())
				}
				rows = append(rows, []string{
					strconv.Itoa(info.WorkpieceID),
					strings.Join(kinds, ", "),
					info.Label,
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"workpiece_id", "available processes", "label"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft},
			))

			distRows := make([][]string, 0)
			for _, dist := range d.GetClassDistribution() {
				distRows = append(distRows, []string{dist.Label, strconv.Itoa(dist.Count)})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"label", "count"},
				distRows,
				[]columnAlignment{alignLeft, alignRight},
			))

			quality := d.Quality()
			fmt.Fprintf(cmd.OutOrStdout(), "%d experiment(s), %d with all four stages\n",
				quality.Experiments, quality.Complete)
			return nil
		},
	}

	selection.register(cmd)
	return cmd
}
