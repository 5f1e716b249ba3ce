package main

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"procchain/internal/config"
	"procchain/internal/exporter"
	"procchain/internal/features"
)

func newExtractCommand(ctx *commandContext) *cobra.Command {
	var selection selectionFlags
	var outputFile string
	var streamed bool

	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Build a dataset, extract features and export the table",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			pre, err := config.LoadPreprocessing(cfg.Paths.PreprocessingFile)
			if err != nil {
				return err
			}
			ext, err := config.LoadExtraction(cfg.Paths.ExtractionFile)
			if err != nil {
				return err
			}

			builder, err := ctx.newBuilder()
			if err != nil {
				return err
			}
			d, err := selection.buildDataset(cmd, builder)
			if err != nil {
				return err
			}

			runID := uuid.New().String()
			logger := slog.Default().With("run_id", runID)
			logger.InfoContext(cmd.Context(), "starting extraction",
				"experiments", d.Len())

			table, err := d.GetData(cmd.Context(), pre, ext, features.NewExtractor())
			if err != nil {
				return err
			}

			quality := d.Quality()
			logger.InfoContext(cmd.Context(), "stage availability",
				"experiments", quality.Experiments,
				"complete", quality.Complete)

			if outputFile == "" {
				outputFile = fmt.Sprintf("features_%s.csv", runID)
			}
			tableExporter := exporter.NewTableExporter(cfg.Paths.OutputDir)
			if streamed {
				err = tableExporter.ExportTableStreamed(table, outputFile)
			} else {
				err = tableExporter.ExportTable(table, outputFile)
			}
			if err != nil {
				return err
			}

			logger.InfoContext(cmd.Context(), "extraction exported",
				"file", outputFile,
				"rows", len(table.Rows),
				"columns", len(table.FeatureColumns))
			return nil
		},
	}

	selection.register(cmd)
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file name under the output directory")
	cmd.Flags().BoolVar(&streamed, "stream", false, "Write the table row by row")

	return cmd
}
