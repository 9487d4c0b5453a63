package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/dgallion1/docsift/internal/config"
	"github.com/dgallion1/docsift/internal/pipeline"
	"github.com/spf13/cobra"
)

func outlineCmd() *cobra.Command {
	var inDir, outDir string

	cmd := &cobra.Command{
		Use:   "outline",
		Short: "Write a title+heading outline JSON for every document in a directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
			cfg := config.Load()
			if inDir == "" {
				inDir = cfg.InputDir
			}
			if outDir == "" {
				outDir = cfg.OutputDir
			}

			// Outline mode needs no embedding collaborator.
			proc := pipeline.NewProcessor(cfg, nil, log)
			return proc.RunOutlineDir(context.Background(), inDir, outDir)
		},
	}

	cmd.Flags().StringVarP(&inDir, "input", "i", "", "input directory (default $INPUT_DIR)")
	cmd.Flags().StringVarP(&outDir, "output", "o", "", "output directory (default $OUTPUT_DIR)")
	return cmd
}
