package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/dgallion1/docsift/internal/config"
	"github.com/dgallion1/docsift/internal/embed"
	"github.com/dgallion1/docsift/internal/pipeline"
	"github.com/spf13/cobra"
)

func rankCmd() *cobra.Command {
	var inDir, outDir, specPath string

	cmd := &cobra.Command{
		Use:   "rank",
		Short: "Rank a document collection's sections for the declared persona and task",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
			cfg := config.Load()
			if inDir == "" {
				inDir = cfg.InputDir
			}
			if outDir == "" {
				outDir = cfg.OutputDir
			}

			client := embed.NewClient(cfg.EmbedURL, cfg.EmbedModel)
			defer client.Close()

			proc := pipeline.NewProcessor(cfg, client, log)
			return proc.RunRankDir(context.Background(), inDir, outDir, specPath)
		},
	}

	cmd.Flags().StringVarP(&inDir, "input", "i", "", "input directory (default $INPUT_DIR)")
	cmd.Flags().StringVarP(&outDir, "output", "o", "", "output directory (default $OUTPUT_DIR)")
	cmd.Flags().StringVarP(&specPath, "collection", "c", "", "collection spec file (default <input>/collection.json)")
	return cmd
}
