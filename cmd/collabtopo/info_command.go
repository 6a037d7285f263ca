package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"collabtopo/internal/config"
	"collabtopo/internal/corpus"
	"collabtopo/internal/pipeline"
)

type datasetInfo struct {
	Source         string `json:"source"`
	Categories     string `json:"categories"`
	NumOfDocuments int    `json:"num_of_documents"`
}

func newInfoCommand(ctx *commandContext) *cobra.Command {
	var dataFile string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "info",
		Short: "Describe the filtered corpus",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			path := cfg.Paths.DataFile
			if dataFile != "" {
				if path, err = config.ExpandPath(dataFile); err != nil {
					return fmt.Errorf("resolve data path: %w", err)
				}
			}
			opts, err := pipeline.OptionsFromConfig(cfg)
			if err != nil {
				return err
			}
			docs, err := corpus.Load(path)
			if err != nil {
				return err
			}
			info := docs.Describe(opts.DatasetQuery())

			if asJSON {
				return writeJSON(cmd, datasetInfo{
					Source:         path,
					Categories:     info.CategoryLabel(),
					NumOfDocuments: info.NumDocuments,
				})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "source: %s\n", path)
			fmt.Fprintf(out, "categories: %s\n", info.CategoryLabel())
			fmt.Fprintf(out, "num_of_documents: %d\n", info.NumDocuments)
			return nil
		},
	}

	cmd.Flags().StringVar(&dataFile, "data", "", "Corpus file (.csv or .xlsx), overrides paths.data_file")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}
