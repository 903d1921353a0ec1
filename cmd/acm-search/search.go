// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/acm-search/internal/acm"
	"github.com/pdiddy/acm-search/internal/output"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Print the top N results for a title",
	Long: `Search runs one title query and prints up to --top results in the site's
ranked order as a table, JSON, or a CSL-YAML bibliography. With --output the
results are also saved as a JSON array.`,
	Args: cobra.NoArgs,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().String("title", "", "title of the paper to search for")
	searchCmd.Flags().Int("top", 0, "maximum number of results (default: max_results from config, 20)")
	searchCmd.Flags().String("format", "table", "stdout format: table, json, csl")
	searchCmd.Flags().String("output", "", "also save the results as a JSON array to this file")
	_ = searchCmd.MarkFlagRequired("title")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	title, _ := cmd.Flags().GetString("title")
	format, _ := cmd.Flags().GetString("format")
	outPath, _ := cmd.Flags().GetString("output")
	top, _ := cmd.Flags().GetInt("top")
	if top == 0 {
		top = viper.GetInt("max_results")
	}

	switch format {
	case "table", "json", "csl":
	default:
		return fmt.Errorf("unknown format %q: use table, json, or csl", format)
	}

	s, err := acm.New(searchConfig(), acm.WithLogger(logger))
	if err != nil {
		return err
	}
	defer s.Close()

	records, err := s.SearchTopN(cmd.Context(), title, top)
	if err != nil {
		return err
	}

	if outPath != "" {
		path, err := s.SaveResults(outPath)
		if err != nil {
			return err
		}
		logger.Info("results saved", zap.String("path", path))
	}

	w := cmd.OutOrStdout()
	switch format {
	case "json":
		return output.FormatJSON(w, records)
	case "csl":
		return output.FormatCSL(w, records)
	default:
		output.FormatTable(w, records)
		return nil
	}
}
