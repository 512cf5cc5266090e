// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/elastic-tutorial/internal/analysis"
)

func newAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Run the placeholder analyzer over the tutorial data",
		Long: `Analyze loads the tutorial table as seed data and passes it to the
simple analyzer. The simple analyzer is a placeholder: it performs no
computation and returns no result.`,
		RunE: runAnalyze,
	}
	addDatasetFlags(cmd)
	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	if err := bindFlags(cmd, datasetFlags); err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	seed, err := loadTutorial(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	var a analysis.Analyzer = analysis.NewSimpleAnalyzer()
	res, err := a.Analyze(nil, seed)
	if err != nil {
		return err
	}
	if res == nil {
		fmt.Fprintf(cmd.OutOrStdout(), "analyzed %d seed rows: no result\n", seed.NRows())
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "analyzed %d seed rows: %v\n", seed.NRows(), res.Summary)
	return nil
}
