package main

import (
	"encoding/json"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
)

var analyzeMint string

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze one mint and print the report as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		env, err := initAnalyzer(cfg, "analyze")
		if err != nil {
			return err
		}

		report, err := env.Analyzer.Analyze(ctx, analyzeMint)
		if err != nil {
			return eris.Wrap(err, "analyze")
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	},
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeMint, "mint", "", "token mint address (required)")
	_ = analyzeCmd.MarkFlagRequired("mint")
	rootCmd.AddCommand(analyzeCmd)
}
