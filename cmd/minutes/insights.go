package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/csheth/minutes/internal/insights"
)

const insightsWidth = 80

func newInsightsCmd(a *app) *cobra.Command {
	var (
		asJSON  bool
		outPath string
	)
	cmd := &cobra.Command{
		Use:   "insights",
		Short: "Summarize transcripts and task completion",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := a.client.ListTranscripts(cmd.Context())
			if err != nil {
				return err
			}
			report := insights.Compute(list)

			if outPath != "" {
				if err := insights.WriteJSON(outPath, report); err != nil {
					return err
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s\n", outPath)
			}
			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}
			if outPath != "" {
				return nil
			}
			fmt.Fprint(out, insights.Render(report.Markdown(), insightsWidth, insights.DetectStyle(out)))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the report as JSON")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Write the JSON report to this file")
	return cmd
}
