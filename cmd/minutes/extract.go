package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/csheth/minutes/internal/meeting"
)

type extractOutput struct {
	TranscriptID string               `json:"transcriptId"`
	Items        []meeting.ActionItem `json:"items"`
}

func newExtractCmd(a *app) *cobra.Command {
	var (
		file   string
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "extract [TEXT...]",
		Short: "Submit a transcript and print the extracted action items",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := resolveText(cmd, file, args)
			if err != nil {
				return err
			}
			ex, err := a.client.Extract(cmd.Context(), text)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(extractOutput{TranscriptID: ex.TranscriptID, Items: ex.Items})
			}
			if ex.TranscriptID != "" {
				fmt.Fprintf(out, "Extracted %d action item(s) into transcript %s.\n", len(ex.Items), ex.TranscriptID)
			} else {
				fmt.Fprintf(out, "Extracted %d action item(s); the backend returned no transcript id.\n", len(ex.Items))
			}
			fmt.Fprint(out, meeting.TaskList(ex.Items))
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "Read the transcript from a .txt, .md or .pdf file or URL")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the extraction as JSON")
	return cmd
}
