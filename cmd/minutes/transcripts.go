package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/csheth/minutes/internal/meeting"
)

const listPreviewLimit = 60

var errUnknownTranscript = errors.New("no such transcript")

func newTranscriptsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "transcripts",
		Aliases: []string{"t"},
		Short:   "List, show, or delete stored transcripts",
	}
	cmd.AddCommand(newTranscriptsListCmd(a))
	cmd.AddCommand(newTranscriptsShowCmd(a))
	cmd.AddCommand(newTranscriptsRmCmd(a))
	return cmd
}

func newTranscriptsListCmd(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transcripts, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := a.client.ListTranscripts(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(list)
			}
			if len(list) == 0 {
				fmt.Fprintln(out, "No transcripts yet")
				return nil
			}
			for _, t := range list {
				counts := meeting.Count(t.Items)
				fmt.Fprintf(out, "%s\t%d/%d done\t%s\n", t.ID, counts.Completed, counts.Total, t.Preview(listPreviewLimit))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the transcripts as JSON")
	return cmd
}

func newTranscriptsShowCmd(a *app) *cobra.Command {
	var filterName string
	cmd := &cobra.Command{
		Use:   "show ID",
		Short: "Print a transcript's action items as a task list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := meeting.ParseFilter(filterName)
			if err != nil {
				return err
			}
			list, err := a.client.ListTranscripts(cmd.Context())
			if err != nil {
				return err
			}
			for _, t := range list {
				if t.ID != args[0] {
					continue
				}
				items := filter.Apply(t.Items)
				if len(items) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), filter.EmptyMessage(len(t.Items)))
					return nil
				}
				fmt.Fprint(cmd.OutOrStdout(), meeting.TaskList(items))
				return nil
			}
			return fmt.Errorf("transcript %s: %w", args[0], errUnknownTranscript)
		},
	}
	cmd.Flags().StringVar(&filterName, "filter", "all", "Which items to print (all, open, completed)")
	return cmd
}

func newTranscriptsRmCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "rm ID...",
		Aliases: []string{"delete"},
		Short:   "Delete transcripts and their action items",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, id := range args {
				if err := a.client.DeleteTranscript(cmd.Context(), id); err != nil {
					return fmt.Errorf("delete %s: %w", id, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", id)
			}
			return nil
		},
	}
}
