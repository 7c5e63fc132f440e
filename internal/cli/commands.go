package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"gratitude-bot/internal/conversation"
	"gratitude-bot/internal/export"
	"gratitude-bot/internal/storage"
)

func newExportCmd(opts *options) *cobra.Command {
	var days string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Print notes of the last 7 or 14 days",
		Long:  "Prune notes past retention, then print the notes of the chosen window grouped by recipient.",
		RunE: func(cmd *cobra.Command, args []string) error {
			today, err := opts.today()
			if err != nil {
				return err
			}
			s, err := opts.openStore()
			if err != nil {
				return fmt.Errorf("open store: %w", err)
			}
			defer s.Close()

			window := conversation.WindowDays(days)
			notes, err := conversation.PruneAndQuery(cmd.Context(), s, today, window)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(notes) == 0 {
				fmt.Fprintln(out, "no notes in the last", window, "days")
				return nil
			}
			fmt.Fprintln(out, export.Document(notes))
			return nil
		},
	}
	cmd.Flags().StringVar(&days, "days", "14", "Window: anything containing 7 means 7 days, otherwise 14")
	return cmd
}

func newPruneCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "prune",
		Short: fmt.Sprintf("Delete notes older than %d days", conversation.RetentionDays),
		RunE: func(cmd *cobra.Command, args []string) error {
			today, err := opts.today()
			if err != nil {
				return err
			}
			s, err := opts.openStore()
			if err != nil {
				return fmt.Errorf("open store: %w", err)
			}
			defer s.Close()

			cutoff := today.AddDate(0, 0, -conversation.RetentionDays)
			n, err := s.PruneOlderThan(cmd.Context(), cutoff)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "pruned %d notes older than %s\n", n, storage.FormatDate(cutoff))
			return nil
		},
	}
}

func newCleanCmd(opts *options) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Delete all notes (irreversible)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errors.New("refusing to delete all notes without --yes")
			}
			s, err := opts.openStore()
			if err != nil {
				return fmt.Errorf("open store: %w", err)
			}
			defer s.Close()

			n, err := s.DeleteAll(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %d notes from %s\n", n, opts.path())
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm deletion")
	return cmd
}
