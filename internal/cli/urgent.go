package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"note-manager/internal/model"
)

func urgentCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "urgent",
		Short: "Show notes with missed, today's and tomorrow's deadlines",
		Args:  cobra.NoArgs,
	}
	cmd.RunE = e.logged(func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		urgent := e.app.Notes.UrgentNotes(cmd.Context())
		if urgent == nil {
			fmt.Fprintln(out, "No notes found")
			return nil
		}
		if urgent.Total() == 0 {
			fmt.Fprintln(out, "✓ No urgent notes")
			return nil
		}

		printHeader(out, "You have %d urgent note(s)", urgent.Total())
		for _, b := range []struct {
			title string
			notes []model.Note
		}{
			{"Missed deadlines", urgent.Missed},
			{"Deadline today", urgent.Today},
			{"Deadline tomorrow", urgent.Tomorrow},
		} {
			if len(b.notes) == 0 {
				continue
			}
			fmt.Fprintln(out)
			printHeader(out, "%s (%d):", b.title, len(b.notes))
			printNotes(out, b.notes, false)
		}
		return nil
	})
	return cmd
}
