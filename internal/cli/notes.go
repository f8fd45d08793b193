package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"note-manager/internal/deadline"
	"note-manager/internal/model"
	svc "note-manager/internal/service"
)

// parseStatusFlag разбирает необязательный флаг состояния
func parseStatusFlag(cmd *cobra.Command) (*model.Status, error) {
	if !cmd.Flags().Changed("status") {
		return nil, nil
	}
	raw, _ := cmd.Flags().GetString("status")
	st, err := model.ParseStatus(raw)
	if err != nil {
		return nil, fmt.Errorf("status %q: %w (valid: %v or 1-%d)", raw, err, model.Statuses(), len(model.Statuses()))
	}
	return &st, nil
}

func addCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new note",
		Args:  cobra.NoArgs,
	}
	cmd.RunE = e.logged(func(cmd *cobra.Command, args []string) error {
		in := svc.CreateInput{Status: model.StatusActive}
		in.Username, _ = cmd.Flags().GetString("user")
		in.Title, _ = cmd.Flags().GetString("title")
		in.Content, _ = cmd.Flags().GetString("content")

		st, err := parseStatusFlag(cmd)
		if err != nil {
			return err
		}
		if st != nil {
			in.Status = *st
		}

		if raw, _ := cmd.Flags().GetString("deadline"); raw != "" && in.Status.HasDeadline() {
			in.Deadline, err = deadline.Parse(raw, e.now())
			if err != nil {
				return err
			}
		}

		note, err := e.app.Notes.Create(cmd.Context(), in)
		if err != nil {
			return fmt.Errorf("failed to create note: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "✓ Created note %s: %s\n", idColor.Sprint(note.ID), note.Title)
		return nil
	})

	cmd.Flags().String("user", "", "author of the note")
	cmd.Flags().String("title", "", "note title")
	cmd.Flags().String("content", "", "note content")
	cmd.Flags().String("status", "", "ACTIVE, COMPLETED, POSTPONED, TERMLESS or 1-4 (default ACTIVE)")
	cmd.Flags().String("deadline", "", "deadline as dd-mm-yyyy hh:mm")
	return cmd
}

func listCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List notes page by page",
		Args:  cobra.NoArgs,
	}
	cmd.RunE = e.logged(func(cmd *cobra.Command, args []string) error {
		sortBy, _ := cmd.Flags().GetString("sort")
		asc, _ := cmd.Flags().GetBool("asc")
		full, _ := cmd.Flags().GetBool("full")
		page, _ := cmd.Flags().GetInt("page")

		var byCreated bool
		switch sortBy {
		case "created":
			byCreated = true
		case "deadline":
		default:
			return fmt.Errorf("unknown sort key %q (valid: created, deadline)", sortBy)
		}

		notes := e.app.Notes.Sort(e.app.Notes.List(cmd.Context()), byCreated, !asc)
		return printPage(cmd, e, notes, page, full)
	})

	cmd.Flags().String("sort", "created", "sort by created or deadline")
	cmd.Flags().Bool("asc", false, "oldest first when sorting by created")
	cmd.Flags().Bool("full", false, "show every field")
	cmd.Flags().Int("page", 1, "page number, 0 shows all notes")
	return cmd
}

func printPage(cmd *cobra.Command, e *env, notes []model.Note, page int, full bool) error {
	out := cmd.OutOrStdout()
	if len(notes) == 0 {
		fmt.Fprintln(out, "No notes found")
		return nil
	}

	shown, pages, err := paginate(notes, page, e.cfg.Display.PageSize)
	if err != nil {
		return err
	}

	printNotes(out, shown, full)
	if page > 0 && pages > 1 {
		fmt.Fprintf(out, "\n-- page %d of %d (%d notes) --\n", page, pages, len(notes))
	}
	return nil
}

func showCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show [note-id]",
		Short: "Show note details",
		Args:  cobra.ExactArgs(1),
	}
	cmd.RunE = e.logged(func(cmd *cobra.Command, args []string) error {
		note, err := e.app.Notes.GetByID(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		printNote(cmd.OutOrStdout(), note, true)
		return nil
	})
	return cmd
}

func editCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit [note-id]",
		Short: "Change fields of a note",
		Args:  cobra.ExactArgs(1),
	}
	cmd.RunE = e.logged(func(cmd *cobra.Command, args []string) error {
		var patch svc.NotePatch
		flags := cmd.Flags()

		for name, dst := range map[string]**string{
			"user":    &patch.Username,
			"title":   &patch.Title,
			"content": &patch.Content,
		} {
			if flags.Changed(name) {
				v, _ := flags.GetString(name)
				*dst = &v
			}
		}

		st, err := parseStatusFlag(cmd)
		if err != nil {
			return err
		}
		patch.Status = st

		if flags.Changed("deadline") {
			raw, _ := flags.GetString("deadline")
			d, err := deadline.Parse(raw, e.now())
			if err != nil {
				return err
			}
			patch.Deadline = &d
		}

		if patch.IsEmpty() {
			return errors.New("nothing to change: pass at least one of --user, --title, --content, --status, --deadline")
		}

		note, err := e.app.Notes.Update(cmd.Context(), args[0], patch)
		if err != nil {
			return fmt.Errorf("failed to update note: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "✓ Updated note %s\n", idColor.Sprint(note.ID))
		printNote(cmd.OutOrStdout(), note, true)
		return nil
	})

	cmd.Flags().String("user", "", "new author")
	cmd.Flags().String("title", "", "new title")
	cmd.Flags().String("content", "", "new content")
	cmd.Flags().String("status", "", "new status")
	cmd.Flags().String("deadline", "", "new deadline as dd-mm-yyyy hh:mm")
	return cmd
}

func deleteCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete [note-id]",
		Short: "Delete a note by id, by filter or all notes",
		Args:  cobra.MaximumNArgs(1),
	}
	cmd.RunE = e.logged(func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		all, _ := cmd.Flags().GetBool("all")
		keywords, _ := cmd.Flags().GetStringArray("match")

		st, err := parseStatusFlag(cmd)
		if err != nil {
			return err
		}

		switch {
		case len(args) == 1:
			note, err := e.app.Notes.DeleteByID(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "✓ Deleted note %s: %s\n", idColor.Sprint(note.ID), note.Title)
		case all:
			count := e.app.Notes.Count()
			if err := e.app.Notes.Clear(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(out, "✓ Deleted all notes (%d)\n", count)
		case len(keywords) > 0 || st != nil:
			n, err := e.app.Notes.DeleteFiltered(cmd.Context(), keywords, st)
			if err != nil {
				return err
			}
			if n == 0 {
				fmt.Fprintln(out, "No notes match the filter")
				return nil
			}
			fmt.Fprintf(out, "✓ Deleted %d note(s)\n", n)
		default:
			return errors.New("specify a note id, --match/--status filter or --all")
		}
		return nil
	})

	cmd.Flags().StringArray("match", nil, "keyword to match in any field (repeatable)")
	cmd.Flags().String("status", "", "delete notes with this status")
	cmd.Flags().Bool("all", false, "delete every note")
	return cmd
}

func searchCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Find notes by keywords and status",
		Args:  cobra.NoArgs,
	}
	cmd.RunE = e.logged(func(cmd *cobra.Command, args []string) error {
		keywords, _ := cmd.Flags().GetStringArray("keyword")
		full, _ := cmd.Flags().GetBool("full")

		st, err := parseStatusFlag(cmd)
		if err != nil {
			return err
		}

		found := e.app.Notes.Filter(keywords, st)
		if len(found) > 0 {
			printHeader(cmd.OutOrStdout(), "Found %d note(s) for %s", len(found), describeFilter(keywords, st))
		}
		return printPage(cmd, e, found, 0, full)
	})

	cmd.Flags().StringArray("keyword", nil, "keyword to match in any field (repeatable)")
	cmd.Flags().String("status", "", "only notes with this status")
	cmd.Flags().Bool("full", false, "show every field")
	return cmd
}

func describeFilter(keywords []string, st *model.Status) string {
	var parts []string
	if len(keywords) > 0 {
		parts = append(parts, "keywords "+strings.Join(keywords, ", "))
	}
	if st != nil {
		parts = append(parts, "status "+st.String())
	}
	if len(parts) == 0 {
		return "empty filter"
	}
	return strings.Join(parts, " and ")
}
