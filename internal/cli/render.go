package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"note-manager/internal/deadline"
	"note-manager/internal/model"
)

var (
	idColor     = color.New(color.FgCyan)
	userColor   = color.New(color.FgGreen)
	titleColor  = color.New(color.FgYellow, color.Bold)
	dateColor   = color.New(color.FgRed)
	statusColor = color.New(color.FgMagenta)
	headerColor = color.New(color.FgBlue, color.Bold)
)

func deadlineText(n model.Note) string {
	if !n.HasDeadline() {
		return deadline.NoDeadlineMarker
	}
	return deadline.FormatForDisplay(n.IssueDate, true, n.Status)
}

// printNote выводит заметку целиком или кратко (ID, автор, заголовок, дедлайн)
func printNote(w io.Writer, n model.Note, full bool) {
	fmt.Fprintf(w, "ID:       %s\n", idColor.Sprint(n.ID))
	fmt.Fprintf(w, "Username: %s\n", userColor.Sprint(n.Username))
	fmt.Fprintf(w, "Title:    %s\n", titleColor.Sprint(n.Title))
	if full {
		fmt.Fprintf(w, "Content:  %s\n", n.Content)
		fmt.Fprintf(w, "Status:   %s\n", statusColor.Sprint(n.Status))
		fmt.Fprintf(w, "Created:  %s\n", dateColor.Sprint(deadline.FormatForDisplay(n.CreatedDate, false, n.Status)))
	}
	fmt.Fprintf(w, "Deadline: %s\n", dateColor.Sprint(deadlineText(n)))
}

func printNotes(w io.Writer, notes []model.Note, full bool) {
	for i, n := range notes {
		if i > 0 {
			fmt.Fprintln(w)
		}
		printNote(w, n, full)
	}
}

// paginate возвращает страницу page (с 1); page <= 0 - все заметки
func paginate(notes []model.Note, page, size int) ([]model.Note, int, error) {
	if size <= 0 || len(notes) == 0 {
		return notes, 1, nil
	}
	pages := (len(notes) + size - 1) / size
	if page <= 0 {
		return notes, pages, nil
	}
	if page > pages {
		return nil, pages, fmt.Errorf("page %d is out of range (1-%d)", page, pages)
	}

	from := (page - 1) * size
	to := min(from+size, len(notes))
	return notes[from:to], pages, nil
}

func printHeader(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, headerColor.Sprintf(format, args...))
}
