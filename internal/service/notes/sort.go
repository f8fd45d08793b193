package notes

import (
	"math"
	"slices"
	"time"

	"note-manager/internal/model"
)

// SortNotes возвращает отсортированную копию notes.
//
// byCreated: по дате создания в направлении descending.
// Иначе по дедлайну с фиксированным ключом: заметки с реальным дедлайном идут
// раньше заметок без дедлайна, внутри каждой группы дедлайны по убыванию.
// В этой ветке флаг descending не учитывается, так было во всех версиях
// консольного менеджера и вызывающий код на это полагается.
func SortNotes(notes []model.Note, byCreated, descending bool) []model.Note {
	sorted := make([]model.Note, len(notes))
	copy(sorted, notes)

	if byCreated {
		slices.SortStableFunc(sorted, func(a, b model.Note) int {
			if descending {
				return b.CreatedDate.Compare(a.CreatedDate)
			}
			return a.CreatedDate.Compare(b.CreatedDate)
		})
		return sorted
	}

	slices.SortStableFunc(sorted, func(a, b model.Note) int {
		if a.HasDeadline() != b.HasDeadline() {
			if a.HasDeadline() {
				return -1
			}
			return 1
		}
		return b.IssueDate.Compare(a.IssueDate)
	})
	return sorted
}

// DaysUntil возвращает число полных суток до t, округленное вниз:
// дедлайн через час - 0, час назад - -1.
func DaysUntil(t, now time.Time) int {
	return int(math.Floor(t.Sub(now).Hours() / 24))
}
