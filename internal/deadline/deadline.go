// Package deadline разбирает, проверяет и отображает даты заметок.
package deadline

import (
	"errors"
	"fmt"
	"time"

	"note-manager/internal/model"
)

const (
	// InputLayout формат ввода даты пользователем (dd-mm-yyyy hh:mm)
	InputLayout = "02-01-2006 15:04"
	// DisplayLayout формат отображения даты
	DisplayLayout = "January 02, 2006 15:04"
	// NoDeadlineMarker выводится вместо даты для заметок без дедлайна
	NoDeadlineMarker = "NO DEADLINE"
)

var (
	ErrInvalidFormat  = errors.New("date does not match format dd-mm-yyyy hh:mm")
	ErrNotInFuture    = errors.New("the deadline can be only in the future")
	ErrRequired       = errors.New("deadline is required for active and postponed notes")
	ErrBeforeCreation = model.ErrDeadlineBeforeCreation
)

// ValidationError ошибка пользовательского ввода даты, всегда исправима повторным вводом
type ValidationError struct {
	Input string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid deadline %q: %v", e.Input, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Parse разбирает дедлайн и проверяет, что он строго в будущем относительно now.
// Проверка выполняется только при вводе: сохраненный дедлайн может стать просроченным.
func Parse(text string, now time.Time) (time.Time, error) {
	t, err := time.ParseInLocation(InputLayout, text, now.Location())
	if err != nil {
		return time.Time{}, &ValidationError{Input: text, Err: ErrInvalidFormat}
	}
	if !t.After(now) {
		return time.Time{}, &ValidationError{Input: text, Err: ErrNotInFuture}
	}
	return t, nil
}

// CheckAgainstCreated проверяет, что дедлайн не раньше даты создания
func CheckAgainstCreated(issue, created time.Time) error {
	if issue.Before(created) {
		return &ValidationError{Input: FormatInput(issue), Err: ErrBeforeCreation}
	}
	return nil
}

// CheckFuture проверяет уже разобранный дедлайн
func CheckFuture(issue, now time.Time) error {
	if !issue.After(now) {
		return &ValidationError{Input: FormatInput(issue), Err: ErrNotInFuture}
	}
	return nil
}

// FormatInput возвращает дату в формате ввода
func FormatInput(t time.Time) string {
	return t.Format(InputLayout)
}

// FormatForDisplay форматирует дату для вывода.
// Для дедлайна завершенной или бессрочной заметки возвращает NoDeadlineMarker.
func FormatForDisplay(t time.Time, isDeadline bool, status model.Status) string {
	if isDeadline && status.IsTerminal() {
		return NoDeadlineMarker
	}
	return t.Format(DisplayLayout)
}
