package cli

import (
	"errors"

	"note-manager/internal/converter"
	"note-manager/internal/deadline"
	"note-manager/internal/model"
	"note-manager/internal/repository"
	svc "note-manager/internal/service"
)

// Describe превращает ошибку команды в сообщение для пользователя
func Describe(err error) string {
	var (
		integrityErr   *converter.DataIntegrityError
		validationErr  *deadline.ValidationError
		persistenceErr *repository.PersistenceError
	)

	switch {
	case errors.Is(err, svc.ErrNoteNotFound):
		return "Error: " + err.Error()
	case errors.As(err, &integrityErr):
		return "Error: the note store is corrupted, nothing was loaded: " + integrityErr.Error()
	case errors.As(err, &validationErr):
		return "Invalid deadline: " + err.Error()
	case errors.Is(err, model.ErrEmptyUsername),
		errors.Is(err, model.ErrEmptyTitle),
		errors.Is(err, model.ErrUnknownStatus):
		return "Invalid note: " + err.Error()
	case errors.As(err, &persistenceErr):
		return "Storage failure: " + err.Error()
	default:
		return "Error: " + err.Error()
	}
}
