package repository

import (
	"context"
	"errors"
	"fmt"

	"note-manager/internal/converter"
)

// ErrStoreNotExist возвращается, когда хранилище еще не создано
var ErrStoreNotExist = errors.New("note store does not exist")

// NoteStore интерфейс долговременного хранилища записей заметок
type NoteStore interface {
	// LoadAll читает все записи; ErrStoreNotExist, если хранилища нет
	LoadAll(ctx context.Context) ([]converter.Record, error)

	// SaveAll полностью перезаписывает хранилище
	SaveAll(ctx context.Context, records []converter.Record) error

	// AppendOne дописывает одну запись, не перезаписывая остальные
	AppendOne(ctx context.Context, record converter.Record) error

	// Create создает пустое хранилище
	Create(ctx context.Context) error

	// Close освобождает ресурсы хранилища
	Close() error
}

// PersistenceError ошибка ввода-вывода хранилища
type PersistenceError struct {
	Op       string
	Location string
	Err      error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Location, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
