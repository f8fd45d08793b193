package service

import (
	"context"
	"errors"
	"time"

	"note-manager/internal/model"
)

// ErrNoteNotFound возвращается, когда заметка с указанным ID не найдена
var ErrNoteNotFound = errors.New("note not found")

// CreateInput проверенные слоем представления значения новой заметки
type CreateInput struct {
	Username string
	Title    string
	Content  string
	Status   model.Status
	Deadline time.Time // игнорируется для COMPLETED и TERMLESS
}

// NotePatch независимо изменяемые поля заметки; nil - поле не меняется
type NotePatch struct {
	Username *string
	Title    *string
	Content  *string
	Status   *model.Status
	Deadline *time.Time
}

// IsEmpty сообщает, что патч ничего не меняет
func (p NotePatch) IsEmpty() bool {
	return p.Username == nil && p.Title == nil && p.Content == nil && p.Status == nil && p.Deadline == nil
}

// UrgentNotes срочные заметки по корзинам
type UrgentNotes struct {
	Missed   []model.Note // дедлайн пропущен
	Today    []model.Note // дедлайн сегодня
	Tomorrow []model.Note // дедлайн завтра
}

// Total возвращает общее число срочных заметок
func (u *UrgentNotes) Total() int {
	if u == nil {
		return 0
	}
	return len(u.Missed) + len(u.Today) + len(u.Tomorrow)
}

// NoteService интерфейс владельца коллекции заметок
type NoteService interface {
	// Load загружает коллекцию из хранилища целиком или не загружает ничего
	Load(ctx context.Context) error

	// Create собирает, проверяет и добавляет новую заметку
	Create(ctx context.Context, in CreateInput) (model.Note, error)

	// Append добавляет готовую заметку и дописывает ее в хранилище
	Append(ctx context.Context, note model.Note) (model.Note, error)

	// SaveAll перезаписывает хранилище текущей коллекцией
	SaveAll(ctx context.Context) error

	// GetByID возвращает заметку по её ID
	GetByID(ctx context.Context, id string) (model.Note, error)

	// Update изменяет поля заметки и сохраняет коллекцию
	Update(ctx context.Context, id string, patch NotePatch) (model.Note, error)

	// DeleteByID удаляет заметку и возвращает её
	DeleteByID(ctx context.Context, id string) (model.Note, error)

	// DeleteFiltered удаляет все заметки, подходящие под фильтр
	DeleteFiltered(ctx context.Context, keywords []string, status *model.Status) (int, error)

	// Clear удаляет все заметки
	Clear(ctx context.Context) error

	// List возвращает копию коллекции
	List(ctx context.Context) []model.Note

	// Count возвращает размер коллекции
	Count() int

	// Filter ищет заметки по ключевым словам и состоянию
	Filter(keywords []string, status *model.Status) []model.Note

	// Sort упорядочивает заметки для отображения
	Sort(notes []model.Note, byCreated, descending bool) []model.Note

	// UrgentNotes раскладывает незавершенные заметки по срочности; nil для пустой коллекции
	UrgentNotes(ctx context.Context) *UrgentNotes
}
