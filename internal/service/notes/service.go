package notes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"note-manager/internal/converter"
	"note-manager/internal/deadline"
	"note-manager/internal/model"
	"note-manager/internal/repository"
	svc "note-manager/internal/service"
)

// ErrDuplicateID возвращается при попытке добавить заметку с уже существующим ID
var ErrDuplicateID = errors.New("duplicate note id")

var _ svc.NoteService = (*service)(nil)

type service struct {
	mu     sync.RWMutex
	notes  []model.Note
	store  repository.NoteStore
	log    logrus.FieldLogger
	events *EventService
	now    func() time.Time
}

// Option настраивает сервис заметок
type Option func(*service)

// WithLogger задает логгер для предупреждений
func WithLogger(log logrus.FieldLogger) Option {
	return func(s *service) {
		s.log = log
	}
}

// WithClock подменяет источник текущего времени
func WithClock(now func() time.Time) Option {
	return func(s *service) {
		s.now = now
	}
}

// WithEvents подключает рассылку событий об изменениях
func WithEvents(events *EventService) Option {
	return func(s *service) {
		s.events = events
	}
}

// NewNoteService создает новый экземпляр сервиса - единственного владельца коллекции заметок
func NewNoteService(store repository.NoteStore, opts ...Option) svc.NoteService {
	s := &service{
		store: store,
		log:   logrus.StandardLogger(),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func notFound(id string) error {
	return fmt.Errorf("note with id %s: %w", id, svc.ErrNoteNotFound)
}

// Load загружает все записи хранилища.
// Отсутствующее хранилище - пустая коллекция и предупреждение.
// Любая некорректная запись отменяет загрузку целиком, коллекция не меняется.
func (s *service) Load(ctx context.Context) error {
	records, err := s.store.LoadAll(ctx)
	if errors.Is(err, repository.ErrStoreNotExist) {
		s.log.WithField("op", "load").Warn("⚠️  Note store does not exist, starting with an empty collection")
		if err := s.store.Create(ctx); err != nil {
			s.log.WithField("op", "create").WithError(err).Warn("⚠️  Can't create a new note store, notes will be kept in memory only")
		} else {
			s.log.WithField("op", "create").Info("A new note store is created")
		}

		s.mu.Lock()
		s.notes = nil
		s.mu.Unlock()
		return nil
	}
	if err != nil {
		return fmt.Errorf("load notes: %w", err)
	}

	notes, err := converter.RecordsToModels(records)
	if err != nil {
		return err
	}

	seen := make(map[string]struct{}, len(notes))
	for i, note := range notes {
		if _, dup := seen[note.ID]; dup {
			return &converter.DataIntegrityError{Record: records[i], Field: converter.FieldID, Err: ErrDuplicateID}
		}
		seen[note.ID] = struct{}{}
	}

	s.mu.Lock()
	s.notes = notes
	s.mu.Unlock()

	s.log.WithField("count", len(notes)).Debug("Notes loaded")
	return nil
}

// Create создает новую заметку: ID, дата создания, проверка дедлайна
func (s *service) Create(ctx context.Context, in svc.CreateInput) (model.Note, error) {
	now := s.now()

	note := model.Note{
		ID:          model.NewID(),
		Username:    strings.TrimSpace(in.Username),
		Title:       strings.TrimSpace(in.Title),
		Content:     strings.TrimSpace(in.Content),
		Status:      in.Status,
		CreatedDate: now,
		IssueDate:   model.NoDeadline,
	}

	if in.Status.HasDeadline() {
		if in.Deadline.IsZero() {
			return model.Note{}, &deadline.ValidationError{Err: deadline.ErrRequired}
		}
		if err := deadline.CheckAgainstCreated(in.Deadline, now); err != nil {
			return model.Note{}, err
		}
		if err := deadline.CheckFuture(in.Deadline, now); err != nil {
			return model.Note{}, err
		}
		note.IssueDate = in.Deadline
	}

	if err := note.Validate(); err != nil {
		return model.Note{}, err
	}

	return s.Append(ctx, note)
}

// Append добавляет заметку в коллекцию и дописывает её в хранилище.
// Ошибка записи - только предупреждение, заметка остается в памяти.
func (s *service) Append(ctx context.Context, note model.Note) (model.Note, error) {
	if note.ID == "" {
		note.ID = model.NewID()
	}
	if err := note.Validate(); err != nil {
		return model.Note{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(note.ID) >= 0 {
		return model.Note{}, fmt.Errorf("append note %s: %w", note.ID, ErrDuplicateID)
	}

	s.notes = append(s.notes, note)

	if err := s.store.AppendOne(ctx, converter.ModelToRecord(note)); err != nil {
		s.log.WithFields(logrus.Fields{"op": "append", "id": note.ID}).WithError(err).
			Warn("⚠️  Failed to persist note, it is kept in memory for this session")
	}

	s.events.Publish(Event{Kind: EventCreated, Note: note})

	return note, nil
}

// SaveAll перезаписывает хранилище текущей коллекцией
func (s *service) SaveAll(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	s.saveAllLocked(ctx)
	return nil
}

func (s *service) saveAllLocked(ctx context.Context) {
	if err := s.store.SaveAll(ctx, converter.ModelsToRecords(s.notes)); err != nil {
		s.log.WithFields(logrus.Fields{"op": "save", "count": len(s.notes)}).WithError(err).
			Warn("⚠️  Failed to save notes, changes are kept in memory for this session")
	}
}

func (s *service) indexOf(id string) int {
	for i := range s.notes {
		if s.notes[i].ID == id {
			return i
		}
	}
	return -1
}

// GetByID возвращает заметку по её ID
func (s *service) GetByID(ctx context.Context, id string) (model.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return model.Note{}, notFound(id)
	}

	return s.notes[idx], nil
}

// Update обновляет поля заметки с указанным ID.
// Заметка в коллекции заменяется только после успешной проверки.
func (s *service) Update(ctx context.Context, id string, patch svc.NotePatch) (model.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return model.Note{}, notFound(id)
	}

	note := s.notes[idx]

	if patch.Username != nil {
		note.Username = strings.TrimSpace(*patch.Username)
	}
	if patch.Title != nil {
		note.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Content != nil {
		note.Content = strings.TrimSpace(*patch.Content)
	}
	if patch.Status != nil {
		note.Status = *patch.Status
	}
	if patch.Deadline != nil {
		if err := deadline.CheckAgainstCreated(*patch.Deadline, note.CreatedDate); err != nil {
			return model.Note{}, err
		}
		if err := deadline.CheckFuture(*patch.Deadline, s.now()); err != nil {
			return model.Note{}, err
		}
		note.IssueDate = *patch.Deadline
	}

	// Завершенные и бессрочные заметки дедлайна не имеют
	if !note.Status.HasDeadline() {
		note.IssueDate = model.NoDeadline
	} else if !note.HasDeadline() {
		return model.Note{}, &deadline.ValidationError{Err: deadline.ErrRequired}
	}

	if err := note.Validate(); err != nil {
		return model.Note{}, err
	}

	s.notes[idx] = note
	s.saveAllLocked(ctx)
	s.events.Publish(Event{Kind: EventUpdated, Note: note})

	return note, nil
}

// DeleteByID удаляет заметку по ID и сохраняет оставшуюся коллекцию
func (s *service) DeleteByID(ctx context.Context, id string) (model.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return model.Note{}, notFound(id)
	}

	deleted := s.notes[idx]
	s.notes = append(s.notes[:idx:idx], s.notes[idx+1:]...)

	s.saveAllLocked(ctx)
	s.events.Publish(Event{Kind: EventDeleted, Note: deleted})

	return deleted, nil
}

// DeleteFiltered удаляет все заметки, подходящие под фильтр, и возвращает их количество
func (s *service) DeleteFiltered(ctx context.Context, keywords []string, status *model.Status) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	keys := normalizeKeywords(keywords)
	kept := make([]model.Note, 0, len(s.notes))
	var deleted []model.Note
	for _, note := range s.notes {
		if matches(note, keys, status) {
			deleted = append(deleted, note)
			continue
		}
		kept = append(kept, note)
	}

	if len(deleted) == 0 {
		return 0, nil
	}

	s.notes = kept
	s.saveAllLocked(ctx)
	for _, note := range deleted {
		s.events.Publish(Event{Kind: EventDeleted, Note: note})
	}

	return len(deleted), nil
}

// Clear удаляет все заметки
func (s *service) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.notes) == 0 {
		return nil
	}

	deleted := s.notes
	s.notes = nil
	s.saveAllLocked(ctx)
	for _, note := range deleted {
		s.events.Publish(Event{Kind: EventDeleted, Note: note})
	}

	return nil
}

// List возвращает копию коллекции
func (s *service) List(ctx context.Context) []model.Note {
	s.mu.RLock()
	defer s.mu.RUnlock()

	notes := make([]model.Note, len(s.notes))
	copy(notes, s.notes)

	return notes
}

// Count возвращает количество заметок
func (s *service) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.notes)
}

func normalizeKeywords(keywords []string) []string {
	keys := make([]string, 0, len(keywords))
	for _, k := range keywords {
		k = strings.ToLower(strings.TrimSpace(k))
		if k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}

// matches: состояние совпадает И (ключевых слов нет ИЛИ хотя бы одно найдено)
func matches(note model.Note, keys []string, status *model.Status) bool {
	if status != nil && note.Status != *status {
		return false
	}
	if len(keys) == 0 {
		return true
	}

	username := strings.ToLower(note.Username)
	title := strings.ToLower(note.Title)
	content := strings.ToLower(note.Content)
	for _, k := range keys {
		if strings.Contains(username, k) || strings.Contains(title, k) || strings.Contains(content, k) {
			return true
		}
	}
	return false
}

// Filter возвращает заметки, подходящие под фильтр; пустой результат не является ошибкой
func (s *service) Filter(keywords []string, status *model.Status) []model.Note {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := normalizeKeywords(keywords)
	found := make([]model.Note, 0)
	for _, note := range s.notes {
		if matches(note, keys, status) {
			found = append(found, note)
		}
	}

	return found
}

// Sort упорядочивает заметки, см. SortNotes
func (s *service) Sort(notes []model.Note, byCreated, descending bool) []model.Note {
	return SortNotes(notes, byCreated, descending)
}

// UrgentNotes раскладывает незавершенные заметки по корзинам срочности.
// Для пустой коллекции возвращает nil.
func (s *service) UrgentNotes(ctx context.Context) *svc.UrgentNotes {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.notes) == 0 {
		return nil
	}

	now := s.now()
	urgent := &svc.UrgentNotes{
		Missed:   []model.Note{},
		Today:    []model.Note{},
		Tomorrow: []model.Note{},
	}

	for _, note := range s.notes {
		if note.Status.IsTerminal() {
			continue
		}
		switch days := DaysUntil(note.IssueDate, now); {
		case days < 0:
			urgent.Missed = append(urgent.Missed, note)
		case days == 0:
			urgent.Today = append(urgent.Today, note)
		case days == 1:
			urgent.Tomorrow = append(urgent.Tomorrow, note)
		}
	}

	urgent.Missed = SortNotes(urgent.Missed, false, false)

	return urgent
}
