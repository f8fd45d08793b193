package memory

import (
	"context"
	"errors"
	"sync"

	"note-manager/internal/converter"
	"note-manager/internal/repository"
)

// ErrInjected используется тестами для имитации сбоя хранилища
var ErrInjected = errors.New("injected store failure")

var _ repository.NoteStore = (*Store)(nil)

// Store хранилище записей в памяти процесса
type Store struct {
	mu      sync.RWMutex
	exists  bool
	records []converter.Record

	// FailSave, FailAppend, FailCreate заставляют соответствующие операции возвращать ErrInjected
	FailSave   bool
	FailAppend bool
	FailCreate bool
}

// NewStore создает пустое существующее хранилище
func NewStore() *Store {
	return &Store{exists: true}
}

// NewMissingStore создает хранилище, которое сообщает о своем отсутствии до вызова Create
func NewMissingStore() *Store {
	return &Store{}
}

// NewStoreWith создает хранилище с заранее заданными записями
func NewStoreWith(records ...converter.Record) *Store {
	return &Store{exists: true, records: append([]converter.Record(nil), records...)}
}

// LoadAll возвращает копию всех записей
func (s *Store) LoadAll(ctx context.Context) ([]converter.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.exists {
		return nil, repository.ErrStoreNotExist
	}

	return append([]converter.Record(nil), s.records...), nil
}

// SaveAll заменяет все записи
func (s *Store) SaveAll(ctx context.Context, records []converter.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailSave {
		return &repository.PersistenceError{Op: "save", Location: "memory", Err: ErrInjected}
	}

	s.exists = true
	s.records = append([]converter.Record(nil), records...)

	return nil
}

// AppendOne добавляет одну запись
func (s *Store) AppendOne(ctx context.Context, record converter.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailAppend {
		return &repository.PersistenceError{Op: "append", Location: "memory", Err: ErrInjected}
	}

	s.exists = true
	s.records = append(s.records, record)

	return nil
}

// Create помечает хранилище как созданное
func (s *Store) Create(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailCreate {
		return &repository.PersistenceError{Op: "create", Location: "memory", Err: ErrInjected}
	}

	s.exists = true

	return nil
}

// Exists сообщает, создано ли хранилище
func (s *Store) Exists() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.exists
}

// Len возвращает количество сохраненных записей
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

func (s *Store) Close() error {
	return nil
}
