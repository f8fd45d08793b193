// Package file хранит записи заметок в одном файле (YAML или JSON Lines).
package file

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"

	"note-manager/internal/converter"
	"note-manager/internal/repository"
)

const (
	filePerm = 0o644
	dirPerm  = 0o755
)

// Format узкий интерфейс сериализатора файла.
// Результат Marshal для одной записи, дописанный в конец файла, должен
// оставаться корректным содержимым того же формата.
type Format interface {
	Name() string
	Marshal(records []converter.Record) ([]byte, error)
	Unmarshal(data []byte) ([]converter.Record, error)
}

var _ repository.NoteStore = (*Store)(nil)

// Store файловое хранилище записей
type Store struct {
	path   string
	format Format
}

// NewStore создает файловое хранилище по пути path в формате format
func NewStore(path string, format Format) *Store {
	return &Store{path: path, format: format}
}

// Path возвращает путь к файлу хранилища
func (s *Store) Path() string {
	return s.path
}

func (s *Store) fail(op string, err error) error {
	return &repository.PersistenceError{Op: s.format.Name() + " " + op, Location: s.path, Err: err}
}

// LoadAll читает весь файл; пустой файл - пустая коллекция
func (s *Store) LoadAll(ctx context.Context) ([]converter.Record, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, repository.ErrStoreNotExist
	}
	if err != nil {
		return nil, s.fail("read", err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	records, err := s.format.Unmarshal(data)
	if err != nil {
		return nil, s.fail("decode", err)
	}

	return records, nil
}

// SaveAll перезаписывает файл через временный файл и rename
func (s *Store) SaveAll(ctx context.Context, records []converter.Record) error {
	var data []byte
	if len(records) > 0 {
		var err error
		data, err = s.format.Marshal(records)
		if err != nil {
			return s.fail("encode", err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(s.path), dirPerm); err != nil {
		return s.fail("mkdir", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, filePerm); err != nil {
		return s.fail("write", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return s.fail("rename", err)
	}

	return nil
}

// AppendOne дописывает одну запись в конец файла
func (s *Store) AppendOne(ctx context.Context, record converter.Record) error {
	data, err := s.format.Marshal([]converter.Record{record})
	if err != nil {
		return s.fail("encode", err)
	}

	f, err := os.OpenFile(s.path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, filePerm)
	if err != nil {
		return s.fail("open", err)
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return s.fail("append", err)
	}

	return nil
}

// Create создает пустой файл хранилища, если его нет
func (s *Store) Create(ctx context.Context) error {
	if err := os.MkdirAll(filepath.Dir(s.path), dirPerm); err != nil {
		return s.fail("mkdir", err)
	}

	f, err := os.OpenFile(s.path, os.O_WRONLY|os.O_CREATE, filePerm)
	if err != nil {
		return s.fail("create", err)
	}

	return f.Close()
}

func (s *Store) Close() error {
	return nil
}
