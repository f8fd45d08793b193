// Package protobuf хранит записи в бинарном файле как сериализованный structpb.ListValue.
package protobuf

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"

	"note-manager/internal/converter"
	"note-manager/internal/repository"
)

var _ repository.NoteStore = (*Store)(nil)

// Store бинарное файловое хранилище.
// Сообщения protobuf при конкатенации сливаются, а repeated-поля дописываются,
// поэтому AppendOne просто дописывает список из одной записи в конец файла.
type Store struct {
	path string
}

// NewStore создает хранилище по пути path
func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) fail(op string, err error) error {
	return &repository.PersistenceError{Op: "protobuf " + op, Location: s.path, Err: err}
}

// LoadAll читает и разбирает весь файл
func (s *Store) LoadAll(ctx context.Context) ([]converter.Record, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, repository.ErrStoreNotExist
	}
	if err != nil {
		return nil, s.fail("read", err)
	}

	list := &structpb.ListValue{}
	if err := proto.Unmarshal(data, list); err != nil {
		return nil, s.fail("decode", err)
	}

	records := make([]converter.Record, 0, len(list.GetValues()))
	for i, v := range list.GetValues() {
		st := v.GetStructValue()
		if st == nil {
			return nil, s.fail("decode", fmt.Errorf("item %d is not a struct", i))
		}
		m := make(map[string]string, len(st.GetFields()))
		for key, field := range st.GetFields() {
			sv, ok := field.GetKind().(*structpb.Value_StringValue)
			if !ok {
				// Нестроковое значение считается отсутствующим полем
				continue
			}
			m[key] = sv.StringValue
		}
		records = append(records, converter.RecordFromMap(m))
	}

	return records, nil
}

func encode(records []converter.Record) ([]byte, error) {
	list := &structpb.ListValue{Values: make([]*structpb.Value, 0, len(records))}
	for _, rec := range records {
		fields := make(map[string]*structpb.Value, 7)
		for key, value := range rec.Map() {
			fields[key] = structpb.NewStringValue(value)
		}
		list.Values = append(list.Values, structpb.NewStructValue(&structpb.Struct{Fields: fields}))
	}

	data, err := proto.MarshalOptions{Deterministic: true}.Marshal(list)
	if err != nil {
		return nil, fmt.Errorf("proto.Marshal: %w", err)
	}
	return data, nil
}

// SaveAll перезаписывает файл
func (s *Store) SaveAll(ctx context.Context, records []converter.Record) error {
	data, err := encode(records)
	if err != nil {
		return s.fail("encode", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return s.fail("mkdir", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return s.fail("write", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return s.fail("rename", err)
	}

	return nil
}

// AppendOne дописывает запись в конец файла
func (s *Store) AppendOne(ctx context.Context, record converter.Record) error {
	data, err := encode([]converter.Record{record})
	if err != nil {
		return s.fail("encode", err)
	}

	f, err := os.OpenFile(s.path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0o644)
	if err != nil {
		return s.fail("open", err)
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return s.fail("append", err)
	}

	return nil
}

// Create создает пустой файл
func (s *Store) Create(ctx context.Context) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return s.fail("mkdir", err)
	}

	f, err := os.OpenFile(s.path, os.O_WRONLY|os.O_CREATE, 0o644)
	if err != nil {
		return s.fail("create", err)
	}

	return f.Close()
}

func (s *Store) Close() error {
	return nil
}
