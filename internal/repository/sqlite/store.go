// Package sqlite хранит записи заметок в базе SQLite.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"note-manager/internal/converter"
	"note-manager/internal/repository"
)

// schemaSQL единственное определение таблицы notes.
// Колонки допускают NULL: поврежденная строка читается как запись без поля.
const schemaSQL = `
CREATE TABLE IF NOT EXISTS notes (
	position     INTEGER PRIMARY KEY AUTOINCREMENT,
	id           TEXT UNIQUE,
	username     TEXT,
	title        TEXT,
	content      TEXT,
	status       TEXT,
	created_date TEXT,
	issue_date   TEXT
);`

const insertSQL = "INSERT INTO notes (id, username, title, content, status, created_date, issue_date) VALUES (?, ?, ?, ?, ?, ?, ?)"

var _ repository.NoteStore = (*Store)(nil)

// Store хранилище записей в SQLite
type Store struct {
	path string
	db   *sql.DB
}

// GetSchemaSQL возвращает схему, которую применяет Create
func GetSchemaSQL() string {
	return schemaSQL
}

// Open открывает базу по пути path. Файл создается только при Create или записи.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	return &Store{path: path, db: db}, nil
}

// NewStore оборачивает готовое соединение (тесты с базой в памяти)
func NewStore(db *sql.DB) *Store {
	db.SetMaxOpenConns(1)
	return &Store{path: ":memory:", db: db}
}

func (s *Store) fail(op string, err error) error {
	return &repository.PersistenceError{Op: "sqlite " + op, Location: s.path, Err: err}
}

// exists проверяет наличие файла базы и таблицы notes
func (s *Store) exists(ctx context.Context) (bool, error) {
	if s.path != ":memory:" {
		if _, err := os.Stat(s.path); errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
	}

	var name string
	err := s.db.QueryRowContext(ctx,
		"SELECT name FROM sqlite_master WHERE type = 'table' AND name = 'notes'",
	).Scan(&name)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// LoadAll читает все строки в порядке вставки
func (s *Store) LoadAll(ctx context.Context) ([]converter.Record, error) {
	ok, err := s.exists(ctx)
	if err != nil {
		return nil, s.fail("inspect", err)
	}
	if !ok {
		return nil, repository.ErrStoreNotExist
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, username, title, content, status, created_date, issue_date FROM notes ORDER BY position",
	)
	if err != nil {
		return nil, s.fail("query", err)
	}
	defer rows.Close()

	var records []converter.Record
	for rows.Next() {
		var id, username, title, content, status, createdDate, issueDate sql.NullString
		if err := rows.Scan(&id, &username, &title, &content, &status, &createdDate, &issueDate); err != nil {
			return nil, s.fail("scan", err)
		}
		records = append(records, converter.Record{
			ID:          nullable(id),
			Username:    nullable(username),
			Title:       nullable(title),
			Content:     nullable(content),
			Status:      nullable(status),
			CreatedDate: nullable(createdDate),
			IssueDate:   nullable(issueDate),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, s.fail("iterate", err)
	}

	return records, nil
}

// SaveAll заменяет все строки в одной транзакции
func (s *Store) SaveAll(ctx context.Context, records []converter.Record) error {
	if err := s.Create(ctx); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return s.fail("begin", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM notes"); err != nil {
		return s.fail("clear", err)
	}

	stmt, err := tx.PrepareContext(ctx, insertSQL)
	if err != nil {
		return s.fail("prepare", err)
	}
	defer stmt.Close()

	for _, rec := range records {
		if _, err := stmt.ExecContext(ctx, args(rec)...); err != nil {
			return s.fail("insert", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return s.fail("commit", err)
	}

	return nil
}

// AppendOne вставляет одну строку
func (s *Store) AppendOne(ctx context.Context, record converter.Record) error {
	if err := s.Create(ctx); err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, insertSQL, args(record)...); err != nil {
		return s.fail("insert", err)
	}

	return nil
}

// Create создает каталог файла базы и схему
func (s *Store) Create(ctx context.Context) error {
	if s.path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
			return s.fail("mkdir", err)
		}
	}

	if _, err := s.db.ExecContext(ctx, schemaSQL); err != nil {
		return s.fail("create schema", err)
	}

	return nil
}

// Close закрывает соединение с базой
func (s *Store) Close() error {
	return s.db.Close()
}

func args(rec converter.Record) []any {
	return []any{
		nullString(rec.ID),
		nullString(rec.Username),
		nullString(rec.Title),
		nullString(rec.Content),
		nullString(rec.Status),
		nullString(rec.CreatedDate),
		nullString(rec.IssueDate),
	}
}

func nullString(v *string) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *v, Valid: true}
}

func nullable(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}
