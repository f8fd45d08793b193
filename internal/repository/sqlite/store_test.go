package sqlite_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"note-manager/internal/converter"
	"note-manager/internal/repository"
	"note-manager/internal/repository/sqlite"
)

// setupTestDB создает базу в памяти со схемой из GetSchemaSQL
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	testDB.SetMaxOpenConns(1)

	if _, err := testDB.Exec(sqlite.GetSchemaSQL()); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

func testRecord(id, title string) converter.Record {
	return converter.RecordFromMap(map[string]string{
		converter.FieldContent:     "content of " + title,
		converter.FieldCreatedDate: "2025-03-01T12:00:00Z",
		converter.FieldID:          id,
		converter.FieldIssueDate:   "2025-03-09T12:00:00Z",
		converter.FieldStatus:      "POSTPONED",
		converter.FieldTitle:       title,
		converter.FieldUsername:    "bob",
	})
}

func TestStore_AppendAndLoad(t *testing.T) {
	store := sqlite.NewStore(setupTestDB(t))
	ctx := context.Background()

	if err := store.AppendOne(ctx, testRecord("A", "first")); err != nil {
		t.Fatalf("AppendOne failed: %v", err)
	}
	if err := store.AppendOne(ctx, testRecord("B", "second")); err != nil {
		t.Fatalf("AppendOne failed: %v", err)
	}

	records, err := store.LoadAll(ctx)
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if *records[0].ID != "A" || *records[1].ID != "B" {
		t.Errorf("expected insertion order A, B, got %s, %s", *records[0].ID, *records[1].ID)
	}
	if records[1].String() != testRecord("B", "second").String() {
		t.Errorf("expected %s, got %s", testRecord("B", "second"), records[1])
	}
}

func TestStore_SaveAllReplaces(t *testing.T) {
	store := sqlite.NewStore(setupTestDB(t))
	ctx := context.Background()

	if err := store.SaveAll(ctx, []converter.Record{testRecord("A", "a"), testRecord("B", "b")}); err != nil {
		t.Fatalf("SaveAll failed: %v", err)
	}
	if err := store.SaveAll(ctx, []converter.Record{testRecord("C", "c")}); err != nil {
		t.Fatalf("SaveAll failed: %v", err)
	}

	records, err := store.LoadAll(ctx)
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if len(records) != 1 || *records[0].ID != "C" {
		t.Fatalf("expected only record C, got %v", records)
	}
}

func TestStore_NullColumnIsMissingField(t *testing.T) {
	db := setupTestDB(t)
	store := sqlite.NewStore(db)
	ctx := context.Background()

	_, err := db.Exec("INSERT INTO notes (id, username, title, content, created_date, issue_date) VALUES ('X', 'u', 't', '', '2025-03-01T12:00:00Z', '0001-01-01T00:00:00Z')")
	if err != nil {
		t.Fatalf("failed to seed row: %v", err)
	}

	records, err := store.LoadAll(ctx)
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if records[0].Status != nil {
		t.Errorf("expected nil status, got %q", *records[0].Status)
	}
	if records[0].Content == nil || *records[0].Content != "" {
		t.Errorf("expected empty but present content")
	}
}

func TestStore_MissingDatabaseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "notes.db")
	store, err := sqlite.Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer store.Close()
	ctx := context.Background()

	if _, err := store.LoadAll(ctx); err != repository.ErrStoreNotExist {
		t.Fatalf("expected ErrStoreNotExist, got %v", err)
	}

	if err := store.Create(ctx); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	records, err := store.LoadAll(ctx)
	if err != nil {
		t.Fatalf("LoadAll after Create failed: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("expected empty store, got %d records", len(records))
	}
}

func TestStore_DuplicateIDRejected(t *testing.T) {
	store := sqlite.NewStore(setupTestDB(t))
	ctx := context.Background()

	if err := store.AppendOne(ctx, testRecord("A", "a")); err != nil {
		t.Fatalf("AppendOne failed: %v", err)
	}

	err := store.AppendOne(ctx, testRecord("A", "again"))
	if err == nil {
		t.Fatal("expected unique constraint error")
	}
	if _, ok := err.(*repository.PersistenceError); !ok {
		t.Errorf("expected *repository.PersistenceError, got %T", err)
	}
}
