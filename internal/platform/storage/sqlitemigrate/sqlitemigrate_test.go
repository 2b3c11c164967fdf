package sqlitemigrate

import (
	"database/sql"
	"path/filepath"
	"testing"
	"testing/fstest"

	_ "modernc.org/sqlite"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "migrate.db")
	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })
	return sqlDB
}

func TestApplyRunsMigrationsInOrder(t *testing.T) {
	sqlDB := openTestDB(t)
	migrationFS := fstest.MapFS{
		"0002_add_column.sql": {Data: []byte("ALTER TABLE things ADD COLUMN note TEXT;")},
		"0001_init.sql":       {Data: []byte("CREATE TABLE things (id INTEGER PRIMARY KEY);")},
	}

	if err := Apply(sqlDB, migrationFS); err != nil {
		t.Fatalf("apply: %v", err)
	}

	if _, err := sqlDB.Exec("INSERT INTO things (id, note) VALUES (1, 'ok')"); err != nil {
		t.Fatalf("schema incomplete after migrations: %v", err)
	}
}

func TestApplyIsIdempotent(t *testing.T) {
	sqlDB := openTestDB(t)
	migrationFS := fstest.MapFS{
		"0001_init.sql": {Data: []byte("CREATE TABLE things (id INTEGER PRIMARY KEY);")},
	}

	if err := Apply(sqlDB, migrationFS); err != nil {
		t.Fatalf("first apply: %v", err)
	}
	if err := Apply(sqlDB, migrationFS); err != nil {
		t.Fatalf("second apply: %v", err)
	}

	var count int
	if err := sqlDB.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count); err != nil {
		t.Fatalf("count migrations: %v", err)
	}
	if count != 1 {
		t.Errorf("recorded migrations = %d, want 1", count)
	}
}

func TestApplySkipsEmptyFiles(t *testing.T) {
	sqlDB := openTestDB(t)
	migrationFS := fstest.MapFS{
		"0001_blank.sql": {Data: []byte("   \n")},
	}
	if err := Apply(sqlDB, migrationFS); err != nil {
		t.Fatalf("apply: %v", err)
	}
}

func TestApplyRequiresDB(t *testing.T) {
	if err := Apply(nil, fstest.MapFS{}); err == nil {
		t.Fatal("expected error for nil db")
	}
}
