package recordstore

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestCSVFileMissingReturnsErrNotExist(t *testing.T) {
	backend := NewCSVFile(filepath.Join(t.TempDir(), "missing.csv"))
	if _, err := backend.Read(context.Background()); !errors.Is(err, ErrNotExist) {
		t.Fatalf("expected ErrNotExist, got %v", err)
	}
}

func TestCSVFileWriteCreatesDirectoryAndQuotesOnlyWhenNeeded(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "employees.csv")
	backend := NewCSVFile(path)
	err := backend.Write(context.Background(), Table{
		Header: []string{"EmployeeNumber", "Address"},
		Rows: [][]string{
			{"1001", "Leyte, Palo"},
			{"1002", "Silay City"},
		},
	})
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	expected := "EmployeeNumber,Address\n1001,\"Leyte, Palo\"\n1002,Silay City\n"
	if string(raw) != expected {
		t.Fatalf("expected %q, got %q", expected, string(raw))
	}

	table, err := backend.Read(context.Background())
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(table.Rows) != 2 || table.Rows[0][1] != "Leyte, Palo" {
		t.Fatalf("unexpected rows %+v", table.Rows)
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected temp file cleaned up, found %d entries", len(entries))
	}
}

func TestCSVFileReadToleratesRaggedRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "attendance.csv")
	content := "EmployeeID,Date,Status,TimeIn,TimeOut\n" +
		"1001,2024-01-15,Present,08:00,17:00\n" +
		"1001,2024-01-16\n" +
		"1002,2024-01-15,Late,09:30,\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	table, err := NewCSVFile(path).Read(context.Background())
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(table.Rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(table.Rows))
	}
	if len(table.Rows[1]) != 2 || table.Rows[2][4] != "" {
		t.Fatalf("unexpected rows %+v", table.Rows)
	}
}

func TestCSVFileEmptyFileHasNoHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	table, err := NewCSVFile(path).Read(context.Background())
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(table.Header) != 0 || len(table.Rows) != 0 {
		t.Fatalf("expected empty table, got %+v", table)
	}
}

func TestStoreOverCSVFileRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "items.csv")
	store := New[string, item](NewCSVFile(path), itemCodec{})
	if _, err := store.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := store.PutAll(ctx, item{"a", 1}, item{"b", 2}); err != nil {
		t.Fatalf("put all: %v", err)
	}

	reloaded := New[string, item](NewCSVFile(path), itemCodec{})
	stats, err := reloaded.Load(ctx)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if stats.Loaded != 2 {
		t.Fatalf("expected 2 loaded, got %+v", stats)
	}
	if got, _ := reloaded.Get("b"); got.Count != 2 {
		t.Fatalf("expected b=2, got %+v", got)
	}
}
