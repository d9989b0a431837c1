package jobs

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gearhr/internal/domain/hr"
	"gearhr/internal/platform/metrics"
)

func sampleSnapshot() hr.Snapshot {
	return hr.Snapshot{
		Employees: hr.SampleEmployees(),
		Payroll:   hr.SamplePayroll(),
	}
}

func TestBackupWritesWorkbook(t *testing.T) {
	dir := t.TempDir()
	collector := metrics.New()
	svc := New(Config{BackupDir: dir}, sampleSnapshot, collector)

	run, err := svc.Backup(context.Background())
	if err != nil {
		t.Fatalf("backup: %v", err)
	}
	if run.Status != StatusCompleted || run.CompletedAt == nil {
		t.Fatalf("expected completed run, got %+v", run)
	}
	details, ok := run.Details.(map[string]any)
	if !ok {
		t.Fatalf("expected details map, got %T", run.Details)
	}
	path, _ := details["path"].(string)
	if !strings.HasSuffix(path, ".xlsx") {
		t.Fatalf("expected xlsx path, got %q", path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected backup file: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected only the backup file, got %d entries", len(entries))
	}
	if collector.Snapshot().JobRunsTotal != 1 {
		t.Fatalf("expected job run to be counted")
	}
}

func TestBackupWithoutDirectoryFails(t *testing.T) {
	svc := New(Config{}, sampleSnapshot, nil)
	run, err := svc.Backup(context.Background())
	if err == nil {
		t.Fatalf("expected error without backup dir")
	}
	if run.Status != StatusFailed || run.Error == "" {
		t.Fatalf("expected failed run, got %+v", run)
	}
}

func TestRunsHistoryNewestFirstAndCapped(t *testing.T) {
	svc := New(Config{BackupDir: filepath.Join(t.TempDir(), "b")}, sampleSnapshot, nil)
	ctx := context.Background()
	for i := 0; i < historyLimit+5; i++ {
		_, _ = svc.RunNow(ctx, JobRefresh, func(context.Context) (any, error) { return i, nil })
	}
	_, _ = svc.RunNow(ctx, JobRefresh, func(context.Context) (any, error) { return nil, errors.New("boom") })

	runs := svc.Runs()
	if len(runs) != historyLimit {
		t.Fatalf("expected %d runs, got %d", historyLimit, len(runs))
	}
	if runs[0].Status != StatusFailed || runs[0].Error != "boom" {
		t.Fatalf("expected newest run first, got %+v", runs[0])
	}
	if runs[1].Details != historyLimit+4 {
		t.Fatalf("expected second run details %d, got %v", historyLimit+4, runs[1].Details)
	}
}
