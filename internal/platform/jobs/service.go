package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"gearhr/internal/domain/hr"
	"gearhr/internal/domain/reports"
	"gearhr/internal/platform/metrics"
)

const (
	JobBackup  = "workbook_backup"
	JobRefresh = "store_refresh"

	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"

	historyLimit = 50
)

type Run struct {
	ID          string     `json:"id"`
	Type        string     `json:"type"`
	Status      string     `json:"status"`
	StartedAt   time.Time  `json:"startedAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	Details     any        `json:"details,omitempty"`
	Error       string     `json:"error,omitempty"`
}

type Config struct {
	BackupDir      string
	BackupInterval time.Duration
}

// SnapshotFunc returns the current contents of every store.
type SnapshotFunc func() hr.Snapshot

type Service struct {
	cfg      Config
	snapshot SnapshotFunc
	metrics  *metrics.Collector
	queue    chan job

	mu      sync.Mutex
	history []Run
}

type job struct {
	Type string
	Run  func(context.Context) (any, error)
}

func New(cfg Config, snapshot SnapshotFunc, collector *metrics.Collector) *Service {
	return &Service{
		cfg:      cfg,
		snapshot: snapshot,
		metrics:  collector,
		queue:    make(chan job, 32),
	}
}

func (s *Service) Start(ctx context.Context) {
	go s.worker(ctx)
	if s.cfg.BackupInterval > 0 && s.cfg.BackupDir != "" {
		go s.scheduleBackups(ctx, s.cfg.BackupInterval)
	}
}

func (s *Service) Enqueue(jobType string, run func(context.Context) (any, error)) {
	select {
	case s.queue <- job{Type: jobType, Run: run}:
	default:
		slog.Warn("job queue full", "jobType", jobType)
	}
}

func (s *Service) RunNow(ctx context.Context, jobType string, run func(context.Context) (any, error)) (Run, error) {
	return s.runJob(ctx, job{Type: jobType, Run: run})
}

// Backup writes a workbook of the current store contents and returns the run.
func (s *Service) Backup(ctx context.Context) (Run, error) {
	return s.RunNow(ctx, JobBackup, s.writeBackup)
}

// Runs returns recorded runs, newest first.
func (s *Service) Runs() []Run {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := slices.Clone(s.history)
	slices.Reverse(out)
	return out
}

func (s *Service) worker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case j := <-s.queue:
			if _, err := s.runJob(ctx, j); err != nil {
				slog.Warn("job run failed", "jobType", j.Type, "err", err)
			}
		}
	}
}

func (s *Service) runJob(ctx context.Context, j job) (Run, error) {
	run := Run{
		ID:        uuid.NewString(),
		Type:      j.Type,
		Status:    StatusRunning,
		StartedAt: time.Now().UTC(),
	}
	idx := s.record(run)

	details, err := j.Run(ctx)
	completed := time.Now().UTC()
	run.CompletedAt = &completed
	run.Details = details
	run.Status = StatusCompleted
	if err != nil {
		run.Status = StatusFailed
		run.Error = err.Error()
	}
	s.update(idx, run)
	if s.metrics != nil {
		s.metrics.RecordJob(err)
	}
	return run, err
}

// record appends run to the history and returns its id for later update.
func (s *Service) record(run Run) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = append(s.history, run)
	if len(s.history) > historyLimit {
		s.history = slices.Delete(s.history, 0, len(s.history)-historyLimit)
	}
	return run.ID
}

func (s *Service) update(id string, run Run) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.history {
		if s.history[i].ID == id {
			s.history[i] = run
			return
		}
	}
}

func (s *Service) writeBackup(ctx context.Context) (any, error) {
	if s.cfg.BackupDir == "" {
		return nil, fmt.Errorf("backup directory not configured")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	snap := s.snapshot()
	if err := os.MkdirAll(s.cfg.BackupDir, 0o755); err != nil {
		return nil, err
	}
	name := "gearhr-" + time.Now().UTC().Format("20060102T150405Z") + ".xlsx"
	path := filepath.Join(s.cfg.BackupDir, name)

	tmp, err := os.CreateTemp(s.cfg.BackupDir, "."+name+".tmp-*")
	if err != nil {
		return nil, err
	}
	defer os.Remove(tmp.Name())
	if err := reports.WriteWorkbook(tmp, snap); err != nil {
		_ = tmp.Close()
		return nil, err
	}
	if err := tmp.Close(); err != nil {
		return nil, err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return nil, err
	}
	return map[string]any{
		"path":       path,
		"employees":  len(snap.Employees),
		"payroll":    len(snap.Payroll),
		"attendance": len(snap.Attendance),
	}, nil
}

func (s *Service) scheduleBackups(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Enqueue(JobBackup, s.writeBackup)
		}
	}
}
