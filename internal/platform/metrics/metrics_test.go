package metrics

import (
	"errors"
	"testing"
	"time"
)

func TestCollectorSnapshot(t *testing.T) {
	c := New()
	c.Record(200, 10*time.Millisecond)
	c.Record(404, 20*time.Millisecond)
	c.Record(429, 0)
	c.Record(503, 30*time.Millisecond)
	c.RecordPersistenceFailure()
	c.RecordJob(nil)
	c.RecordJob(errors.New("boom"))

	s := c.Snapshot()
	if s.RequestsTotal != 4 {
		t.Fatalf("expected 4 requests, got %d", s.RequestsTotal)
	}
	if s.ClientErrorsTotal != 2 || s.ServerErrorsTotal != 1 || s.RateLimitedTotal != 1 {
		t.Fatalf("unexpected error counts %+v", s)
	}
	if s.AvgDurationMs != 15 {
		t.Fatalf("expected avg 15ms, got %v", s.AvgDurationMs)
	}
	if s.PersistenceFailures != 1 || s.JobRunsTotal != 2 || s.JobFailuresTotal != 1 {
		t.Fatalf("unexpected counters %+v", s)
	}
}
