package metrics

import (
	"sync/atomic"
	"time"
)

type Collector struct {
	totalRequests       atomic.Uint64
	clientErrors        atomic.Uint64
	serverErrors        atomic.Uint64
	rateLimited         atomic.Uint64
	totalDurationMs     atomic.Uint64
	persistenceFailures atomic.Uint64
	jobRuns             atomic.Uint64
	jobFailures         atomic.Uint64
}

type Snapshot struct {
	RequestsTotal       uint64  `json:"requestsTotal"`
	ClientErrorsTotal   uint64  `json:"clientErrorsTotal"`
	ServerErrorsTotal   uint64  `json:"serverErrorsTotal"`
	RateLimitedTotal    uint64  `json:"rateLimitedTotal"`
	AvgDurationMs       float64 `json:"avgDurationMs"`
	TotalDurationMs     uint64  `json:"totalDurationMs"`
	PersistenceFailures uint64  `json:"persistenceFailures"`
	JobRunsTotal        uint64  `json:"jobRunsTotal"`
	JobFailuresTotal    uint64  `json:"jobFailuresTotal"`
}

func New() *Collector {
	return &Collector{}
}

func (c *Collector) Record(status int, duration time.Duration) {
	c.totalRequests.Add(1)
	switch {
	case status == 429:
		c.rateLimited.Add(1)
		c.clientErrors.Add(1)
	case status >= 500:
		c.serverErrors.Add(1)
	case status >= 400:
		c.clientErrors.Add(1)
	}
	c.totalDurationMs.Add(uint64(duration.Milliseconds()))
}

// RecordPersistenceFailure counts a store write or read that failed.
func (c *Collector) RecordPersistenceFailure() {
	c.persistenceFailures.Add(1)
}

func (c *Collector) RecordJob(err error) {
	c.jobRuns.Add(1)
	if err != nil {
		c.jobFailures.Add(1)
	}
}

func (c *Collector) Snapshot() Snapshot {
	total := c.totalRequests.Load()
	totalMs := c.totalDurationMs.Load()
	avg := float64(0)
	if total > 0 {
		avg = float64(totalMs) / float64(total)
	}
	return Snapshot{
		RequestsTotal:       total,
		ClientErrorsTotal:   c.clientErrors.Load(),
		ServerErrorsTotal:   c.serverErrors.Load(),
		RateLimitedTotal:    c.rateLimited.Load(),
		AvgDurationMs:       avg,
		TotalDurationMs:     totalMs,
		PersistenceFailures: c.persistenceFailures.Load(),
		JobRunsTotal:        c.jobRuns.Load(),
		JobFailuresTotal:    c.jobFailures.Load(),
	}
}
