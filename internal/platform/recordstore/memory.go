package recordstore

import (
	"context"
	"sync"
)

// Memory keeps the persisted table in process. Read and write failures can be
// injected to exercise error paths.
type Memory struct {
	mu       sync.Mutex
	name     string
	table    *Table
	readErr  error
	writeErr error
	writes   int
}

func NewMemory(name string) *Memory {
	return &Memory{name: name}
}

func (m *Memory) Name() string {
	return m.name
}

func (m *Memory) Read(ctx context.Context) (Table, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.readErr != nil {
		return Table{}, m.readErr
	}
	if m.table == nil {
		return Table{}, ErrNotExist
	}
	return cloneTable(*m.table), nil
}

func (m *Memory) Write(ctx context.Context, table Table) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.writeErr != nil {
		return m.writeErr
	}
	stored := cloneTable(table)
	m.table = &stored
	m.writes++
	return nil
}

// Seed sets the persisted table as if it had been written earlier.
func (m *Memory) Seed(table Table) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := cloneTable(table)
	m.table = &stored
}

func (m *Memory) Snapshot() (Table, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.table == nil {
		return Table{}, false
	}
	return cloneTable(*m.table), true
}

func (m *Memory) FailReads(err error) {
	m.mu.Lock()
	m.readErr = err
	m.mu.Unlock()
}

func (m *Memory) FailWrites(err error) {
	m.mu.Lock()
	m.writeErr = err
	m.mu.Unlock()
}

func (m *Memory) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}
