package recordstore

import (
	"context"
	"errors"
)

// ErrNotExist is returned by Backend.Read when nothing has been persisted yet.
var ErrNotExist = errors.New("backing resource does not exist")

// Table is the flat persisted form of a store: a header row plus data rows.
type Table struct {
	Header []string
	Rows   [][]string
}

type Backend interface {
	Name() string
	Read(ctx context.Context) (Table, error)
	Write(ctx context.Context, table Table) error
}

func cloneRow(row []string) []string {
	out := make([]string, len(row))
	copy(out, row)
	return out
}

func cloneTable(table Table) Table {
	out := Table{Header: cloneRow(table.Header), Rows: make([][]string, len(table.Rows))}
	for i, row := range table.Rows {
		out.Rows[i] = cloneRow(row)
	}
	return out
}
