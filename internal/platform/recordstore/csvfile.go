package recordstore

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
)

// CSVFile persists a table as a comma separated file with a header line.
// Fields are quoted only when they contain a comma, quote or line break, so
// plain data stays byte-compatible with unquoted writers.
type CSVFile struct {
	path string
}

func NewCSVFile(path string) *CSVFile {
	return &CSVFile{path: path}
}

func (c *CSVFile) Name() string {
	return filepath.Base(c.path)
}

func (c *CSVFile) Path() string {
	return c.path
}

func (c *CSVFile) Read(ctx context.Context) (Table, error) {
	f, err := os.Open(c.path)
	if errors.Is(err, fs.ErrNotExist) {
		return Table{}, ErrNotExist
	}
	if err != nil {
		return Table{}, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return Table{}, nil
	}
	if err != nil {
		return Table{}, err
	}

	table := Table{Header: header}
	for {
		if err := ctx.Err(); err != nil {
			return Table{}, err
		}
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			slog.Warn("skipping unparsable line", "file", c.path, "line", parseErr.StartLine, "err", parseErr.Err)
			continue
		}
		if err != nil {
			return Table{}, err
		}
		table.Rows = append(table.Rows, record)
	}
	return table, nil
}

func (c *CSVFile) Write(ctx context.Context, table Table) error {
	dir := filepath.Dir(c.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(c.path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	writer := csv.NewWriter(tmp)
	if err := writer.Write(table.Header); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := writer.WriteAll(table.Rows); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Chmod(0o644); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, c.path)
}
