package recordstore

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres stores each table as one header row plus positioned data rows,
// keyed by store name. See migrations/001_record_store.sql.
type Postgres struct {
	pool  *pgxpool.Pool
	store string
}

func NewPostgres(pool *pgxpool.Pool, store string) *Postgres {
	return &Postgres{pool: pool, store: store}
}

func (p *Postgres) Name() string {
	return p.store
}

func (p *Postgres) Read(ctx context.Context) (Table, error) {
	var header []string
	err := p.pool.QueryRow(ctx, "SELECT header FROM record_headers WHERE store_name = $1", p.store).Scan(&header)
	if errors.Is(err, pgx.ErrNoRows) {
		return Table{}, ErrNotExist
	}
	if err != nil {
		return Table{}, err
	}

	rows, err := p.pool.Query(ctx, "SELECT fields FROM record_rows WHERE store_name = $1 ORDER BY position", p.store)
	if err != nil {
		return Table{}, err
	}
	data, err := pgx.CollectRows(rows, pgx.RowTo[[]string])
	if err != nil {
		return Table{}, err
	}
	return Table{Header: header, Rows: data}, nil
}

// Write replaces the stored table in a single transaction.
func (p *Postgres) Write(ctx context.Context, table Table) error {
	tx, err := p.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `
		INSERT INTO record_headers (store_name, header, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (store_name) DO UPDATE SET header = EXCLUDED.header, updated_at = now()
	`, p.store, table.Header); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, "DELETE FROM record_rows WHERE store_name = $1", p.store); err != nil {
		return err
	}

	if len(table.Rows) > 0 {
		source := make([][]any, len(table.Rows))
		for i, row := range table.Rows {
			source[i] = []any{p.store, i, row}
		}
		if _, err := tx.CopyFrom(ctx, pgx.Identifier{"record_rows"}, []string{"store_name", "position", "fields"}, pgx.CopyFromRows(source)); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}
