package storage

import (
	"context"
	"database/sql"

	_ "github.com/lib/pq"
)

// Postgres is a KV backend keeping each collection as one jsonb row.
type Postgres struct {
	db *sql.DB
}

// OpenPostgres connects to Postgres and ensures the collections table
// exists.
func OpenPostgres(ctx context.Context, dsn string) (*Postgres, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}

	const schema = `CREATE TABLE IF NOT EXISTS cloudbook_collections (
		key        text PRIMARY KEY,
		data       jsonb NOT NULL,
		updated_at timestamptz NOT NULL DEFAULT now()
	)`
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, err
	}

	return &Postgres{db: db}, nil
}

func (p *Postgres) Get(ctx context.Context, key string) ([]byte, error) {
	const query = `SELECT data FROM cloudbook_collections WHERE key = $1`

	var data []byte
	err := p.db.QueryRowContext(ctx, query, key).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (p *Postgres) Put(ctx context.Context, key string, data []byte) error {
	const query = `INSERT INTO cloudbook_collections (key, data, updated_at)
	VALUES ($1, $2, now())
	ON CONFLICT (key) DO UPDATE SET data = EXCLUDED.data, updated_at = now()`

	_, err := p.db.ExecContext(ctx, query, key, data)
	return err
}

func (p *Postgres) Ping(ctx context.Context) error {
	return p.db.PingContext(ctx)
}

// Close releases the connection pool.
func (p *Postgres) Close() error {
	return p.db.Close()
}
