package dataset

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/chainsight/chainsight/pkg/graph"
)

var ErrDatasetNotFound = errors.New("dataset not found")

// PGStore is a Postgres-backed catalog of named datasets. Payloads are
// stored in the snapshot format, so catalog entries and snapshot files
// stay interchangeable.
type PGStore struct {
	pool *pgxpool.Pool
}

// DatasetInfo describes one catalog entry.
type DatasetInfo struct {
	Name      string    `json:"name"`
	NodeCount int       `json:"nodeCount"`
	EdgeCount int       `json:"edgeCount"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewPGStore connects to the catalog database and ensures the schema
// exists.
func NewPGStore(ctx context.Context, databaseURL string) (*PGStore, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}
	config.MaxConns = 10
	config.MaxConnLifetime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("database unreachable: %w", err)
	}

	s := &PGStore{pool: pool}
	if err := s.migrate(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}
	return s, nil
}

func (s *PGStore) migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS datasets (
			name       TEXT PRIMARY KEY,
			payload    BYTEA NOT NULL,
			node_count INT NOT NULL,
			edge_count INT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`)
	return err
}

// Save upserts a dataset under a name.
func (s *PGStore) Save(ctx context.Context, name string, g *graph.Graph) error {
	payload, err := EncodeSnapshot(g)
	if err != nil {
		return err
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO datasets (name, payload, node_count, edge_count)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (name) DO UPDATE
		SET payload = EXCLUDED.payload,
		    node_count = EXCLUDED.node_count,
		    edge_count = EXCLUDED.edge_count,
		    updated_at = now()`,
		name, payload, len(g.Nodes), len(g.Edges))
	if err != nil {
		return fmt.Errorf("save dataset %q: %w", name, err)
	}
	return nil
}

// Load fetches a dataset by name.
func (s *PGStore) Load(ctx context.Context, name string) (*graph.Graph, error) {
	var payload []byte
	err := s.pool.QueryRow(ctx,
		`SELECT payload FROM datasets WHERE name = $1`, name).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %q", ErrDatasetNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("load dataset %q: %w", name, err)
	}
	return DecodeSnapshot(payload)
}

// List returns the catalog entries, most recently updated first.
func (s *PGStore) List(ctx context.Context) ([]DatasetInfo, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT name, node_count, edge_count, updated_at
		FROM datasets ORDER BY updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list datasets: %w", err)
	}
	defer rows.Close()

	var infos []DatasetInfo
	for rows.Next() {
		var info DatasetInfo
		if err := rows.Scan(&info.Name, &info.NodeCount, &info.EdgeCount, &info.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan dataset row: %w", err)
		}
		infos = append(infos, info)
	}
	return infos, rows.Err()
}

// Delete removes a dataset by name.
func (s *PGStore) Delete(ctx context.Context, name string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM datasets WHERE name = $1`, name)
	if err != nil {
		return fmt.Errorf("delete dataset %q: %w", name, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %q", ErrDatasetNotFound, name)
	}
	return nil
}

// Close releases the connection pool.
func (s *PGStore) Close() {
	s.pool.Close()
}
