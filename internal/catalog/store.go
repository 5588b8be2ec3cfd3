package catalog

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"trade-reconciler/internal/infrastructure"
)

// Store persists the item catalog so the service can serve searches after
// a restart without re-fetching the upstream API.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// SaveAll replaces the stored catalog with the given snapshot.
func (s *Store) SaveAll(ctx context.Context, items map[string]Item) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin catalog transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "TRUNCATE catalog_items"); err != nil {
		return fmt.Errorf("failed to truncate catalog: %w", err)
	}

	batch := &pgx.Batch{}
	for key, item := range items {
		data, err := json.Marshal(item)
		if err != nil {
			return fmt.Errorf("failed to marshal item %q: %w", key, err)
		}
		batch.Queue(
			"INSERT INTO catalog_items (key, data, updated_at) VALUES ($1, $2, now())",
			key, data)
	}

	results := tx.SendBatch(ctx, batch)
	for range items {
		if _, err := results.Exec(); err != nil {
			results.Close()
			return fmt.Errorf("failed to insert catalog item: %w", err)
		}
	}
	if err := results.Close(); err != nil {
		return fmt.Errorf("failed to flush catalog batch: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit catalog: %w", err)
	}

	infrastructure.DBInsertRate.WithLabelValues("catalog_items").Add(float64(len(items)))
	return nil
}

// LoadAll reads the stored catalog snapshot.
func (s *Store) LoadAll(ctx context.Context) (map[string]Item, error) {
	rows, err := s.pool.Query(ctx, "SELECT key, data FROM catalog_items")
	if err != nil {
		return nil, fmt.Errorf("failed to query catalog: %w", err)
	}
	defer rows.Close()

	items := make(map[string]Item)
	for rows.Next() {
		var key string
		var data []byte
		if err := rows.Scan(&key, &data); err != nil {
			return nil, fmt.Errorf("failed to scan catalog row: %w", err)
		}
		var item Item
		if err := json.Unmarshal(data, &item); err != nil {
			return nil, fmt.Errorf("failed to unmarshal item %q: %w", key, err)
		}
		items[key] = item
	}
	return items, rows.Err()
}
