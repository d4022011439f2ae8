package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"tcreator/internal/element"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	pgvector "github.com/pgvector/pgvector-go"
	"github.com/rs/zerolog/log"
)

// ErrNotIndexed is returned when a similarity query names an element that is
// not in the index.
var ErrNotIndexed = errors.New("element not indexed")

var schema = []string{
	`CREATE EXTENSION IF NOT EXISTS vector`,
	fmt.Sprintf(`CREATE TABLE IF NOT EXISTS elements (
		mod         TEXT NOT NULL,
		kind        TEXT NOT NULL,
		name        TEXT NOT NULL,
		properties  JSONB NOT NULL,
		places_tile TEXT NOT NULL DEFAULT '',
		dust        TEXT NOT NULL DEFAULT '',
		features    vector(%d) NOT NULL,
		indexed_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
		PRIMARY KEY (mod, kind, name)
	)`, element.VectorDimensions),
}

// IndexStore keeps a PostgreSQL copy of each mod's workspace, with a pgvector
// feature column for similarity search.
type IndexStore struct {
	pool *pgxpool.Pool
}

// NewIndexStore creates a new index store.
func NewIndexStore(pool *pgxpool.Pool) *IndexStore {
	return &IndexStore{pool: pool}
}

// Match is one similarity search result.
type Match struct {
	Kind     string
	Name     string
	Distance float64
}

// EnsureSchema creates the vector extension and the elements table.
func (s *IndexStore) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure index schema: %w", err)
		}
	}
	log.Info().Msg("Index schema ensured")
	return nil
}

// ReplaceMod swaps the stored rows of mod for elements in one transaction,
// mirroring the full rebuild of the workspace.
func (s *IndexStore) ReplaceMod(ctx context.Context, mod string, elements []element.Element) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin index transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM elements WHERE mod = $1`, mod); err != nil {
		return fmt.Errorf("clear mod %s: %w", mod, err)
	}

	batch := &pgx.Batch{}
	for _, el := range elements {
		props, err := json.Marshal(el.Properties)
		if err != nil {
			return fmt.Errorf("marshal properties of %s: %w", el.Name, err)
		}
		batch.Queue(`
			INSERT INTO elements (mod, kind, name, properties, places_tile, dust, features)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, mod, el.Kind.String(), el.Name, props, el.PlacesTile, el.Dust,
			pgvector.NewVector(element.FeatureVector(el)))
	}

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("insert elements of %s: %w", mod, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit index transaction: %w", err)
	}

	log.Info().Str("mod", mod).Int("count", len(elements)).Msg("Indexed elements")
	return nil
}

// Similar returns up to topK elements of the same mod and kind whose feature
// vectors are closest to the named element's.
func (s *IndexStore) Similar(ctx context.Context, mod, name string, topK int) ([]Match, error) {
	var exists bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM elements WHERE mod = $1 AND name = $2)`, mod, name,
	).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("lookup %s: %w", name, err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s/%s", ErrNotIndexed, mod, name)
	}

	rows, err := s.pool.Query(ctx, `
		SELECT e.kind, e.name, e.features <-> t.features AS distance
		FROM elements t
		JOIN elements e ON e.mod = t.mod AND e.kind = t.kind AND e.name <> t.name
		WHERE t.mod = $1 AND t.name = $2
		ORDER BY distance, e.name
		LIMIT $3
	`, mod, name, topK)
	if err != nil {
		return nil, fmt.Errorf("vector search: %w", err)
	}

	matches, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Match, error) {
		var m Match
		err := row.Scan(&m.Kind, &m.Name, &m.Distance)
		return m, err
	})
	if err != nil {
		return nil, fmt.Errorf("read vector search: %w", err)
	}
	return matches, nil
}
