package store

import (
	"context"
	"os"
	"strings"
	"testing"

	"tcreator/internal/element"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaUsesVectorDimensions(t *testing.T) {
	require.Len(t, schema, 2)
	assert.True(t, strings.Contains(schema[1], "vector(8)"))
}

// TestIntegration_IndexAndSearch needs a PostgreSQL with pgvector available at
// TCREATOR_TEST_DATABASE_URL.
func TestIntegration_IndexAndSearch(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	url := os.Getenv("TCREATOR_TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TCREATOR_TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, url)
	require.NoError(t, err)
	defer pool.Close()

	s := NewIndexStore(pool)
	require.NoError(t, s.EnsureSchema(ctx))

	item := func(name, damage string) element.Element {
		p := element.Properties{}
		p.Set("<DAMAGE>", damage)
		return element.Element{Kind: element.Item, Name: name, Properties: p}
	}
	mod := "IntegrationMod"
	require.NoError(t, s.ReplaceMod(ctx, mod, []element.Element{
		item("Dagger", "8"),
		item("Sword", "12"),
		item("Hammer", "60"),
	}))

	matches, err := s.Similar(ctx, mod, "Sword", 2)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, "Dagger", matches[0].Name)
	assert.InDelta(t, 4.0, matches[0].Distance, 0.001)

	_, err = s.Similar(ctx, mod, "Ghost", 2)
	assert.ErrorIs(t, err, ErrNotIndexed)

	require.NoError(t, s.ReplaceMod(ctx, mod, nil))
}
