package workspace

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"tcreator/internal/extract"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchRefreshesOnSourceChange(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping filesystem watch test in short mode")
	}

	root := newMod(t)
	loader := NewLoader(extract.NewRegistry(extract.PairPositional), nil)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	refreshed := make(chan *Workspace, 16)
	done := make(chan error, 1)
	go func() {
		done <- loader.Watch(ctx, root, "ExampleMod", func(ws *Workspace) { refreshed <- ws })
	}()

	first := <-refreshed
	assert.Len(t, first.Elements, 4)

	writeSource(t, filepath.Join(root, "ExampleMod", "Items", "Axe.cs"), "Item.damage = 7;\n")

	deadline := time.After(5 * time.Second)
	for {
		select {
		case ws := <-refreshed:
			if _, err := ws.Find("Axe"); err == nil {
				cancel()
				require.NoError(t, <-done)
				return
			}
		case <-deadline:
			t.Fatal("workspace was not refreshed after a source file was created")
		}
	}
}

func TestWatchMissingMod(t *testing.T) {
	loader := NewLoader(extract.NewRegistry(extract.PairPositional), nil)
	err := loader.Watch(context.Background(), t.TempDir(), "Nope", func(*Workspace) {})
	assert.Error(t, err)
}
