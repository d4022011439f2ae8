package cli

import (
	"context"
	"errors"
	"fmt"

	"tcreator/internal/graph"
	"tcreator/internal/store"
	"tcreator/internal/worker"
	"tcreator/internal/workspace"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func indexCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "index [mods...]",
		Short: "Load mod workspaces into PostgreSQL and Neo4j",
		Long: `Scans each mod, stores its elements with a feature vector in PostgreSQL
(pgvector) and writes the element graph (PLACES, USES_DUST) to Neo4j.
Each mod's previous rows and nodes are replaced.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			all, _ := cmd.Flags().GetBool("all")
			return a.runIndex(args, all)
		},
	}
	cmd.Flags().Bool("all", false, "Index every mod in the mod location")
	return cmd
}

func similarCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "similar <mod> <name>",
		Short: "Find indexed elements with the closest properties",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			topK, _ := cmd.Flags().GetInt("top")
			return a.runSimilar(args[0], args[1], topK)
		},
	}
	cmd.Flags().Int("top", 5, "Number of results")
	return cmd
}

func relatedCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "related <mod> <name>",
		Short: "Show the tiles and dusts an element references, and what references it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runRelated(args[0], args[1])
		},
	}
}

func (a *app) runIndex(mods []string, all bool) error {
	root, err := a.modRoot()
	if err != nil {
		return err
	}
	if all {
		mods = workspace.ListMods(root)
	}
	if len(mods) == 0 {
		return errors.New("no mods to index, name them or pass --all")
	}

	ctx, cancel := setupContext()
	defer cancel()

	pgPool, err := connectPostgres(ctx, a.cfg)
	if err != nil {
		return err
	}
	defer pgPool.Close()

	driver, err := connectNeo4j(ctx, a.cfg)
	if err != nil {
		return err
	}
	defer driver.Close(ctx)

	indexStore := store.NewIndexStore(pgPool)
	if err := indexStore.EnsureSchema(ctx); err != nil {
		return err
	}
	builder := graph.NewGraphBuilder(driver)
	if err := builder.EnsureSchema(ctx); err != nil {
		return err
	}

	// Workspaces are scanned concurrently and written one mod at a time.
	pool := worker.NewPool(a.cfg.WorkerCount, func(ctx context.Context, mod string) (*workspace.Workspace, error) {
		return a.loader.Open(root, mod)
	})

	var failed int
	for _, task := range pool.Execute(ctx, mods) {
		if task.Err != nil {
			failed++
			continue
		}
		ws := task.Result
		if err := indexStore.ReplaceMod(ctx, ws.Mod, ws.Elements); err != nil {
			log.Error().Err(err).Str("mod", ws.Mod).Msg("Failed to index elements")
			failed++
			continue
		}
		if err := builder.ReplaceMod(ctx, ws.Mod, ws.Elements); err != nil {
			log.Error().Err(err).Str("mod", ws.Mod).Msg("Failed to build element graph")
			failed++
			continue
		}
		fmt.Fprintf(a.out, "%s: %d elements\n", a.painter.Accent(ws.Mod), len(ws.Elements))
	}

	log.Info().Int("mods", len(mods)).Int("failed", failed).Msg("Indexing complete")
	if failed > 0 {
		return fmt.Errorf("%d of %d mods failed to index", failed, len(mods))
	}
	return nil
}

func (a *app) runSimilar(mod, name string, topK int) error {
	ctx, cancel := setupContext()
	defer cancel()

	pgPool, err := connectPostgres(ctx, a.cfg)
	if err != nil {
		return err
	}
	defer pgPool.Close()

	matches, err := store.NewIndexStore(pgPool).Similar(ctx, mod, name, topK)
	if err != nil {
		if errors.Is(err, store.ErrNotIndexed) {
			return fmt.Errorf("%w, run index %s first", err, mod)
		}
		return err
	}

	if len(matches) == 0 {
		fmt.Fprintln(a.out, "No similar elements.")
		return nil
	}
	for _, m := range matches {
		fmt.Fprintf(a.out, "%.4f  %s %s\n", m.Distance, a.painter.Secondary(fmt.Sprintf("%-10s", m.Kind)), a.painter.Accent(m.Name))
	}
	return nil
}

func (a *app) runRelated(mod, name string) error {
	ctx, cancel := setupContext()
	defer cancel()

	driver, err := connectNeo4j(ctx, a.cfg)
	if err != nil {
		return err
	}
	defer driver.Close(ctx)

	neighbours, err := graph.NewGraphQuerier(driver).Related(ctx, mod, name)
	if err != nil {
		return err
	}

	if len(neighbours) == 0 {
		fmt.Fprintln(a.out, "No related elements.")
		return nil
	}
	for _, n := range neighbours {
		arrow := "<-"
		if n.Outgoing {
			arrow = "->"
		}
		line := fmt.Sprintf("%s %s %s %s", arrow, n.RelType, n.Kind, a.painter.Accent(n.Name))
		if n.Missing {
			line += a.painter.Secondary(" (not in mod)")
		}
		fmt.Fprintln(a.out, line)
	}
	return nil
}
