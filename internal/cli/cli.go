package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"tcreator/internal/cache"
	"tcreator/internal/config"
	"tcreator/internal/extract"
	"tcreator/internal/scaffold"
	"tcreator/internal/theme"
	"tcreator/internal/workspace"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// errNoModRoot is returned when neither settings.txt, TCREATOR_MOD_ROOT nor
// --mod-root names the mod location.
var errNoModRoot = errors.New("mod location not set (settings.txt, TCREATOR_MOD_ROOT or --mod-root)")

// app carries the components shared by every command.
type app struct {
	cfg        *config.Config
	loader     *workspace.Loader
	scaffolder *scaffold.Scaffolder
	out        io.Writer
	painter    *theme.Painter
}

func newApp(cfg *config.Config, out io.Writer) *app {
	return &app{
		cfg:        cfg,
		loader:     workspace.NewLoader(extract.NewRegistry(cfg.ItemPairing), cache.NewExtractionCache(cfg.CacheSize)),
		scaffolder: scaffold.New(cfg.TemplateDir),
		out:        out,
		painter:    theme.NewPainter(cfg.Theme, out),
	}
}

func (a *app) modRoot() (string, error) {
	if a.cfg.ModRoot == "" {
		return "", errNoModRoot
	}
	return a.cfg.ModRoot, nil
}

func (a *app) open(mod string) (*workspace.Workspace, error) {
	root, err := a.modRoot()
	if err != nil {
		return nil, err
	}
	return a.loader.Open(root, mod)
}

// Execute runs the CLI application.
func Execute() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg := config.Load()
	setLogLevel(cfg.LogLevel)

	if err := newRootCmd(cfg, os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

func setLogLevel(level string) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl == zerolog.NoLevel {
		log.Warn().Str("level", level).Msg("Unknown log level, using info")
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
}

func newRootCmd(cfg *config.Config, out io.Writer) *cobra.Command {
	a := newApp(cfg, out)

	rootCmd := &cobra.Command{
		Use:          "tcreator",
		Short:        "Browse and scaffold tModLoader mod sources",
		Long:         "Lists the items and tiles of a mod, shows the properties read from their sources, and creates or rewrites element sources from templates.",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if root, _ := cmd.Flags().GetString("mod-root"); root != "" {
				a.cfg.ModRoot = root
			}
			if dir, _ := cmd.Flags().GetString("templates"); dir != "" {
				a.cfg.TemplateDir = dir
				a.scaffolder = scaffold.New(dir)
			}
		},
	}
	rootCmd.SetOut(out)
	rootCmd.PersistentFlags().String("mod-root", "", "Directory containing one folder per mod (overrides settings.txt)")
	rootCmd.PersistentFlags().String("templates", "", "Template directory (default Templates)")

	rootCmd.AddCommand(modsCmd(a))
	rootCmd.AddCommand(listCmd(a))
	rootCmd.AddCommand(showCmd(a))
	rootCmd.AddCommand(createCmd(a))
	rootCmd.AddCommand(editCmd(a))
	rootCmd.AddCommand(templatesCmd(a))
	rootCmd.AddCommand(exportCmd(a))
	rootCmd.AddCommand(watchCmd(a))
	rootCmd.AddCommand(indexCmd(a))
	rootCmd.AddCommand(similarCmd(a))
	rootCmd.AddCommand(relatedCmd(a))

	return rootCmd
}

// setupContext creates a cancellable context with signal handling.
func setupContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-sigCh:
			log.Warn().Msg("Received shutdown signal, cancelling...")
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigCh)
	}()

	return ctx, cancel
}

// connectPostgres opens and pings the index database.
func connectPostgres(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	pgPool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect PostgreSQL: %w", err)
	}
	if err := pgPool.Ping(ctx); err != nil {
		pgPool.Close()
		return nil, fmt.Errorf("ping PostgreSQL: %w", err)
	}
	log.Info().Msg("Connected to PostgreSQL")
	return pgPool, nil
}

// connectNeo4j opens the element graph and verifies connectivity.
func connectNeo4j(ctx context.Context, cfg *config.Config) (neo4j.DriverWithContext, error) {
	driver, err := neo4j.NewDriverWithContext(cfg.Neo4jURI, neo4j.BasicAuth(cfg.Neo4jUser, cfg.Neo4jPassword, ""))
	if err != nil {
		return nil, fmt.Errorf("connect Neo4j: %w", err)
	}
	if err := driver.VerifyConnectivity(ctx); err != nil {
		driver.Close(ctx)
		return nil, fmt.Errorf("verify Neo4j connectivity: %w", err)
	}
	log.Info().Msg("Connected to Neo4j")
	return driver, nil
}

// parseSets splits repeated KEY=VALUE flags.
func parseSets(sets []string) (map[string]string, error) {
	out := make(map[string]string, len(sets))
	for _, s := range sets {
		key, value, ok := strings.Cut(s, "=")
		if !ok || strings.TrimSpace(key) == "" {
			return nil, fmt.Errorf("invalid --set %q, want KEY=VALUE", s)
		}
		out[key] = value
	}
	return out, nil
}
