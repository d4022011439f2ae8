package config

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	"tcreator/internal/extract"
	"tcreator/internal/theme"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	ModRoot      string
	TemplateDir  string
	SettingsFile string
	ThemeFile    string
	Theme        theme.Theme
	ItemPairing  extract.Pairing
	LogLevel     string
	CacheSize    int

	DatabaseURL   string
	Neo4jURI      string
	Neo4jUser     string
	Neo4jPassword string
	WorkerCount   int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using environment variables")
	}

	cfg := &Config{
		TemplateDir:   getEnv("TCREATOR_TEMPLATE_DIR", "Templates"),
		SettingsFile:  getEnv("TCREATOR_SETTINGS_FILE", "settings.txt"),
		ThemeFile:     getEnv("TCREATOR_THEME_FILE", "colors.TCtheme"),
		ItemPairing:   extract.ParsePairing(getEnv("TCREATOR_ITEM_PAIRING", string(extract.PairPositional))),
		LogLevel:      getEnv("TCREATOR_LOG_LEVEL", "info"),
		CacheSize:     getEnvInt("TCREATOR_CACHE_SIZE", 512),
		DatabaseURL:   getEnv("DATABASE_URL", "postgres://localhost:5432/tcreator?sslmode=disable"),
		Neo4jURI:      getEnv("NEO4J_URI", "bolt://localhost:7687"),
		Neo4jUser:     getEnv("NEO4J_USER", "neo4j"),
		Neo4jPassword: getEnv("NEO4J_PASSWORD", "password"),
		WorkerCount:   getEnvInt("WORKER_COUNT", 4),
	}

	cfg.ModRoot = getEnv("TCREATOR_MOD_ROOT", "")
	if cfg.ModRoot == "" {
		cfg.ModRoot = readModRoot(cfg.SettingsFile)
	}
	cfg.Theme = theme.Load(cfg.ThemeFile)

	return cfg
}

// readModRoot returns the first line of the settings file, or "" if it is
// missing or empty.
func readModRoot(path string) string {
	f, err := os.Open(path)
	if err != nil {
		log.Warn().Err(err).Str("file", path).Msg("Settings file not readable, mod location unset")
		return ""
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	if !scanner.Scan() {
		log.Warn().Str("file", path).Msg("Settings file is empty, mod location unset")
		return ""
	}

	root := strings.TrimSpace(scanner.Text())
	log.Info().Str("mod_root", root).Msg("Mod location set")
	return root
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Warn().Str("key", key).Str("value", v).Msg("Invalid integer, using default")
		return fallback
	}
	return n
}
