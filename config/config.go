// Package config resolves strata's environment-based configuration: the
// database DSN, the HTTP port, and the default analyze path, loading a
// .env file first when one is present.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultPort        = 8080
	defaultAnalyzePath = "/analyze"
	defaultASTCacheTTL = 5 * time.Minute
)

// Config holds strata's resolved runtime configuration.
type Config struct {
	DatabaseURL string
	Port        int
	AnalyzePath string
	Debug       bool
	// ASTCacheTTL bounds how long a parsed tree stays in
	// providers/base.GlobalCache before pruneExpired evicts it.
	ASTCacheTTL time.Duration
}

// Load reads a .env file (if present, errors ignored — it's optional in
// production where real env vars are already set) and resolves Config from
// the environment. DATABASE_URL is required; PORT and ANALYZE_PATH fall back
// to their defaults when unset or unparseable.
func Load() (*Config, error) {
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("config: DATABASE_URL is required")
	}

	cfg := &Config{
		DatabaseURL: dbURL,
		Port:        defaultPort,
		AnalyzePath: defaultAnalyzePath,
		Debug:       os.Getenv("STRATA_DEBUG") == "true",
		ASTCacheTTL: defaultASTCacheTTL,
	}

	if portStr := os.Getenv("PORT"); portStr != "" {
		if port, err := strconv.Atoi(portStr); err == nil && port > 0 {
			cfg.Port = port
		}
	}

	if analyzePath := os.Getenv("ANALYZE_PATH"); analyzePath != "" {
		cfg.AnalyzePath = analyzePath
	}

	if ttlStr := os.Getenv("AST_CACHE_TTL_SECONDS"); ttlStr != "" {
		if secs, err := strconv.Atoi(ttlStr); err == nil && secs > 0 {
			cfg.ASTCacheTTL = time.Duration(secs) * time.Second
		}
	}

	return cfg, nil
}
