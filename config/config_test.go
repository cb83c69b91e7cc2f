package config

import (
	"os"
	"testing"
	"time"
)

func clearConfigEnvVars() {
	for _, v := range []string{"DATABASE_URL", "PORT", "ANALYZE_PATH", "STRATA_DEBUG", "AST_CACHE_TTL_SECONDS"} {
		os.Unsetenv(v)
	}
}

func TestLoadRequiresDatabaseURL(t *testing.T) {
	clearConfigEnvVars()
	defer clearConfigEnvVars()

	_, err := Load()
	if err == nil {
		t.Fatal("expected an error when DATABASE_URL is unset")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearConfigEnvVars()
	defer clearConfigEnvVars()

	os.Setenv("DATABASE_URL", "strata.db")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != defaultPort {
		t.Errorf("expected default port %d, got %d", defaultPort, cfg.Port)
	}
	if cfg.AnalyzePath != defaultAnalyzePath {
		t.Errorf("expected default analyze path %q, got %q", defaultAnalyzePath, cfg.AnalyzePath)
	}
	if cfg.Debug {
		t.Error("expected Debug to default to false")
	}
	if cfg.ASTCacheTTL != defaultASTCacheTTL {
		t.Errorf("expected default AST cache TTL %s, got %s", defaultASTCacheTTL, cfg.ASTCacheTTL)
	}
}

func TestLoadOverrides(t *testing.T) {
	clearConfigEnvVars()
	defer clearConfigEnvVars()

	os.Setenv("DATABASE_URL", "postgres://localhost/strata")
	os.Setenv("PORT", "9090")
	os.Setenv("ANALYZE_PATH", "/scan")
	os.Setenv("STRATA_DEBUG", "true")
	os.Setenv("AST_CACHE_TTL_SECONDS", "30")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.Port)
	}
	if cfg.AnalyzePath != "/scan" {
		t.Errorf("expected analyze path '/scan', got %q", cfg.AnalyzePath)
	}
	if !cfg.Debug {
		t.Error("expected Debug to be true")
	}
	if cfg.ASTCacheTTL != 30*time.Second {
		t.Errorf("expected AST cache TTL 30s, got %s", cfg.ASTCacheTTL)
	}
}

func TestLoadInvalidPortFallsBackToDefault(t *testing.T) {
	clearConfigEnvVars()
	defer clearConfigEnvVars()

	os.Setenv("DATABASE_URL", "strata.db")
	os.Setenv("PORT", "not-a-number")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != defaultPort {
		t.Errorf("expected fallback to default port %d, got %d", defaultPort, cfg.Port)
	}
}
