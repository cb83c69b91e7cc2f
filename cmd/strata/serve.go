package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/oxhq/strata/api"
	"github.com/oxhq/strata/config"
	"github.com/oxhq/strata/providers/base"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP read API",
		Long:  "serve loads DATABASE_URL/PORT/ANALYZE_PATH from the environment (and .env), connects to the database, and exposes POST /api/analyze plus the GET /api/* read endpoints.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}
	return cmd
}

func runServe() error {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "strata: %v\n", err)
		os.Exit(1)
	}

	logger := log.New(os.Stderr, "strata: ", log.LstdFlags)
	base.GlobalCache = base.NewASTCache(cfg.ASTCacheTTL)

	gdb, err := connectDB(cfg.DatabaseURL, cfg.Debug, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "strata: database unreachable: %v\n", err)
		os.Exit(1)
	}

	if cfg.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	server := api.NewServer(gdb, logger)
	api.SetupRoutes(router, server)

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Printf("listening on %s", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case <-stop:
		logger.Println("shutdown signal received")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpServer.Shutdown(ctx)
}
