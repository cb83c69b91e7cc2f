package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/oxhq/strata/api"
	"github.com/oxhq/strata/core"
	"github.com/oxhq/strata/db"
)

// defaultAnalyzeDir is ANALYZE_PATH's documented default, matching the
// container-mount convention other services in the pack use for an
// implicit scan target (e.g. "/repo").
const defaultAnalyzeDir = "/analyze"

func newAnalyzeCmd() *cobra.Command {
	var (
		lang    string
		dsn     string
		project string
	)

	cmd := &cobra.Command{
		Use:   "analyze [path]",
		Short: "Walk a source tree and report complexity and dependency findings",
		Long:  "Analyze walks the given directory (or $ANALYZE_PATH if omitted), scores cyclomatic complexity per function, and builds a dependency graph. With --db, results are persisted instead of only printed.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := defaultAnalyzePath()
			if len(args) == 1 {
				root = args[0]
			}

			registry := api.NewRegistry()

			if lang == "" {
				detected, err := api.DetectLanguage(root)
				if err != nil {
					return fmt.Errorf("detect language: %w", err)
				}
				lang = detected
			}
			provider, ok := registry.Get(lang)
			if !ok {
				return fmt.Errorf("no provider registered for language %q", lang)
			}

			logger := log.New(os.Stderr, "strata: ", log.LstdFlags)
			analyzer := core.NewAnalyzer(logger)

			result, err := analyzer.Analyze(context.Background(), root, provider)
			if err != nil {
				return fmt.Errorf("analyze %s: %w", root, err)
			}

			fmt.Printf("files analyzed:     %d\n", result.FilesAnalyzed)
			fmt.Printf("functions found:    %d\n", result.FunctionsFound)
			fmt.Printf("dependency edges:   %d\n", len(result.Graph.Edges))

			if dsn == "" {
				return nil
			}

			gdb, err := db.Connect(dsn, false)
			if err != nil {
				return fmt.Errorf("connect to database: %w", err)
			}

			projectName := project
			if projectName == "" {
				projectName = root
			}
			proj, err := db.UpsertProject(gdb, projectName, root, provider.Language())
			if err != nil {
				return fmt.Errorf("upsert project: %w", err)
			}
			if err := db.SaveAnalysis(gdb, proj.ID, result); err != nil {
				return fmt.Errorf("save analysis: %w", err)
			}

			fmt.Printf("project id:         %s\n", proj.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&lang, "lang", "l", "", "Target language (auto-detected from file extensions if omitted)")
	cmd.Flags().StringVar(&dsn, "db", "", "Database DSN to persist results to (skips persistence if omitted)")
	cmd.Flags().StringVar(&project, "project", "", "Project name to record (defaults to the analyzed path)")

	return cmd
}

func defaultAnalyzePath() string {
	if path := os.Getenv("ANALYZE_PATH"); path != "" {
		return path
	}
	if _, err := os.Stat(defaultAnalyzeDir); err == nil {
		return defaultAnalyzeDir
	}
	return "."
}
