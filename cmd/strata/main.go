package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:     "strata",
		Short:   "Source-tree analyzer: complexity scoring and dependency graphs",
		Long:    "strata walks a source tree, extracts functions and imports with tree-sitter, scores cyclomatic complexity, and builds a dependency graph.",
		Version: version,
	}

	rootCmd.AddCommand(newAnalyzeCmd(), newServeCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
