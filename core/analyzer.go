package core

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/oxhq/strata/model"
	"github.com/oxhq/strata/providers"
)

// Analyzer runs the 4.G Result Aggregator: walk (4.B), analyze each file
// (4.C), score every function (4.D), and build the dependency graph (4.F)
// from the resulting parsed files.
type Analyzer struct {
	walker *FileWalker
	logger *log.Logger
}

// NewAnalyzer creates an Analyzer that logs warnings for absorbed per-file
// failures to logger. A nil logger falls back to the standard logger.
func NewAnalyzer(logger *log.Logger) *Analyzer {
	if logger == nil {
		logger = log.Default()
	}
	return &Analyzer{
		walker: NewFileWalker(),
		logger: logger,
	}
}

// Analyze runs one complete analysis invocation over root using provider.
// Per-file read/parse failures are logged and absorbed (§7); only a failure
// to enumerate the root directory itself, or cancellation of ctx, is
// returned as an error.
func (a *Analyzer) Analyze(ctx context.Context, root string, provider providers.Provider) (model.AnalysisResult, error) {
	paths, err := a.walker.FastScan(ctx, FileScope{
		Path:      root,
		Extension: provider.Extension(),
		Exclude:   defaultExcludes,
	})
	if err != nil {
		return model.AnalysisResult{}, fmt.Errorf("core: walk %s: %w", root, err)
	}

	parsedFiles := make([]model.ParsedFile, 0, len(paths))
	functionsFound := 0

	for _, path := range paths {
		select {
		case <-ctx.Done():
			return model.AnalysisResult{}, ctx.Err()
		default:
		}

		parsed, err := a.analyzeFile(path, provider)
		if err != nil {
			a.logger.Printf("strata: skipping %s: %v", path, err)
			continue
		}
		functionsFound += len(parsed.Functions)
		parsedFiles = append(parsedFiles, parsed)
	}

	var scores []model.ComplexityScore
	for _, pf := range parsedFiles {
		for _, fn := range pf.Functions {
			scores = append(scores, model.ComplexityScore{
				FilePath:     pf.Path,
				FunctionName: fn.Name,
				Score:        provider.ComputeComplexity(fn),
			})
		}
	}

	graph := BuildGraph(parsedFiles, provider)

	return model.AnalysisResult{
		FilesAnalyzed:    len(parsedFiles),
		FunctionsFound:   functionsFound,
		ParsedFiles:      parsedFiles,
		ComplexityScores: scores,
		Graph:            graph,
	}, nil
}

// defaultExcludes skips directories that are never source to analyze:
// version control metadata and common build/dependency output trees.
var defaultExcludes = []string{
	"**/.git/**",
	"**/node_modules/**",
	"**/target/**",
	"**/vendor/**",
	"**/dist/**",
	"**/build/**",
}

func (a *Analyzer) analyzeFile(path string, provider providers.Provider) (model.ParsedFile, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return model.ParsedFile{}, fmt.Errorf("read: %w", err)
	}

	parsed, err := provider.AnalyzeFile(path, source)
	if err != nil {
		return model.ParsedFile{}, fmt.Errorf("parse: %w", err)
	}
	return parsed, nil
}
