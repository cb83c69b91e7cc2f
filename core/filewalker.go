package core

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
)

// FileScope bounds a single Walk invocation: the root directory, the target
// language's canonical extension, and optional exclusion patterns for
// directories that should never be descended into (vendor trees, VCS
// metadata, build output).
type FileScope struct {
	Path      string
	Extension string
	Exclude   []string
	MaxDepth  int
	MaxFiles  int
}

// FileWalker enumerates source files under a root directory in parallel.
// Symbolic links are never followed: this system analyzes what is
// physically on disk, not what it points to.
type FileWalker struct {
	workers    int
	bufferSize int
}

// NewFileWalker creates a walker sized for I/O-bound traversal.
func NewFileWalker() *FileWalker {
	return &FileWalker{
		workers:    runtime.NumCPU() * 2,
		bufferSize: 1000,
	}
}

// WalkResult is one discovered candidate file, path normalized to
// forward slashes.
type WalkResult struct {
	Path string
}

// Walk performs parallel directory traversal, emitting every regular file
// whose extension exactly matches scope.Extension (case-sensitive).
// Enumeration order is not guaranteed. Unreadable directory entries are
// skipped silently; they never abort the walk.
func (fw *FileWalker) Walk(ctx context.Context, scope FileScope) (<-chan WalkResult, error) {
	if err := fw.validateScope(scope); err != nil {
		return nil, err
	}

	results := make(chan WalkResult, fw.bufferSize)
	paths := make(chan string, fw.bufferSize)

	var wg sync.WaitGroup
	for i := 0; i < fw.workers; i++ {
		wg.Add(1)
		go fw.worker(ctx, paths, results, &wg)
	}

	go func() {
		defer close(paths)
		processed := 0
		fw.scanDirectory(ctx, scope.Path, scope, paths, 0, &processed)
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	return results, nil
}

// worker forwards discovered paths into results.
func (fw *FileWalker) worker(ctx context.Context, paths <-chan string, results chan<- WalkResult, wg *sync.WaitGroup) {
	defer wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case path, ok := <-paths:
			if !ok {
				return
			}
			select {
			case <-ctx.Done():
				return
			case results <- WalkResult{Path: filepath.ToSlash(path)}:
			}
		}
	}
}

// scanDirectory recursively discovers files matching scope.Extension.
// Symbolic links, whether to a file or a directory, are never followed.
func (fw *FileWalker) scanDirectory(
	ctx context.Context,
	dirPath string,
	scope FileScope,
	paths chan<- string,
	depth int,
	processed *int,
) {
	if scope.MaxFiles > 0 && *processed >= scope.MaxFiles {
		return
	}
	select {
	case <-ctx.Done():
		return
	default:
	}
	if scope.MaxDepth > 0 && depth > scope.MaxDepth {
		return
	}

	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return
	}

	for _, entry := range entries {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if entry.Type()&os.ModeSymlink != 0 {
			continue
		}

		fullPath := filepath.Join(dirPath, entry.Name())
		if fw.isExcluded(fullPath, scope.Exclude) {
			continue
		}

		if entry.IsDir() {
			fw.scanDirectory(ctx, fullPath, scope, paths, depth+1, processed)
			continue
		}

		if filepath.Ext(entry.Name()) != scope.Extension {
			continue
		}

		if scope.MaxFiles > 0 && *processed >= scope.MaxFiles {
			return
		}
		select {
		case <-ctx.Done():
			return
		case paths <- fullPath:
			*processed++
		}
	}
}

func (fw *FileWalker) isExcluded(path string, patterns []string) bool {
	for _, pattern := range patterns {
		if fw.matchPattern(path, pattern) {
			return true
		}
	}
	return false
}

func (fw *FileWalker) matchPattern(path, pattern string) bool {
	if matched, err := doublestar.PathMatch(pattern, path); err == nil && matched {
		return true
	}
	if !strings.Contains(pattern, "/") {
		basename := filepath.Base(path)
		if matched, err := doublestar.PathMatch(pattern, basename); err == nil && matched {
			return true
		}
	}
	return false
}

func (fw *FileWalker) validateScope(scope FileScope) error {
	if scope.Path == "" {
		return fmt.Errorf("path is required")
	}
	if scope.Extension == "" {
		return fmt.Errorf("extension is required")
	}

	info, err := os.Stat(scope.Path)
	if err != nil {
		return fmt.Errorf("cannot access path %s: %w", scope.Path, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("path %s is not a directory", scope.Path)
	}
	return nil
}

// FastScan collects every matching path into a slice, for callers that
// don't need streaming (small trees, tests).
func (fw *FileWalker) FastScan(ctx context.Context, scope FileScope) ([]string, error) {
	results, err := fw.Walk(ctx, scope)
	if err != nil {
		return nil, err
	}

	var files []string
	for result := range results {
		files = append(files, result.Path)
	}
	return files, nil
}
