package api

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/oxhq/strata/providers/catalog"
)

// DetectLanguage walks root non-recursively and picks the language whose
// registered extension matches the most files, so POST /api/analyze can
// target a project without the caller naming a language explicitly.
func DetectLanguage(root string) (string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return "", fmt.Errorf("api: read %s: %w", root, err)
	}

	counts := make(map[string]int)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, ok := catalog.LookupByExtension(filepath.Ext(entry.Name()))
		if !ok {
			continue
		}
		counts[info.ID]++
	}

	if len(counts) == 0 {
		return detectRecursive(root)
	}

	best, bestCount := "", 0
	for lang, count := range counts {
		if count > bestCount {
			best, bestCount = lang, count
		}
	}
	return best, nil
}

// detectRecursive falls back to a bounded recursive scan when the project
// root itself holds no recognizable source files directly (e.g. everything
// lives under src/ or a package subdirectory).
func detectRecursive(root string) (string, error) {
	counts := make(map[string]int)
	const maxEntries = 2000
	seen := 0

	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if seen >= maxEntries {
			return filepath.SkipDir
		}
		if d.IsDir() {
			return nil
		}
		seen++
		if info, ok := catalog.LookupByExtension(filepath.Ext(d.Name())); ok {
			counts[info.ID]++
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("api: scan %s: %w", root, err)
	}

	best, bestCount := "", 0
	for lang, count := range counts {
		if count > bestCount {
			best, bestCount = lang, count
		}
	}
	if best == "" {
		return "", fmt.Errorf("api: no recognizable source files under %s", root)
	}
	return best, nil
}
