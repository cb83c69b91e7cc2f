package db

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/oxhq/strata/model"
	"github.com/oxhq/strata/models"
)

// UpsertProject finds a project by (name, path), bumping its updated_at and
// language if found, or creates a fresh row. Mirrors upsert_project in
// original_source/backend/src/db.rs. language is the provider language the
// analysis that triggered this upsert ran under, recorded so the read API
// can re-resolve the right provider later (see db.FetchGraph).
func UpsertProject(gdb *gorm.DB, name, path, language string) (models.Project, error) {
	var existing models.Project
	err := gdb.Where("name = ? AND path = ?", name, path).First(&existing).Error
	if err == nil {
		existing.UpdatedAt = time.Now()
		existing.Language = language
		if err := gdb.Save(&existing).Error; err != nil {
			return models.Project{}, fmt.Errorf("db: update project timestamp: %w", err)
		}
		return existing, nil
	}
	if err != gorm.ErrRecordNotFound {
		return models.Project{}, fmt.Errorf("db: lookup project: %w", err)
	}

	project := models.Project{ID: models.NewID(), Name: name, Path: path, Language: language}
	if err := gdb.Create(&project).Error; err != nil {
		return models.Project{}, fmt.Errorf("db: create project: %w", err)
	}
	return project, nil
}

// SaveAnalysis atomically replaces a project's files, functions,
// complexities, and dependencies with the given result, matching
// save_analysis's transactional delete-then-insert in
// original_source/backend/src/db.rs. Readers see either the complete old
// snapshot or the complete new one, never a partial mix.
func SaveAnalysis(gdb *gorm.DB, projectID string, result model.AnalysisResult) error {
	return gdb.Transaction(func(tx *gorm.DB) error {
		for _, table := range []any{
			&models.ComplexityRecord{},
			&models.FunctionRecord{},
			&models.DependencyRecord{},
			&models.FileRecord{},
		} {
			if err := tx.Where("project_id = ?", projectID).Delete(table).Error; err != nil {
				return fmt.Errorf("db: clear prior rows: %w", err)
			}
		}

		scoreFor := func(filePath, fnName string) int {
			for _, s := range result.ComplexityScores {
				if s.FilePath == filePath && s.FunctionName == fnName {
					return s.Score
				}
			}
			return 1
		}

		for _, pf := range result.ParsedFiles {
			types, err := json.Marshal(pf.Types)
			if err != nil {
				return fmt.Errorf("db: encode types for %s: %w", pf.Path, err)
			}

			file := models.FileRecord{
				ID:         models.NewID(),
				ProjectID:  projectID,
				Path:       pf.Path,
				ModuleName: pf.ModuleName,
				LineCount:  pf.LineCount,
				Types:      datatypes.JSON(types),
			}
			if err := tx.Create(&file).Error; err != nil {
				return fmt.Errorf("db: insert file %s: %w", pf.Path, err)
			}

			for _, fn := range pf.Functions {
				funcRow := models.FunctionRecord{
					ID:        models.NewID(),
					ProjectID: projectID,
					FileID:    file.ID,
					Name:      fn.Name,
					LineStart: fn.LineStart,
					LineEnd:   fn.LineEnd,
					IsPublic:  fn.IsPublic,
					IsAsync:   fn.IsAsync,
				}
				if err := tx.Create(&funcRow).Error; err != nil {
					return fmt.Errorf("db: insert function %s: %w", fn.Name, err)
				}

				complexity := models.ComplexityRecord{
					ID:         models.NewID(),
					ProjectID:  projectID,
					FunctionID: funcRow.ID,
					Score:      scoreFor(pf.Path, fn.Name),
				}
				if err := tx.Create(&complexity).Error; err != nil {
					return fmt.Errorf("db: insert complexity for %s: %w", fn.Name, err)
				}
			}

			for _, target := range pf.Imports {
				dep := models.DependencyRecord{
					ID:        models.NewID(),
					ProjectID: projectID,
					FileID:    file.ID,
					Source:    pf.Path,
					Target:    target,
					Kind:      "use",
				}
				if err := tx.Create(&dep).Error; err != nil {
					return fmt.Errorf("db: insert dependency %s -> %s: %w", pf.Path, target, err)
				}
			}
		}

		return nil
	})
}
