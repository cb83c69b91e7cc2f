package db

import (
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/oxhq/strata/model"
	"github.com/oxhq/strata/models"
	"github.com/oxhq/strata/providers"
)

// ErrProjectNotFound is returned when a project id is unknown, or when no
// project exists at all and ResolveProjectID has nothing to fall back to.
var ErrProjectNotFound = errors.New("db: project not found")

// ResolveProjectID returns projectID unchanged if non-empty, otherwise the
// id of the most recently updated project. Mirrors resolve_project_id's
// fallback in the read API.
func ResolveProjectID(gdb *gorm.DB, projectID string) (string, error) {
	if projectID != "" {
		return projectID, nil
	}

	var project models.Project
	err := gdb.Order("updated_at DESC").First(&project).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", ErrProjectNotFound
	}
	if err != nil {
		return "", fmt.Errorf("db: resolve project id: %w", err)
	}
	return project.ID, nil
}

// Summary is the aggregate view backing GET /api/summary.
type Summary struct {
	ProjectID           string
	ProjectName         string
	TotalFiles          int64
	TotalFunctions      int64
	TotalTypes          int64
	TotalImports        int64
	AvgComplexity       float64
	DeadCodeCandidates  []string
	ArchitectureNotes   []string
}

// FetchSummary aggregates row counts and average complexity for a project,
// then layers on the dead-code and architecture heuristics.
func FetchSummary(gdb *gorm.DB, projectID string) (Summary, error) {
	var project models.Project
	if err := gdb.Where("id = ?", projectID).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Summary{}, ErrProjectNotFound
		}
		return Summary{}, fmt.Errorf("db: load project: %w", err)
	}

	var totalFiles, totalFunctions, totalImports int64
	if err := gdb.Model(&models.FileRecord{}).Where("project_id = ?", projectID).Count(&totalFiles).Error; err != nil {
		return Summary{}, fmt.Errorf("db: count files: %w", err)
	}
	if err := gdb.Model(&models.FunctionRecord{}).Where("project_id = ?", projectID).Count(&totalFunctions).Error; err != nil {
		return Summary{}, fmt.Errorf("db: count functions: %w", err)
	}
	if err := gdb.Model(&models.DependencyRecord{}).Where("project_id = ?", projectID).Count(&totalImports).Error; err != nil {
		return Summary{}, fmt.Errorf("db: count imports: %w", err)
	}

	var avgComplexity float64
	row := gdb.Model(&models.ComplexityRecord{}).Where("project_id = ?", projectID).
		Select("COALESCE(AVG(score), 0)").Row()
	if row != nil {
		if err := row.Scan(&avgComplexity); err != nil {
			return Summary{}, fmt.Errorf("db: average complexity: %w", err)
		}
	}

	totalTypes, err := countTypes(gdb, projectID)
	if err != nil {
		return Summary{}, err
	}

	deadCode, err := deadCodeCandidates(gdb, projectID)
	if err != nil {
		return Summary{}, err
	}
	notes, err := architectureNotes(gdb, projectID)
	if err != nil {
		return Summary{}, err
	}

	return Summary{
		ProjectID:          project.ID,
		ProjectName:        project.Name,
		TotalFiles:         totalFiles,
		TotalFunctions:     totalFunctions,
		TotalTypes:         totalTypes,
		TotalImports:       totalImports,
		AvgComplexity:      avgComplexity,
		DeadCodeCandidates: deadCode,
		ArchitectureNotes:  notes,
	}, nil
}

// countTypes sums the length of every file's persisted Types array. Each
// FileRecord stores its discovered type/struct/interface names as a JSON
// array rather than a row-per-type table, so this is a decode-and-sum
// rather than a SQL COUNT.
func countTypes(gdb *gorm.DB, projectID string) (int64, error) {
	var rows []models.FileRecord
	if err := gdb.Select("types").Where("project_id = ?", projectID).Find(&rows).Error; err != nil {
		return 0, fmt.Errorf("db: load file types: %w", err)
	}

	var total int64
	for _, r := range rows {
		if len(r.Types) == 0 {
			continue
		}
		var names []string
		if err := json.Unmarshal(r.Types, &names); err != nil {
			return 0, fmt.Errorf("db: decode file types: %w", err)
		}
		total += int64(len(names))
	}
	return total, nil
}

// FetchFiles returns every FileRecord for a project.
func FetchFiles(gdb *gorm.DB, projectID string) ([]models.FileRecord, error) {
	var files []models.FileRecord
	if err := gdb.Where("project_id = ?", projectID).Find(&files).Error; err != nil {
		return nil, fmt.Errorf("db: fetch files: %w", err)
	}
	return files, nil
}

// FetchGraph reconstructs a project's GraphData from its persisted
// dependency rows: one file node per FileRecord, one edge per distinct
// (source, normalized target) pair, target nodes minted as discovered. DependencyRecord.Target
// is stored raw (see "Dependency rows store the raw import string" in
// DESIGN.md), so each target is normalized through the project's own
// provider before it is used as a node id — mirroring core.BuildGraph's
// NormalizeImport/ClassifyNode/Label pipeline, just against persisted rows
// instead of a live model.ParsedFile, so that GraphNode.ID comes out
// canonical per the read API's contract.
func FetchGraph(gdb *gorm.DB, projectID string, registry *providers.Registry) (model.GraphData, error) {
	var project models.Project
	if err := gdb.Where("id = ?", projectID).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.GraphData{}, ErrProjectNotFound
		}
		return model.GraphData{}, fmt.Errorf("db: load project: %w", err)
	}
	provider, ok := registry.Get(project.Language)
	if !ok {
		return model.GraphData{}, fmt.Errorf("db: no provider registered for project language %q", project.Language)
	}

	files, err := FetchFiles(gdb, projectID)
	if err != nil {
		return model.GraphData{}, err
	}

	var deps []models.DependencyRecord
	if err := gdb.Where("project_id = ?", projectID).Find(&deps).Error; err != nil {
		return model.GraphData{}, fmt.Errorf("db: fetch dependencies: %w", err)
	}

	nodeOrder := make([]string, 0, len(files))
	nodeSeen := make(map[string]struct{}, len(files))
	addNode := func(id string) {
		if _, ok := nodeSeen[id]; ok {
			return
		}
		nodeSeen[id] = struct{}{}
		nodeOrder = append(nodeOrder, id)
	}

	for _, f := range files {
		addNode(f.Path)
	}

	edgeSeen := make(map[[2]string]struct{})
	var edges []model.GraphEdge
	for _, d := range deps {
		target := provider.NormalizeImport(d.Target)
		addNode(target)
		key := [2]string{d.Source, target}
		if _, ok := edgeSeen[key]; ok {
			continue
		}
		edgeSeen[key] = struct{}{}
		edges = append(edges, model.GraphEdge{From: d.Source, To: target})
	}

	nodes := make([]model.GraphNode, 0, len(nodeOrder))
	for _, id := range nodeOrder {
		nodes = append(nodes, model.GraphNode{ID: id, Label: provider.Label(id), Kind: provider.ClassifyNode(id)})
	}

	return model.GraphData{Nodes: nodes, Edges: edges}, nil
}

// ComplexityItem is one row of the GET /api/complexity response.
type ComplexityItem struct {
	FunctionName string
	FilePath     string
	Score        int
	LineStart    int
	LineEnd      int
}

// FetchComplexities returns every function's complexity score for a
// project, ranked by score descending.
func FetchComplexities(gdb *gorm.DB, projectID string) ([]ComplexityItem, error) {
	type row struct {
		FunctionName string
		FilePath     string
		Score        int
		LineStart    int
		LineEnd      int
	}
	var rows []row

	err := gdb.Table("complexities").
		Select("functions.name as function_name, files.path as file_path, complexities.score as score, functions.line_start as line_start, functions.line_end as line_end").
		Joins("JOIN functions ON functions.id = complexities.function_id").
		Joins("JOIN files ON files.id = functions.file_id").
		Where("complexities.project_id = ?", projectID).
		Order("complexities.score DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("db: fetch complexities: %w", err)
	}

	items := make([]ComplexityItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, ComplexityItem{
			FunctionName: r.FunctionName,
			FilePath:     r.FilePath,
			Score:        r.Score,
			LineStart:    r.LineStart,
			LineEnd:      r.LineEnd,
		})
	}
	return items, nil
}

// deadCodeCandidates flags non-public functions whose file's path never
// appears as a dependency row's target — i.e. nothing in the project
// imports that file by path, and they are not part of the public interface.
func deadCodeCandidates(gdb *gorm.DB, projectID string) ([]string, error) {
	var functions []models.FunctionRecord
	if err := gdb.Where("project_id = ? AND is_public = ?", projectID, false).Find(&functions).Error; err != nil {
		return nil, fmt.Errorf("db: candidate functions: %w", err)
	}
	if len(functions) == 0 {
		return nil, nil
	}

	var deps []models.DependencyRecord
	if err := gdb.Where("project_id = ?", projectID).Find(&deps).Error; err != nil {
		return nil, fmt.Errorf("db: dependency rows: %w", err)
	}
	referenced := make(map[string]struct{}, len(deps))
	for _, d := range deps {
		referenced[d.Target] = struct{}{}
	}

	var files []models.FileRecord
	if err := gdb.Where("project_id = ?", projectID).Find(&files).Error; err != nil {
		return nil, fmt.Errorf("db: file rows: %w", err)
	}
	fileByID := make(map[string]models.FileRecord, len(files))
	for _, f := range files {
		fileByID[f.ID] = f
	}

	var candidates []string
	for _, fn := range functions {
		file, ok := fileByID[fn.FileID]
		if !ok {
			continue
		}
		if _, imported := referenced[file.Path]; imported {
			continue
		}
		candidates = append(candidates, fmt.Sprintf("%s::%s", file.Path, fn.Name))
	}
	return candidates, nil
}

// architectureNotes reports dependency sources with high fan-out and
// targets with high fan-in (at least highFanThreshold rows each), and
// files with no outgoing imports at all.
func architectureNotes(gdb *gorm.DB, projectID string) ([]string, error) {
	var deps []models.DependencyRecord
	if err := gdb.Where("project_id = ?", projectID).Find(&deps).Error; err != nil {
		return nil, fmt.Errorf("db: dependency rows: %w", err)
	}

	fanOut := make(map[string]int)
	fanIn := make(map[string]int)
	for _, d := range deps {
		fanOut[d.Source]++
		fanIn[d.Target]++
	}

	const highFanThreshold = 5
	var notes []string
	for source, count := range fanOut {
		if count >= highFanThreshold {
			notes = append(notes, fmt.Sprintf("%s has high fan-out (%d imports)", source, count))
		}
	}
	for target, count := range fanIn {
		if count >= highFanThreshold {
			notes = append(notes, fmt.Sprintf("%s has high fan-in (%d dependents)", target, count))
		}
	}

	var files []models.FileRecord
	if err := gdb.Where("project_id = ?", projectID).Find(&files).Error; err != nil {
		return nil, fmt.Errorf("db: file rows: %w", err)
	}
	for _, f := range files {
		if fanOut[f.Path] == 0 {
			notes = append(notes, fmt.Sprintf("%s has no outgoing imports", f.Path))
		}
	}

	return notes, nil
}
