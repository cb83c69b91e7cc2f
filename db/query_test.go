package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxhq/strata/model"
	"github.com/oxhq/strata/providers"
	"github.com/oxhq/strata/providers/rust"
)

func testRegistry() *providers.Registry {
	reg := providers.NewRegistry()
	reg.Register(rust.New())
	return reg
}

func TestResolveProjectIDPassesThroughExplicit(t *testing.T) {
	gdb := setupTestDB(t)
	defer cleanupTestDB(gdb)

	got, err := ResolveProjectID(gdb, "explicit-id")
	require.NoError(t, err)
	assert.Equal(t, "explicit-id", got)
}

func TestResolveProjectIDFallsBackToMostRecent(t *testing.T) {
	gdb := setupTestDB(t)
	defer cleanupTestDB(gdb)

	older, err := UpsertProject(gdb, "older", "/tmp/older", "rust")
	require.NoError(t, err)
	newer, err := UpsertProject(gdb, "newer", "/tmp/newer", "rust")
	require.NoError(t, err)

	got, err := ResolveProjectID(gdb, "")
	require.NoError(t, err)
	assert.Equal(t, newer.ID, got)
	assert.NotEqual(t, older.ID, got)
}

func TestResolveProjectIDNoProjectsYieldsNotFound(t *testing.T) {
	gdb := setupTestDB(t)
	defer cleanupTestDB(gdb)

	_, err := ResolveProjectID(gdb, "")
	assert.ErrorIs(t, err, ErrProjectNotFound)
}

func TestFetchSummaryAggregatesCounts(t *testing.T) {
	gdb := setupTestDB(t)
	defer cleanupTestDB(gdb)

	project, err := UpsertProject(gdb, "strata", "/tmp/strata", "rust")
	require.NoError(t, err)
	require.NoError(t, SaveAnalysis(gdb, project.ID, sampleResult()))

	summary, err := FetchSummary(gdb, project.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), summary.TotalFiles)
	assert.Equal(t, int64(1), summary.TotalFunctions)
	assert.Equal(t, int64(2), summary.TotalTypes)
	assert.Equal(t, int64(1), summary.TotalImports)
	assert.InDelta(t, 3.0, summary.AvgComplexity, 0.01)
}

func TestFetchSummaryUnknownProject(t *testing.T) {
	gdb := setupTestDB(t)
	defer cleanupTestDB(gdb)

	_, err := FetchSummary(gdb, "nope")
	assert.ErrorIs(t, err, ErrProjectNotFound)
}

func TestFetchFilesReturnsProjectScopedRows(t *testing.T) {
	gdb := setupTestDB(t)
	defer cleanupTestDB(gdb)

	project, err := UpsertProject(gdb, "strata", "/tmp/strata", "rust")
	require.NoError(t, err)
	require.NoError(t, SaveAnalysis(gdb, project.ID, sampleResult()))

	files, err := FetchFiles(gdb, project.ID)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "src/lib.rs", files[0].Path)
}

func TestFetchGraphReconstructsNodesAndEdges(t *testing.T) {
	gdb := setupTestDB(t)
	defer cleanupTestDB(gdb)

	project, err := UpsertProject(gdb, "strata", "/tmp/strata", "rust")
	require.NoError(t, err)
	require.NoError(t, SaveAnalysis(gdb, project.ID, sampleResult()))

	graph, err := FetchGraph(gdb, project.ID, testRegistry())
	require.NoError(t, err)
	assert.Len(t, graph.Edges, 1)
	assert.Equal(t, "src/lib.rs", graph.Edges[0].From)
	assert.Equal(t, "std::collections::HashMap", graph.Edges[0].To)

	var foundFileNode, foundTargetNode bool
	for _, n := range graph.Nodes {
		if n.ID == "src/lib.rs" {
			foundFileNode = true
			assert.Equal(t, model.NodeKindFile, n.Kind)
		}
		if n.ID == "std::collections::HashMap" {
			foundTargetNode = true
		}
	}
	assert.True(t, foundFileNode)
	assert.True(t, foundTargetNode)
}

func TestFetchComplexitiesOrdersByScoreDescending(t *testing.T) {
	gdb := setupTestDB(t)
	defer cleanupTestDB(gdb)

	project, err := UpsertProject(gdb, "strata", "/tmp/strata", "rust")
	require.NoError(t, err)

	result := model.AnalysisResult{
		ParsedFiles: []model.ParsedFile{
			{
				Path:      "src/lib.rs",
				LineCount: 10,
				Functions: []model.ParsedFunction{
					{Name: "low", LineStart: 1, LineEnd: 2},
					{Name: "high", LineStart: 3, LineEnd: 9},
				},
			},
		},
		ComplexityScores: []model.ComplexityScore{
			{FilePath: "src/lib.rs", FunctionName: "low", Score: 1},
			{FilePath: "src/lib.rs", FunctionName: "high", Score: 8},
		},
	}
	require.NoError(t, SaveAnalysis(gdb, project.ID, result))

	items, err := FetchComplexities(gdb, project.ID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "high", items[0].FunctionName)
	assert.Equal(t, "low", items[1].FunctionName)
}

func TestDeadCodeCandidatesFlagsUnreferencedPrivateFunctions(t *testing.T) {
	gdb := setupTestDB(t)
	defer cleanupTestDB(gdb)

	project, err := UpsertProject(gdb, "strata", "/tmp/strata", "rust")
	require.NoError(t, err)

	result := model.AnalysisResult{
		ParsedFiles: []model.ParsedFile{
			{Path: "src/used.rs", LineCount: 5},
			{
				Path:      "src/orphan.rs",
				LineCount: 5,
				Functions: []model.ParsedFunction{
					{Name: "helper", LineStart: 1, LineEnd: 2, IsPublic: false},
				},
			},
			{
				Path:      "src/caller.rs",
				LineCount: 5,
				Imports:   []string{"src/used.rs"},
			},
		},
	}
	require.NoError(t, SaveAnalysis(gdb, project.ID, result))

	summary, err := FetchSummary(gdb, project.ID)
	require.NoError(t, err)
	require.Len(t, summary.DeadCodeCandidates, 1)
	assert.Equal(t, "src/orphan.rs::helper", summary.DeadCodeCandidates[0])
}
