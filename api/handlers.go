package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/oxhq/strata/core"
	"github.com/oxhq/strata/db"
	"github.com/oxhq/strata/providers"
)

// Server holds the collaborators every handler needs: the database handle,
// the provider registry, and a logger for warnings that don't fail the
// request outright.
type Server struct {
	DB       *gorm.DB
	Registry *providers.Registry
	Logger   *log.Logger
}

// NewServer wires a Server with every supported language registered.
func NewServer(gdb *gorm.DB, logger *log.Logger) *Server {
	return &Server{DB: gdb, Registry: NewRegistry(), Logger: logger}
}

func respondError(c *gin.Context, status int, err error) {
	c.JSON(status, ErrorResponse{Error: err.Error()})
}

// HealthCheck backs GET /health.
func (s *Server) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Analyze backs POST /api/analyze.
func (s *Server) Analyze(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	if req.Path == "" && req.GithubURL == "" {
		respondError(c, http.StatusBadRequest, errors.New("api: one of path or github_url is required"))
		return
	}

	root := req.Path
	if req.GithubURL != "" {
		clonedPath, cleanup, err := CloneRepository(c.Request.Context(), req.GithubURL)
		if err != nil {
			if errors.Is(err, ErrInvalidGithubURL) {
				respondError(c, http.StatusBadRequest, err)
			} else {
				respondError(c, http.StatusInternalServerError, err)
			}
			return
		}
		defer cleanup()
		root = clonedPath
	}

	language, err := DetectLanguage(root)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	provider, ok := s.Registry.Get(language)
	if !ok {
		respondError(c, http.StatusBadRequest, errors.New("api: no provider registered for detected language "+language))
		return
	}

	analyzer := core.NewAnalyzer(s.Logger)
	result, err := analyzer.Analyze(c.Request.Context(), root, provider)
	if err != nil {
		respondError(c, http.StatusInternalServerError, err)
		return
	}

	projectName := req.ProjectName
	if projectName == "" {
		projectName = root
	}

	project, err := db.UpsertProject(s.DB, projectName, root, provider.Language())
	if err != nil {
		respondError(c, http.StatusInternalServerError, err)
		return
	}
	if err := db.SaveAnalysis(s.DB, project.ID, result); err != nil {
		respondError(c, http.StatusInternalServerError, err)
		return
	}

	c.JSON(http.StatusOK, AnalyzeResponse{
		ProjectID:      project.ID,
		FilesAnalyzed:  result.FilesAnalyzed,
		FunctionsFound: result.FunctionsFound,
		Message:        "analysis complete",
	})
}

// Summary backs GET /api/summary.
func (s *Server) Summary(c *gin.Context) {
	projectID, err := db.ResolveProjectID(s.DB, c.Query("project_id"))
	if err != nil {
		s.respondResolveErr(c, err)
		return
	}

	summary, err := db.FetchSummary(s.DB, projectID)
	if err != nil {
		s.respondResolveErr(c, err)
		return
	}

	c.JSON(http.StatusOK, SummaryResponse{
		ProjectID:          summary.ProjectID,
		ProjectName:        summary.ProjectName,
		TotalFiles:         summary.TotalFiles,
		TotalFunctions:     summary.TotalFunctions,
		TotalTypes:         summary.TotalTypes,
		TotalImports:       summary.TotalImports,
		AvgComplexity:      summary.AvgComplexity,
		DeadCodeCandidates: emptyIfNil(summary.DeadCodeCandidates),
		ArchitectureNotes:  emptyIfNil(summary.ArchitectureNotes),
	})
}

// Files backs GET /api/files.
func (s *Server) Files(c *gin.Context) {
	projectID, err := db.ResolveProjectID(s.DB, c.Query("project_id"))
	if err != nil {
		s.respondResolveErr(c, err)
		return
	}

	files, err := db.FetchFiles(s.DB, projectID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, err)
		return
	}

	out := make([]FileResponse, 0, len(files))
	for _, f := range files {
		out = append(out, FileResponse{
			ID:         f.ID,
			ProjectID:  f.ProjectID,
			Path:       f.Path,
			ModuleName: f.ModuleName,
			LineCount:  f.LineCount,
			CreatedAt:  f.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, out)
}

// Graph backs GET /api/graph.
func (s *Server) Graph(c *gin.Context) {
	projectID, err := db.ResolveProjectID(s.DB, c.Query("project_id"))
	if err != nil {
		s.respondResolveErr(c, err)
		return
	}

	graph, err := db.FetchGraph(s.DB, projectID, s.Registry)
	if err != nil {
		s.respondResolveErr(c, err)
		return
	}
	c.JSON(http.StatusOK, graph)
}

// Complexity backs GET /api/complexity.
func (s *Server) Complexity(c *gin.Context) {
	projectID, err := db.ResolveProjectID(s.DB, c.Query("project_id"))
	if err != nil {
		s.respondResolveErr(c, err)
		return
	}

	items, err := db.FetchComplexities(s.DB, projectID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, err)
		return
	}

	out := make([]ComplexityResponse, 0, len(items))
	for _, it := range items {
		out = append(out, ComplexityResponse{
			FunctionName: it.FunctionName,
			FilePath:     it.FilePath,
			Score:        it.Score,
			LineStart:    it.LineStart,
			LineEnd:      it.LineEnd,
		})
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) respondResolveErr(c *gin.Context, err error) {
	if errors.Is(err, db.ErrProjectNotFound) {
		respondError(c, http.StatusNotFound, err)
		return
	}
	respondError(c, http.StatusInternalServerError, err)
}

func emptyIfNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
