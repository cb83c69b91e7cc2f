package api

import "time"

// AnalyzeRequest is the body of POST /api/analyze.
type AnalyzeRequest struct {
	ProjectName string `json:"project_name"`
	Path        string `json:"path"`
	GithubURL   string `json:"github_url"`
}

// AnalyzeResponse is the reply to POST /api/analyze.
type AnalyzeResponse struct {
	ProjectID      string `json:"project_id"`
	FilesAnalyzed  int    `json:"files_analyzed"`
	FunctionsFound int    `json:"functions_found"`
	Message        string `json:"message"`
}

// SummaryResponse is the reply to GET /api/summary.
type SummaryResponse struct {
	ProjectID          string   `json:"project_id"`
	ProjectName        string   `json:"project_name"`
	TotalFiles         int64    `json:"total_files"`
	TotalFunctions     int64    `json:"total_functions"`
	TotalTypes         int64    `json:"total_types"`
	TotalImports       int64    `json:"total_imports"`
	AvgComplexity      float64  `json:"avg_complexity"`
	DeadCodeCandidates []string `json:"dead_code_candidates"`
	ArchitectureNotes  []string `json:"architecture_notes"`
}

// FileResponse is one element of the GET /api/files array.
type FileResponse struct {
	ID         string    `json:"id"`
	ProjectID  string    `json:"project_id"`
	Path       string    `json:"path"`
	ModuleName string    `json:"module_name,omitempty"`
	LineCount  int       `json:"line_count"`
	CreatedAt  time.Time `json:"created_at"`
}

// ComplexityResponse is one element of the GET /api/complexity array.
type ComplexityResponse struct {
	FunctionName string `json:"function_name"`
	FilePath     string `json:"file_path"`
	Score        int    `json:"score"`
	LineStart    int    `json:"line_start"`
	LineEnd      int    `json:"line_end"`
}

// ErrorResponse is the body of any non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}
