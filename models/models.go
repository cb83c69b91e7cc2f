// Package models holds the gorm-backed relational schema a project's
// analysis results are persisted into: one Project row per named,
// path-addressed analysis target, and four child tables replaced
// transactionally on every re-analysis.
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Project is a named, path-addressed analysis target. Re-analyzing the
// same (name, path) pair updates this row rather than creating a
// duplicate.
type Project struct {
	ID   string `gorm:"primaryKey;type:varchar(36)"`
	Name string `gorm:"type:varchar(255);not null;uniqueIndex:idx_project_name_path"`
	Path string `gorm:"type:text;not null;uniqueIndex:idx_project_name_path"`
	// Language is the provider language identifier the most recent
	// analysis ran under, e.g. "rust". Lets the read API re-resolve the
	// right provider for import normalization without re-detecting it.
	Language  string    `gorm:"type:varchar(32)"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// FileRecord is one analyzed source file belonging to a Project.
type FileRecord struct {
	ID         string `gorm:"primaryKey;type:varchar(36)"`
	ProjectID  string `gorm:"type:varchar(36);not null;index"`
	Path       string `gorm:"type:text;not null"`
	ModuleName string `gorm:"type:varchar(255)"`
	LineCount  int    `gorm:"not null"`
	// Types holds the file's discovered type/struct/interface names as a
	// JSON array, e.g. ["Foo","Bar"]. Not part of the read API's file
	// shape; consulted only to aggregate FetchSummary's total_types.
	Types     datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
}

// FunctionRecord is one function definition discovered in a FileRecord.
type FunctionRecord struct {
	ID        string `gorm:"primaryKey;type:varchar(36)"`
	ProjectID string `gorm:"type:varchar(36);not null;index"`
	FileID    string `gorm:"type:varchar(36);not null;index"`
	Name      string `gorm:"type:varchar(255);not null"`
	LineStart int    `gorm:"not null"`
	LineEnd   int    `gorm:"not null"`
	IsPublic  bool   `gorm:"not null;default:false"`
	IsAsync   bool   `gorm:"not null;default:false"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// ComplexityRecord is the cyclomatic complexity score of one
// FunctionRecord.
type ComplexityRecord struct {
	ID         string `gorm:"primaryKey;type:varchar(36)"`
	ProjectID  string `gorm:"type:varchar(36);not null;index"`
	FunctionID string `gorm:"type:varchar(36);not null;index"`
	Score      int    `gorm:"not null"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

// DependencyRecord is one directed edge of a project's dependency graph:
// Source is always a file path; Target is the raw import string as
// extracted from source, normalized into a node id only when the graph is
// rebuilt for reading.
type DependencyRecord struct {
	ID        string `gorm:"primaryKey;type:varchar(36)"`
	ProjectID string `gorm:"type:varchar(36);not null;index"`
	FileID    string `gorm:"type:varchar(36);not null;index"`
	Source    string `gorm:"type:text;not null"`
	Target    string `gorm:"type:text;not null"`
	Kind      string `gorm:"type:varchar(20);not null;default:'use'"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (Project) TableName() string          { return "projects" }
func (FileRecord) TableName() string       { return "files" }
func (FunctionRecord) TableName() string   { return "functions" }
func (ComplexityRecord) TableName() string { return "complexities" }
func (DependencyRecord) TableName() string { return "dependencies" }

// NewID mints a fresh row identifier.
func NewID() string {
	return uuid.NewString()
}
