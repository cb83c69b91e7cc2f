package providers

import (
	"testing"

	"github.com/oxhq/strata/model"
)

// mockProvider for testing the registry in isolation from any real grammar.
type mockProvider struct {
	language  string
	extension string
}

func (m *mockProvider) Language() string  { return m.language }
func (m *mockProvider) Extension() string { return m.extension }

func (m *mockProvider) AnalyzeFile(path string, source []byte) (model.ParsedFile, error) {
	return model.ParsedFile{Path: path}, nil
}

func (m *mockProvider) ComputeComplexity(fn model.ParsedFunction) int { return 1 }
func (m *mockProvider) NormalizeImport(raw string) string            { return raw }
func (m *mockProvider) ClassifyNode(id string) string                { return model.NodeKindModule }
func (m *mockProvider) Label(id string) string                       { return id }

func TestNewRegistry(t *testing.T) {
	registry := NewRegistry()

	if registry == nil {
		t.Fatal("NewRegistry should return non-nil registry")
	}
	if registry.providers == nil {
		t.Error("registry providers map should be initialized")
	}
}

func TestRegisterAndGet(t *testing.T) {
	registry := NewRegistry()
	registry.Register(&mockProvider{language: "rust", extension: ".rs"})

	provider, exists := registry.Get("rust")
	if !exists {
		t.Fatal("provider should be registered")
	}
	if provider.Language() != "rust" {
		t.Errorf("expected language 'rust', got %q", provider.Language())
	}
}

func TestGetMissing(t *testing.T) {
	registry := NewRegistry()

	_, exists := registry.Get("cobol")
	if exists {
		t.Error("expected no provider for unregistered language")
	}
}

func TestMultipleProvidersAndOverwrite(t *testing.T) {
	registry := NewRegistry()
	registry.Register(&mockProvider{language: "rust", extension: ".rs"})
	registry.Register(&mockProvider{language: "go", extension: ".go"})
	registry.Register(&mockProvider{language: "rust", extension: ".rslib"})

	if got := len(registry.Languages()); got != 2 {
		t.Errorf("expected 2 distinct languages, got %d", got)
	}

	provider, exists := registry.Get("rust")
	if !exists {
		t.Fatal("rust provider should exist")
	}
	if provider.Extension() != ".rslib" {
		t.Errorf("expected overwritten provider, got extension %q", provider.Extension())
	}
}
