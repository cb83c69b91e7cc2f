package base

import (
	"sync"
	"testing"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"

	"github.com/oxhq/strata/model"
)

// mockConfig implements providers.LanguageConfig against the Go grammar
// (function_declaration, quoted import_spec paths, "/" separators), with
// just enough node kinds and branch weights for the traversal tests.
type mockConfig struct{}

func (m *mockConfig) Language() string             { return "go" }
func (m *mockConfig) Extension() string            { return ".go" }
func (m *mockConfig) GetLanguage() *sitter.Language { return golang.GetLanguage() }

func (m *mockConfig) IsFunctionNode(kind string) bool { return kind == "function_declaration" }
func (m *mockConfig) IsImportNode(kind string) bool   { return kind == "import_spec" }
func (m *mockConfig) IsTypeNode(kind string) bool     { return kind == "type_spec" }

func (m *mockConfig) VisibilityField() string { return "" }
func (m *mockConfig) PublicKeyword() string   { return "pub" }
func (m *mockConfig) AsyncKind() string       { return "" }

func (m *mockConfig) ImportKeyword() string       { return "\"" }
func (m *mockConfig) PathSeparator() string       { return "/" }
func (m *mockConfig) StatementTerminator() string { return "\"" }
func (m *mockConfig) StdlibPrefixes() []string    { return []string{"fmt", "os"} }

func (m *mockConfig) BranchWeight(node *sitter.Node, source []byte) int {
	switch node.Type() {
	case "if_statement", "for_statement":
		return 1
	default:
		return 0
	}
}

func newTestProvider() *Provider {
	return New(&mockConfig{})
}

func firstFunction(t *testing.T, p *Provider, src []byte) model.ParsedFunction {
	t.Helper()
	parsed, err := p.AnalyzeFile("x.go", src)
	if err != nil {
		t.Fatalf("AnalyzeFile failed: %v", err)
	}
	if len(parsed.Functions) == 0 {
		t.Fatal("expected at least one function")
	}
	return parsed.Functions[0]
}

func TestNewProvider(t *testing.T) {
	p := newTestProvider()
	if p.Language() != "go" {
		t.Errorf("expected language 'go', got %q", p.Language())
	}
	if p.Extension() != ".go" {
		t.Errorf("expected extension '.go', got %q", p.Extension())
	}
}

func TestAnalyzeFileExtractsFunction(t *testing.T) {
	p := newTestProvider()

	src := []byte(`package main

func Exported() int {
	if true {
		return 1
	}
	return 0
}

func unexported() {}
`)

	parsed, err := p.AnalyzeFile("main.go", src)
	if err != nil {
		t.Fatalf("AnalyzeFile failed: %v", err)
	}

	if len(parsed.Functions) != 2 {
		t.Fatalf("expected 2 functions, got %d", len(parsed.Functions))
	}
	if parsed.Functions[0].Name != "Exported" {
		t.Errorf("expected first function 'Exported', got %q", parsed.Functions[0].Name)
	}
	if parsed.LineCount <= 0 {
		t.Error("expected positive line count")
	}
}

func TestAnalyzeFileSingleFunctionNotDoubleCounted(t *testing.T) {
	p := newTestProvider()

	src := []byte(`package main

func Outer() {
	x := 1
	_ = x
}
`)

	parsed, err := p.AnalyzeFile("main.go", src)
	if err != nil {
		t.Fatalf("AnalyzeFile failed: %v", err)
	}
	if len(parsed.Functions) != 1 {
		t.Fatalf("expected 1 function, got %d", len(parsed.Functions))
	}
}

func TestAnalyzeFileMalformedSourceStillParses(t *testing.T) {
	p := newTestProvider()

	parsed, err := p.AnalyzeFile("broken.go", []byte("this is not valid go {{{"))
	if err != nil {
		t.Fatalf("AnalyzeFile should not error on malformed source, tree-sitter is error-tolerant: %v", err)
	}
	if len(parsed.Functions) != 0 {
		t.Errorf("expected no functions extracted from malformed source, got %d", len(parsed.Functions))
	}
}

func TestComputeComplexityBaseline(t *testing.T) {
	p := newTestProvider()

	fn := firstFunction(t, p, []byte(`package main

func Plain() int {
	return 1
}
`))

	if got := p.ComputeComplexity(fn); got != 1 {
		t.Errorf("expected baseline complexity 1, got %d", got)
	}
}

func TestComputeComplexityCountsBranches(t *testing.T) {
	p := newTestProvider()

	fn := firstFunction(t, p, []byte(`package main

func Branchy(n int) int {
	if n > 0 {
		return 1
	}
	for i := 0; i < n; i++ {
		n--
	}
	return n
}
`))

	if got := p.ComputeComplexity(fn); got != 3 {
		t.Errorf("expected complexity 3 (baseline 1 + if + for), got %d", got)
	}
}

func TestNormalizeImport(t *testing.T) {
	p := newTestProvider()

	if got := p.NormalizeImport(`"fmt"`); got != "fmt" {
		t.Errorf("expected 'fmt', got %q", got)
	}
}

func TestClassifyNode(t *testing.T) {
	p := newTestProvider()

	tests := []struct {
		id   string
		want string
	}{
		{"fmt", "extern"},
		{"github.com/oxhq/strata/model", "module"},
		{"./internal/foo", "file"},
	}

	for _, tt := range tests {
		if got := p.ClassifyNode(tt.id); got != tt.want {
			t.Errorf("ClassifyNode(%q) = %q, want %q", tt.id, got, tt.want)
		}
	}
}

func TestLabel(t *testing.T) {
	p := newTestProvider()

	if got := p.Label("github.com/oxhq/strata/model"); got != "model" {
		t.Errorf("expected last segment 'model', got %q", got)
	}
	if got := p.Label("fmt"); got != "fmt" {
		t.Errorf("expected id itself when no separator present, got %q", got)
	}
}

// TestAnalyzeFileConcurrentCallsDoNotShareAParser exercises one Provider
// from many goroutines at once, the shape a registered-once registry sees
// under concurrent POST /api/analyze requests. Run with -race: a shared
// *sitter.Parser across these calls would surface as a data race, not a
// deterministic failure, so this only catches a regression back to the
// single-parser-per-provider design under `go test -race`.
func TestAnalyzeFileConcurrentCallsDoNotShareAParser(t *testing.T) {
	p := newTestProvider()
	src := []byte("package x\n\nfunc add(a, b int) int {\n\tif a > 0 {\n\t\treturn a + b\n\t}\n\treturn b\n}\n")

	const callers = 16
	var wg sync.WaitGroup
	wg.Add(callers)
	for i := 0; i < callers; i++ {
		go func() {
			defer wg.Done()
			parsed, err := p.AnalyzeFile("x.go", src)
			if err != nil {
				t.Errorf("AnalyzeFile failed: %v", err)
				return
			}
			if len(parsed.Functions) != 1 {
				t.Errorf("expected 1 function, got %d", len(parsed.Functions))
			}
		}()
	}
	wg.Wait()
}
