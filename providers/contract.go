// Package providers defines the language-binding contract the analyzer
// walks through: parsing source into a syntax tree (4.A Grammar Binding),
// mapping that tree onto the structural model (4.C File Analyzer), and
// scoring cyclomatic complexity (4.D Complexity Engine). Each supported
// language implements LanguageConfig; Provider wraps a LanguageConfig with
// the shared traversal logic in providers/base.
package providers

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/oxhq/strata/model"
)

// LanguageConfig captures everything that differs between source
// languages: the grammar, which node kinds carry which structural meaning,
// and the syntax used for visibility, async, imports, and branching.
type LanguageConfig interface {
	// Language is the canonical identifier, e.g. "rust".
	Language() string
	// Extension is the single, case-sensitive source extension this
	// language is recognized by, e.g. ".rs".
	Extension() string
	// GetLanguage returns the tree-sitter grammar for this language.
	GetLanguage() *sitter.Language

	// IsFunctionNode reports whether a node kind denotes a function
	// definition that should be extracted.
	IsFunctionNode(kind string) bool
	// IsImportNode reports whether a node kind denotes an import/use
	// declaration.
	IsImportNode(kind string) bool
	// IsTypeNode reports whether a node kind denotes a type declaration
	// (struct, record, enum, class, interface, ...).
	IsTypeNode(kind string) bool

	// VisibilityField is the field name under which a function node
	// exposes its visibility modifier child, e.g. "visibility_modifier".
	VisibilityField() string
	// PublicKeyword is the prefix a visibility modifier's text must begin
	// with for a function to be considered public, e.g. "pub".
	PublicKeyword() string
	// AsyncKind is the node kind of a direct child marking a function
	// asynchronous, e.g. "async".
	AsyncKind() string

	// ImportKeyword is the leading keyword stripped when normalizing an
	// import string, e.g. "use ".
	ImportKeyword() string
	// PathSeparator splits an import string into namespace segments,
	// e.g. "::".
	PathSeparator() string
	// StatementTerminator is trimmed from the end of import strings,
	// e.g. ";".
	StatementTerminator() string
	// StdlibPrefixes lists root namespace segments classified as the
	// "extern" node kind rather than "module".
	StdlibPrefixes() []string

	// BranchWeight returns how many decision points `node` contributes to
	// cyclomatic complexity under this language's rulebook. Most kinds
	// answer purely from their kind string; a few (else-if, short-circuit
	// binary expressions) must inspect children, hence the node/source
	// arguments.
	BranchWeight(node *sitter.Node, source []byte) int
}

// Provider wraps a LanguageConfig with the shared analyzer machinery:
// parsing, structural extraction, and complexity scoring.
type Provider interface {
	Language() string
	Extension() string

	// AnalyzeFile runs the 4.C File Analyzer over one file's source,
	// producing a ParsedFile. The path is recorded with its separators
	// converted to forward slashes.
	AnalyzeFile(path string, source []byte) (model.ParsedFile, error)

	// ComputeComplexity runs the 4.D Complexity Engine over one function.
	// It never returns an error: a re-parse failure yields score 1.
	ComputeComplexity(fn model.ParsedFunction) int

	// NormalizeImport runs the 4.E Import Normalizer over one raw import
	// declaration string.
	NormalizeImport(raw string) string

	// ClassifyNode returns the GraphNode kind ("file", "module", "extern")
	// for a dependency-graph node id minted from this language's imports.
	ClassifyNode(id string) string

	// Label returns the display label for a graph node id: its final
	// namespace segment, or the id itself if the language's namespace
	// separator does not appear in it.
	Label(id string) string
}

// Registry maps language identifiers to their Provider.
type Registry struct {
	providers map[string]Provider
}

// NewRegistry creates an empty provider registry.
func NewRegistry() *Registry {
	return &Registry{providers: make(map[string]Provider)}
}

// Register adds or replaces the provider for its language.
func (r *Registry) Register(provider Provider) {
	r.providers[provider.Language()] = provider
}

// Get retrieves the provider for a language.
func (r *Registry) Get(language string) (Provider, bool) {
	p, ok := r.providers[language]
	return p, ok
}

// Languages returns every registered language identifier.
func (r *Registry) Languages() []string {
	langs := make([]string, 0, len(r.providers))
	for k := range r.providers {
		langs = append(langs, k)
	}
	return langs
}
