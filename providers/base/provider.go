// Package base implements the shared analyzer machinery every language
// provider wraps around its providers.LanguageConfig: parsing source with
// tree-sitter (4.A), walking the tree to extract functions/imports/types
// (4.C), and scoring cyclomatic complexity (4.D). Per-language differences
// live entirely in the LanguageConfig implementation; this package never
// branches on language identity.
package base

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/oxhq/strata/model"
	"github.com/oxhq/strata/providers"
)

// Provider adapts a providers.LanguageConfig into a full providers.Provider
// using the traversal and scoring logic below.
//
// A *sitter.Parser is not safe to reuse across concurrent parses: it keeps
// mutable scratch state for the in-progress tree between ParseCtx calls. The
// read API registers one Provider per language and serves every request
// concurrently (each in its own goroutine), so a single shared parser per
// language would let two simultaneous POST /api/analyze calls race on the
// same *sitter.Parser. parsers pools one *sitter.Parser per concurrent
// caller instead, following the same per-language sync.Pool shape the
// vjache-cie ingestion parser uses for the same reason.
type Provider struct {
	config  providers.LanguageConfig
	parsers sync.Pool
	cache   *ASTCache
}

// New builds a Provider from a language binding. It panics if the grammar
// fails to load, since that indicates a build-time wiring mistake rather
// than a recoverable runtime condition.
func New(config providers.LanguageConfig) *Provider {
	lang := config.GetLanguage()
	if lang == nil {
		panic(fmt.Sprintf("base: failed to load tree-sitter grammar for %s", config.Language()))
	}

	p := &Provider{
		config: config,
		cache:  GlobalCache,
	}
	p.parsers.New = func() any {
		parser := sitter.NewParser()
		parser.SetLanguage(lang)
		return parser
	}
	return p
}

// acquireParser checks out a *sitter.Parser exclusive to the calling
// goroutine for the duration of one parse, returning it to the pool when
// the caller is done.
func (p *Provider) acquireParser() (*sitter.Parser, func()) {
	parser := p.parsers.Get().(*sitter.Parser)
	return parser, func() { p.parsers.Put(parser) }
}

func (p *Provider) Language() string  { return p.config.Language() }
func (p *Provider) Extension() string { return p.config.Extension() }

// AnalyzeFile runs the 4.C File Analyzer: parse, then a single pre-order
// walk collecting function definitions, import declarations, and type
// declarations per the LanguageConfig's node classification.
func (p *Provider) AnalyzeFile(path string, source []byte) (model.ParsedFile, error) {
	parser, release := p.acquireParser()
	defer release()

	tree, _ := p.cache.GetOrParse(parser, source)
	if tree == nil {
		return model.ParsedFile{}, fmt.Errorf("base: failed to parse %s", path)
	}
	defer tree.Close()

	path = filepath.ToSlash(path)
	parsed := model.ParsedFile{
		Path:       path,
		ModuleName: moduleName(path, p.config.Extension()),
		LineCount:  strings.Count(string(source), "\n") + 1,
	}

	p.walk(tree.RootNode(), source, &parsed, false)

	return parsed, nil
}

// moduleName derives a short identifier from a file's basename by
// stripping the language's source extension.
func moduleName(path, ext string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, ext)
}

// walk traverses the tree in pre-order. insideFunction suppresses nested
// function extraction once a function node has been entered, per the
// nested-function design note: a function body is still walked for imports
// and types, just not for further function records.
func (p *Provider) walk(node *sitter.Node, source []byte, out *model.ParsedFile, insideFunction bool) {
	kind := node.Type()

	switch {
	case p.config.IsFunctionNode(kind) && !insideFunction:
		out.Functions = append(out.Functions, p.extractFunction(node, source))
		insideFunction = true
	case p.config.IsImportNode(kind):
		raw := strings.TrimSpace(nodeText(node, source))
		if term := p.config.StatementTerminator(); term != "" {
			raw = strings.TrimSuffix(raw, term)
		}
		out.Imports = append(out.Imports, raw)
	case p.config.IsTypeNode(kind):
		if name := fieldText(node, source, "name"); name != "" {
			out.Types = append(out.Types, name)
		}
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		p.walk(node.Child(i), source, out, insideFunction)
	}
}

func (p *Provider) extractFunction(node *sitter.Node, source []byte) model.ParsedFunction {
	name := fieldText(node, source, "name")
	if name == "" {
		name = "anonymous"
	}

	isPublic := false
	if field := p.config.VisibilityField(); field != "" {
		if vis := fieldText(node, source, field); vis != "" {
			isPublic = strings.HasPrefix(vis, p.config.PublicKeyword())
		}
	}

	isAsync := false
	if asyncKind := p.config.AsyncKind(); asyncKind != "" {
		for i := 0; i < int(node.ChildCount()); i++ {
			if node.Child(i).Type() == asyncKind {
				isAsync = true
				break
			}
		}
	}

	return model.ParsedFunction{
		Name:       name,
		LineStart:  int(node.StartPoint().Row) + 1,
		LineEnd:    int(node.EndPoint().Row) + 1,
		IsPublic:   isPublic,
		IsAsync:    isAsync,
		BodySource: nodeText(node, source),
	}
}

// ComputeComplexity runs the 4.D Complexity Engine: re-parse the function's
// own source in isolation and sum BranchWeight over every node, plus the
// McCabe baseline of 1. A re-parse failure is not propagated as an error
// (Provider never returns one here); it yields the baseline score instead.
func (p *Provider) ComputeComplexity(fn model.ParsedFunction) int {
	parser, release := p.acquireParser()
	defer release()

	source := []byte(fn.BodySource)
	tree, _ := p.cache.GetOrParse(parser, source)
	if tree == nil {
		return 1
	}
	defer tree.Close()

	score := 1
	p.sumBranches(tree.RootNode(), source, &score)
	return score
}

func (p *Provider) sumBranches(node *sitter.Node, source []byte, score *int) {
	*score += p.config.BranchWeight(node, source)
	for i := 0; i < int(node.ChildCount()); i++ {
		p.sumBranches(node.Child(i), source, score)
	}
}

// NormalizeImport runs the 4.E Import Normalizer: strip the language's
// import keyword and statement terminator, leaving the raw namespace path.
func (p *Provider) NormalizeImport(raw string) string {
	s := strings.TrimSpace(raw)
	if kw := p.config.ImportKeyword(); kw != "" {
		s = strings.TrimPrefix(s, kw)
	}
	if term := p.config.StatementTerminator(); term != "" {
		s = strings.TrimSuffix(s, term)
	}
	return strings.TrimSpace(s)
}

// ClassifyNode assigns a dependency-graph node kind to a normalized import
// id: "file" when it contains a "/" (read as a file path), "extern" when its
// root namespace segment is a configured standard-library prefix,
// otherwise "module".
func (p *Provider) ClassifyNode(id string) string {
	if strings.Contains(id, "/") {
		return model.NodeKindFile
	}

	sep := p.config.PathSeparator()
	root := id
	if sep != "" {
		if idx := strings.Index(id, sep); idx >= 0 {
			root = id[:idx]
		}
	}
	for _, prefix := range p.config.StdlibPrefixes() {
		if root == prefix {
			return model.NodeKindExtern
		}
	}

	return model.NodeKindModule
}

// Label returns the final namespace segment of id, split on the
// language's PathSeparator, falling back to id itself when the separator
// does not appear.
func (p *Provider) Label(id string) string {
	sep := p.config.PathSeparator()
	if sep == "" {
		return id
	}
	parts := strings.Split(id, sep)
	return parts[len(parts)-1]
}

func nodeText(node *sitter.Node, source []byte) string {
	return string(source[node.StartByte():node.EndByte()])
}

func fieldText(node *sitter.Node, source []byte, field string) string {
	child := node.ChildByFieldName(field)
	if child == nil {
		return ""
	}
	return nodeText(child, source)
}
