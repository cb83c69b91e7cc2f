// Package rust implements providers.LanguageConfig for Rust, grounded on
// the tree-sitter-rust grammar's node kinds. This is the primary language
// binding: the node-kind rulebook below (branch weights especially) mirrors
// what a hand-rolled Rust complexity walker would check field by field.
package rust

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/rust"
)

// Config implements providers.LanguageConfig for Rust.
type Config struct{}

func (c *Config) Language() string             { return "rust" }
func (c *Config) Extension() string            { return ".rs" }
func (c *Config) GetLanguage() *sitter.Language { return rust.GetLanguage() }

func (c *Config) IsFunctionNode(kind string) bool { return kind == "function_item" }
func (c *Config) IsImportNode(kind string) bool   { return kind == "use_declaration" }
func (c *Config) IsTypeNode(kind string) bool     { return kind == "struct_item" }

func (c *Config) VisibilityField() string { return "visibility_modifier" }
func (c *Config) PublicKeyword() string   { return "pub" }
func (c *Config) AsyncKind() string       { return "async" }

func (c *Config) ImportKeyword() string       { return "use " }
func (c *Config) PathSeparator() string       { return "::" }
func (c *Config) StatementTerminator() string { return ";" }

// StdlibPrefixes lists the root namespace segments of Rust's own standard
// library; anything else is either a crate dependency (classified
// "module") or, once it contains a path separator that looks like a file
// path, a same-project file.
func (c *Config) StdlibPrefixes() []string {
	return []string{"std", "core", "alloc"}
}

// BranchWeight implements the cyclomatic complexity rulebook: each kind
// contributes at most one decision point, with else_clause and
// binary_expression needing a child inspection to distinguish an else-if
// from a bare else, and a short-circuit operator from any other binary op.
func (c *Config) BranchWeight(node *sitter.Node, source []byte) int {
	switch node.Type() {
	case "if_expression", "match_arm", "for_expression", "while_expression",
		"loop_expression", "try_expression", "closure_expression":
		return 1
	case "else_clause":
		return childKindCount(node, "if_expression")
	case "binary_expression":
		if hasShortCircuitChild(node) {
			return 1
		}
		return 0
	default:
		return 0
	}
}

func childKindCount(node *sitter.Node, kind string) int {
	count := 0
	for i := 0; i < int(node.ChildCount()); i++ {
		if node.Child(i).Type() == kind {
			count++
		}
	}
	return count
}

func hasShortCircuitChild(node *sitter.Node) bool {
	for i := 0; i < int(node.ChildCount()); i++ {
		switch node.Child(i).Type() {
		case "&&", "||":
			return true
		}
	}
	return false
}
