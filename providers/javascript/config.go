// Package javascript implements providers.LanguageConfig for JavaScript.
package javascript

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
)

// Config implements providers.LanguageConfig for JavaScript.
type Config struct{}

func (c *Config) Language() string             { return "javascript" }
func (c *Config) Extension() string            { return ".js" }
func (c *Config) GetLanguage() *sitter.Language { return javascript.GetLanguage() }

// arrow_function is deliberately excluded: like Rust's closure_expression,
// a closure contributes to its enclosing function's branch count rather
// than being extracted as its own function record.
func (c *Config) IsFunctionNode(kind string) bool {
	switch kind {
	case "function_declaration", "function_expression", "method_definition":
		return true
	default:
		return false
	}
}
func (c *Config) IsImportNode(kind string) bool { return kind == "import_statement" }
func (c *Config) IsTypeNode(kind string) bool   { return kind == "class_declaration" }

// JavaScript has no visibility keyword; export-ness lives in a separate
// export_statement wrapper this node-local contract can't see, so functions
// are recorded as non-public here. Rust is the fidelity target.
func (c *Config) VisibilityField() string { return "" }
func (c *Config) PublicKeyword() string   { return "" }
func (c *Config) AsyncKind() string       { return "async" }

func (c *Config) ImportKeyword() string       { return "" }
func (c *Config) PathSeparator() string       { return "." }
func (c *Config) StatementTerminator() string { return ";" }

func (c *Config) StdlibPrefixes() []string {
	return []string{"fs", "path", "http", "util", "events", "stream", "os", "crypto"}
}

func (c *Config) BranchWeight(node *sitter.Node, source []byte) int {
	switch node.Type() {
	case "if_statement", "for_statement", "for_in_statement", "while_statement",
		"do_statement", "switch_case", "catch_clause", "ternary_expression",
		"arrow_function":
		return 1
	case "binary_expression":
		if hasShortCircuitChild(node) {
			return 1
		}
		return 0
	default:
		return 0
	}
}

func hasShortCircuitChild(node *sitter.Node) bool {
	for i := 0; i < int(node.ChildCount()); i++ {
		switch node.Child(i).Type() {
		case "&&", "||", "??":
			return true
		}
	}
	return false
}
