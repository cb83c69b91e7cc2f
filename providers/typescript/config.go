// Package typescript implements providers.LanguageConfig for TypeScript.
package typescript

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// Config implements providers.LanguageConfig for TypeScript.
type Config struct{}

func (c *Config) Language() string             { return "typescript" }
func (c *Config) Extension() string            { return ".ts" }
func (c *Config) GetLanguage() *sitter.Language { return typescript.GetLanguage() }

// arrow_function is excluded from function extraction for the same reason
// as the JavaScript binding: it contributes branch weight as a closure
// rather than standing as its own function record. method_signature (an
// interface member with no body) is excluded too: there is no body to
// score for complexity.
func (c *Config) IsFunctionNode(kind string) bool {
	switch kind {
	case "function_declaration", "function_expression", "method_definition":
		return true
	default:
		return false
	}
}
func (c *Config) IsImportNode(kind string) bool { return kind == "import_statement" }
func (c *Config) IsTypeNode(kind string) bool {
	switch kind {
	case "class_declaration", "interface_declaration":
		return true
	default:
		return false
	}
}

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
