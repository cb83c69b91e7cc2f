// Package golang implements providers.LanguageConfig for Go, one of the
// non-primary languages the analyzer's LanguageConfig abstraction extends
// to beyond the Rust target it was grounded on.
package golang

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"
)

// Config implements providers.LanguageConfig for Go.
type Config struct{}

func (c *Config) Language() string             { return "go" }
func (c *Config) Extension() string            { return ".go" }
func (c *Config) GetLanguage() *sitter.Language { return golang.GetLanguage() }

func (c *Config) IsFunctionNode(kind string) bool {
	return kind == "function_declaration" || kind == "method_declaration"
}
func (c *Config) IsImportNode(kind string) bool { return kind == "import_spec" }
func (c *Config) IsTypeNode(kind string) bool   { return kind == "type_spec" }

// Go has no visibility keyword: export is denoted by identifier
// capitalization, which this shared contract can't express. Functions are
// always recorded as non-public here; Rust is the fidelity target.
func (c *Config) VisibilityField() string { return "" }
func (c *Config) PublicKeyword() string   { return "" }
func (c *Config) AsyncKind() string       { return "" }

func (c *Config) ImportKeyword() string       { return "\"" }
func (c *Config) PathSeparator() string       { return "/" }
func (c *Config) StatementTerminator() string { return "\"" }

func (c *Config) StdlibPrefixes() []string {
	return []string{
		"fmt", "os", "io", "strings", "strconv", "errors", "context",
		"sync", "time", "net", "encoding", "bytes", "sort", "math", "reflect",
	}
}

func (c *Config) BranchWeight(node *sitter.Node, source []byte) int {
	switch node.Type() {
	case "if_statement", "for_statement", "expression_switch_statement",
		"type_switch_statement", "communication_case", "expression_case", "default_case":
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
		case "&&", "||":
			return true
		}
	}
	return false
}
