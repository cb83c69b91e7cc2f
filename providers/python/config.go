// Package python implements providers.LanguageConfig for Python.
package python

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

// Config implements providers.LanguageConfig for Python.
type Config struct{}

func (c *Config) Language() string             { return "python" }
func (c *Config) Extension() string            { return ".py" }
func (c *Config) GetLanguage() *sitter.Language { return python.GetLanguage() }

func (c *Config) IsFunctionNode(kind string) bool {
	return kind == "function_definition"
}
func (c *Config) IsImportNode(kind string) bool {
	return kind == "import_statement" || kind == "import_from_statement"
}
func (c *Config) IsTypeNode(kind string) bool { return kind == "class_definition" }

// Python has no visibility keyword; convention (leading underscore) isn't
// expressible through this contract, so functions are recorded as
// non-public here. Rust is the fidelity target.
func (c *Config) VisibilityField() string { return "" }
func (c *Config) PublicKeyword() string   { return "" }
func (c *Config) AsyncKind() string       { return "async" }

func (c *Config) ImportKeyword() string       { return "" }
func (c *Config) PathSeparator() string       { return "." }
func (c *Config) StatementTerminator() string { return "" }

func (c *Config) StdlibPrefixes() []string {
	return []string{
		"os", "sys", "re", "json", "math", "typing", "collections",
		"itertools", "functools", "pathlib", "datetime", "logging", "io", "abc",
	}
}

func (c *Config) BranchWeight(node *sitter.Node, source []byte) int {
	switch node.Type() {
	case "if_statement", "elif_clause", "for_statement", "while_statement",
		"try_statement", "except_clause", "with_statement", "lambda", "conditional_expression":
		return 1
	case "boolean_operator":
		return 1
	default:
		return 0
	}
}
