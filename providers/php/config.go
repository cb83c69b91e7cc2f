// Package php implements providers.LanguageConfig for PHP.
package php

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/php"
)

// Config implements providers.LanguageConfig for PHP.
type Config struct{}

func (c *Config) Language() string             { return "php" }
func (c *Config) Extension() string            { return ".php" }
func (c *Config) GetLanguage() *sitter.Language { return php.GetLanguage() }

func (c *Config) IsFunctionNode(kind string) bool {
	return kind == "function_definition" || kind == "method_declaration"
}
func (c *Config) IsImportNode(kind string) bool { return kind == "namespace_use_declaration" }
func (c *Config) IsTypeNode(kind string) bool {
	switch kind {
	case "class_declaration", "interface_declaration", "trait_declaration":
		return true
	default:
		return false
	}
}

// PHP visibility lives on a sibling modifier keyword inside
// method_declaration rather than a single named field, which this
// field-based contract can't express directly; functions are recorded as
// non-public here. Rust is the fidelity target.
func (c *Config) VisibilityField() string { return "" }
func (c *Config) PublicKeyword() string   { return "" }
func (c *Config) AsyncKind() string       { return "" }

func (c *Config) ImportKeyword() string       { return "use " }
func (c *Config) PathSeparator() string       { return "\\" }
func (c *Config) StatementTerminator() string { return ";" }

func (c *Config) StdlibPrefixes() []string {
	return []string{"Exception", "ArrayObject", "DateTime", "PDO", "Closure"}
}

func (c *Config) BranchWeight(node *sitter.Node, source []byte) int {
	switch node.Type() {
	case "if_statement", "else_if_clause", "for_statement", "foreach_statement",
		"while_statement", "switch_case", "catch_clause", "conditional_expression":
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
