package python

import (
	"testing"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/oxhq/strata/providers/base"
)

func findKind(node *sitter.Node, kind string) *sitter.Node {
	if node.Type() == kind {
		return node
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		if found := findKind(node.Child(i), kind); found != nil {
			return found
		}
	}
	return nil
}

func TestConfigIdentity(t *testing.T) {
	c := &Config{}
	if c.Language() != "python" {
		t.Errorf("expected language 'python', got %q", c.Language())
	}
	if c.Extension() != ".py" {
		t.Errorf("expected extension '.py', got %q", c.Extension())
	}
}

func TestAnalyzeFileExtractsFunctionsAndImports(t *testing.T) {
	p := base.New(&Config{})

	src := []byte(`import os
from collections import OrderedDict

def plain():
    return 1

async def fetch():
    return 2
`)

	parsed, err := p.AnalyzeFile("x.py", src)
	if err != nil {
		t.Fatalf("AnalyzeFile failed: %v", err)
	}
	if len(parsed.Functions) != 2 {
		t.Fatalf("expected 2 functions, got %d", len(parsed.Functions))
	}
	if !parsed.Functions[1].IsAsync {
		t.Error("expected second function to be async")
	}
	if len(parsed.Imports) != 2 {
		t.Fatalf("expected 2 imports, got %d", len(parsed.Imports))
	}
}

func TestBranchWeightIfAndBooleanOperator(t *testing.T) {
	c := &Config{}
	src := []byte(`
def f(a, b):
    if a and b:
        return 1
    return 0
`)
	parser := sitter.NewParser()
	parser.SetLanguage(c.GetLanguage())
	tree := parser.Parse(nil, src)
	defer tree.Close()

	ifNode := findKind(tree.RootNode(), "if_statement")
	if ifNode == nil {
		t.Fatal("expected to find if_statement")
	}
	if got := c.BranchWeight(ifNode, src); got != 1 {
		t.Errorf("expected weight 1 for if_statement, got %d", got)
	}

	boolNode := findKind(tree.RootNode(), "boolean_operator")
	if boolNode == nil {
		t.Fatal("expected to find boolean_operator")
	}
	if got := c.BranchWeight(boolNode, src); got != 1 {
		t.Errorf("expected weight 1 for boolean_operator, got %d", got)
	}
}
