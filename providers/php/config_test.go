package php

import (
	"testing"

	"github.com/oxhq/strata/providers/base"
)

func TestConfigIdentity(t *testing.T) {
	c := &Config{}
	if c.Language() != "php" {
		t.Errorf("expected language 'php', got %q", c.Language())
	}
	if c.Extension() != ".php" {
		t.Errorf("expected extension '.php', got %q", c.Extension())
	}
}

func TestAnalyzeFileExtractsFunctionAndClass(t *testing.T) {
	p := base.New(&Config{})

	src := []byte(`<?php
class Greeter {
	public function greet() {
		return "hi";
	}
}
`)

	parsed, err := p.AnalyzeFile("x.php", src)
	if err != nil {
		t.Fatalf("AnalyzeFile failed: %v", err)
	}
	if len(parsed.Functions) != 1 {
		t.Fatalf("expected 1 function, got %d", len(parsed.Functions))
	}
	if len(parsed.Types) != 1 || parsed.Types[0] != "Greeter" {
		t.Errorf("expected types ['Greeter'], got %v", parsed.Types)
	}
}

func TestNormalizeImport(t *testing.T) {
	p := base.New(&Config{})
	if got := p.NormalizeImport("use App\\Models\\User;"); got != "App\\Models\\User" {
		t.Errorf("expected 'App\\\\Models\\\\User', got %q", got)
	}
}
