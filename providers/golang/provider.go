package golang

import "github.com/oxhq/strata/providers/base"

// New creates a Go provider using the shared base traversal engine with
// Go-specific grammar and node-kind configuration.
func New() *base.Provider {
	return base.New(&Config{})
}
