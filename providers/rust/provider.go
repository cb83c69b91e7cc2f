package rust

import "github.com/oxhq/strata/providers/base"

// New creates a Rust provider using the shared base traversal engine with
// Rust-specific grammar and node-kind configuration.
func New() *base.Provider {
	return base.New(&Config{})
}
