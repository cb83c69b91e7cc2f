package python

import "github.com/oxhq/strata/providers/base"

// New creates a Python provider using the shared base traversal engine with
// Python-specific grammar and node-kind configuration.
func New() *base.Provider {
	return base.New(&Config{})
}
