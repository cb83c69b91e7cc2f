package typescript

import "github.com/oxhq/strata/providers/base"

// New creates a TypeScript provider using the shared base traversal engine
// with TypeScript-specific grammar and node-kind configuration.
func New() *base.Provider {
	return base.New(&Config{})
}
