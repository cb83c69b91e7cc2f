package javascript

import "github.com/oxhq/strata/providers/base"

// New creates a JavaScript provider using the shared base traversal engine
// with JavaScript-specific grammar and node-kind configuration.
func New() *base.Provider {
	return base.New(&Config{})
}
