package php

import "github.com/oxhq/strata/providers/base"

// New creates a PHP provider using the shared base traversal engine with
// PHP-specific grammar and node-kind configuration.
func New() *base.Provider {
	return base.New(&Config{})
}
