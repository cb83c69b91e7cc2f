package api

import (
	"github.com/oxhq/strata/providers"
	"github.com/oxhq/strata/providers/catalog"
	"github.com/oxhq/strata/providers/golang"
	"github.com/oxhq/strata/providers/javascript"
	"github.com/oxhq/strata/providers/php"
	"github.com/oxhq/strata/providers/python"
	"github.com/oxhq/strata/providers/rust"
	"github.com/oxhq/strata/providers/typescript"
)

// NewRegistry builds a provider registry with every supported language
// bound in, and registers each one's extension with the catalog so a
// request that omits an explicit language can still be routed by
// DetectLanguage.
func NewRegistry() *providers.Registry {
	reg := providers.NewRegistry()
	for _, p := range []providers.Provider{
		rust.New(),
		golang.New(),
		python.New(),
		javascript.New(),
		typescript.New(),
		php.New(),
	} {
		reg.Register(p)
		catalog.Register(catalog.LanguageInfo{ID: p.Language(), Extensions: []string{p.Extension()}})
	}
	return reg
}
