package extract

import "github.com/shopx-dev/templatize/internal/page"

// DefaultExtractor is used when neither flags nor config pick a strategy.
const DefaultExtractor = "regex"

// NewDefaultRegistry creates a registry with all supported extraction strategies
func NewDefaultRegistry() *page.Registry {
	r := page.NewRegistry()

	r.Register(NewRegexExtractor())
	r.Register(NewDOMExtractor())
	r.Register(NewSyntaxExtractor())

	return r
}
