package render

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopx-dev/templatize/internal/page"
)

const (
	DefaultBaseTemplate = "base.html"
	DefaultTitle        = "ShopX - Thương mại điện tử"
)

var extendsPattern = regexp.MustCompile(`^\s*\{%-?\s*extends\s`)

// Options control the emitted fragment.
type Options struct {
	BaseTemplate string
	DefaultTitle string
}

func (o Options) withDefaults() Options {
	if strings.TrimSpace(o.BaseTemplate) == "" {
		o.BaseTemplate = DefaultBaseTemplate
	}
	if o.DefaultTitle == "" {
		o.DefaultTitle = DefaultTitle
	}
	return o
}

// Fragment renders p as a child template that extends the base layout and
// fills its title, extra_css, content and extra_js blocks.
func Fragment(p *page.Page, opts Options) string {
	opts = opts.withDefaults()

	title := opts.DefaultTitle
	if p.HasTitle {
		title = p.Title
	}

	script := p.Script
	if script != "" && !p.ScriptClosed {
		script += "</script>"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "{%% extends %q %%}\n\n", opts.BaseTemplate)
	fmt.Fprintf(&b, "{%% block title %%}%s{%% endblock %%}\n\n", title)
	writeBlock(&b, "extra_css", p.Stylesheet)
	b.WriteString("\n")
	writeBlock(&b, "content", p.Content)
	b.WriteString("\n")
	writeBlock(&b, "extra_js", script)
	return b.String()
}

func writeBlock(b *strings.Builder, name, body string) {
	fmt.Fprintf(b, "{%% block %s %%}\n%s\n{%% endblock %%}\n", name, body)
}

// IsTemplated reports whether content is already a child template.
func IsTemplated(content []byte) bool {
	return extendsPattern.Match(content)
}
