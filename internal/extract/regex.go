package extract

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopx-dev/templatize/internal/page"
)

var (
	mainPattern        = regexp.MustCompile(`(?is)<main\b[^>]*>(.*?)</main\s*>`)
	titlePattern       = regexp.MustCompile(`(?is)<title\b[^>]*>(.*?)</title\s*>`)
	linkTagPattern     = regexp.MustCompile(`(?is)<link\b[^>]*>`)
	scriptTagPattern   = regexp.MustCompile(`(?is)<script\b[^>]*>`)
	scriptClosePattern = regexp.MustCompile(`(?is)^\s*</script\s*>`)
	hrefPattern        = regexp.MustCompile(`(?is)\bhref\s*=\s*(?:"([^"]*)"|'([^']*)')`)
	srcPattern         = regexp.MustCompile(`(?is)\bsrc\s*=\s*(?:"([^"]*)"|'([^']*)')`)
)

// RegexExtractor finds page parts with regular expressions over the raw source.
// Matched markup is carried over byte for byte.
type RegexExtractor struct{}

func NewRegexExtractor() *RegexExtractor {
	return &RegexExtractor{}
}

func (r *RegexExtractor) Name() string {
	return "regex"
}

func (r *RegexExtractor) Extract(content []byte) (*page.Page, error) {
	src := string(content)

	mainMatch := mainPattern.FindStringSubmatch(src)
	if mainMatch == nil {
		return nil, fmt.Errorf("regex: %w", page.ErrNoMain)
	}

	p := &page.Page{Content: mainMatch[1]}
	if m := titlePattern.FindStringSubmatch(src); m != nil {
		p.Title = strings.TrimSpace(m[1])
		p.HasTitle = true
	}

	for _, tag := range linkTagPattern.FindAllString(src, -1) {
		if page.IsLocalAsset(attrValue(hrefPattern, tag), ".css") {
			p.Stylesheet = tag
			break
		}
	}

	for _, loc := range scriptTagPattern.FindAllStringIndex(src, -1) {
		tag := src[loc[0]:loc[1]]
		if !page.IsLocalAsset(attrValue(srcPattern, tag), ".js") {
			continue
		}
		if closing := scriptClosePattern.FindString(src[loc[1]:]); closing != "" {
			tag += strings.TrimSpace(closing)
			p.ScriptClosed = true
		}
		p.Script = tag
		break
	}

	return p, nil
}

func attrValue(pattern *regexp.Regexp, tag string) string {
	m := pattern.FindStringSubmatch(tag)
	if m == nil {
		return ""
	}
	if m[1] != "" {
		return m[1]
	}
	return m[2]
}
