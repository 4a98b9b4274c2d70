package ignore

import (
	"path/filepath"
	"strings"

	gitignore "github.com/sabhiram/go-gitignore"
)

// IgnoreFile holds user rules, one gitignore pattern per line.
const IgnoreFile = ".templatizeignore"

// DefaultRules are the shared layout partials and non-page files that are
// never converted.
var DefaultRules = []string{
	".templatize/",
	"login.html",
	"base.html",
	"header.html",
	"footer.html",
	"cms_components.html",
	"cms_config.json",
}

// Matcher applies gitignore rules with "last rule wins" behavior.
type Matcher struct {
	rules    []string
	compiled *gitignore.GitIgnore
}

// NewMatcher builds a matcher from user-provided rules.
// Default excludes are prepended and can be overridden by user negation rules.
func NewMatcher(userRules []string) *Matcher {
	all := make([]string, 0, len(DefaultRules)+len(userRules))
	all = append(all, DefaultRules...)
	for _, line := range userRules {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		all = append(all, line)
	}

	return &Matcher{
		rules:    all,
		compiled: gitignore.CompileIgnoreLines(all...),
	}
}

// ShouldIgnore returns true when relPath should be excluded.
func (m *Matcher) ShouldIgnore(relPath string, isDir bool) bool {
	relPath = normalizePath(relPath)
	if relPath == "" || relPath == "." {
		return false
	}
	if isDir {
		relPath += "/"
	}
	return m.compiled.MatchesPath(relPath)
}

// Rules returns the effective rule list, defaults first.
func (m *Matcher) Rules() []string {
	out := make([]string, len(m.rules))
	copy(out, m.rules)
	return out
}

func normalizePath(path string) string {
	path = filepath.ToSlash(path)
	path = strings.TrimPrefix(path, "./")
	path = strings.TrimPrefix(path, "/")
	return path
}
