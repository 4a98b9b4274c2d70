package page

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrNoMain is returned by extractors when a document has no <main> element.
var ErrNoMain = errors.New("no <main> element")

// Page holds the parts of a standalone HTML document that survive conversion
// into a template fragment.
type Page struct {
	Title    string
	HasTitle bool

	// Stylesheet is the full <link> tag of the first local stylesheet.
	Stylesheet string
	// Script is the <script> tag of the first local script. ScriptClosed
	// reports whether Script already ends with </script>.
	Script       string
	ScriptClosed bool

	// Content is the inner markup of the first <main> element.
	Content string
}

// Extractor pulls a Page out of raw document bytes.
type Extractor interface {
	// Name returns the strategy name (e.g., "regex", "dom")
	Name() string

	// Extract parses content. It returns an error wrapping ErrNoMain when the
	// document does not have the expected shape.
	Extract(content []byte) (*Page, error)
}

// Registry holds all registered extraction strategies
type Registry struct {
	extractors map[string]Extractor
}

// NewRegistry creates a new extractor registry
func NewRegistry() *Registry {
	return &Registry{extractors: make(map[string]Extractor)}
}

// Register adds an extractor to the registry, replacing any with the same name.
func (r *Registry) Register(e Extractor) {
	r.extractors[strings.ToLower(e.Name())] = e
}

// Get returns the extractor registered under name.
func (r *Registry) Get(name string) (Extractor, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	e, ok := r.extractors[key]
	if !ok {
		return nil, fmt.Errorf("unsupported extractor %q (supported: %s)", name, strings.Join(r.Names(), ", "))
	}
	return e, nil
}

// Names returns the sorted names of all registered extractors.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.extractors))
	for name := range r.extractors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsRemoteURL reports whether a href/src value points off-site.
func IsRemoteURL(value string) bool {
	v := strings.ToLower(strings.TrimSpace(value))
	return strings.HasPrefix(v, "http://") || strings.HasPrefix(v, "https://") || strings.HasPrefix(v, "//")
}

// IsLocalAsset reports whether value is a local reference ending in ext.
func IsLocalAsset(value, ext string) bool {
	return !IsRemoteURL(value) && strings.HasSuffix(strings.TrimSpace(value), ext)
}
