package extract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/shopx-dev/templatize/internal/page"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// DOMExtractor parses the document into an HTML5 tree and re-renders the
// parts it keeps. Output is normalized (quoted attributes, closed tags).
type DOMExtractor struct{}

func NewDOMExtractor() *DOMExtractor {
	return &DOMExtractor{}
}

func (d *DOMExtractor) Name() string {
	return "dom"
}

func (d *DOMExtractor) Extract(content []byte) (*page.Page, error) {
	doc, err := html.Parse(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("dom: failed to parse document: %w", err)
	}

	mainNode := findFirst(doc, func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.DataAtom == atom.Main
	})
	// The parser closes an unterminated <main> at end of document; like the
	// other strategies, require the source to close it.
	if mainNode == nil || !closesElement(content, atom.Main) {
		return nil, fmt.Errorf("dom: %w", page.ErrNoMain)
	}

	inner, err := renderChildren(mainNode)
	if err != nil {
		return nil, fmt.Errorf("dom: failed to render <main>: %w", err)
	}
	p := &page.Page{Content: inner}

	if titleNode := findFirst(doc, isElement(atom.Title)); titleNode != nil {
		p.Title = strings.TrimSpace(textContent(titleNode))
		p.HasTitle = true
	}

	linkNode := findFirst(doc, func(n *html.Node) bool {
		return isElement(atom.Link)(n) && page.IsLocalAsset(getAttr(n, "href"), ".css")
	})
	if linkNode != nil {
		if p.Stylesheet, err = renderNode(linkNode); err != nil {
			return nil, fmt.Errorf("dom: failed to render <link>: %w", err)
		}
	}

	scriptNode := findFirst(doc, func(n *html.Node) bool {
		return isElement(atom.Script)(n) && page.IsLocalAsset(getAttr(n, "src"), ".js")
	})
	if scriptNode != nil {
		if p.Script, err = renderNode(scriptNode); err != nil {
			return nil, fmt.Errorf("dom: failed to render <script>: %w", err)
		}
		p.ScriptClosed = true
	}

	return p, nil
}

// closesElement reports whether content has an end tag for a after an opening
// one.
func closesElement(content []byte, a atom.Atom) bool {
	z := html.NewTokenizer(bytes.NewReader(content))
	opened := false
	for {
		switch z.Next() {
		case html.ErrorToken:
			return false
		case html.StartTagToken:
			if name, _ := z.TagName(); atom.Lookup(name) == a {
				opened = true
			}
		case html.EndTagToken:
			if name, _ := z.TagName(); opened && atom.Lookup(name) == a {
				return true
			}
		}
	}
}

func isElement(a atom.Atom) func(*html.Node) bool {
	return func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.DataAtom == a
	}
}

// findFirst returns the first node in document order matching match.
func findFirst(n *html.Node, match func(*html.Node) bool) *html.Node {
	if match(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findFirst(c, match); found != nil {
			return found
		}
	}
	return nil
}

func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if strings.EqualFold(attr.Key, key) {
			return attr.Val
		}
	}
	return ""
}

func textContent(n *html.Node) string {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
	}
	return b.String()
}

func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func renderChildren(n *html.Node) (string, error) {
	var buf bytes.Buffer
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}
