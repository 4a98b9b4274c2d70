package extract

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopx-dev/templatize/internal/page"
	sitter "github.com/smacker/go-tree-sitter"
	tshtml "github.com/smacker/go-tree-sitter/html"
)

// SyntaxExtractor walks a tree-sitter HTML syntax tree. Unlike the dom
// strategy it slices the original bytes, so kept markup is untouched.
type SyntaxExtractor struct{}

func NewSyntaxExtractor() *SyntaxExtractor {
	return &SyntaxExtractor{}
}

func (s *SyntaxExtractor) Name() string {
	return "syntax"
}

func (s *SyntaxExtractor) Extract(content []byte) (*page.Page, error) {
	tree, err := parseHTML(content)
	if err != nil {
		return nil, fmt.Errorf("syntax: failed to parse document: %w", err)
	}
	defer tree.Close()

	root := tree.RootNode()
	mainNode := firstNode(root, func(n *sitter.Node) bool {
		return n.Type() == "element" && elementTagName(n, content) == "main" && hasEndTag(n)
	})
	if mainNode == nil {
		return nil, fmt.Errorf("syntax: %w", page.ErrNoMain)
	}

	p := &page.Page{Content: innerContent(mainNode, content)}

	titleNode := firstNode(root, func(n *sitter.Node) bool {
		return n.Type() == "element" && elementTagName(n, content) == "title" && hasEndTag(n)
	})
	if titleNode != nil {
		p.Title = strings.TrimSpace(innerContent(titleNode, content))
		p.HasTitle = true
	}

	linkNode := firstNode(root, func(n *sitter.Node) bool {
		if n.Type() != "element" || elementTagName(n, content) != "link" {
			return false
		}
		return page.IsLocalAsset(tagAttribute(openingTag(n), content, "href"), ".css")
	})
	if linkNode != nil {
		p.Stylesheet = openingTag(linkNode).Content(content)
	}

	scriptNode := firstNode(root, func(n *sitter.Node) bool {
		if n.Type() != "script_element" {
			return false
		}
		return page.IsLocalAsset(tagAttribute(openingTag(n), content, "src"), ".js")
	})
	if scriptNode != nil {
		if hasEndTag(scriptNode) {
			p.Script = scriptNode.Content(content)
			p.ScriptClosed = true
		} else {
			p.Script = openingTag(scriptNode).Content(content)
		}
	}

	return p, nil
}

// SyntaxIssue is a malformed region reported by the HTML grammar.
type SyntaxIssue struct {
	Line    int    `json:"line"`
	Column  int    `json:"column"`
	Kind    string `json:"kind"`
	Snippet string `json:"snippet,omitempty"`
}

// CheckSyntax reports error, missing and stray end-tag nodes in content.
func CheckSyntax(content []byte) ([]SyntaxIssue, error) {
	tree, err := parseHTML(content)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	issues := make([]SyntaxIssue, 0)
	walkNodes(tree.RootNode(), func(n *sitter.Node) bool {
		var kind string
		switch {
		case n.IsMissing():
			kind = "missing " + n.Type()
		case n.Type() == "ERROR":
			kind = "syntax error"
		case n.Type() == "erroneous_end_tag":
			kind = "unmatched end tag"
		default:
			return true
		}
		point := n.StartPoint()
		issues = append(issues, SyntaxIssue{
			Line:    int(point.Row) + 1,
			Column:  int(point.Column) + 1,
			Kind:    kind,
			Snippet: snippet(n.Content(content), 60),
		})
		return false
	})
	return issues, nil
}

func parseHTML(content []byte) (*sitter.Tree, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(tshtml.GetLanguage())
	return parser.ParseCtx(context.Background(), nil, content)
}

// walkNodes visits n and its descendants in document order. Returning false
// from visit skips the node's children.
func walkNodes(n *sitter.Node, visit func(*sitter.Node) bool) {
	if n == nil || n.IsNull() {
		return
	}
	if !visit(n) {
		return
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		walkNodes(n.Child(i), visit)
	}
}

func firstNode(root *sitter.Node, match func(*sitter.Node) bool) *sitter.Node {
	var found *sitter.Node
	walkNodes(root, func(n *sitter.Node) bool {
		if found != nil {
			return false
		}
		if match(n) {
			found = n
			return false
		}
		return true
	})
	return found
}

func childOfType(n *sitter.Node, types ...string) *sitter.Node {
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if child == nil {
			continue
		}
		for _, t := range types {
			if child.Type() == t {
				return child
			}
		}
	}
	return nil
}

func openingTag(n *sitter.Node) *sitter.Node {
	return childOfType(n, "start_tag", "self_closing_tag")
}

func hasEndTag(n *sitter.Node) bool {
	end := childOfType(n, "end_tag")
	return end != nil && !end.IsMissing()
}

func elementTagName(n *sitter.Node, content []byte) string {
	tag := openingTag(n)
	if tag == nil {
		return ""
	}
	name := childOfType(tag, "tag_name")
	if name == nil {
		return ""
	}
	return strings.ToLower(name.Content(content))
}

func tagAttribute(tag *sitter.Node, content []byte, key string) string {
	if tag == nil {
		return ""
	}
	for i := 0; i < int(tag.NamedChildCount()); i++ {
		attr := tag.NamedChild(i)
		if attr == nil || attr.Type() != "attribute" {
			continue
		}
		name := childOfType(attr, "attribute_name")
		if name == nil || !strings.EqualFold(name.Content(content), key) {
			continue
		}
		if quoted := childOfType(attr, "quoted_attribute_value"); quoted != nil {
			if value := childOfType(quoted, "attribute_value"); value != nil {
				return value.Content(content)
			}
			return ""
		}
		if value := childOfType(attr, "attribute_value"); value != nil {
			return value.Content(content)
		}
		return ""
	}
	return ""
}

// innerContent returns the source between an element's opening and end tags.
func innerContent(n *sitter.Node, content []byte) string {
	start := openingTag(n)
	end := childOfType(n, "end_tag")
	if start == nil || end == nil {
		return ""
	}
	return string(content[start.EndByte():end.StartByte()])
}

func snippet(s string, max int) string {
	s = strings.Join(strings.Fields(s), " ")
	if runes := []rune(s); len(runes) > max {
		return string(runes[:max]) + "..."
	}
	return s
}
