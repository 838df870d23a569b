// Package dom provides the small set of tree operations the document
// pipeline needs on top of golang.org/x/net/html: parsing with charset
// detection, rendering, inner HTML access and class/tag queries.
package dom

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/net/html/charset"
)

// ErrParse indicates the document could not be parsed.
var ErrParse = errors.New("HTML parsing failed")

// Matcher reports whether a node is selected by a query.
type Matcher func(n *html.Node) bool

// Parse parses a complete HTML document. Input that is not valid UTF-8 is
// decoded using the encoding declared by a BOM or <meta charset>.
func Parse(data []byte) (*html.Node, error) {
	var r io.Reader = bytes.NewReader(data)
	if !utf8.Valid(data) {
		decoded, err := charset.NewReader(r, "text/html")
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrParse, err)
		}
		r = decoded
	}

	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	return doc, nil
}

// ParseFragment parses content as it would appear inside context.
// A nil context parses as body content.
func ParseFragment(content string, context *html.Node) ([]*html.Node, error) {
	if context == nil || context.Type != html.ElementNode {
		context = &html.Node{Type: html.ElementNode, DataAtom: atom.Body, Data: "body"}
	}
	nodes, err := html.ParseFragment(strings.NewReader(content), context)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	return nodes, nil
}

// Render serializes n (and its subtree).
func Render(n *html.Node) ([]byte, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// InnerHTML renders the children of n, without n itself.
func InnerHTML(n *html.Node) (string, error) {
	var buf strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

// SetInnerHTML replaces the children of n with content parsed in n's context.
// On parse failure n is left untouched.
func SetInnerHTML(n *html.Node, content string) error {
	nodes, err := ParseFragment(content, n)
	if err != nil {
		return err
	}
	RemoveChildren(n)
	for _, c := range nodes {
		n.AppendChild(c)
	}
	return nil
}

// RemoveChildren detaches every child of n.
func RemoveChildren(n *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		n.RemoveChild(c)
		c = next
	}
}

// Walk visits n and its descendants depth-first in document order.
// Returning false from fn skips the children of the visited node.
func Walk(n *html.Node, fn func(*html.Node) bool) {
	if !fn(n) {
		return
	}
	for c := n.FirstChild; c != nil; {
		// fn may detach c; remember the sibling first.
		next := c.NextSibling
		Walk(c, fn)
		c = next
	}
}

// FindFirst returns the first node in document order selected by match.
func FindFirst(root *html.Node, match Matcher) *html.Node {
	var found *html.Node
	Walk(root, func(n *html.Node) bool {
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

// FindAll returns every node selected by match, in document order.
func FindAll(root *html.Node, match Matcher) []*html.Node {
	var nodes []*html.Node
	Walk(root, func(n *html.Node) bool {
		if match(n) {
			nodes = append(nodes, n)
		}
		return true
	})
	return nodes
}

// Tag selects elements by tag name (case-insensitive).
func Tag(name string) Matcher {
	name = strings.ToLower(name)
	return func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.Data == name
	}
}

// Class selects elements carrying class name.
func Class(name string) Matcher {
	return func(n *html.Node) bool {
		return n.Type == html.ElementNode && HasClass(n, name)
	}
}

// Selector compiles the simple selector forms "tag", ".class" and
// "tag.class". Anything else never matches.
func Selector(sel string) Matcher {
	sel = strings.TrimSpace(sel)
	tag, class, hasClass := strings.Cut(sel, ".")
	if sel == "" || strings.ContainsAny(sel, " >#[:") || (hasClass && class == "") {
		return func(*html.Node) bool { return false }
	}
	switch {
	case !hasClass:
		return Tag(tag)
	case tag == "":
		return Class(class)
	default:
		byTag, byClass := Tag(tag), Class(class)
		return func(n *html.Node) bool { return byTag(n) && byClass(n) }
	}
}

// Any selects nodes matched by at least one of matchers.
func Any(matchers ...Matcher) Matcher {
	return func(n *html.Node) bool {
		for _, m := range matchers {
			if m(n) {
				return true
			}
		}
		return false
	}
}

// Attr returns the value of attribute key and whether it is present.
func Attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// SetAttr sets attribute key to val, adding it if absent.
func SetAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// HasClass reports whether the class attribute of n lists name.
func HasClass(n *html.Node, name string) bool {
	classes, _ := Attr(n, "class")
	for _, c := range strings.Fields(classes) {
		if c == name {
			return true
		}
	}
	return false
}

// AddClass appends name to the class attribute of n unless already present.
func AddClass(n *html.Node, name string) {
	if name == "" || HasClass(n, name) {
		return
	}
	classes, ok := Attr(n, "class")
	if !ok || strings.TrimSpace(classes) == "" {
		SetAttr(n, "class", name)
		return
	}
	SetAttr(n, "class", strings.TrimSpace(classes)+" "+name)
}

// TextContent concatenates the text of every descendant text node.
func TextContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var sb strings.Builder
	Walk(n, func(c *html.Node) bool {
		if c.Type == html.TextNode {
			sb.WriteString(c.Data)
		}
		return true
	})
	return sb.String()
}

// NewElement creates a detached element.
func NewElement(tag string, attrs ...html.Attribute) *html.Node {
	tag = strings.ToLower(tag)
	return &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Lookup([]byte(tag)),
		Data:     tag,
		Attr:     attrs,
	}
}

// NewText creates a detached text node.
func NewText(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

// Body returns the <body> element of doc, or nil.
func Body(doc *html.Node) *html.Node {
	return FindFirst(doc, Tag("body"))
}

// Head returns the <head> element of doc, or nil.
func Head(doc *html.Node) *html.Node {
	return FindFirst(doc, Tag("head"))
}
