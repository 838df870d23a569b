package pipeline

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/alnah/go-paper/internal/dom"
)

// NumberedClass is the body class that turns on section numbering.
const NumberedClass = "numbered"

// EnsureTitle returns the document title. When <head> carries no non-empty
// <title>, the text of the first <h1> becomes the title and is written into
// <head>; set reports whether that happened. A document with neither yields
// an empty title.
func EnsureTitle(doc *html.Node) (title string, set bool) {
	existing := dom.FindFirst(doc, dom.Tag("title"))
	if existing != nil {
		if t := strings.TrimSpace(dom.TextContent(existing)); t != "" {
			return t, false
		}
	}

	h1 := dom.FindFirst(doc, dom.Tag("h1"))
	if h1 == nil {
		return "", false
	}
	title = strings.TrimSpace(dom.TextContent(h1))
	if title == "" {
		return "", false
	}

	if existing == nil {
		head := dom.Head(doc)
		if head == nil {
			return title, false
		}
		existing = dom.NewElement("title")
		head.AppendChild(existing)
	}
	dom.RemoveChildren(existing)
	existing.AppendChild(dom.NewText(title))

	return title, true
}

// AddBodyClasses adds the space-separated classes, plus NumberedClass when
// numbered is set, to <body>.
func AddBodyClasses(doc *html.Node, classes string, numbered bool) {
	body := dom.Body(doc)
	if body == nil {
		return
	}
	for _, c := range strings.Fields(classes) {
		dom.AddClass(body, c)
	}
	if numbered {
		dom.AddClass(body, NumberedClass)
	}
}
