package pipeline

import (
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/alnah/go-paper/internal/dom"
)

// WrapCodeFigures turns every top-level code block, body > pre > code, into
//
//	<figure><pre>…</pre></figure>
//
// moving the children of <code> into <pre>. It returns the number of blocks
// rewritten.
func WrapCodeFigures(doc *html.Node) int {
	body := dom.Body(doc)
	if body == nil {
		return 0
	}

	var codes []*html.Node
	for pre := body.FirstChild; pre != nil; pre = pre.NextSibling {
		if pre.Type != html.ElementNode || pre.DataAtom != atom.Pre {
			continue
		}
		for c := pre.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && c.DataAtom == atom.Code {
				codes = append(codes, c)
			}
		}
	}

	for _, code := range codes {
		pre := code.Parent

		for c := code.FirstChild; c != nil; {
			next := c.NextSibling
			code.RemoveChild(c)
			pre.InsertBefore(c, code)
			c = next
		}
		pre.RemoveChild(code)

		// Several <code> children share one <pre>; wrap it once.
		if pre.Parent != nil && pre.Parent.DataAtom == atom.Figure {
			continue
		}
		figure := dom.NewElement("figure")
		pre.Parent.InsertBefore(figure, pre)
		pre.Parent.RemoveChild(pre)
		figure.AppendChild(pre)
	}

	return len(codes)
}

// TrimPres applies TrimLeftWhitespace to the inner HTML of every <pre>.
func TrimPres(doc *html.Node) error {
	for _, pre := range dom.FindAll(doc, dom.Tag("pre")) {
		inner, err := dom.InnerHTML(pre)
		if err != nil {
			return err
		}
		trimmed := TrimLeftWhitespace(inner)
		if trimmed == inner {
			continue
		}
		if err := dom.SetInnerHTML(pre, trimmed); err != nil {
			return err
		}
	}
	return nil
}
