package citation

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/alnah/go-paper/internal/biblio"
	"github.com/alnah/go-paper/internal/dom"
)

// pagePrefix marks a page value that already carries its abbreviation.
const pagePrefix = "p."

// Reference is a resolved marker, ready to render.
type Reference struct {
	Key   string // base key looked up; empty for one-off citations
	Text  string // description markup, or the raw key when not found
	Href  string
	Found bool
}

// Format resolves m against store.
func Format(store biblio.Lookuper, m Marker) Reference {
	desc, href, page := m.Desc, m.Href, m.Page
	var key string

	if m.NameRef != "" {
		base, keyPage, composite := ParseKey(m.NameRef)
		if composite {
			page = keyPage
		}
		key = base

		rec, ok := store.Lookup(base)
		if !ok {
			return Reference{Key: base, Text: m.NameRef}
		}
		desc = rec.Author + rec.Desc
		href = rec.Href
	}

	return Reference{
		Key:   key,
		Text:  withPage(desc, page),
		Href:  href,
		Found: true,
	}
}

// withPage appends the page annotation. A bare page becomes ", p. PAGE",
// with the comma left out when desc already ends in "." or ",". A page that
// already starts with "p." is appended after a single space, no comma.
// Page values are free text and never validated.
func withPage(desc, page string) string {
	if page == "" {
		return desc
	}

	if strings.HasPrefix(page, pagePrefix) {
		return desc + " " + page
	}

	var sb strings.Builder
	sb.WriteString(desc)
	if !strings.HasSuffix(desc, ".") && !strings.HasSuffix(desc, ",") {
		sb.WriteByte(',')
	}
	sb.WriteString(" " + pagePrefix + " " + page)
	return sb.String()
}

// Render builds the entry element:
//
//	<div class="reference"><div class="num"></div>DESC<a href="HREF">HREF</a></div>
//
// DESC is parsed as markup. A reference that was not found renders its raw
// key as plain text inside <div class="reference not-found">.
func Render(ref Reference) *html.Node {
	if !ref.Found {
		n := dom.NewElement("div", html.Attribute{Key: "class", Val: ReferenceClass + " " + NotFoundClass})
		n.AppendChild(dom.NewText(ref.Text))
		return n
	}

	n := dom.NewElement("div", html.Attribute{Key: "class", Val: ReferenceClass})
	n.AppendChild(dom.NewElement("div", html.Attribute{Key: "class", Val: NumberClass}))

	if ref.Text != "" {
		nodes, err := dom.ParseFragment(ref.Text, n)
		if err != nil {
			// Fall back to plain text.
			nodes = []*html.Node{dom.NewText(ref.Text)}
		}
		for _, c := range nodes {
			n.AppendChild(c)
		}
	}

	if ref.Href != "" {
		a := dom.NewElement("a", html.Attribute{Key: "href", Val: ref.Href})
		a.AppendChild(dom.NewText(ref.Href))
		n.AppendChild(a)
	}

	return n
}
