package citation

import (
	"golang.org/x/net/html"

	"github.com/alnah/go-paper/internal/biblio"
	"github.com/alnah/go-paper/internal/dom"
)

// Report describes what one Assemble run did to the document.
type Report struct {
	Appended   int      // entries added to the container
	Unresolved []string // raw keys rendered as not-found, in document order
	Created    bool     // no container existed; a fresh one was built
	Attached   bool     // the fresh container was inserted into the document
}

// Assembler builds the reference list of a document from its markers.
type Assembler struct {
	Store biblio.Lookuper
}

// Assemble appends one entry per marker to the document's reference
// container. The first element with class "references" is reused and keeps
// its prior content; a bare <references> tag without the class is not. Otherwise a new <references class="references">
// element is created, so later runs find it again, and is attached to
// the first ".main" element (falling back to <body>) only if at least one
// entry was appended; an empty new container is discarded.
func (a *Assembler) Assemble(doc *html.Node) Report {
	var report Report

	container := dom.FindFirst(doc, dom.Class(ContainerClass))
	if container == nil {
		container = dom.NewElement(ContainerTag, html.Attribute{Key: "class", Val: ContainerClass})
		report.Created = true
	}

	for _, m := range Locate(doc) {
		ref := Format(a.Store, m)
		if !ref.Found {
			report.Unresolved = append(report.Unresolved, m.NameRef)
		}
		container.AppendChild(Render(ref))
		report.Appended++
	}

	if report.Created && report.Appended > 0 {
		if parent := attachPoint(doc); parent != nil {
			parent.AppendChild(container)
			report.Attached = true
		}
	}

	return report
}

// attachPoint picks where a created container goes: the first ".main"
// element, else <body>, else the root element.
func attachPoint(doc *html.Node) *html.Node {
	if main := dom.FindFirst(doc, dom.Class(MainClass)); main != nil {
		return main
	}
	if body := dom.Body(doc); body != nil {
		return body
	}
	for c := doc.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			return c
		}
	}
	return nil
}
