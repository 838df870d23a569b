// Package citation resolves <cite> markers against a bibliography and builds
// the document's reference list.
//
// A marker either names a bibliography key (from="nap", from="nap[19]") or
// carries a one-off source inline (desc, href, page). Every marker produces
// exactly one reference entry, in document order; unknown keys produce a
// visible "not-found" entry instead of an error.
package citation

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/alnah/go-paper/internal/dom"
)

// Markup names shared with the stylesheet that renders references.
const (
	MarkerTag      = "cite"
	ContainerClass = "references"
	ContainerTag   = "references"
	MainClass      = "main"
	ReferenceClass = "reference"
	NotFoundClass  = "not-found"
	NumberClass    = "num"
)

// Marker holds the raw fields of one citation marker.
type Marker struct {
	NameRef string // key, possibly composite "key[page]"; empty for one-off citations
	Desc    string
	Href    string
	Page    string
}

// Locate scans doc once, depth-first, and returns its markers in document
// order. Calling it again on an unchanged tree yields the same sequence.
func Locate(doc *html.Node) []Marker {
	nodes := dom.FindAll(doc, dom.Tag(MarkerTag))
	markers := make([]Marker, 0, len(nodes))
	for _, n := range nodes {
		markers = append(markers, markerFrom(n))
	}
	return markers
}

// markerFrom reads the marker attributes. "from" wins over "name" unless it
// is empty.
func markerFrom(n *html.Node) Marker {
	attr := func(key string) string {
		v, _ := dom.Attr(n, key)
		return v
	}

	name := attr("from")
	if name == "" {
		name = attr("name")
	}

	return Marker{
		NameRef: name,
		Desc:    attr("desc"),
		Href:    attr("href"),
		Page:    attr("page"),
	}
}

// ParseKey splits a composite key "name[page]" at the first "[". The page
// loses one trailing "]" if present. ok reports whether raw was composite;
// a composite key overrides the marker page even when its page is empty.
func ParseKey(raw string) (base, page string, ok bool) {
	base, page, ok = strings.Cut(raw, "[")
	if !ok {
		return raw, "", false
	}
	return base, strings.TrimSuffix(page, "]"), true
}
