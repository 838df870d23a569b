package pipeline

import (
	"context"
	"fmt"

	"golang.org/x/net/html"

	"github.com/alnah/go-paper/internal/dom"
)

// DefaultRegions are the selectors whose content is written in Markdown
// unless configured otherwise.
var DefaultRegions = []string{"body", "header", ".abstract", ".main", ".markdown"}

// RegionConverter turns the content of Markdown regions into HTML in place.
type RegionConverter struct {
	Converter    HTMLConverter
	Preprocessor MarkdownPreprocessor
	Selectors    []string
}

// NewRegionConverter creates a RegionConverter for selectors (DefaultRegions
// when empty). Region content is dedented before conversion.
func NewRegionConverter(conv HTMLConverter, selectors []string) *RegionConverter {
	if len(selectors) == 0 {
		selectors = DefaultRegions
	}
	return &RegionConverter{
		Converter:    conv,
		Preprocessor: &CommonMarkPreprocessor{Dedent: true},
		Selectors:    selectors,
	}
}

// Convert replaces the inner HTML of every outermost region with its
// Markdown rendering and returns how many regions were converted. A region
// nested inside another matched region is converted once, as part of its
// ancestor.
func (r *RegionConverter) Convert(ctx context.Context, doc *html.Node) (int, error) {
	matchers := make([]dom.Matcher, 0, len(r.Selectors))
	for _, sel := range r.Selectors {
		matchers = append(matchers, dom.Selector(sel))
	}
	match := dom.Any(matchers...)

	var regions []*html.Node
	dom.Walk(doc, func(n *html.Node) bool {
		if match(n) {
			regions = append(regions, n)
			return false
		}
		return true
	})

	for _, n := range regions {
		if err := ctx.Err(); err != nil {
			return 0, err
		}

		src, err := dom.InnerHTML(n)
		if err != nil {
			return 0, fmt.Errorf("%w: <%s>: %v", ErrHTMLConversion, n.Data, err)
		}

		out, err := r.Converter.ToHTML(ctx, r.Preprocessor.PreprocessMarkdown(ctx, src))
		if err != nil {
			return 0, err
		}

		if err := dom.SetInnerHTML(n, out); err != nil {
			return 0, fmt.Errorf("%w: <%s>: %v", ErrHTMLConversion, n.Data, err)
		}
	}

	return len(regions), nil
}
