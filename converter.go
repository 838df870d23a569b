package paper

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/alnah/go-paper/internal/biblio"
	"github.com/alnah/go-paper/internal/citation"
	"github.com/alnah/go-paper/internal/dom"
	"github.com/alnah/go-paper/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.MarkdownPreprocessor = (*pipeline.CommonMarkPreprocessor)(nil)
	_ pipeline.HTMLConverter        = (*pipeline.GoldmarkConverter)(nil)
	_ biblio.Lookuper               = (*biblio.Store)(nil)
)

// Converter runs the document pipeline and resolves citations.
// It is immutable after NewConverter and safe for concurrent use: every
// Convert call works on its own copy of the base bibliography.
type Converter struct {
	cfg           converterConfig
	logger        *zap.Logger
	sources       []bibliographySource
	base          *biblio.Store
	preprocessor  pipeline.MarkdownPreprocessor
	htmlConverter pipeline.HTMLConverter
	regions       *pipeline.RegionConverter
}

// NewConverter creates a Converter with every document stage enabled and
// the default Markdown regions. Bibliography sources given as options are
// loaded here, in option order.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg: converterConfig{
			markdown:  true,
			highlight: true,
			title:     true,
			figures:   true,
			trim:      true,
		},
		logger:       zap.NewNop(),
		preprocessor: &pipeline.CommonMarkPreprocessor{},
	}

	for _, opt := range opts {
		opt(c)
	}

	c.base = biblio.NewStore()
	for _, load := range c.sources {
		if err := load(c.base); err != nil {
			return nil, err
		}
	}

	// Create the Markdown converter if not injected (e.g., by tests)
	if c.htmlConverter == nil {
		c.htmlConverter = pipeline.NewGoldmarkConverter(c.cfg.highlight)
	}
	c.regions = pipeline.NewRegionConverter(c.htmlConverter, c.cfg.regions)

	return c, nil
}

// Bibliography returns a copy of the converter's base bibliography.
func (c *Converter) Bibliography() *Bibliography {
	return c.base.Clone()
}

// Convert runs the full pipeline on one document:
//
//  1. Markdown input wrapped into HTML5, or Markdown regions converted
//  2. Title, code figures and pre trimming
//  3. Bibliography populated: base records, Input.Entries, then library
//     snippets in document order
//  4. Citation markers resolved into the reference list
//  5. Body classes added and the document rendered
//
// Unknown citation keys are not errors; they are listed in
// Result.Unresolved. A malformed library snippet fails the conversion with
// ErrInvalidArgument. Recovers from internal panics to prevent crashes from
// propagating to callers.
func (c *Converter) Convert(ctx context.Context, input Input) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if err := input.Validate(); err != nil {
		return nil, err
	}

	doc, err := c.parse(ctx, input)
	if err != nil {
		return nil, err
	}

	res := &Result{}

	if err := c.prepare(ctx, doc, input, res); err != nil {
		return nil, err
	}

	// Registration phase
	store := c.base.Clone()
	store.RegisterBulk(input.Entries)
	snippets, err := pipeline.ApplyLibrarySnippets(doc, store)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("bibliography ready", zap.Int("records", store.Len()), zap.Int("snippets", snippets))
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	// Resolution phase
	report := (&citation.Assembler{Store: store}).Assemble(doc)
	res.References = report.Appended
	res.Unresolved = report.Unresolved
	res.ContainerCreated = report.Attached
	c.logger.Debug("references assembled",
		zap.Int("references", report.Appended),
		zap.Bool("created", report.Attached))
	for _, key := range report.Unresolved {
		c.logger.Warn("citation not found", zap.String("key", key))
	}

	pipeline.AddBodyClasses(doc, c.cfg.document.Classes, c.cfg.document.Numbered)

	out, err := dom.Render(doc)
	if err != nil {
		return nil, fmt.Errorf("rendering document: %w", err)
	}
	res.HTML = out

	return res, nil
}

// parse turns the input into a document tree. Markdown input is converted
// whole and wrapped into an HTML5 document first.
func (c *Converter) parse(ctx context.Context, input Input) (*html.Node, error) {
	src := input.HTML
	if input.Markdown != "" {
		var err error
		src, err = pipeline.MarkdownDocument(ctx, c.htmlConverter, c.preprocessor, input.Markdown)
		if err != nil {
			return nil, fmt.Errorf("converting markdown: %w", err)
		}
	}

	doc, err := dom.Parse([]byte(src))
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// prepare runs the document stages that precede citation resolution.
func (c *Converter) prepare(ctx context.Context, doc *html.Node, input Input, res *Result) error {
	if c.cfg.markdown && input.Markdown == "" {
		n, err := c.regions.Convert(ctx, doc)
		if err != nil {
			return fmt.Errorf("converting markdown regions: %w", err)
		}
		c.logger.Debug("markdown regions converted", zap.Int("regions", n))
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}

	if c.cfg.title {
		title, set := pipeline.EnsureTitle(doc)
		res.Title = title
		if set {
			c.logger.Debug("title taken from heading", zap.String("title", title))
		}
	} else if t := dom.FindFirst(doc, dom.Tag("title")); t != nil {
		res.Title = dom.TextContent(t)
	}

	if c.cfg.figures {
		if n := pipeline.WrapCodeFigures(doc); n > 0 {
			c.logger.Debug("code figures", zap.Int("blocks", n))
		}
	}

	if c.cfg.trim {
		if err := pipeline.TrimPres(doc); err != nil {
			return fmt.Errorf("trimming pre blocks: %w", err)
		}
	}

	return ctx.Err()
}
