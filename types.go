package paper

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/alnah/go-paper/internal/biblio"
)

// Bibliography holds citation records by key. Register, Library and Lookup
// operate on it; last write wins.
type Bibliography = biblio.Store

// Record is one bibliography entry: Author and Desc are concatenated to form
// the reference text, Href becomes the link.
type Record = biblio.Record

// Entry pairs a key with its Record for ordered bulk registration.
type Entry = biblio.Entry

// NewBibliography creates an empty Bibliography.
func NewBibliography() *Bibliography {
	return biblio.NewStore()
}

// Input contains the document to convert. Exactly one of HTML or Markdown
// must be set.
type Input struct {
	HTML     string  // Complete HTML document
	Markdown string  // Markdown document, wrapped into HTML5 before processing
	Entries  []Entry // Registered after the converter's bibliography, before in-document snippets
}

// Validate checks that exactly one source is set.
func (i Input) Validate() error {
	switch {
	case i.HTML == "" && i.Markdown == "":
		return ErrEmptyInput
	case i.HTML != "" && i.Markdown != "":
		return ErrAmbiguousInput
	}
	return nil
}

// Result contains the converted document and a summary of citation
// resolution.
type Result struct {
	HTML             []byte
	Title            string   // Document title after conversion; empty if none
	References       int      // Entries appended to the reference list
	Unresolved       []string // Citation keys with no record, in document order
	ContainerCreated bool     // A reference list container was created and attached
}

// Document holds document-level adjustments applied to <body>.
type Document struct {
	Classes  string // Space-separated classes added to <body>
	Numbered bool   // Adds the "numbered" class
}

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	markdown  bool
	regions   []string
	highlight bool
	title     bool
	figures   bool
	trim      bool
	document  Document
}

// bibliographySource adds records to the converter's base bibliography.
type bibliographySource func(*biblio.Store) error

// WithBibliography registers every record of b, in b's key order, into the
// converter's base bibliography. Later changes to b are not seen.
func WithBibliography(b *Bibliography) Option {
	return func(c *Converter) {
		if b == nil {
			return
		}
		snapshot := b.Clone()
		c.sources = append(c.sources, func(s *biblio.Store) error {
			for _, key := range snapshot.Keys() {
				rec, _ := snapshot.Lookup(key)
				s.Register(key, rec)
			}
			return nil
		})
	}
}

// WithBibliographyFile loads a YAML or JSON bibliography file into the
// converter's base bibliography. The file is read by NewConverter.
func WithBibliographyFile(path string) Option {
	return func(c *Converter) {
		c.sources = append(c.sources, func(s *biblio.Store) error {
			entries, err := biblio.LoadFile(path)
			if err != nil {
				return fmt.Errorf("loading bibliography: %w", err)
			}
			s.RegisterBulk(entries)
			return nil
		})
	}
}

// WithLogger sets the logger for stage progress (debug) and unresolved
// citations (warn). The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(c *Converter) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMarkdown enables or disables Markdown region conversion for HTML input.
func WithMarkdown(enabled bool) Option {
	return func(c *Converter) {
		c.cfg.markdown = enabled
	}
}

// WithMarkdownRegions sets the selectors ("tag", ".class", "tag.class")
// whose content is Markdown. No selectors restores the defaults.
func WithMarkdownRegions(selectors ...string) Option {
	return func(c *Converter) {
		c.cfg.regions = append([]string(nil), selectors...)
	}
}

// WithHighlighting enables or disables chroma highlighting of fenced code.
func WithHighlighting(enabled bool) Option {
	return func(c *Converter) {
		c.cfg.highlight = enabled
	}
}

// WithDocument sets the body classes added to every converted document.
func WithDocument(d *Document) Option {
	return func(c *Converter) {
		if d != nil {
			c.cfg.document = *d
		}
	}
}

// WithCodeFigures enables or disables rewriting top-level code blocks as
// figures.
func WithCodeFigures(enabled bool) Option {
	return func(c *Converter) {
		c.cfg.figures = enabled
	}
}

// WithPreTrim enables or disables removal of common indentation in <pre>.
func WithPreTrim(enabled bool) Option {
	return func(c *Converter) {
		c.cfg.trim = enabled
	}
}

// WithTitle enables or disables taking the title from the first <h1>.
func WithTitle(enabled bool) Option {
	return func(c *Converter) {
		c.cfg.title = enabled
	}
}
