package paper

import (
	"errors"

	"github.com/alnah/go-paper/internal/biblio"
	"github.com/alnah/go-paper/internal/dom"
	"github.com/alnah/go-paper/internal/pipeline"
)

// Sentinel errors for library operations.
var (
	ErrEmptyInput     = errors.New("input cannot be empty")
	ErrAmbiguousInput = errors.New("input must set HTML or Markdown, not both")

	// Registration errors. ErrInvalidArgument is returned for a malformed
	// Library call or library snippet; the bibliography is left unchanged.
	ErrInvalidArgument  = biblio.ErrInvalidArgument
	ErrBibliographyRead = biblio.ErrBibliographyRead

	// Document errors.
	ErrHTMLParse      = dom.ErrParse
	ErrHTMLConversion = pipeline.ErrHTMLConversion
)
