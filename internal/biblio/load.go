package biblio

import (
	"errors"
	"fmt"
	"os"

	"github.com/alnah/go-paper/internal/yamlutil"
)

// ErrBibliographyRead indicates a bibliography file could not be read.
var ErrBibliographyRead = errors.New("failed to read bibliography")

// Decode turns a YAML or JSON registration snippet into a Call.
//
// A mapping registers each key in document order:
//
//	nap:
//	  desc: Napoleon's diary
//	  href: http://www.napoleon.org
//	ceasar: Commentarii de Bello Gallico
//
// A two-element sequence registers a single key:
//
//	["nap", {desc: "Napoleon's diary"}]
//
// Anything else, including an empty snippet, is ErrInvalidArgument.
func Decode(data []byte) (Call, error) {
	v, err := yamlutil.UnmarshalOrdered(data)
	if err != nil {
		if errors.Is(err, yamlutil.ErrNilData) {
			return nil, fmt.Errorf("%w: empty snippet", ErrInvalidArgument)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}

	if seq, ok := v.([]any); ok {
		return ParseCall(seq...)
	}
	return ParseCall(v)
}

// LoadFile reads a bibliography file: a YAML (or JSON) mapping of key to
// record, in the form Decode accepts. Keys keep file order.
func LoadFile(path string) ([]Entry, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided bibliography path
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBibliographyRead, err)
	}

	call, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	bulk, ok := call.(BulkEntries)
	if !ok {
		return nil, fmt.Errorf("%s: %w: bibliography file must be a mapping", path, ErrInvalidArgument)
	}
	return bulk.Entries, nil
}
