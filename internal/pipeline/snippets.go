package pipeline

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"github.com/alnah/go-paper/internal/biblio"
	"github.com/alnah/go-paper/internal/dom"
)

// LibraryScriptType marks a <script> whose body registers bibliography
// records. Browsers do not execute it; the body is YAML or JSON in the form
// biblio.Decode accepts.
const LibraryScriptType = "text/x-paper-library"

// ApplyLibrarySnippets registers the records of every library script into
// store, in document order, and returns how many snippets were applied.
// The scripts stay in the document. A malformed snippet stops processing;
// the error wraps biblio.ErrInvalidArgument and names the snippet's
// 1-based position. Snippets before it remain applied.
func ApplyLibrarySnippets(doc *html.Node, store *biblio.Store) (int, error) {
	scripts := dom.FindAll(doc, func(n *html.Node) bool {
		if n.Type != html.ElementNode || n.Data != "script" {
			return false
		}
		typ, _ := dom.Attr(n, "type")
		return strings.EqualFold(strings.TrimSpace(typ), LibraryScriptType)
	})

	for i, script := range scripts {
		call, err := biblio.Decode([]byte(dom.TextContent(script)))
		if err != nil {
			return i, fmt.Errorf("library snippet %d: %w", i+1, err)
		}
		store.Apply(call)
	}

	return len(scripts), nil
}
