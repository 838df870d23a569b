// Package pipeline implements the document stages that surround citation
// resolution.
//
// Stages, in the order the converter runs them:
//   - Markdown regions converted to HTML via Goldmark (or a whole Markdown
//     file wrapped into an HTML5 document)
//   - Title taken from the first heading when the head has none
//   - Top-level code blocks rewritten as figures
//   - Common indentation trimmed from <pre> blocks
//   - In-document library snippets registered into the bibliography
//   - Body classes added
//
// Citation markers and the reference list are handled by the citation
// package; this package only prepares the document and the bibliography.
package pipeline
