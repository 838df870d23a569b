// Package paper turns a static HTML (or Markdown) document into a finished
// paper: Markdown regions converted, code blocks tidied, and inline citation
// markers resolved into a reference list.
//
// # Quick Start
//
//	bib := paper.NewBibliography()
//	bib.Register("nap", paper.Record{Author: "Bonaparte, N. ", Desc: "Diary", Href: "http://www.napoleon.org"})
//
//	conv, err := paper.NewConverter(paper.WithBibliography(bib))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := conv.Convert(ctx, paper.Input{
//	    HTML: `<body><p>As noted <cite from="nap[19]"></cite>.</p></body>`,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("paper.html", result.HTML, 0644)
//
// # Citations
//
// A marker is a <cite> element. from (or name) holds a bibliography key,
// optionally with a page: from="nap[19]". Without a key the marker is a
// one-off citation carrying desc, href and page itself. Every marker adds
// one entry to the reference list, in document order:
//
//	<div class="reference"><div class="num"></div>Diary, p. 19<a href="…">…</a></div>
//
// Keys with no record render as <div class="reference not-found">KEY</div>
// and are reported in Result.Unresolved; they are not errors.
//
// The list goes into the first element with class "references". When there
// is none, a <references class="references"> element is
// created and appended to the first ".main" element, or to <body>, but only
// if at least one marker was found.
//
// # Registration
//
// Records come from, in order: WithBibliography and WithBibliographyFile
// options, Input.Entries, then in-document library scripts:
//
//	<script type="text/x-paper-library">
//	nap:
//	  author: "Bonaparte, N. "
//	  desc: Diary
//	caesar: Commentarii de Bello Gallico
//	</script>
//
// A script holding a two-item list registers one record: ["nap", "Diary"].
// Re-registering a key overwrites it. A malformed script fails the
// conversion with ErrInvalidArgument.
//
// # Document Stages
//
// Before citations are resolved the converter, by default:
//
//  1. Converts Markdown regions (body, header, .abstract, .main, .markdown)
//  2. Sets the title from the first <h1> when the head has none
//  3. Rewrites top-level <pre><code> blocks as <figure><pre>
//  4. Strips common indentation from <pre> blocks
//
// Each stage has an option to turn it off. Markdown input (Input.Markdown)
// is converted whole instead of by region.
//
// # Error Handling
//
// Errors are sentinel values matched with errors.Is:
//
//	if errors.Is(err, paper.ErrInvalidArgument) {
//	    // malformed registration
//	}
package paper
