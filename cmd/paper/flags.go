package main

import (
	"os"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// documentFlags holds body class flags.
type documentFlags struct {
	classes  string
	numbered bool
}

// stageFlags holds flags that switch document stages off.
type stageFlags struct {
	regions     []string
	noMarkdown  bool
	noHighlight bool
	noTitle     bool
	noFigures   bool
	noTrim      bool
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common         commonFlags
	output         string
	workers        int
	bibliographies []string
	document       documentFlags
	stages         stageFlags
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show timing and debug logs")
}

// addDocumentFlags adds body class flags to a FlagSet.
func addDocumentFlags(fs *flag.FlagSet, f *documentFlags) {
	fs.StringVar(&f.classes, "class", "", "space-separated classes added to <body>")
	fs.BoolVar(&f.numbered, "numbered", false, "add the \"numbered\" body class")
}

// addStageFlags adds document stage flags to a FlagSet.
func addStageFlags(fs *flag.FlagSet, f *stageFlags) {
	fs.StringSliceVar(&f.regions, "region", nil, "markdown region selector (repeatable)")
	fs.BoolVar(&f.noMarkdown, "no-markdown", false, "leave markdown regions unconverted")
	fs.BoolVar(&f.noHighlight, "no-highlight", false, "disable code highlighting")
	fs.BoolVar(&f.noTitle, "no-title", false, "do not take the title from the first h1")
	fs.BoolVar(&f.noFigures, "no-figures", false, "leave top-level code blocks as they are")
	fs.BoolVar(&f.noTrim, "no-trim", false, "keep indentation inside <pre>")
}

// parseConvertFlags parses convert command flags and returns positional args.
func parseConvertFlags(args []string) (*convertFlags, []string, error) {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	f := &convertFlags{}

	// I/O flags
	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.StringArrayVarP(&f.bibliographies, "bib", "b", nil, "bibliography file (repeatable)")

	// Flag groups
	addCommonFlags(fs, &f.common)
	addDocumentFlags(fs, &f.document)
	addStageFlags(fs, &f.stages)

	fs.Usage = func() { printConvertUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}
