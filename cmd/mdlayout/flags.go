package main

import (
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose int
}

// renderFlags holds flags for the render command.
type renderFlags struct {
	common    commonFlags
	template  string
	output    string
	pdf       bool
	sourceDir string
	title     string
	timeout   string
	columns   int
	assetPath string
}

// templatesFlags holds flags for the templates subcommands.
type templatesFlags struct {
	common commonFlags
	output string
	from   string
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.CountVarP(&f.verbose, "verbose", "v", "log more (-v info, -vv debug)")
}

// parseRenderFlags parses render command flags and returns positional args.
func parseRenderFlags(args []string, stderr io.Writer) (*renderFlags, []string, error) {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	fs.SetOutput(stderr)
	f := &renderFlags{}

	fs.StringVarP(&f.template, "template", "t", "", "template key")
	fs.StringVarP(&f.output, "output", "o", "", "output file (\"-\" = stdout)")
	fs.BoolVar(&f.pdf, "pdf", false, "print a PDF through headless Chrome")
	fs.StringVar(&f.sourceDir, "source-dir", "", "directory relative image paths resolve against")
	fs.StringVar(&f.title, "title", "", "document title")
	fs.StringVar(&f.timeout, "timeout", "", "browser timeout (e.g., 30s, 2m)")
	fs.IntVar(&f.columns, "columns", 0, "override the template column count")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
	addCommonFlags(fs, &f.common)

	fs.Usage = func() { printRenderUsage(stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, usageErr(err)
	}
	return f, fs.Args(), nil
}

// parseTemplatesFlags parses templates subcommand flags.
func parseTemplatesFlags(args []string, stderr io.Writer) (*templatesFlags, []string, error) {
	fs := flag.NewFlagSet("templates", flag.ContinueOnError)
	fs.SetOutput(stderr)
	f := &templatesFlags{}

	fs.StringVarP(&f.output, "output", "o", "", "export destination file")
	fs.StringVar(&f.from, "from", "", "template key to copy for 'new'")
	addCommonFlags(fs, &f.common)

	fs.Usage = func() { printTemplatesUsage(stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, usageErr(err)
	}
	return f, fs.Args(), nil
}

// usageErr tags flag errors as usage errors, leaving --help untouched.
func usageErr(err error) error {
	if isHelp(err) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrUsage, err)
}
