package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdlayout <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  render     Render a markdown file with a layout template")
	fmt.Fprintln(w, "  templates  Manage layout templates")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'mdlayout help <command>' for details on a specific command.")
}

// printRenderUsage prints usage for the render command.
func printRenderUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdlayout render <file.md> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render markdown into a multi-column preview document.")
	fmt.Fprintln(w, "Everything before the first H2 becomes the full-width front matter.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file (default: input with .html/.pdf, \"-\" = stdout)")
	fmt.Fprintln(w, "      --pdf                 Print a PDF through headless Chrome")
	fmt.Fprintln(w, "      --timeout <d>         Browser timeout (e.g., 30s, 2m)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Layout:")
	fmt.Fprintln(w, "  -t, --template <key>      Template key (default: render.template from config)")
	fmt.Fprintln(w, "      --columns <n>         Override the template column count")
	fmt.Fprintln(w, "      --title <s>           Document title (default: file name)")
	fmt.Fprintln(w, "      --source-dir <dir>    Resolve relative images against dir")
	fmt.Fprintln(w, "      --asset-path <dir>    Custom styles/templates/data directory")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Figures:")
	fmt.Fprintln(w, "  End image alt text with \"|span=N\" to span N columns: ![Plot|span=2](plot.png)")
	fmt.Fprintln(w, "  Wrap text in == to highlight it: ==important==")
	printCommonUsage(w)
}

// printTemplatesUsage prints usage for the templates command.
func printTemplatesUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdlayout templates <subcommand> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Subcommands:")
	fmt.Fprintln(w, "  list                      List templates in natural key order")
	fmt.Fprintln(w, "  show <key>                Print one template as JSON")
	fmt.Fprintln(w, "  export [-o file]          Write the collection as JSON")
	fmt.Fprintln(w, "  import <file|->           Replace the collection with a JSON file")
	fmt.Fprintln(w, "  reset                     Restore the built-in templates")
	fmt.Fprintln(w, "  remove <key>              Delete a template")
	fmt.Fprintln(w, "  new <name> [--from key]   Copy a template under a new key")
	printCommonUsage(w)
}

func printCommonUsage(w io.Writer) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Common:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path (env: MDLAYOUT_CONFIG)")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Log more (-vv for debug)")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "render":
		printRenderUsage(env.Stdout)
	case "templates":
		printTemplatesUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: mdlayout version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: mdlayout help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
