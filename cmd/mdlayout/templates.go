package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"go.uber.org/zap"

	"github.com/alnah/go-mdlayout"
	"github.com/alnah/go-mdlayout/internal/hints"
)

// runTemplates manages the persisted template collection.
func runTemplates(args []string, env *Environment) (err error) {
	flags, positional, err := parseTemplatesFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if len(positional) == 0 {
		printTemplatesUsage(env.Stderr)
		return fmt.Errorf("%w: missing templates subcommand", ErrUsage)
	}
	sub, rest := positional[0], positional[1:]

	s, err := openSession(flags.common, "", env)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := s.Close(); err == nil && cerr != nil {
			s.log.Warn("Unable to close template storage", zap.Error(cerr))
		}
	}()

	switch sub {
	case "list":
		return templatesList(s, env.Stdout)
	case "show":
		if len(rest) != 1 {
			return fmt.Errorf("%w: show takes one template key", ErrUsage)
		}
		return templatesShow(s, rest[0], env.Stdout)
	case "export":
		return templatesExport(s, flags.output, env.Stdout)
	case "import":
		if len(rest) != 1 {
			return fmt.Errorf("%w: import takes one file (\"-\" = stdin)", ErrUsage)
		}
		return templatesImport(s, rest[0], env.Stdin, env.Stdout, flags.common.quiet)
	case "reset":
		c := s.store.ResetTemplates()
		if !flags.common.quiet {
			fmt.Fprintf(env.Stdout, "Restored %d built-in templates\n", c.Len())
		}
		return nil
	case "remove":
		if len(rest) != 1 {
			return fmt.Errorf("%w: remove takes one template key", ErrUsage)
		}
		if _, err := s.template(rest[0]); err != nil {
			return err
		}
		s.store.RemoveTemplate(rest[0])
		if !flags.common.quiet {
			fmt.Fprintf(env.Stdout, "Removed %s\n", rest[0])
		}
		return nil
	case "new":
		if len(rest) != 1 {
			return fmt.Errorf("%w: new takes one display name", ErrUsage)
		}
		return templatesNew(s, rest[0], flags.from, env.Stdout)
	default:
		printTemplatesUsage(env.Stderr)
		return fmt.Errorf("%w: unknown templates subcommand %q", ErrUsage, sub)
	}
}

func templatesList(s *session, w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "KEY\tCOLUMNS\tPAGE\tNAME")
	for _, key := range s.store.SortedKeys() {
		t, _ := s.store.Template(key)
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", key, t.Columns, t.PageSize, t.DisplayName)
	}
	return tw.Flush()
}

func templatesShow(s *session, key string, w io.Writer) error {
	t, err := s.template(key)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func templatesExport(s *session, output string, stdout io.Writer) error {
	text, err := s.store.ExportTemplates()
	if err != nil {
		return err
	}
	if output == "" {
		output = "-"
	}
	return writeOutput(output, []byte(text+"\n"), stdout)
}

func templatesImport(s *session, path string, stdin io.Reader, stdout io.Writer, quiet bool) error {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path) // #nosec G304 -- import path is user-provided
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrReadTemplates, err)
	}

	c, err := s.store.ImportTemplates(string(data))
	if err != nil {
		return fmt.Errorf("%w%s", err, hints.ForInvalidTemplate())
	}
	if !quiet {
		fmt.Fprintf(stdout, "Imported %d templates\n", c.Len())
	}
	return nil
}

// templatesNew copies the --from template (or the configured default) under
// a key derived from name.
func templatesNew(s *session, name, from string, w io.Writer) error {
	if from == "" {
		from = s.cfg.Render.Template
	}
	base, ok := s.store.Template(from)
	if !ok {
		base = templateFromLayout(mdlayout.DefaultLayout())
	}
	base.DisplayName = name

	key := s.store.NewTemplateKey(name)
	if _, err := s.store.UpsertTemplate(key, base); err != nil {
		return fmt.Errorf("%w%s", err, hints.ForInvalidTemplate())
	}
	_, err := fmt.Fprintln(w, key)
	return err
}

// templateFromLayout builds a minimal valid template from a layout.
func templateFromLayout(l mdlayout.Layout) mdlayout.Template {
	font := l.FontFamily
	if font == "" {
		font = "Georgia, serif"
	}
	base := l.BaseSizePx
	if base == 0 {
		base = mdlayout.DefaultBaseSizePx
	}
	return mdlayout.Template{
		Columns:    l.Columns,
		FontFamily: font,
		BaseSizePx: base,
		PageSize:   l.PageSize,
		MarginsMm:  l.MarginsMm,
	}
}
