package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/alnah/go-mdlayout"
	"github.com/alnah/go-mdlayout/internal/fileutil"
	"github.com/alnah/go-mdlayout/internal/hints"
)

const filePermissions = 0o644 // rw-r--r--: owner read+write, others read

// runRender renders one markdown file to a preview HTML document or a PDF.
func runRender(ctx context.Context, args []string, env *Environment) (err error) {
	flags, positional, err := parseRenderFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if len(positional) != 1 {
		return fmt.Errorf("%w: render takes exactly one markdown file", ErrUsage)
	}
	input := positional[0]
	if err := validateMarkdownExtension(input); err != nil {
		return err
	}

	s, err := openSession(flags.common, flags.assetPath, env)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := s.Close(); err == nil && cerr != nil {
			s.log.Warn("Unable to close template storage", zap.Error(cerr))
		}
	}()

	start := env.Now()
	markdown, err := os.ReadFile(input) // #nosec G304 -- input path is user-provided
	if err != nil {
		return fmt.Errorf("%w: %w", ErrReadMarkdown, err)
	}

	key := flags.template
	if key == "" {
		key = s.cfg.Render.Template
	}
	tpl, err := s.template(key)
	if err != nil {
		return err
	}

	layout := mdlayout.LayoutFromTemplate(tpl)
	if flags.columns < 0 {
		return fmt.Errorf("%w: --columns must be >= 0", ErrUsage)
	}
	layout = layout.Merge(mdlayout.Layout{Columns: flags.columns})

	shell, err := mdlayout.NewDocumentSurface(s.loader, mdlayout.WithTitle(resolveTitle(flags.title, s.cfg.Render.Title, input)))
	if err != nil {
		return err
	}

	sourceDir, err := resolveSourceDir(flags.sourceDir, input)
	if err != nil {
		return err
	}

	var data []byte
	ext := "html"
	if flags.pdf {
		ext = "pdf"
		timeout, err := resolveTimeout(flags.timeout, s)
		if err != nil {
			return err
		}
		data, err = renderPDF(ctx, env, shell, timeout, tpl, layout, string(markdown), s.log, sourceDir)
		if err != nil {
			return err
		}
	} else {
		preview, err := queuePreview(shell, tpl, layout, string(markdown), s.log, sourceDir)
		if err != nil {
			return err
		}
		preview.MarkReady()
		doc, err := shell.Document()
		if err != nil {
			return err
		}
		data = []byte(doc)
	}

	output, err := resolveOutputPath(flags.output, input, ext)
	if err != nil {
		return err
	}
	if err := writeOutput(output, data, env.Stdout); err != nil {
		return err
	}

	s.log.Info("Rendered preview",
		zap.String("template", key),
		zap.String("output", output),
		zap.Int("bytes", len(data)),
		zap.Duration("elapsed", env.Now().Sub(start)))
	if !flags.common.quiet && output != "-" {
		fmt.Fprintf(env.Stdout, "Created %s\n", output)
	}
	return nil
}

// queuePreview creates a preview on surface and queues the template styles and
// the rendered markdown. Nothing reaches the surface until MarkReady.
func queuePreview(surface mdlayout.Surface, tpl mdlayout.Template, layout mdlayout.Layout, markdown string, log *zap.Logger, sourceDir string) (*mdlayout.Preview, error) {
	preview, err := mdlayout.NewPreview(surface,
		mdlayout.WithLogger(log),
		mdlayout.WithSourceDir(sourceDir))
	if err != nil {
		return nil, err
	}
	if err := preview.ApplyTemplate(tpl); err != nil {
		return nil, err
	}
	if err := preview.Refresh(markdown, layout); err != nil {
		return nil, err
	}
	return preview, nil
}

// renderPDF opens a browser page for shell, flushes the queued preview into
// it and prints the page.
func renderPDF(ctx context.Context, env *Environment, shell *mdlayout.DocumentSurface, timeout time.Duration,
	tpl mdlayout.Template, layout mdlayout.Layout, markdown string, log *zap.Logger, sourceDir string,
) (data []byte, err error) {
	page := env.NewPDFSurface(shell, timeout)
	defer func() {
		if cerr := page.Close(); cerr != nil {
			log.Warn("Unable to close browser", zap.Error(cerr))
		}
	}()

	preview, err := queuePreview(page, tpl, layout, markdown, log, sourceDir)
	if err != nil {
		return nil, err
	}
	if err := page.Open(ctx, preview); err != nil {
		return nil, withBrowserHint(err)
	}
	data, err = page.PDF(ctx)
	if err != nil {
		return nil, withBrowserHint(err)
	}
	return data, nil
}

func withBrowserHint(err error) error {
	switch {
	case isBrowserConnect(err):
		return fmt.Errorf("%w%s", err, hints.ForBrowserConnect())
	case isTimeout(err):
		return fmt.Errorf("%w%s", err, hints.ForTimeout())
	}
	return err
}

// validateMarkdownExtension checks that the file has a .md or .markdown extension.
func validateMarkdownExtension(path string) error {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".md" && ext != ".markdown" {
		return fmt.Errorf("%w: %s", ErrInvalidExtension, path)
	}
	return nil
}

// resolveTitle picks the flag, then the config, then the file name.
func resolveTitle(flagTitle, cfgTitle, input string) string {
	switch {
	case flagTitle != "":
		return flagTitle
	case cfgTitle != "":
		return cfgTitle
	}
	base := filepath.Base(input)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// resolveSourceDir returns the absolute directory relative image paths
// resolve against: the flag value or the input file's directory.
func resolveSourceDir(flagDir, input string) (string, error) {
	dir := flagDir
	if dir == "" {
		dir = filepath.Dir(input)
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("%w: source dir: %v", ErrUsage, err)
	}
	return abs, nil
}

// resolveTimeout parses --timeout, falling back to render.timeout.
func resolveTimeout(flagTimeout string, s *session) (time.Duration, error) {
	if flagTimeout == "" {
		return s.cfg.TimeoutDuration()
	}
	d, err := time.ParseDuration(flagTimeout)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%w: invalid --timeout %q", ErrUsage, flagTimeout)
	}
	return d, nil
}

// resolveOutputPath returns the flag value, or the input path with ext.
func resolveOutputPath(flagOutput, input, ext string) (string, error) {
	if flagOutput != "" {
		return flagOutput, nil
	}
	return fileutil.ReplaceExt(input, ext)
}

// writeOutput writes data atomically to path, or to stdout for "-".
func writeOutput(path string, data []byte, stdout io.Writer) error {
	if path == "-" {
		if _, err := stdout.Write(data); err != nil {
			return fmt.Errorf("%w: stdout: %w", ErrWriteOutput, err)
		}
		return nil
	}
	if err := fileutil.WriteFileAtomic(path, data, filePermissions); err != nil {
		return fmt.Errorf("%w: %w%s", ErrWriteOutput, err, hints.ForOutputDirectory())
	}
	return nil
}
