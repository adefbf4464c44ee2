package assets

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestValidateAssetName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "simple name", input: "preview", wantErr: false},
		{name: "hyphenated name", input: "my-style", wantErr: false},
		{name: "empty", input: "", wantErr: true},
		{name: "path traversal", input: "../secret", wantErr: true},
		{name: "backslash traversal", input: "..\\secret", wantErr: true},
		{name: "dot in name", input: "style.css", wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := ValidateAssetName(tt.input)
			if tt.wantErr && !errors.Is(err, ErrInvalidAssetName) {
				t.Errorf("ValidateAssetName(%q) error = %v, want ErrInvalidAssetName", tt.input, err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("ValidateAssetName(%q) unexpected error: %v", tt.input, err)
			}
		})
	}
}

func TestEmbeddedLoader(t *testing.T) {
	t.Parallel()

	loader := NewEmbeddedLoader()

	t.Run("loads preview style", func(t *testing.T) {
		t.Parallel()

		css, err := loader.LoadStyle(DefaultStyleName)
		if err != nil {
			t.Fatalf("LoadStyle() error = %v", err)
		}
		if !strings.Contains(css, "--column-gap") {
			t.Error("preview style should declare --column-gap")
		}
	})

	t.Run("loads shell with style slot and regions", func(t *testing.T) {
		t.Parallel()

		shell, err := loader.LoadTemplate(ShellTemplateName)
		if err != nil {
			t.Fatalf("LoadTemplate() error = %v", err)
		}
		for _, want := range []string{`id="tplStyle"`, `id="front"`, `id="doc"`} {
			if !strings.Contains(shell, want) {
				t.Errorf("shell missing %s", want)
			}
		}
	})

	t.Run("default templates are a JSON object", func(t *testing.T) {
		t.Parallel()

		var m map[string]any
		if err := json.Unmarshal(DefaultTemplates(), &m); err != nil {
			t.Fatalf("default templates not valid JSON: %v", err)
		}
		if len(m) == 0 {
			t.Error("default templates should not be empty")
		}
	})

	t.Run("missing assets", func(t *testing.T) {
		t.Parallel()

		if _, err := loader.LoadStyle("nonexistent-xyz"); !errors.Is(err, ErrStyleNotFound) {
			t.Errorf("LoadStyle() error = %v, want ErrStyleNotFound", err)
		}
		if _, err := loader.LoadTemplate("nonexistent-xyz"); !errors.Is(err, ErrTemplateNotFound) {
			t.Errorf("LoadTemplate() error = %v, want ErrTemplateNotFound", err)
		}
		if _, err := loader.LoadData("nonexistent-xyz"); !errors.Is(err, ErrDataNotFound) {
			t.Errorf("LoadData() error = %v, want ErrDataNotFound", err)
		}
	})

	t.Run("rejects traversal", func(t *testing.T) {
		t.Parallel()

		if _, err := loader.LoadData("../go"); !errors.Is(err, ErrInvalidAssetName) {
			t.Errorf("LoadData() error = %v, want ErrInvalidAssetName", err)
		}
	})
}

func TestNewFilesystemLoader(t *testing.T) {
	t.Parallel()

	t.Run("empty path", func(t *testing.T) {
		t.Parallel()

		if _, err := NewFilesystemLoader(""); !errors.Is(err, ErrInvalidBasePath) {
			t.Errorf("error = %v, want ErrInvalidBasePath", err)
		}
	})

	t.Run("nonexistent path", func(t *testing.T) {
		t.Parallel()

		if _, err := NewFilesystemLoader("/nonexistent/path/abc123xyz"); !errors.Is(err, ErrInvalidBasePath) {
			t.Errorf("error = %v, want ErrInvalidBasePath", err)
		}
	})

	t.Run("file instead of directory", func(t *testing.T) {
		t.Parallel()

		file := filepath.Join(t.TempDir(), "file.txt")
		if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := NewFilesystemLoader(file); !errors.Is(err, ErrInvalidBasePath) {
			t.Errorf("error = %v, want ErrInvalidBasePath", err)
		}
	})
}

func TestFilesystemLoader_Load(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeAsset(t, dir, "styles", "custom.css", "body{color:red}")
	writeAsset(t, dir, "data", "lab.json", `{"a":1}`)

	loader, err := NewFilesystemLoader(dir)
	if err != nil {
		t.Fatalf("NewFilesystemLoader() error = %v", err)
	}

	css, err := loader.LoadStyle("custom")
	if err != nil || css != "body{color:red}" {
		t.Errorf("LoadStyle() = %q, %v", css, err)
	}
	data, err := loader.LoadData("lab")
	if err != nil || string(data) != `{"a":1}` {
		t.Errorf("LoadData() = %q, %v", data, err)
	}
	if _, err := loader.LoadTemplate("preview"); !errors.Is(err, ErrTemplateNotFound) {
		t.Errorf("LoadTemplate() error = %v, want ErrTemplateNotFound", err)
	}
}

func TestAssetResolver(t *testing.T) {
	t.Parallel()

	t.Run("embedded only", func(t *testing.T) {
		t.Parallel()

		r, err := NewAssetResolver("")
		if err != nil {
			t.Fatalf("NewAssetResolver() error = %v", err)
		}
		if r.HasCustomLoader() {
			t.Error("expected no custom loader for empty path")
		}
		if _, err := r.LoadTemplate(ShellTemplateName); err != nil {
			t.Errorf("LoadTemplate() error = %v", err)
		}
	})

	t.Run("custom overrides embedded and falls back", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeAsset(t, dir, "styles", "preview.css", "/* custom */")

		r, err := NewAssetResolver(dir)
		if err != nil {
			t.Fatalf("NewAssetResolver() error = %v", err)
		}
		css, err := r.LoadStyle("preview")
		if err != nil || css != "/* custom */" {
			t.Errorf("LoadStyle() = %q, %v, want custom content", css, err)
		}
		data, err := r.LoadData(DefaultTemplatesName)
		if err != nil || len(data) == 0 {
			t.Errorf("LoadData() fallback = %d bytes, %v", len(data), err)
		}
	})

	t.Run("invalid custom path", func(t *testing.T) {
		t.Parallel()

		if _, err := NewAssetResolver("/nonexistent/path/abc123xyz"); !errors.Is(err, ErrInvalidBasePath) {
			t.Errorf("error = %v, want ErrInvalidBasePath", err)
		}
	})
}

func writeAsset(t *testing.T, base, dir, name, content string) {
	t.Helper()
	full := filepath.Join(base, dir)
	if err := os.MkdirAll(full, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(full, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}
