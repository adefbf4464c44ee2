//go:build bench

package mdlayout

import (
	"testing"
)

// BenchmarkBuildStyles benchmarks style slot synthesis for the built-in templates.
func BenchmarkBuildStyles(b *testing.B) {
	c := DefaultCollection()

	for _, key := range c.Keys() {
		tpl, _ := c.Get(key)
		layout := LayoutFromTemplate(tpl)

		b.Run(key, func(b *testing.B) {
			b.ReportAllocs()
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				result := BuildStyles(&tpl, layout)
				_ = result
			}
		})
	}
}

// BenchmarkSanitizeValue benchmarks CSS value sanitizing.
func BenchmarkSanitizeValue(b *testing.B) {
	values := []struct {
		name  string
		value string
	}{
		{"length", "1.6em"},
		{"font_stack", `"Times New Roman", Times, serif`},
		{"hostile", "1em;}</style><script>alert(1)</script>"},
	}

	for _, v := range values {
		b.Run(v.name, func(b *testing.B) {
			b.ReportAllocs()
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				result := sanitizeValue(v.value, "")
				_ = result
			}
		})
	}
}
