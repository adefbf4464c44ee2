package mdlayout

import (
	"reflect"
	"strings"
	"testing"
)

func TestLayout_Merge(t *testing.T) {
	t.Parallel()

	base := Layout{
		Columns: 2, FontFamily: "Georgia", BaseSizePx: 12, PageSize: "A4",
		MarginsMm: []float64{18, 18, 18, 18}, ContentTopOffsetMm: floatPtr(4),
	}

	tests := []struct {
		name   string
		update Layout
		want   Layout
	}{
		{
			name:   "zero update keeps everything",
			update: Layout{},
			want:   base,
		},
		{
			name:   "explicit zero offset replaces",
			update: Layout{ContentTopOffsetMm: floatPtr(0)},
			want: Layout{
				Columns: 2, FontFamily: "Georgia", BaseSizePx: 12, PageSize: "A4",
				MarginsMm: []float64{18, 18, 18, 18}, ContentTopOffsetMm: floatPtr(0),
			},
		},
		{
			name:   "non-zero fields replace",
			update: Layout{Columns: 3, PageSize: "A5", MarginsMm: []float64{1, 2, 3, 4}},
			want: Layout{
				Columns: 3, FontFamily: "Georgia", BaseSizePx: 12, PageSize: "A5",
				MarginsMm: []float64{1, 2, 3, 4}, ContentTopOffsetMm: floatPtr(4),
			},
		},
		{
			name:   "margins of the wrong length are ignored",
			update: Layout{MarginsMm: []float64{1, 2}},
			want:   base,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := base.Merge(tt.update)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Merge() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestLayout_Merge_DoesNotAlias(t *testing.T) {
	t.Parallel()

	update := Layout{MarginsMm: []float64{1, 2, 3, 4}}
	merged := DefaultLayout().Merge(update)
	update.MarginsMm[0] = 99
	if merged.MarginsMm[0] != 1 {
		t.Error("Merge() aliased the update margins")
	}
}

func TestLayoutFromTemplate(t *testing.T) {
	t.Parallel()

	tpl := validTemplate()
	tpl.ContentTopOffsetMm = floatPtr(6)

	got := LayoutFromTemplate(tpl)
	want := Layout{
		Columns: 2, FontFamily: "Georgia, serif", BaseSizePx: 12, PageSize: "A4",
		MarginsMm: []float64{20, 15, 20, 15}, ContentTopOffsetMm: floatPtr(6),
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("LayoutFromTemplate() = %+v, want %+v", got, want)
	}
}

func TestLayoutFromTemplate_OffsetSwitch(t *testing.T) {
	t.Parallel()

	withOffset := validTemplate()
	withOffset.ContentTopOffsetMm = floatPtr(12)
	without := validTemplate()

	merged := DefaultLayout().
		Merge(LayoutFromTemplate(withOffset)).
		Merge(LayoutFromTemplate(without))
	if got := merged.TopOffset(); got != 0 {
		t.Errorf("TopOffset() after switching templates = %v, want 0", got)
	}
	if css := BuildLayoutCSS(merged); !strings.Contains(css, "--content-top-offset:0mm;") {
		t.Errorf("BuildLayoutCSS() = %q, want zero offset", css)
	}
}

func TestLayout_Merge_DoesNotAliasOffset(t *testing.T) {
	t.Parallel()

	base := Layout{ContentTopOffsetMm: floatPtr(3)}
	merged := base.Merge(Layout{})
	*base.ContentTopOffsetMm = 9
	if got := merged.TopOffset(); got != 3 {
		t.Errorf("TopOffset() = %v, want 3", got)
	}
}

func TestHostStyle_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		host HostStyle
		want string
	}{
		{"columns only", HostStyle{Columns: 2}, "column-count: 2;"},
		{"zero columns clamp", HostStyle{}, "column-count: 1;"},
		{"all fields", HostStyle{Columns: 3, FontFamily: "Inter, sans-serif", BaseSizePx: 14},
			"column-count: 3; --font-family: Inter, sans-serif; --base-size: 14px;"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.host.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}
