package mdlayout

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

// validTemplate returns a template that passes validation.
func validTemplate() Template {
	return Template{
		DisplayName: "Test paper",
		Columns:     2,
		FontFamily:  "Georgia, serif",
		BaseSizePx:  12,
		PageSize:    "A4",
		MarginsMm:   []float64{20, 15, 20, 15},
	}
}

// observedLogger returns a logger recording warnings and above.
func observedLogger() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zap.WarnLevel)
	return zap.New(core), logs
}
