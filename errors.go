package mdlayout

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/multierr"
)

// Sentinel errors for library operations.
var (
	ErrValidation     = errors.New("validation failed")
	ErrStorage        = errors.New("template storage failed")
	ErrRenderNotReady = errors.New("preview document not ready")
	ErrSurfaceMissing = errors.New("preview surface not found")

	// Browser surface errors.
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
	ErrPDFGeneration  = errors.New("PDF generation failed")

	// Asset loading errors.
	ErrInvalidAssetPath = errors.New("invalid asset path")
)

// ValidationError reports every violation found while validating a template
// or a collection. It is never partially applied: the rejected mutation leaves
// the store untouched.
type ValidationError struct {
	errs error
}

// newValidationError returns nil when errs holds no violations.
func newValidationError(errs error) error {
	if errs == nil {
		return nil
	}
	return &ValidationError{errs: errs}
}

// Violations returns each field-qualified violation.
func (e *ValidationError) Violations() []string {
	list := multierr.Errors(e.errs)
	out := make([]string, len(list))
	for i, err := range list {
		out[i] = err.Error()
	}
	return out
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Violations(), "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// StorageError wraps a persistence failure. The store logs it and carries on.
type StorageError struct {
	Op  string // "read" or "write"
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%v: %s: %v", ErrStorage, e.Op, e.Err)
}

func (e *StorageError) Unwrap() []error {
	return []error{ErrStorage, e.Err}
}

// RenderNotReadyError is returned when an operation reaches a surface that
// has no document to mutate.
type RenderNotReadyError struct {
	Op string
}

func (e *RenderNotReadyError) Error() string {
	return fmt.Sprintf("%v: %s", ErrRenderNotReady, e.Op)
}

func (e *RenderNotReadyError) Is(target error) bool {
	return target == ErrRenderNotReady
}
