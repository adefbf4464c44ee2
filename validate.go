package mdlayout

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"slices"
	"strconv"

	"go.uber.org/multierr"
)

// Template field bounds.
const (
	MinColumns    = 1
	MaxColumns    = 6
	MinBaseSizePx = 6
	MaxBaseSizePx = 36
	MinWeight     = 100
	MaxWeight     = 900
	MarginCount   = 4
	MaxKeyLength  = 64
)

var keyPattern = regexp.MustCompile(`^[a-zA-Z0-9._-]{1,64}$`)

// Field names accepted at each level of a template, in schema order.
var (
	templateFields = []string{
		"displayName", "columns", "fontFamily", "baseSizePx", "pageSize",
		"marginsMm", "contentTopOffsetMm", "maxPages", "headings", "figure",
	}
	requiredFields = []string{"columns", "fontFamily", "baseSizePx", "pageSize", "marginsMm"}
	headingLevels  = []string{"h1", "h2", "h3"}
	headingFields  = []string{"size", "weight", "margin"}
	figureFields   = []string{"captionSize", "captionColor", "span"}
)

// violation formats one field-qualified message.
func violation(where, format string, args ...any) error {
	return fmt.Errorf("%s %s", where, fmt.Sprintf(format, args...))
}

func join(ctx, field string) string {
	if ctx == "" {
		return field
	}
	return ctx + "." + field
}

// ValidateKey checks a template key against the key pattern.
func ValidateKey(key string) error {
	return newValidationError(validateKey("templates", key))
}

func validateKey(ctx, key string) error {
	if !keyPattern.MatchString(key) {
		return violation(ctx, "key %q must match %s", key, keyPattern.String())
	}
	return nil
}

// Validate checks t against the template schema and reports every violation.
func (t *Template) Validate() error {
	return newValidationError(t.validate("template"))
}

func (t *Template) validate(ctx string) error {
	var errs error
	add := func(field, format string, args ...any) {
		errs = multierr.Append(errs, violation(join(ctx, field), format, args...))
	}

	if t.Columns == 0 {
		add("columns", "is required")
	} else if t.Columns < MinColumns || t.Columns > MaxColumns {
		add("columns", "must be between %d and %d", MinColumns, MaxColumns)
	}
	if t.FontFamily == "" {
		add("fontFamily", "is required")
	}
	if t.BaseSizePx == 0 {
		add("baseSizePx", "is required")
	} else if t.BaseSizePx < MinBaseSizePx || t.BaseSizePx > MaxBaseSizePx {
		add("baseSizePx", "must be between %d and %d", MinBaseSizePx, MaxBaseSizePx)
	}
	if t.PageSize == "" {
		add("pageSize", "is required")
	}
	switch {
	case t.MarginsMm == nil:
		add("marginsMm", "is required")
	case len(t.MarginsMm) != MarginCount:
		add("marginsMm", "must have exactly %d items", MarginCount)
	default:
		for i, m := range t.MarginsMm {
			if math.IsNaN(m) || math.IsInf(m, 0) {
				add("marginsMm."+strconv.Itoa(i), "must be a finite number")
			} else if m < 0 {
				add("marginsMm."+strconv.Itoa(i), "must be >= 0")
			}
		}
	}
	if off := t.ContentTopOffsetMm; off != nil {
		if math.IsNaN(*off) || math.IsInf(*off, 0) {
			add("contentTopOffsetMm", "must be a finite number")
		} else if *off < 0 {
			add("contentTopOffsetMm", "must be >= 0")
		}
	}
	if t.MaxPages != nil && *t.MaxPages < 1 {
		add("maxPages", "must be >= 1")
	}
	if t.Headings != nil {
		for _, lvl := range headingLevels {
			h := t.Headings.level(lvl)
			if h == nil || h.Weight == nil {
				continue
			}
			if *h.Weight < MinWeight || *h.Weight > MaxWeight {
				add("headings."+lvl+".weight", "must be between %d and %d", MinWeight, MaxWeight)
			}
		}
	}
	return errs
}

// Validate checks every key and entry of the collection.
func (c *Collection) Validate() error {
	return newValidationError(c.validate("templates"))
}

func (c *Collection) validate(ctx string) error {
	var errs error
	for _, key := range c.keys {
		errs = multierr.Append(errs, validateKey(ctx, key))
		t := c.entries[key]
		errs = multierr.Append(errs, t.validate(join(ctx, key)))
	}
	return errs
}

// validateRawTemplate checks a decoded JSON value against the template schema.
// It catches what the typed check cannot see: unknown fields, wrong JSON
// types and non-integral numbers.
func validateRawTemplate(ctx string, v any) error {
	obj, ok := v.(map[string]any)
	if !ok {
		return violation(ctx, "must be an object")
	}

	var errs error
	add := func(field, format string, args ...any) {
		errs = multierr.Append(errs, violation(join(ctx, field), format, args...))
	}

	for _, f := range requiredFields {
		if _, ok := obj[f]; !ok {
			add(f, "is required")
		}
	}
	errs = multierr.Append(errs, unknownFields(ctx, obj, templateFields))

	if v, ok := obj["displayName"]; ok {
		errs = multierr.Append(errs, checkString(join(ctx, "displayName"), v))
	}
	if v, ok := obj["columns"]; ok {
		errs = multierr.Append(errs, checkInteger(join(ctx, "columns"), v, MinColumns, MaxColumns))
	}
	if v, ok := obj["fontFamily"]; ok {
		errs = multierr.Append(errs, checkString(join(ctx, "fontFamily"), v))
	}
	if v, ok := obj["baseSizePx"]; ok {
		errs = multierr.Append(errs, checkInteger(join(ctx, "baseSizePx"), v, MinBaseSizePx, MaxBaseSizePx))
	}
	if v, ok := obj["pageSize"]; ok {
		errs = multierr.Append(errs, checkString(join(ctx, "pageSize"), v))
	}
	if v, ok := obj["marginsMm"]; ok {
		errs = multierr.Append(errs, checkMargins(join(ctx, "marginsMm"), v))
	}
	if v, ok := obj["contentTopOffsetMm"]; ok {
		errs = multierr.Append(errs, checkNumber(join(ctx, "contentTopOffsetMm"), v))
	}
	if v, ok := obj["maxPages"]; ok {
		errs = multierr.Append(errs, checkInteger(join(ctx, "maxPages"), v, 1, math.MaxInt))
	}
	if v, ok := obj["headings"]; ok && v != nil {
		errs = multierr.Append(errs, checkHeadings(join(ctx, "headings"), v))
	}
	if v, ok := obj["figure"]; ok && v != nil {
		errs = multierr.Append(errs, checkObject(join(ctx, "figure"), v, figureFields, func(where string, _ string, fv any) error {
			return checkString(where, fv)
		}))
	}
	return errs
}

func checkHeadings(where string, v any) error {
	return checkObject(where, v, headingLevels, func(lvlWhere string, _ string, lv any) error {
		return checkObject(lvlWhere, lv, headingFields, func(fieldWhere, field string, fv any) error {
			if field == "weight" {
				return checkInteger(fieldWhere, fv, MinWeight, MaxWeight)
			}
			return checkString(fieldWhere, fv)
		})
	})
}

// checkObject validates an object whose fields are all optional and listed in
// allowed. Each present field is handed to check in schema order.
func checkObject(where string, v any, allowed []string, check func(where, field string, v any) error) error {
	obj, ok := v.(map[string]any)
	if !ok {
		return violation(where, "must be an object")
	}
	errs := unknownFields(where, obj, allowed)
	for _, f := range allowed {
		if fv, ok := obj[f]; ok {
			errs = multierr.Append(errs, check(join(where, f), f, fv))
		}
	}
	return errs
}

func unknownFields(where string, obj map[string]any, allowed []string) error {
	var extra []string
	for k := range obj {
		if !slices.Contains(allowed, k) {
			extra = append(extra, k)
		}
	}
	slices.Sort(extra)
	var errs error
	for _, k := range extra {
		errs = multierr.Append(errs, violation(join(where, k), "is not allowed"))
	}
	return errs
}

func checkString(where string, v any) error {
	s, ok := v.(string)
	if !ok {
		return violation(where, "must be a string")
	}
	if s == "" {
		return violation(where, "must not be empty")
	}
	return nil
}

func checkInteger(where string, v any, lo, hi int64) error {
	n, ok := v.(json.Number)
	if !ok {
		return violation(where, "must be an integer")
	}
	i, err := n.Int64()
	if err != nil {
		return violation(where, "must be an integer")
	}
	if i < lo || i > hi {
		if hi == math.MaxInt {
			return violation(where, "must be >= %d", lo)
		}
		return violation(where, "must be between %d and %d", lo, hi)
	}
	return nil
}

func checkNumber(where string, v any) error {
	n, ok := v.(json.Number)
	if !ok {
		return violation(where, "must be a number")
	}
	f, err := n.Float64()
	if err != nil {
		return violation(where, "must be a number")
	}
	if f < 0 {
		return violation(where, "must be >= 0")
	}
	return nil
}

func checkMargins(where string, v any) error {
	items, ok := v.([]any)
	if !ok {
		return violation(where, "must be an array")
	}
	if len(items) != MarginCount {
		return violation(where, "must have exactly %d items", MarginCount)
	}
	var errs error
	for i, item := range items {
		errs = multierr.Append(errs, checkNumber(join(where, strconv.Itoa(i)), item))
	}
	return errs
}
