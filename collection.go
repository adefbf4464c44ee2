package mdlayout

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"slices"

	"go.uber.org/multierr"
)

// Collection is an insertion-ordered mapping from template key to Template.
// The zero value is an empty collection ready for use.
type Collection struct {
	keys    []string
	entries map[string]Template
}

// NewCollection returns an empty collection.
func NewCollection() *Collection {
	return &Collection{entries: make(map[string]Template)}
}

// Len returns the number of templates.
func (c *Collection) Len() int { return len(c.keys) }

// Keys returns the keys in insertion order.
func (c *Collection) Keys() []string { return slices.Clone(c.keys) }

// Get returns a copy of the template stored under key.
func (c *Collection) Get(key string) (Template, bool) {
	t, ok := c.entries[key]
	if !ok {
		return Template{}, false
	}
	return t.Clone(), true
}

// Set stores a copy of t. Replacing an existing key keeps its position.
func (c *Collection) Set(key string, t Template) {
	if c.entries == nil {
		c.entries = make(map[string]Template)
	}
	if _, ok := c.entries[key]; !ok {
		c.keys = append(c.keys, key)
	}
	c.entries[key] = t.Clone()
}

// Delete removes key if present.
func (c *Collection) Delete(key string) {
	if _, ok := c.entries[key]; !ok {
		return
	}
	delete(c.entries, key)
	c.keys = slices.DeleteFunc(c.keys, func(k string) bool { return k == key })
}

// Clone returns a deep copy.
func (c *Collection) Clone() *Collection {
	out := &Collection{
		keys:    slices.Clone(c.keys),
		entries: make(map[string]Template, len(c.entries)),
	}
	for k, t := range c.entries {
		out.entries[k] = t.Clone()
	}
	return out
}

// Equal reports whether both collections hold structurally equal templates
// in the same order.
func (c *Collection) Equal(other *Collection) bool {
	if c == nil || other == nil {
		return c == other
	}
	if !slices.Equal(c.keys, other.keys) {
		return false
	}
	for _, k := range c.keys {
		if !reflect.DeepEqual(c.entries[k], other.entries[k]) {
			return false
		}
	}
	return true
}

// MarshalJSON encodes the collection as a JSON object in insertion order.
func (c *Collection) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range c.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(c.entries[k])
		if err != nil {
			return nil, fmt.Errorf("encoding template %q: %w", k, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes and validates a collection. Invalid input yields a
// *ValidationError and leaves c unchanged.
func (c *Collection) UnmarshalJSON(data []byte) error {
	parsed, err := ParseCollection(data)
	if err != nil {
		return err
	}
	*c = *parsed
	return nil
}

// ParseCollection decodes JSON text into a collection and validates it against
// the full collection schema. Every violation is reported in one
// *ValidationError whose paths are prefixed with "templates".
func ParseCollection(data []byte) (*Collection, error) {
	const ctx = "templates"

	raw, err := decodeOrdered(data)
	if err != nil {
		return nil, newValidationError(violation(ctx, "is not valid JSON: %v", err))
	}

	var errs error
	for _, e := range raw {
		errs = multierr.Append(errs, validateKey(ctx, e.key))
		var v any
		dec := json.NewDecoder(bytes.NewReader(e.value))
		dec.UseNumber()
		if err := dec.Decode(&v); err != nil {
			errs = multierr.Append(errs, violation(join(ctx, e.key), "is not valid JSON: %v", err))
			continue
		}
		errs = multierr.Append(errs, validateRawTemplate(join(ctx, e.key), v))
	}
	if errs != nil {
		return nil, newValidationError(errs)
	}

	c := NewCollection()
	for _, e := range raw {
		var t Template
		if err := json.Unmarshal(e.value, &t); err != nil {
			errs = multierr.Append(errs, violation(join(ctx, e.key), "%v", err))
			continue
		}
		c.Set(e.key, t)
	}
	if errs == nil {
		errs = c.validate(ctx)
	}
	if errs != nil {
		return nil, newValidationError(errs)
	}
	return c, nil
}

type rawEntry struct {
	key   string
	value json.RawMessage
}

var errNotObject = errors.New("top level must be an object")

// decodeOrdered reads a JSON object keeping member order. A repeated key
// keeps its first position and its last value.
func decodeOrdered(data []byte) ([]rawEntry, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, errNotObject
	}

	var entries []rawEntry
	index := make(map[string]int)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, errNotObject
		}
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, err
		}
		if i, seen := index[key]; seen {
			entries[i].value = value
			continue
		}
		index[key] = len(entries)
		entries = append(entries, rawEntry{key: key, value: value})
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("unexpected data after top-level object")
	}
	return entries, nil
}
