package mdlayout

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/gosimple/slug"
	"github.com/maruel/natural"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// StorageKey is the fixed key under which the working collection is persisted.
const StorageKey = "mdlayout.templates"

// Persistence reads and writes the serialized working collection.
// Read returns nil data and a nil error when nothing has been stored yet.
type Persistence interface {
	Read() ([]byte, error)
	Write(data []byte) error
}

// Store owns the working template collection. Every accessor and mutator
// copies, so callers never alias internal state.
type Store struct {
	persistence Persistence
	log         *zap.Logger
	seed        *Collection // nil = built-in defaults
	defaults    *Collection
	templates   *Collection
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithStoreLogger sets the logger used for storage warnings.
func WithStoreLogger(log *zap.Logger) StoreOption {
	return func(s *Store) {
		if log != nil {
			s.log = log
		}
	}
}

// WithDefaults replaces the built-in default collection. The collection is
// copied and must be valid.
func WithDefaults(c *Collection) StoreOption {
	return func(s *Store) {
		if c != nil {
			s.seed = c.Clone()
		}
	}
}

// NewStore creates an empty store. Call Load to populate it.
// A nil persistence keeps templates in memory only.
func NewStore(p Persistence, opts ...StoreOption) *Store {
	s := &Store{
		persistence: p,
		log:         zap.NewNop(),
		defaults:    NewCollection(),
		templates:   NewCollection(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load rebuilds the working collection from fresh defaults, replaced by the
// persisted collection when one exists and validates. Invalid or unreadable
// data is logged and discarded; Load never fails.
func (s *Store) Load() *Collection {
	s.defaults = s.freshDefaults()
	if stored := s.loadFromStorage(); stored != nil {
		s.templates = stored
	} else {
		s.templates = s.defaults.Clone()
	}
	return s.templates.Clone()
}

func (s *Store) freshDefaults() *Collection {
	if s.seed != nil {
		return s.seed.Clone()
	}
	return DefaultCollection()
}

func (s *Store) loadFromStorage() *Collection {
	if s.persistence == nil {
		return nil
	}
	data, err := s.persistence.Read()
	if err != nil {
		s.log.Warn("Unable to read stored templates", zap.Error(&StorageError{Op: "read", Err: err}))
		return nil
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil
	}
	c, err := ParseCollection(data)
	if err != nil {
		s.log.Warn("Stored templates are invalid and will be reset", zap.Error(err))
		return nil
	}
	return c
}

// persist is best effort: failures are logged and in-memory state stays
// authoritative.
func (s *Store) persist() {
	if s.persistence == nil {
		return
	}
	data, err := json.Marshal(s.templates)
	if err == nil {
		err = s.persistence.Write(data)
	}
	if err != nil {
		s.log.Warn("Unable to persist templates", zap.Error(&StorageError{Op: "write", Err: err}))
	}
}

// Templates returns a copy of the working collection.
func (s *Store) Templates() *Collection {
	return s.templates.Clone()
}

// Template returns a copy of the template stored under key.
func (s *Store) Template(key string) (Template, bool) {
	return s.templates.Get(key)
}

// Keys returns template keys in insertion order.
func (s *Store) Keys() []string {
	return s.templates.Keys()
}

// SortedKeys returns template keys in natural order ("fig2" before "fig10").
func (s *Store) SortedKeys() []string {
	keys := s.templates.Keys()
	sort.Sort(natural.StringSlice(keys))
	return keys
}

// DefaultTemplates returns a copy of the default collection.
func (s *Store) DefaultTemplates() *Collection {
	if s.defaults.Len() == 0 {
		return s.freshDefaults()
	}
	return s.defaults.Clone()
}

// UpsertTemplate validates t and stores it under key. On failure it returns a
// *ValidationError listing every violation and the collection is unchanged.
func (s *Store) UpsertTemplate(key string, t Template) (Template, error) {
	ctx := fmt.Sprintf("template[%q]", key)
	clone := t.Clone()

	errs := validateKey(ctx, key)
	errs = multierr.Append(errs, clone.validate(ctx))
	if err := newValidationError(errs); err != nil {
		return Template{}, err
	}

	s.templates.Set(key, clone)
	s.persist()
	return clone.Clone(), nil
}

// RemoveTemplate deletes key if present and persists.
func (s *Store) RemoveTemplate(key string) {
	s.templates.Delete(key)
	s.persist()
}

// ResetTemplates replaces the working collection with the defaults.
func (s *Store) ResetTemplates() *Collection {
	s.defaults = s.freshDefaults()
	s.templates = s.defaults.Clone()
	s.persist()
	return s.templates.Clone()
}

// ReplaceAll validates c as a whole and, only if valid, makes it the working
// collection.
func (s *Store) ReplaceAll(c *Collection) (*Collection, error) {
	if c == nil {
		c = NewCollection()
	}
	clone := c.Clone()
	if err := newValidationError(clone.validate("templates")); err != nil {
		return nil, err
	}
	s.templates = clone
	s.persist()
	return s.templates.Clone(), nil
}

// ImportTemplates parses JSON text, validates it against the collection
// schema and replaces the working collection with it.
func (s *Store) ImportTemplates(text string) (*Collection, error) {
	c, err := ParseCollection([]byte(text))
	if err != nil {
		return nil, err
	}
	return s.ReplaceAll(c)
}

// ExportTemplates serializes the working collection as indented JSON in
// insertion order.
func (s *Store) ExportTemplates() (string, error) {
	data, err := json.MarshalIndent(s.templates, "", "  ")
	if err != nil {
		return "", fmt.Errorf("exporting templates: %w", err)
	}
	return string(data), nil
}

// NewTemplateKey derives an unused key from a display name.
func (s *Store) NewTemplateKey(displayName string) string {
	base := slug.Make(displayName)
	if base == "" {
		base = "template"
	}
	base = truncateKey(base, MaxKeyLength)

	key := base
	for n := 2; ; n++ {
		if _, taken := s.templates.entries[key]; !taken {
			return key
		}
		suffix := "-" + strconv.Itoa(n)
		key = truncateKey(base, MaxKeyLength-len(suffix)) + suffix
	}
}

func truncateKey(key string, limit int) string {
	if len(key) <= limit {
		return key
	}
	return strings.TrimRight(key[:limit], "-")
}
