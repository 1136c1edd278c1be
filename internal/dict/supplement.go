package dict

import (
	"errors"
	"fmt"
	"os"
	"strings"

	yaml "go.yaml.in/yaml/v3"
)

// ErrInvalidSupplement is returned when a supplemental dictionary file is
// not a flat string-to-string mapping.
var ErrInvalidSupplement = errors.New("supplemental dictionary must be a mapping of strings")

// Supplement is an immutable, ordered supplemental dictionary. It is used
// both for whole-fragment phrase lookup (exact keys) and for token lookup
// (case-folded keys).
type Supplement struct {
	entries []Entry
	exact   map[string]string
	folded  map[string]string
}

var emptySupplement = NewSupplement(nil)

// NewSupplement builds a supplement from entries in the given order.
// Later duplicates of a key are ignored.
func NewSupplement(entries []Entry) *Supplement {
	s := &Supplement{
		exact:  make(map[string]string, len(entries)),
		folded: make(map[string]string, len(entries)),
	}
	for _, e := range entries {
		if e.Key == "" {
			continue
		}
		if _, ok := s.exact[e.Key]; ok {
			continue
		}
		s.entries = append(s.entries, e)
		s.exact[e.Key] = e.Value
		k := strings.ToLower(e.Key)
		if _, ok := s.folded[k]; !ok {
			s.folded[k] = e.Value
		}
	}
	return s
}

// ParseSupplement decodes a YAML (or JSON) mapping, keeping entries in
// document order.
func ParseSupplement(data []byte) (*Supplement, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode supplemental dictionary: %w", err)
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return NewSupplement(nil), nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, ErrInvalidSupplement
	}
	entries := make([]Entry, 0, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		k, v := root.Content[i], root.Content[i+1]
		if k.Kind != yaml.ScalarNode || v.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("%w: entry at line %d", ErrInvalidSupplement, k.Line)
		}
		entries = append(entries, Entry{Key: k.Value, Value: v.Value})
	}
	return NewSupplement(entries), nil
}

// LoadSupplement reads a supplemental dictionary file.
func LoadSupplement(path string) (*Supplement, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read supplemental dictionary: %w", err)
	}
	return ParseSupplement(data)
}

// Len returns the number of entries.
func (s *Supplement) Len() int {
	if s == nil {
		return 0
	}
	return len(s.entries)
}

// Entries returns the entries in load order.
func (s *Supplement) Entries() []Entry {
	if s == nil {
		return nil
	}
	return s.entries
}

// Exact looks up key verbatim.
func (s *Supplement) Exact(key string) (string, bool) {
	if s == nil {
		return "", false
	}
	v, ok := s.exact[key]
	return v, ok
}

// Folded looks up key ignoring case.
func (s *Supplement) Folded(key string) (string, bool) {
	if s == nil {
		return "", false
	}
	v, ok := s.folded[strings.ToLower(key)]
	return v, ok
}
