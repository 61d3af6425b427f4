package catalog

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Dimension is one of the three name-to-identifier lookup domains.
type Dimension string

const (
	Departments    Dimension = "departments"
	EmployeeGroups Dimension = "employeeGroups"
	EmployeeTypes  Dimension = "employeeTypes"
)

// Multi reports whether values of this dimension are comma-separated lists.
// Employee type is single-valued and is never split.
func (d Dimension) Multi() bool {
	return d != EmployeeTypes
}

// Entry is one row of the remote platform's catalog for a dimension.
type Entry struct {
	ID   int
	Name string
}

// Provider seeds lookup-table construction from the remote catalog.
type Provider interface {
	Departments(ctx context.Context) ([]Entry, error)
	EmployeeGroups(ctx context.Context) ([]Entry, error)
	EmployeeTypes(ctx context.Context) ([]Entry, error)
}

var stripMarks = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// foldOverrides maps Latin letters that NFKD cannot decompose into a base
// letter plus combining mark, so the mark strip alone never reaches them.
var foldOverrides = map[rune]string{
	'ø': "o",
	'æ': "ae",
	'œ': "oe",
	'ł': "l",
	'đ': "d",
	'ð': "d",
	'þ': "th",
	'ß': "ss",
}

// Normalize produces the lookup key for a free-text name: trimmed, lowercased,
// diacritics and punctuation stripped, inner whitespace collapsed.
func Normalize(s string) string {
	if folded, _, err := transform.String(stripMarks, s); err == nil {
		s = folded
	}
	var b strings.Builder
	b.Grow(len(s))
	space := false
	for _, r := range strings.TrimSpace(s) {
		switch {
		case unicode.IsSpace(r):
			space = true
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if space && b.Len() > 0 {
				b.WriteByte(' ')
			}
			space = false
			r = unicode.ToLower(r)
			if repl, ok := foldOverrides[r]; ok {
				b.WriteString(repl)
			} else {
				b.WriteRune(r)
			}
		}
	}
	return b.String()
}

// LookupTable is the bidirectional name↔identifier mapping for one dimension.
// It is read-only after construction; re-initialization replaces it wholesale.
type LookupTable struct {
	dimension Dimension
	byKey     map[string]int
	byID      map[int]string
	keys      []string
}

// NewLookupTable builds the table, rejecting entries whose names normalize to
// an already-present key.
func NewLookupTable(dimension Dimension, entries []Entry) (*LookupTable, error) {
	t := &LookupTable{
		dimension: dimension,
		byKey:     make(map[string]int, len(entries)),
		byID:      make(map[int]string, len(entries)),
	}
	for _, e := range entries {
		key := Normalize(e.Name)
		if key == "" {
			return nil, fmt.Errorf("catalog %s: entry %d has an empty name", dimension, e.ID)
		}
		if other, exists := t.byKey[key]; exists {
			return nil, fmt.Errorf("catalog %s: %q normalizes to the same key as entry %d", dimension, e.Name, other)
		}
		t.byKey[key] = e.ID
		t.byID[e.ID] = e.Name
		t.keys = append(t.keys, key)
	}
	sort.Strings(t.keys)
	return t, nil
}

func (t *LookupTable) Dimension() Dimension { return t.dimension }
func (t *LookupTable) Len() int             { return len(t.byKey) }

// IDFor resolves a normalized key to its identifier.
func (t *LookupTable) IDFor(key string) (int, bool) {
	id, ok := t.byKey[key]
	return id, ok
}

// NameFor returns the display name for an identifier.
func (t *LookupTable) NameFor(id int) (string, bool) {
	name, ok := t.byID[id]
	return name, ok
}

// HasID reports whether the identifier exists in the catalog.
func (t *LookupTable) HasID(id int) bool {
	_, ok := t.byID[id]
	return ok
}

// Keys returns all normalized keys in sorted order.
func (t *LookupTable) Keys() []string { return t.keys }

// Set holds the lookup tables for all dimensions, built once during
// initialization and read concurrently thereafter.
type Set struct {
	tables map[Dimension]*LookupTable
}

// NewSet builds all three tables from the remote catalogs.
func NewSet(departments, employeeGroups, employeeTypes []Entry) (*Set, error) {
	s := &Set{tables: make(map[Dimension]*LookupTable, 3)}
	for _, spec := range []struct {
		dim     Dimension
		entries []Entry
	}{
		{Departments, departments},
		{EmployeeGroups, employeeGroups},
		{EmployeeTypes, employeeTypes},
	} {
		table, err := NewLookupTable(spec.dim, spec.entries)
		if err != nil {
			return nil, err
		}
		s.tables[spec.dim] = table
	}
	return s, nil
}

// Load builds a Set by fetching every catalog from the provider.
func Load(ctx context.Context, provider Provider) (*Set, error) {
	departments, err := provider.Departments(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading departments: %w", err)
	}
	groups, err := provider.EmployeeGroups(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading employee groups: %w", err)
	}
	types, err := provider.EmployeeTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading employee types: %w", err)
	}
	return NewSet(departments, groups, types)
}

// Table returns the lookup table for a dimension.
func (s *Set) Table(dim Dimension) (*LookupTable, bool) {
	t, ok := s.tables[dim]
	return t, ok
}
