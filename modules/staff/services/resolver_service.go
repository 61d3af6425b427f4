package services

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/Lushbits/pdbulkupload-sub002/modules/staff/domain/aggregates/employee"
	"github.com/Lushbits/pdbulkupload-sub002/modules/staff/domain/entities/catalog"
)

// Confidence tiers for fuzzy suggestions. Above the high bar a single
// candidate is offered; between the bars the top three are listed.
const (
	highConfidence = 0.7
	lowConfidence  = 0.4

	maxListedCandidates = 3
)

// Suggestion is one fuzzy-match candidate, ranked by confidence.
type Suggestion struct {
	ID         int
	Name       string
	Confidence float64
}

// TokenMiss records one token that failed to resolve, with its ranked
// candidates. The bulk-correction analyzer aggregates these across a dataset.
type TokenMiss struct {
	Token       string
	Normalized  string
	Suggestions []Suggestion
}

// Best returns the strongest candidate, if any.
func (m TokenMiss) Best() (Suggestion, bool) {
	if len(m.Suggestions) == 0 {
		return Suggestion{}, false
	}
	return m.Suggestions[0], true
}

// MappingResult is the outcome of resolving one field's text against one
// lookup table. Resolution never fails hard; every outcome is data.
type MappingResult struct {
	IDs      []int
	Errors   []employee.ValidationError
	Warnings []employee.ValidationError
	Misses   []TokenMiss
}

// Resolved reports whether every token mapped to an identifier.
func (m MappingResult) Resolved() bool {
	return len(m.Errors) == 0
}

// ResolverService turns free-text dimension values into remote identifiers.
// The catalog set is built once at initialization and never mutated here.
type ResolverService struct {
	catalogs *catalog.Set
}

func NewResolverService(catalogs *catalog.Set) *ResolverService {
	return &ResolverService{catalogs: catalogs}
}

// fieldForDimension maps a dimension to the record field it is entered in.
func fieldForDimension(dim catalog.Dimension) string {
	switch dim {
	case catalog.Departments:
		return employee.FieldDepartments
	case catalog.EmployeeGroups:
		return employee.FieldEmployeeGroups
	case catalog.EmployeeTypes:
		return employee.FieldEmployeeTypeID
	default:
		return string(dim)
	}
}

func dimensionLabel(dim catalog.Dimension) string {
	switch dim {
	case catalog.Departments:
		return "department"
	case catalog.EmployeeGroups:
		return "employee group"
	case catalog.EmployeeTypes:
		return "employee type"
	default:
		return string(dim)
	}
}

// Resolve maps text against one dimension's lookup table. Multi-value
// dimensions are split on commas; the employee-type dimension never is.
// Per token: exact normalized match, then raw-identifier acceptance (with a
// warning), then tiered fuzzy suggestions.
func (s *ResolverService) Resolve(text string, dim catalog.Dimension) MappingResult {
	var result MappingResult

	table, ok := s.catalogs.Table(dim)
	if !ok {
		result.Errors = append(result.Errors, employee.ValidationError{
			Field:    fieldForDimension(dim),
			Value:    text,
			Message:  fmt.Sprintf("no catalog loaded for %s", dimensionLabel(dim)),
			Severity: employee.SeverityError,
			Code:     employee.CodeUnresolved,
		})
		return result
	}

	var tokens []string
	if dim.Multi() {
		tokens = strings.Split(text, ",")
	} else {
		tokens = []string{text}
	}

	field := fieldForDimension(dim)
	seen := make(map[string]bool, len(tokens))

	for _, raw := range tokens {
		token := strings.TrimSpace(raw)
		if token == "" {
			continue
		}
		key := catalog.Normalize(token)

		if seen[key] {
			result.Warnings = append(result.Warnings, employee.ValidationError{
				Field:    field,
				Value:    token,
				Message:  fmt.Sprintf("duplicate %s %q ignored", dimensionLabel(dim), token),
				Severity: employee.SeverityWarning,
				Code:     employee.CodeDuplicateToken,
			})
			continue
		}
		seen[key] = true

		if id, ok := table.IDFor(key); ok {
			result.IDs = append(result.IDs, id)
			continue
		}

		if id, err := strconv.Atoi(token); err == nil && table.HasID(id) {
			name, _ := table.NameFor(id)
			result.IDs = append(result.IDs, id)
			result.Warnings = append(result.Warnings, employee.ValidationError{
				Field:    field,
				Value:    token,
				Message:  fmt.Sprintf("raw identifier %d used for %s %q; prefer the name", id, dimensionLabel(dim), name),
				Severity: employee.SeverityWarning,
				Code:     employee.CodeRawIdentifier,
			})
			continue
		}

		miss := TokenMiss{
			Token:       token,
			Normalized:  key,
			Suggestions: s.candidates(table, key),
		}
		result.Misses = append(result.Misses, miss)
		result.Errors = append(result.Errors, unresolvedError(field, dim, miss))
	}

	return result
}

// candidates ranks every catalog key by Levenshtein confidence against the
// normalized token, strongest first.
func (s *ResolverService) candidates(table *catalog.LookupTable, key string) []Suggestion {
	suggestions := make([]Suggestion, 0, table.Len())
	for _, candidate := range table.Keys() {
		conf := confidence(key, candidate)
		if conf <= 0 {
			continue
		}
		id, _ := table.IDFor(candidate)
		name, _ := table.NameFor(id)
		suggestions = append(suggestions, Suggestion{ID: id, Name: name, Confidence: conf})
	}
	sort.SliceStable(suggestions, func(i, j int) bool {
		if suggestions[i].Confidence != suggestions[j].Confidence {
			return suggestions[i].Confidence > suggestions[j].Confidence
		}
		return suggestions[i].Name < suggestions[j].Name
	})
	return suggestions
}

// confidence is 1 − editDistance/max(len) over the normalized strings.
func confidence(a, b string) float64 {
	la, lb := utf8.RuneCountInString(a), utf8.RuneCountInString(b)
	longest := la
	if lb > longest {
		longest = lb
	}
	if longest == 0 {
		return 0
	}
	d := fuzzy.LevenshteinDistance(a, b)
	return 1 - float64(d)/float64(longest)
}

func unresolvedError(field string, dim catalog.Dimension, miss TokenMiss) employee.ValidationError {
	label := dimensionLabel(dim)
	msg := fmt.Sprintf("%q is not a known %s", miss.Token, label)

	if best, ok := miss.Best(); ok && best.Confidence > lowConfidence {
		if best.Confidence > highConfidence {
			msg = fmt.Sprintf("unknown %s %q: did you mean %q?", label, miss.Token, best.Name)
		} else {
			n := len(miss.Suggestions)
			if n > maxListedCandidates {
				n = maxListedCandidates
			}
			names := make([]string, 0, n)
			for _, c := range miss.Suggestions[:n] {
				names = append(names, strconv.Quote(c.Name))
			}
			msg = fmt.Sprintf("unknown %s %q: closest matches are %s", label, miss.Token, strings.Join(names, ", "))
		}
	}

	return employee.ValidationError{
		Field:    field,
		Value:    miss.Token,
		Message:  msg,
		Severity: employee.SeverityError,
		Code:     employee.CodeUnresolved,
	}
}
