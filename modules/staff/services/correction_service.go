package services

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Lushbits/pdbulkupload-sub002/modules/staff/domain/aggregates/employee"
	"github.com/Lushbits/pdbulkupload-sub002/modules/staff/domain/entities/catalog"
)

// autoFixConfidence is the bar a suggestion must clear before a pattern is
// counted as safely fixable in one shot.
const autoFixConfidence = highConfidence

// ErrorPattern aggregates one repeated resolution failure across a dataset:
// the same invalid name, as typed, in the same dimension.
type ErrorPattern struct {
	Dimension  catalog.Dimension
	Name       string
	Normalized string
	Count      int
	Rows       []int
	Suggestion *Suggestion
	Confidence float64
}

// BulkCorrectionSummary is the analyzer's report, most frequent pattern first.
type BulkCorrectionSummary struct {
	TotalErrors  int
	Patterns     []ErrorPattern
	AffectedRows int
	AutoFixable  int
}

// CorrectionService detects systemic naming errors across a dataset and
// applies one-shot fixes. It runs offline from the upload path, against the
// same raw records.
type CorrectionService struct {
	resolver *ResolverService
}

func NewCorrectionService(resolver *ResolverService) *CorrectionService {
	return &CorrectionService{resolver: resolver}
}

var analyzedDimensions = []catalog.Dimension{
	catalog.Departments,
	catalog.EmployeeGroups,
	catalog.EmployeeTypes,
}

// Analyze resolves every dimension field of every record and accumulates the
// unresolved tokens into patterns keyed by (dimension, normalized token).
// All three dimensions share one code path; the single-valued employee type
// simply never splits.
func (s *CorrectionService) Analyze(records []employee.Record) BulkCorrectionSummary {
	type key struct {
		dim   catalog.Dimension
		token string
	}
	patterns := make(map[key]*ErrorPattern)
	affected := make(map[int]bool)
	total := 0

	for row, rec := range records {
		for _, dim := range analyzedDimensions {
			text := rec.String(fieldForDimension(dim))
			if strings.TrimSpace(text) == "" {
				continue
			}
			result := s.resolver.Resolve(text, dim)
			for _, miss := range result.Misses {
				total++
				affected[row] = true

				k := key{dim: dim, token: miss.Normalized}
				p, ok := patterns[k]
				if !ok {
					p = &ErrorPattern{Dimension: dim, Name: miss.Token, Normalized: miss.Normalized}
					if best, ok := miss.Best(); ok && best.Confidence > lowConfidence {
						suggestion := best
						p.Suggestion = &suggestion
						p.Confidence = best.Confidence
					}
					patterns[k] = p
				}
				p.Count++
				p.Rows = append(p.Rows, row)
			}
		}
	}

	summary := BulkCorrectionSummary{
		TotalErrors:  total,
		AffectedRows: len(affected),
		Patterns:     make([]ErrorPattern, 0, len(patterns)),
	}
	for _, p := range patterns {
		if p.Confidence > autoFixConfidence {
			summary.AutoFixable++
		}
		summary.Patterns = append(summary.Patterns, *p)
	}
	sort.SliceStable(summary.Patterns, func(i, j int) bool {
		if summary.Patterns[i].Count != summary.Patterns[j].Count {
			return summary.Patterns[i].Count > summary.Patterns[j].Count
		}
		return summary.Patterns[i].Name < summary.Patterns[j].Name
	})
	return summary
}

// ApplyCorrection rewrites, in every record whose field contains the pattern's
// invalid token, only that token, leaving other tokens in the same field
// untouched. Affected records receive an audit entry; untouched records are
// returned as-is.
func (s *CorrectionService) ApplyCorrection(records []employee.Record, pattern ErrorPattern, replacement string) []employee.Record {
	field := fieldForDimension(pattern.Dimension)
	out := make([]employee.Record, len(records))

	for i, rec := range records {
		before := rec.String(field)
		after, changed := replaceToken(before, pattern.Name, replacement, pattern.Dimension.Multi())
		if !changed {
			out[i] = rec
			continue
		}
		fixed := rec.Clone()
		fixed.Set(field, after)
		fixed.AppendCorrection(employee.CorrectionEntry{
			ID:        uuid.New(),
			Field:     field,
			Before:    before,
			After:     after,
			AppliedAt: time.Now(),
		})
		out[i] = fixed
	}
	return out
}

// replaceToken swaps a whole token within a comma list, case-insensitively.
// Untouched tokens keep their original bytes, spacing and separators; the
// matched token is replaced in place with its surrounding whitespace kept.
// Single-value dimensions compare the entire trimmed value.
func replaceToken(value, invalid, replacement string, multi bool) (string, bool) {
	if !multi {
		if strings.EqualFold(strings.TrimSpace(value), strings.TrimSpace(invalid)) {
			return replacement, true
		}
		return value, false
	}

	tokens := strings.Split(value, ",")
	changed := false
	for i, token := range tokens {
		if !strings.EqualFold(strings.TrimSpace(token), strings.TrimSpace(invalid)) {
			continue
		}
		trimmed := strings.TrimLeft(token, " \t")
		leading := token[:len(token)-len(trimmed)]
		trimmed = strings.TrimRight(token, " \t")
		trailing := token[len(trimmed):]
		tokens[i] = leading + replacement + trailing
		changed = true
	}
	if !changed {
		return value, false
	}
	return strings.Join(tokens, ","), true
}
