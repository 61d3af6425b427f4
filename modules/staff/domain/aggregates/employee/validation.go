package employee

import "sort"

type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Error codes, one per class of the validation taxonomy.
const (
	CodeRequiredField  = "REQUIRED_FIELD"
	CodeFormatEmail    = "FORMAT_EMAIL"
	CodeFormatDate     = "FORMAT_DATE"
	CodeFormatPhone    = "FORMAT_PHONE"
	CodeFormatCountry  = "FORMAT_COUNTRY"
	CodeUniqueConflict = "UNIQUE_CONFLICT"
	CodeRemoteConflict = "REMOTE_CONFLICT"
	CodeUnresolved     = "REFERENCE_UNRESOLVED"
	CodeDuplicateToken = "DUPLICATE_TOKEN"
	CodeRawIdentifier  = "RAW_IDENTIFIER"
)

// ValidationError is a single finding against one field of one record.
// Severity "error" blocks submission; "warning" does not.
type ValidationError struct {
	Field    string
	Value    string
	Message  string
	Row      int
	Severity Severity
	Code     string
}

// HasBlocking reports whether any finding carries error severity.
func HasBlocking(errs []ValidationError) bool {
	for _, e := range errs {
		if e.Severity == SeverityError {
			return true
		}
	}
	return false
}

// SortFindings orders findings by row, then field, for stable reporting.
func SortFindings(errs []ValidationError) {
	sort.SliceStable(errs, func(i, j int) bool {
		if errs[i].Row != errs[j].Row {
			return errs[i].Row < errs[j].Row
		}
		return errs[i].Field < errs[j].Field
	})
}
