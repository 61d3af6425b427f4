package services

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/Lushbits/pdbulkupload-sub002/modules/staff/domain/aggregates/employee"
	"github.com/Lushbits/pdbulkupload-sub002/modules/staff/domain/entities/country"
	"github.com/Lushbits/pdbulkupload-sub002/modules/staff/domain/entities/schema"
)

// Date inputs accepted from spreadsheets: ISO and the compact 8-digit form
// Excel likes to produce.
var dateLayouts = []string{"2006-01-02", "20060102"}

var dateFields = []string{employee.FieldBirthDate, employee.FieldHiredFrom}

// ValidationService performs field-level, cross-record and remote-duplicate
// checks. Field definitions come from the portal schema at initialization and
// are never mutated mid-validation.
type ValidationService struct {
	defs      schema.FieldDefinitions
	countries *country.Table
	validate  *validator.Validate
}

func NewValidationService(defs schema.FieldDefinitions) (*ValidationService, error) {
	countries, err := country.Load()
	if err != nil {
		return nil, err
	}
	return &ValidationService{
		defs:      defs,
		countries: countries,
		validate:  validator.New(validator.WithRequiredStructEnabled()),
	}, nil
}

// Definitions exposes the portal schema the service validates against.
func (s *ValidationService) Definitions() schema.FieldDefinitions {
	return s.defs
}

// requiredFields returns the schema-declared required fields plus the two
// fields record creation is impossible without: the login identity and the
// primary dimension.
func (s *ValidationService) requiredFields() []string {
	required := append([]string(nil), s.defs.Required...)
	for _, always := range []string{employee.FieldUserName, employee.FieldDepartments} {
		if !contains(required, always) {
			required = append(required, always)
		}
	}
	return required
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

// Validate runs all per-record checks. rowIndex is carried into every finding.
func (s *ValidationService) Validate(rec employee.Record, rowIndex int) []employee.ValidationError {
	var errs []employee.ValidationError

	for _, field := range s.requiredFields() {
		if strings.TrimSpace(rec.String(field)) == "" {
			errs = append(errs, employee.ValidationError{
				Field:    field,
				Message:  fmt.Sprintf("%s is required", s.defs.Label(field)),
				Row:      rowIndex,
				Severity: employee.SeverityError,
				Code:     employee.CodeRequiredField,
			})
		}
	}

	for _, field := range []string{employee.FieldUserName, employee.FieldEmail} {
		if v := strings.TrimSpace(rec.String(field)); v != "" {
			if err := s.validate.Var(v, "email"); err != nil {
				errs = append(errs, employee.ValidationError{
					Field:    field,
					Value:    v,
					Message:  fmt.Sprintf("%q is not a valid email address", v),
					Row:      rowIndex,
					Severity: employee.SeverityError,
					Code:     employee.CodeFormatEmail,
				})
			}
		}
	}

	for _, field := range dateFields {
		if v := strings.TrimSpace(rec.String(field)); v != "" {
			if _, ok := parseDate(v); !ok {
				errs = append(errs, employee.ValidationError{
					Field:    field,
					Value:    v,
					Message:  fmt.Sprintf("%q is not a valid date; use YYYY-MM-DD or YYYYMMDD", v),
					Row:      rowIndex,
					Severity: employee.SeverityError,
					Code:     employee.CodeFormatDate,
				})
			}
		}
	}

	errs = append(errs, s.validatePhone(rec, rowIndex)...)

	return errs
}

func parseDate(v string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// validatePhone checks the phone against the dialing rules of the explicit
// country code field. A phone without a country code is an error, not a
// warning: the platform rejects such records outright.
func (s *ValidationService) validatePhone(rec employee.Record, rowIndex int) []employee.ValidationError {
	phone := strings.TrimSpace(rec.String(employee.FieldCellPhone))
	code := strings.TrimSpace(rec.String(employee.FieldCellPhoneCountryCode))

	var errs []employee.ValidationError

	if code != "" {
		if _, ok := s.countries.ByCode(code); !ok {
			msg := fmt.Sprintf("%q is not a valid ISO country code", code)
			if c, ok := s.countries.Suggest(code); ok {
				msg = fmt.Sprintf("%q is not a valid ISO country code: did you mean %q (%s)?", code, c.Code, c.Name)
			}
			errs = append(errs, employee.ValidationError{
				Field:    employee.FieldCellPhoneCountryCode,
				Value:    code,
				Message:  msg,
				Row:      rowIndex,
				Severity: employee.SeverityError,
				Code:     employee.CodeFormatCountry,
			})
			return errs
		}
	}

	if phone == "" {
		return errs
	}

	if code == "" {
		errs = append(errs, employee.ValidationError{
			Field:    employee.FieldCellPhoneCountryCode,
			Value:    phone,
			Message:  "phone number given without a country code",
			Row:      rowIndex,
			Severity: employee.SeverityError,
			Code:     employee.CodeFormatPhone,
		})
		return errs
	}

	c, _ := s.countries.ByCode(code)
	digits, ok := c.NationalDigits(phone)
	if !ok || !c.ValidNationalNumber(digits) {
		errs = append(errs, employee.ValidationError{
			Field:    employee.FieldCellPhone,
			Value:    phone,
			Message:  fmt.Sprintf("%q is not a valid phone number for %s", phone, c.Name),
			Row:      rowIndex,
			Severity: employee.SeverityError,
			Code:     employee.CodeFormatPhone,
		})
	}
	return errs
}

// ValidateBatch runs per-record checks, intra-batch uniqueness over every
// schema-declared unique field, and the remote-duplicate check against the
// precomputed map of existing records keyed by normalized email. existing may
// be nil when the remote index has not been fetched.
func (s *ValidationService) ValidateBatch(records []employee.Record, existing map[string]employee.RemoteRef) []employee.ValidationError {
	var errs []employee.ValidationError

	for i, rec := range records {
		errs = append(errs, s.Validate(rec, i)...)
	}

	uniqueFields := append([]string(nil), s.defs.Unique...)
	if !contains(uniqueFields, employee.FieldUserName) {
		uniqueFields = append(uniqueFields, employee.FieldUserName)
	}

	for _, field := range uniqueFields {
		byValue := make(map[string][]int)
		for i, rec := range records {
			v := normalizeUniqueValue(rec.String(field))
			if v == "" {
				continue
			}
			byValue[v] = append(byValue[v], i)
		}
		for _, rows := range byValue {
			if len(rows) < 2 {
				continue
			}
			for _, row := range rows {
				errs = append(errs, employee.ValidationError{
					Field:    field,
					Value:    records[row].String(field),
					Message:  fmt.Sprintf("duplicate %s also appears in rows %s", s.defs.Label(field), otherRows(rows, row)),
					Row:      row,
					Severity: employee.SeverityError,
					Code:     employee.CodeUniqueConflict,
				})
			}
		}
	}

	if len(existing) > 0 {
		for i, rec := range records {
			email := normalizeUniqueValue(rec.String(employee.FieldUserName))
			if email == "" {
				continue
			}
			if ref, ok := existing[email]; ok {
				errs = append(errs, employee.ValidationError{
					Field:    employee.FieldUserName,
					Value:    rec.String(employee.FieldUserName),
					Message:  fmt.Sprintf("an employee with this email already exists remotely: %s (id %d)", ref.Name, ref.ID),
					Row:      i,
					Severity: employee.SeverityError,
					Code:     employee.CodeRemoteConflict,
				})
			}
		}
	}

	employee.SortFindings(errs)
	return errs
}

func normalizeUniqueValue(v string) string {
	return strings.ToLower(strings.Join(strings.Fields(v), " "))
}

func otherRows(rows []int, self int) string {
	others := make([]int, 0, len(rows)-1)
	for _, r := range rows {
		if r != self {
			others = append(others, r)
		}
	}
	sort.Ints(others)
	parts := make([]string, len(others))
	for i, r := range others {
		parts[i] = fmt.Sprint(r)
	}
	return strings.Join(parts, ", ")
}
