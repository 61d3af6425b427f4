package employee

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Well-known record fields. A Record is a flat field→value mapping exactly as
// it came out of the spreadsheet; dimension fields hold free text until the
// upload pipeline converts them to identifier arrays.
const (
	FieldFirstName            = "firstName"
	FieldLastName             = "lastName"
	FieldUserName             = "userName"
	FieldEmail                = "email"
	FieldDepartments          = "departments"
	FieldEmployeeGroups       = "employeeGroups"
	FieldEmployeeTypeID       = "employeeTypeId"
	FieldCellPhone            = "cellPhone"
	FieldCellPhoneCountryCode = "cellPhoneCountryCode"
	FieldBirthDate            = "birthDate"
	FieldHiredFrom            = "hiredFrom"
	FieldGender               = "gender"
	FieldStreet1              = "street1"
	FieldCity                 = "city"
	FieldZip                  = "zip"

	// FieldSkipUpload marks a record as excluded from submission.
	FieldSkipUpload = "_skipUpload"

	fieldWages       = "_wages"
	fieldCorrections = "_corrections"
)

type Record map[string]any

// WageAnnotation attaches an hourly rate for one employee group to a record
// before conversion. It must survive conversion so the pay-rate phase can
// consume it after the employee has been created remotely.
type WageAnnotation struct {
	Group      string
	HourlyRate decimal.Decimal
}

// CorrectionEntry is the audit trail left behind by a bulk correction.
type CorrectionEntry struct {
	ID        uuid.UUID
	Field     string
	Before    string
	After     string
	AppliedAt time.Time
}

func (r Record) String(field string) string {
	v, ok := r[field]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case []string:
		return strings.Join(t, ", ")
	default:
		return fmt.Sprint(t)
	}
}

func (r Record) Set(field string, value any) {
	r[field] = value
}

func (r Record) SkipUpload() bool {
	switch v := r[FieldSkipUpload].(type) {
	case bool:
		return v
	case string:
		s := strings.ToLower(strings.TrimSpace(v))
		return s == "true" || s == "yes" || s == "1" || s == "x"
	default:
		return false
	}
}

func (r Record) Wages() []WageAnnotation {
	w, _ := r[fieldWages].([]WageAnnotation)
	return w
}

func (r Record) AddWage(group string, rate decimal.Decimal) {
	r[fieldWages] = append(r.Wages(), WageAnnotation{Group: group, HourlyRate: rate})
}

var wellKnownFields = map[string]bool{
	FieldFirstName:            true,
	FieldLastName:             true,
	FieldUserName:             true,
	FieldEmail:                true,
	FieldDepartments:          true,
	FieldEmployeeGroups:       true,
	FieldEmployeeTypeID:       true,
	FieldCellPhone:            true,
	FieldCellPhoneCountryCode: true,
	FieldBirthDate:            true,
	FieldHiredFrom:            true,
	FieldGender:               true,
	FieldStreet1:              true,
	FieldCity:                 true,
	FieldZip:                  true,
}

// Custom returns the fields outside the well-known set, e.g. portal-defined
// custom columns from the sheet. Internal annotations (underscore-prefixed)
// are excluded.
func (r Record) Custom() map[string]any {
	var out map[string]any
	for k, v := range r {
		if wellKnownFields[k] || strings.HasPrefix(k, "_") {
			continue
		}
		if out == nil {
			out = make(map[string]any)
		}
		out[k] = v
	}
	return out
}

func (r Record) Corrections() []CorrectionEntry {
	c, _ := r[fieldCorrections].([]CorrectionEntry)
	return c
}

func (r Record) AppendCorrection(entry CorrectionEntry) {
	r[fieldCorrections] = append(r.Corrections(), entry)
}

func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		switch t := v.(type) {
		case []string:
			out[k] = append([]string(nil), t...)
		case []WageAnnotation:
			out[k] = append([]WageAnnotation(nil), t...)
		case []CorrectionEntry:
			out[k] = append([]CorrectionEntry(nil), t...)
		default:
			out[k] = v
		}
	}
	return out
}
