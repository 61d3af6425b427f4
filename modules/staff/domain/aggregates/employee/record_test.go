package employee_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lushbits/pdbulkupload-sub002/modules/staff/domain/aggregates/employee"
)

func TestRecordString(t *testing.T) {
	rec := employee.Record{
		employee.FieldFirstName:   "Anna",
		employee.FieldDepartments: []string{"Kitchen", "Bar"},
		"headcount":               3,
	}

	assert.Equal(t, "Anna", rec.String(employee.FieldFirstName))
	assert.Equal(t, "Kitchen, Bar", rec.String(employee.FieldDepartments))
	assert.Equal(t, "3", rec.String("headcount"))
	assert.Equal(t, "", rec.String("missing"))
}

func TestRecordSkipUpload(t *testing.T) {
	cases := []struct {
		value any
		want  bool
	}{
		{true, true},
		{false, false},
		{"true", true},
		{"Yes", true},
		{"x", true},
		{"1", true},
		{"no", false},
		{"", false},
		{nil, false},
	}
	for _, c := range cases {
		rec := employee.Record{employee.FieldSkipUpload: c.value}
		assert.Equal(t, c.want, rec.SkipUpload(), "value %v", c.value)
	}
}

func TestRecordWages(t *testing.T) {
	rec := employee.Record{}
	require.Empty(t, rec.Wages())

	rec.AddWage("Waiter", decimal.NewFromInt(150))
	rec.AddWage("Chef", decimal.RequireFromString("172.50"))

	wages := rec.Wages()
	require.Len(t, wages, 2)
	assert.Equal(t, "Waiter", wages[0].Group)
	assert.True(t, wages[1].HourlyRate.Equal(decimal.RequireFromString("172.50")))
}

func TestRecordCustom(t *testing.T) {
	rec := employee.Record{
		employee.FieldFirstName:  "Anna",
		employee.FieldSkipUpload: true,
		"favoriteShift":          "late",
		"badgeColor":             "green",
	}
	rec.AddWage("Waiter", decimal.NewFromInt(150))

	custom := rec.Custom()
	assert.Equal(t, map[string]any{
		"favoriteShift": "late",
		"badgeColor":    "green",
	}, custom)

	assert.Nil(t, employee.Record{employee.FieldFirstName: "Anna"}.Custom())
}

func TestRecordClone(t *testing.T) {
	rec := employee.Record{
		employee.FieldFirstName:   "Anna",
		employee.FieldDepartments: "Kitchen",
	}
	rec.AddWage("Waiter", decimal.NewFromInt(150))

	clone := rec.Clone()
	clone.Set(employee.FieldDepartments, "Bar")
	clone.AddWage("Chef", decimal.NewFromInt(200))
	clone.AppendCorrection(employee.CorrectionEntry{
		ID:        uuid.New(),
		Field:     employee.FieldDepartments,
		Before:    "Kitchen",
		After:     "Bar",
		AppliedAt: time.Now(),
	})

	assert.Equal(t, "Kitchen", rec.String(employee.FieldDepartments))
	assert.Len(t, rec.Wages(), 1)
	assert.Empty(t, rec.Corrections())

	assert.Equal(t, "Bar", clone.String(employee.FieldDepartments))
	assert.Len(t, clone.Wages(), 2)
	assert.Len(t, clone.Corrections(), 1)
}

func TestHasBlocking(t *testing.T) {
	warnings := []employee.ValidationError{{Severity: employee.SeverityWarning}}
	assert.False(t, employee.HasBlocking(warnings))
	assert.False(t, employee.HasBlocking(nil))

	mixed := append(warnings, employee.ValidationError{Severity: employee.SeverityError})
	assert.True(t, employee.HasBlocking(mixed))
}

func TestSortFindings(t *testing.T) {
	findings := []employee.ValidationError{
		{Row: 2, Field: "userName"},
		{Row: 0, Field: "departments"},
		{Row: 2, Field: "cellPhone"},
	}
	employee.SortFindings(findings)

	assert.Equal(t, 0, findings[0].Row)
	assert.Equal(t, "cellPhone", findings[1].Field)
	assert.Equal(t, "userName", findings[2].Field)
}
