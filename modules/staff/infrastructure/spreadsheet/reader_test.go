package spreadsheet_test

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/Lushbits/pdbulkupload-sub002/modules/staff/domain/aggregates/employee"
	"github.com/Lushbits/pdbulkupload-sub002/modules/staff/infrastructure/spreadsheet"
)

func buildSheet(t *testing.T, rows [][]any) *bytes.Reader {
	t.Helper()
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return bytes.NewReader(buf.Bytes())
}

func TestReadRecords(t *testing.T) {
	src := buildSheet(t, [][]any{
		{"firstName", "lastName", "userName", "departments", "wage:Waiter"},
		{"Anna", "Jensen", "anna@example.com", "Kitchen, Bar", "150.50"},
		{"Bo", "Hansen", "bo@example.com", "Front Desk", nil},
	})

	records, err := spreadsheet.NewReader("", "").Read(src)
	require.NoError(t, err)
	require.Len(t, records, 2)

	anna := records[0]
	assert.Equal(t, "Anna", anna.String(employee.FieldFirstName))
	assert.Equal(t, "Kitchen, Bar", anna.String(employee.FieldDepartments))
	wages := anna.Wages()
	require.Len(t, wages, 1)
	assert.Equal(t, "Waiter", wages[0].Group)
	assert.True(t, wages[0].HourlyRate.Equal(decimal.RequireFromString("150.50")))

	assert.Empty(t, records[1].Wages())
	assert.Equal(t, "Front Desk", records[1].String(employee.FieldDepartments))
}

func TestReadSkipsEmptyRows(t *testing.T) {
	src := buildSheet(t, [][]any{
		{"firstName", "userName"},
		{"Anna", "anna@example.com"},
		{nil, nil},
		{"Bo", "bo@example.com"},
	})

	records, err := spreadsheet.NewReader("", "").Read(src)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Bo", records[1].String(employee.FieldFirstName))
}

func TestReadTrimsCellsAndHeaders(t *testing.T) {
	src := buildSheet(t, [][]any{
		{" firstName ", "userName"},
		{"  Anna  ", " anna@example.com "},
	})

	records, err := spreadsheet.NewReader("", "").Read(src)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Anna", records[0].String(employee.FieldFirstName))
	assert.Equal(t, "anna@example.com", records[0].String(employee.FieldUserName))
}

func TestReadRejectsBadRate(t *testing.T) {
	src := buildSheet(t, [][]any{
		{"firstName", "wage:Waiter"},
		{"Anna", "lots"},
	})

	_, err := spreadsheet.NewReader("", "").Read(src)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `row 2: "lots" is not a valid rate`)
}

func TestReadWagePrefixIsCaseInsensitive(t *testing.T) {
	src := buildSheet(t, [][]any{
		{"firstName", "WAGE:Chef"},
		{"Anna", "200"},
	})

	records, err := spreadsheet.NewReader("", "").Read(src)
	require.NoError(t, err)
	require.Len(t, records, 1)
	wages := records[0].Wages()
	require.Len(t, wages, 1)
	assert.Equal(t, "Chef", wages[0].Group)
}

func TestReadMissingSheet(t *testing.T) {
	src := buildSheet(t, [][]any{
		{"firstName"},
		{"Anna"},
	})

	_, err := spreadsheet.NewReader("", "NoSuchSheet").Read(src)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NoSuchSheet")
}
