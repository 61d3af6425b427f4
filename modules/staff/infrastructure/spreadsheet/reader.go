// Package spreadsheet reads the operator's .xlsx into raw employee records.
// The header row supplies field names; columns prefixed with the wage marker
// become per-group hourly-rate annotations on the record.
package spreadsheet

import (
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/Lushbits/pdbulkupload-sub002/modules/staff/domain/aggregates/employee"
)

const DefaultWagePrefix = "wage:"

type Reader struct {
	// WagePrefix marks hourly-rate columns, e.g. "wage:Kitchen".
	WagePrefix string
	// Sheet selects the worksheet; empty means the first sheet.
	Sheet string
}

func NewReader(wagePrefix, sheet string) *Reader {
	if wagePrefix == "" {
		wagePrefix = DefaultWagePrefix
	}
	return &Reader{WagePrefix: wagePrefix, Sheet: sheet}
}

func (r *Reader) ReadFile(path string) ([]employee.Record, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()
	return r.parse(f)
}

func (r *Reader) Read(src io.Reader) ([]employee.Record, error) {
	f, err := excelize.OpenReader(src)
	if err != nil {
		return nil, fmt.Errorf("opening spreadsheet: %w", err)
	}
	defer func() { _ = f.Close() }()
	return r.parse(f)
}

func (r *Reader) parse(f *excelize.File) ([]employee.Record, error) {
	sheet := r.Sheet
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q is empty", sheet)
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.TrimSpace(h)
	}

	var records []employee.Record
	for rowIdx, cells := range rows[1:] {
		rec := employee.Record{}
		empty := true
		for col, raw := range cells {
			if col >= len(headers) || headers[col] == "" {
				continue
			}
			value := strings.TrimSpace(raw)
			if value == "" {
				continue
			}
			empty = false

			header := headers[col]
			if group, ok := r.wageGroup(header); ok {
				rate, err := decimal.NewFromString(value)
				if err != nil {
					return nil, fmt.Errorf("row %d: %q is not a valid rate for column %q", rowIdx+2, value, header)
				}
				rec.AddWage(group, rate)
				continue
			}
			rec.Set(header, value)
		}
		if empty {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

func (r *Reader) wageGroup(header string) (string, bool) {
	if !strings.HasPrefix(strings.ToLower(header), strings.ToLower(r.WagePrefix)) {
		return "", false
	}
	group := strings.TrimSpace(header[len(r.WagePrefix):])
	return group, group != ""
}
