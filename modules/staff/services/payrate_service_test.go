package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lushbits/pdbulkupload-sub002/modules/staff/domain/aggregates/employee"
	"github.com/Lushbits/pdbulkupload-sub002/modules/staff/services"
)

func TestAssignContinuesPastFailures(t *testing.T) {
	api := &stubAPI{payrateErr: map[int]error{2: errors.New("rate rejected")}}
	svc := services.NewPayrateService(api, nil)

	assignments := []employee.PayrateAssignment{
		{EmployeeID: 101, GroupID: 10, HourlyRate: decimal.NewFromInt(150), ValidFrom: time.Now()},
		{EmployeeID: 102, GroupID: 10, HourlyRate: decimal.NewFromInt(160), ValidFrom: time.Now()},
		{EmployeeID: 103, GroupID: 11, HourlyRate: decimal.NewFromInt(170), ValidFrom: time.Now()},
	}

	var progress []services.PayrateProgress
	results := svc.Assign(context.Background(), assignments, func(p services.PayrateProgress) {
		progress = append(progress, p)
	})

	// Every assignment is attempted; the failure in the middle aborts nothing.
	require.Len(t, results, 3)
	assert.True(t, results[0].Success)
	assert.False(t, results[1].Success)
	assert.Contains(t, results[1].Message, "rate rejected")
	assert.True(t, results[2].Success)
	assert.Len(t, api.payrates, 3)

	require.Len(t, progress, 3)
	for i, p := range progress {
		assert.Equal(t, i+1, p.Completed)
		assert.Equal(t, 3, p.Total)
	}
}

func TestAssignEmpty(t *testing.T) {
	api := &stubAPI{}
	svc := services.NewPayrateService(api, nil)

	results := svc.Assign(context.Background(), nil, nil)
	assert.Empty(t, results)
	assert.Empty(t, api.payrates)
}
