package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Lushbits/pdbulkupload-sub002/modules/staff/domain/aggregates/employee"
	"github.com/Lushbits/pdbulkupload-sub002/modules/staff/domain/entities/catalog"
	"github.com/Lushbits/pdbulkupload-sub002/modules/staff/domain/entities/schema"
	"github.com/Lushbits/pdbulkupload-sub002/modules/staff/services"
)

// Shared fixtures for the service tests: a small catalog set, a portal schema
// and hand-written stubs for the remote surface.

func testCatalogs(t *testing.T) *catalog.Set {
	t.Helper()
	set, err := catalog.NewSet(
		[]catalog.Entry{
			{ID: 1, Name: "Kitchen"},
			{ID: 2, Name: "Bar"},
			{ID: 3, Name: "Front Desk"},
		},
		[]catalog.Entry{
			{ID: 10, Name: "Waiter"},
			{ID: 11, Name: "Chef"},
		},
		[]catalog.Entry{
			{ID: 20, Name: "Full Time"},
			{ID: 21, Name: "Part Time"},
		},
	)
	require.NoError(t, err)
	return set
}

func testDefs() schema.FieldDefinitions {
	return schema.FieldDefinitions{
		Required: []string{employee.FieldFirstName, employee.FieldLastName},
		ReadOnly: []string{"id"},
		Properties: map[string]schema.Property{
			employee.FieldUserName: {Name: employee.FieldUserName, Description: "Email (login)"},
		},
	}
}

func testValidator(t *testing.T) *services.ValidationService {
	t.Helper()
	validator, err := services.NewValidationService(testDefs())
	require.NoError(t, err)
	return validator
}

func validRecord(email string) employee.Record {
	return employee.Record{
		employee.FieldFirstName:   "Anna",
		employee.FieldLastName:    "Jensen",
		employee.FieldUserName:    email,
		employee.FieldDepartments: "Kitchen",
	}
}

// stubAPI is a scriptable RemoteAPI. Creation calls are counted so tests can
// assert that nothing was submitted after a failure.
type stubAPI struct {
	createCalls int
	failOnCall  map[int]error
	created     []employee.CreateRequest

	existing map[string]employee.RemoteRef
	findErr  error

	payrates   []employee.PayrateAssignment
	payrateErr map[int]error
}

func (a *stubAPI) Create(_ context.Context, req employee.CreateRequest) (employee.RemoteRef, error) {
	a.createCalls++
	if err, ok := a.failOnCall[a.createCalls]; ok {
		return employee.RemoteRef{}, err
	}
	a.created = append(a.created, req)
	return employee.RemoteRef{ID: 100 + a.createCalls, UserName: req.UserName}, nil
}

func (a *stubAPI) FindByEmails(context.Context, []string) (map[string]employee.RemoteRef, error) {
	return a.existing, a.findErr
}

func (a *stubAPI) SetPayrate(_ context.Context, assignment employee.PayrateAssignment) error {
	a.payrates = append(a.payrates, assignment)
	if err, ok := a.payrateErr[len(a.payrates)]; ok {
		return err
	}
	return nil
}

type stubAuth struct {
	authenticated bool
	reauthErr     error
	reauthCalls   int
}

func (a *stubAuth) IsAuthenticated(context.Context) bool {
	return a.authenticated
}

func (a *stubAuth) Reauthenticate(context.Context) error {
	a.reauthCalls++
	if a.reauthErr != nil {
		return a.reauthErr
	}
	a.authenticated = true
	return nil
}
