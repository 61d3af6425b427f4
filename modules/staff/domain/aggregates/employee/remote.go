package employee

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// RemoteRef identifies an employee record that exists on the remote platform.
type RemoteRef struct {
	ID       int
	Name     string
	UserName string
}

// CreateRequest is the platform-shaped creation payload. Dimension fields are
// numeric identifier arrays, never free text; a Record only becomes a
// CreateRequest after resolution and validation succeed.
type CreateRequest struct {
	FirstName            string   `json:"firstName"`
	LastName             string   `json:"lastName"`
	UserName             string   `json:"userName"`
	Email                string   `json:"email,omitempty"`
	CellPhone            string   `json:"cellPhone,omitempty"`
	CellPhoneCountryCode string   `json:"cellPhoneCountryCode,omitempty"`
	BirthDate            string   `json:"birthDate,omitempty"`
	HiredFrom            string   `json:"hiredFrom,omitempty"`
	Gender               string   `json:"gender,omitempty"`
	Street1              string   `json:"street1,omitempty"`
	City                 string   `json:"city,omitempty"`
	Zip                  string   `json:"zip,omitempty"`
	Departments          []int    `json:"departments"`
	EmployeeGroups       []int    `json:"employeeGroups,omitempty"`
	EmployeeTypeID       int      `json:"employeeTypeId,omitempty"`
	Custom               map[string]any `json:"-"`
}

// UploadResult is the per-record outcome of one submission attempt.
type UploadResult struct {
	Record   Record
	Row      int
	Success  bool
	RemoteID int
	Message  string
}

// PayrateAssignment derives from one wage annotation on one created employee.
type PayrateAssignment struct {
	EmployeeID int
	GroupID    int
	GroupName  string
	HourlyRate decimal.Decimal
	ValidFrom  time.Time
}

// PayrateResult is collected per assignment, independent of the others.
type PayrateResult struct {
	Assignment PayrateAssignment
	Success    bool
	Message    string
}

// RemoteAPI is the creation surface of the workforce-management platform.
// Implementations live in infrastructure; services never touch HTTP directly.
type RemoteAPI interface {
	Create(ctx context.Context, req CreateRequest) (RemoteRef, error)
	FindByEmails(ctx context.Context, emails []string) (map[string]RemoteRef, error)
	SetPayrate(ctx context.Context, assignment PayrateAssignment) error
}
