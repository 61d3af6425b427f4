package planday

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/Lushbits/pdbulkupload-sub002/modules/staff/domain/aggregates/employee"
)

const employeePageSize = 50

type remoteEmployee struct {
	ID        int    `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	UserName  string `json:"userName"`
}

func (e remoteEmployee) ref() employee.RemoteRef {
	return employee.RemoteRef{
		ID:       e.ID,
		Name:     strings.TrimSpace(e.FirstName + " " + e.LastName),
		UserName: e.UserName,
	}
}

// Create submits one employee creation request.
func (c *Client) Create(ctx context.Context, req employee.CreateRequest) (employee.RemoteRef, error) {
	payload, err := createPayload(req)
	if err != nil {
		return employee.RemoteRef{}, err
	}
	var created remoteEmployee
	if _, err := c.do(ctx, http.MethodPost, "/hr/v1/employees", payload, &created); err != nil {
		return employee.RemoteRef{}, err
	}
	return created.ref(), nil
}

// createPayload flattens the typed request and its custom fields into the
// JSON object the portal expects.
func createPayload(req employee.CreateRequest) (map[string]any, error) {
	payload := map[string]any{
		"firstName":   req.FirstName,
		"lastName":    req.LastName,
		"userName":    req.UserName,
		"departments": req.Departments,
	}
	setIf := func(key, value string) {
		if value != "" {
			payload[key] = value
		}
	}
	setIf("email", req.Email)
	setIf("cellPhone", req.CellPhone)
	setIf("cellPhoneCountryCode", req.CellPhoneCountryCode)
	setIf("birthDate", req.BirthDate)
	setIf("hiredFrom", req.HiredFrom)
	setIf("gender", req.Gender)
	setIf("street1", req.Street1)
	setIf("city", req.City)
	setIf("zip", req.Zip)
	if len(req.EmployeeGroups) > 0 {
		payload["employeeGroups"] = req.EmployeeGroups
	}
	if req.EmployeeTypeID != 0 {
		payload["employeeTypeId"] = req.EmployeeTypeID
	}
	for k, v := range req.Custom {
		if _, reserved := payload[k]; reserved {
			return nil, fmt.Errorf("custom field %q collides with a standard field", k)
		}
		payload[k] = v
	}
	return payload, nil
}

// FindByEmails pages through the portal's employee list and returns the
// subset of requested emails that already exist remotely, keyed by
// normalized email.
func (c *Client) FindByEmails(ctx context.Context, emails []string) (map[string]employee.RemoteRef, error) {
	wanted := make(map[string]bool, len(emails))
	for _, e := range emails {
		wanted[normalizeEmail(e)] = true
	}

	found := make(map[string]employee.RemoteRef)
	offset := 0
	for {
		var page []remoteEmployee
		env, err := c.do(ctx, http.MethodGet,
			fmt.Sprintf("/hr/v1/employees?limit=%d&offset=%d", employeePageSize, offset), nil, &page)
		if err != nil {
			return nil, err
		}
		for _, e := range page {
			key := normalizeEmail(e.UserName)
			if wanted[key] {
				found[key] = e.ref()
			}
		}
		offset += len(page)
		if len(page) == 0 || offset >= env.Paging.Total {
			break
		}
	}
	return found, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
