package planday

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Lushbits/pdbulkupload-sub002/modules/staff/domain/aggregates/employee"
)

type payratePayload struct {
	EmployeeGroupID int    `json:"employeeGroupId"`
	Rate            string `json:"rate"`
	ValidFrom       string `json:"validFrom"`
}

// SetPayrate assigns one hourly rate to one (employee, group) pair. Rates go
// over the wire as fixed two-decimal strings to avoid float rounding.
func (c *Client) SetPayrate(ctx context.Context, a employee.PayrateAssignment) error {
	payload := payratePayload{
		EmployeeGroupID: a.GroupID,
		Rate:            a.HourlyRate.StringFixed(2),
		ValidFrom:       a.ValidFrom.Format("2006-01-02"),
	}
	path := fmt.Sprintf("/pay/v1/employees/%d/payrates", a.EmployeeID)
	_, err := c.do(ctx, http.MethodPut, path, payload, nil)
	return err
}
