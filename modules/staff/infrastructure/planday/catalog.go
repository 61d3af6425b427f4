package planday

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Lushbits/pdbulkupload-sub002/modules/staff/domain/entities/catalog"
)

type catalogRow struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// listCatalog pages through one catalog endpoint.
func (c *Client) listCatalog(ctx context.Context, path string) ([]catalog.Entry, error) {
	var entries []catalog.Entry
	offset := 0
	for {
		var page []catalogRow
		env, err := c.do(ctx, http.MethodGet,
			fmt.Sprintf("%s?limit=%d&offset=%d", path, employeePageSize, offset), nil, &page)
		if err != nil {
			return nil, err
		}
		for _, row := range page {
			entries = append(entries, catalog.Entry{ID: row.ID, Name: row.Name})
		}
		offset += len(page)
		if len(page) == 0 || offset >= env.Paging.Total {
			break
		}
	}
	return entries, nil
}

func (c *Client) Departments(ctx context.Context) ([]catalog.Entry, error) {
	return c.listCatalog(ctx, "/hr/v1/departments")
}

func (c *Client) EmployeeGroups(ctx context.Context) ([]catalog.Entry, error) {
	return c.listCatalog(ctx, "/hr/v1/employeegroups")
}

func (c *Client) EmployeeTypes(ctx context.Context) ([]catalog.Entry, error) {
	return c.listCatalog(ctx, "/hr/v1/employeetypes")
}
