package planday

import (
	"context"
	"net/http"

	"github.com/Lushbits/pdbulkupload-sub002/modules/staff/domain/entities/schema"
)

type fieldDefinitionsPayload struct {
	Required   []string `json:"required"`
	ReadOnly   []string `json:"readOnly"`
	Unique     []string `json:"unique"`
	Properties map[string]struct {
		Description string `json:"description"`
	} `json:"properties"`
}

// FieldDefinitions fetches the portal's employee schema: required, read-only
// and unique field lists plus display labels for custom fields.
func (c *Client) FieldDefinitions(ctx context.Context) (schema.FieldDefinitions, error) {
	var payload fieldDefinitionsPayload
	if _, err := c.do(ctx, http.MethodGet, "/hr/v1/employees/fielddefinitions", nil, &payload); err != nil {
		return schema.FieldDefinitions{}, err
	}

	defs := schema.FieldDefinitions{
		Required:   payload.Required,
		ReadOnly:   payload.ReadOnly,
		Unique:     payload.Unique,
		Properties: make(map[string]schema.Property, len(payload.Properties)),
	}
	for name, p := range payload.Properties {
		defs.Properties[name] = schema.Property{Name: name, Description: p.Description}
	}
	return defs, nil
}
