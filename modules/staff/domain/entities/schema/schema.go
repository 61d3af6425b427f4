package schema

import "context"

// Property carries the human label for a (possibly custom) employee field.
type Property struct {
	Name        string
	Description string
}

// FieldDefinitions is the remote portal's employee schema: which fields are
// required, read-only, and unique, plus display metadata per field.
type FieldDefinitions struct {
	Required   []string
	ReadOnly   []string
	Unique     []string
	Properties map[string]Property
}

// Provider fetches the field definitions from the remote portal.
type Provider interface {
	FieldDefinitions(ctx context.Context) (FieldDefinitions, error)
}

func contains(list []string, field string) bool {
	for _, f := range list {
		if f == field {
			return true
		}
	}
	return false
}

func (d FieldDefinitions) IsRequired(field string) bool { return contains(d.Required, field) }
func (d FieldDefinitions) IsReadOnly(field string) bool { return contains(d.ReadOnly, field) }
func (d FieldDefinitions) IsUnique(field string) bool   { return contains(d.Unique, field) }

// Label returns the human-readable name for a field, falling back to the
// field name itself.
func (d FieldDefinitions) Label(field string) string {
	if p, ok := d.Properties[field]; ok && p.Description != "" {
		return p.Description
	}
	return field
}
