package main

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/Lushbits/pdbulkupload-sub002/modules/staff/domain/aggregates/employee"
	"github.com/Lushbits/pdbulkupload-sub002/modules/staff/domain/entities/catalog"
	"github.com/Lushbits/pdbulkupload-sub002/modules/staff/infrastructure/planday"
	"github.com/Lushbits/pdbulkupload-sub002/modules/staff/infrastructure/spreadsheet"
	"github.com/Lushbits/pdbulkupload-sub002/modules/staff/services"
	"github.com/Lushbits/pdbulkupload-sub002/pkg/configuration"
)

// app wires configuration, the portal client and the services once per
// invocation. Catalogs and schema are fetched a single time; the lookup
// tables are read-only afterwards.
type app struct {
	conf      *configuration.Configuration
	log       *logrus.Logger
	client    *planday.Client
	catalogs  *catalog.Set
	resolver  *services.ResolverService
	validator *services.ValidationService
}

func newApp(ctx context.Context) (*app, error) {
	conf := configuration.Use()
	log := conf.Logger()

	if err := conf.Planday.Validate(); err != nil {
		return nil, err
	}

	client := planday.NewClient(planday.Config{
		ClientID:     conf.Planday.ClientID,
		RefreshToken: conf.Planday.RefreshToken,
		TokenURL:     conf.Planday.TokenURL,
		APIBaseURL:   conf.Planday.APIBaseURL,
	}, log)

	if err := client.Reauthenticate(ctx); err != nil {
		return nil, fmt.Errorf("authenticating against the portal: %w", err)
	}

	catalogs, err := catalog.Load(ctx, client)
	if err != nil {
		return nil, err
	}
	defs, err := client.FieldDefinitions(ctx)
	if err != nil {
		return nil, err
	}
	validator, err := services.NewValidationService(defs)
	if err != nil {
		return nil, err
	}

	return &app{
		conf:      conf,
		log:       log,
		client:    client,
		catalogs:  catalogs,
		resolver:  services.NewResolverService(catalogs),
		validator: validator,
	}, nil
}

func (a *app) readRecords(path string) ([]employee.Record, error) {
	reader := spreadsheet.NewReader(a.conf.Upload.WagePrefix, a.conf.Upload.DefaultSheet)
	return reader.ReadFile(path)
}

// localFindings runs the same local gate the orchestrator uses: batch
// validation plus reference resolution over every record.
func (a *app) localFindings(records []employee.Record) []employee.ValidationError {
	findings := a.validator.ValidateBatch(records, nil)
	for row, rec := range records {
		for _, dim := range []catalog.Dimension{catalog.Departments, catalog.EmployeeGroups, catalog.EmployeeTypes} {
			text := rec.String(fieldFor(dim))
			if text == "" {
				continue
			}
			result := a.resolver.Resolve(text, dim)
			for _, e := range append(result.Errors, result.Warnings...) {
				e.Row = row
				findings = append(findings, e)
			}
		}
	}
	employee.SortFindings(findings)
	return findings
}

func fieldFor(dim catalog.Dimension) string {
	switch dim {
	case catalog.EmployeeTypes:
		return employee.FieldEmployeeTypeID
	case catalog.EmployeeGroups:
		return employee.FieldEmployeeGroups
	default:
		return employee.FieldDepartments
	}
}

func printFindings(findings []employee.ValidationError) {
	for _, f := range findings {
		marker := "ERROR"
		if f.Severity == employee.SeverityWarning {
			marker = "WARN "
		}
		fmt.Printf("%s row %d  %s: %s\n", marker, f.Row, f.Field, f.Message)
	}
}
