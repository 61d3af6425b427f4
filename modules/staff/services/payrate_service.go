package services

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/Lushbits/pdbulkupload-sub002/modules/staff/domain/aggregates/employee"
)

// PayrateProgress is the per-item counter reported during the pay-rate phase.
type PayrateProgress struct {
	Completed int
	Total     int
}

// PayrateService submits hourly-rate assignments one at a time. The phase is
// not atomic: every assignment is attempted regardless of earlier failures,
// and each outcome is collected independently.
type PayrateService struct {
	api employee.RemoteAPI
	log *logrus.Logger
}

func NewPayrateService(api employee.RemoteAPI, log *logrus.Logger) *PayrateService {
	return &PayrateService{api: api, log: log}
}

func (s *PayrateService) Assign(
	ctx context.Context,
	assignments []employee.PayrateAssignment,
	onProgress func(PayrateProgress),
) []employee.PayrateResult {
	results := make([]employee.PayrateResult, 0, len(assignments))
	progress := PayrateProgress{Total: len(assignments)}

	for _, a := range assignments {
		result := employee.PayrateResult{Assignment: a, Success: true}
		if err := s.api.SetPayrate(ctx, a); err != nil {
			result.Success = false
			result.Message = err.Error()
			if s.log != nil {
				s.log.WithFields(logrus.Fields{
					"employeeId": a.EmployeeID,
					"groupId":    a.GroupID,
				}).Warnf("pay-rate assignment failed: %v", err)
			}
		}
		results = append(results, result)

		progress.Completed++
		if onProgress != nil {
			onProgress(progress)
		}
	}
	return results
}
