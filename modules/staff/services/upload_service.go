package services

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/Lushbits/pdbulkupload-sub002/modules/staff/domain/aggregates/employee"
	"github.com/Lushbits/pdbulkupload-sub002/modules/staff/domain/entities/catalog"
	"github.com/Lushbits/pdbulkupload-sub002/modules/staff/domain/entities/session"
	"github.com/Lushbits/pdbulkupload-sub002/pkg/eventbus"
)

const defaultBatchSize = 20

// UploadProgress is mutated only by the orchestrator and handed to callbacks
// by value. succeeded+failed ≤ attempted ≤ total always holds.
type UploadProgress struct {
	Attempted    int
	Succeeded    int
	Failed       int
	Batch        int
	TotalBatches int
	InProgress   bool
}

// Hooks carries the caller's progress callbacks. Batch callbacks fire in
// strict batch order; pay-rate callbacks fire once per assignment.
type Hooks struct {
	OnProgress func(UploadProgress)
	OnPayrate  func(PayrateProgress)
}

// RunReport is the orchestrator's outcome. State distinguishes "nothing was
// uploaded" (error before uploading, PartialUpload false) from "partial
// upload occurred" (PartialUpload true).
type RunReport struct {
	State          UploadState
	Errors         []employee.ValidationError
	Results        []employee.UploadResult
	PayrateResults []employee.PayrateResult
	Progress       UploadProgress
	PartialUpload  bool
	FailureMessage string
}

// UploadService drives the phased submission:
// preparing → validating → authenticating (conditional) → uploading →
// setting-payrates (conditional) → completed | error.
// Submission is gated behind full-batch validation; the first creation
// failure halts all later batches but already-created records stay.
type UploadService struct {
	resolver  *ResolverService
	validator *ValidationService
	payrates  *PayrateService
	api       employee.RemoteAPI
	auth      session.Authenticator
	bus       eventbus.EventBus
	batchSize int
	log       *logrus.Logger
}

func NewUploadService(
	resolver *ResolverService,
	validator *ValidationService,
	payrates *PayrateService,
	api employee.RemoteAPI,
	auth session.Authenticator,
	bus eventbus.EventBus,
	batchSize int,
	log *logrus.Logger,
) *UploadService {
	if batchSize < 1 {
		batchSize = defaultBatchSize
	}
	return &UploadService{
		resolver:  resolver,
		validator: validator,
		payrates:  payrates,
		api:       api,
		auth:      auth,
		bus:       bus,
		batchSize: batchSize,
		log:       log,
	}
}

// Run executes the whole state machine over the given records. Records marked
// for skipping are excluded up front. The returned report carries the final
// state; err is non-nil only when the run could not reach a terminal state on
// its own (e.g. the remote index fetch failed mid-validation).
func (s *UploadService) Run(ctx context.Context, records []employee.Record, hooks Hooks) (*RunReport, error) {
	report := &RunReport{State: StatePreparing}
	state := StatePreparing
	advance := func(ev UploadEvent) {
		next, ok := NextState(state, ev)
		if !ok {
			next = StateError
		}
		state = next
		report.State = state
	}

	advance(EventStart)

	active, origRows := partitionSkipped(records)

	// Pre-flight gate: local validation plus reference resolution over every
	// record. Any blocking finding means no network creation call is made.
	findings := s.validator.ValidateBatch(active, nil)
	remapRows(findings, origRows)

	requests := make([]employee.CreateRequest, len(active))
	wagePlans := make([][]employee.PayrateAssignment, len(active))
	for i, rec := range active {
		req, wages, errs := s.convert(rec, origRows[i])
		requests[i] = req
		wagePlans[i] = wages
		findings = append(findings, errs...)
	}
	employee.SortFindings(findings)
	report.Errors = findings

	if employee.HasBlocking(findings) {
		advance(EventValidationFailed)
		report.FailureMessage = ErrPreflightFailed.Message
		return report, nil
	}

	// Remote-duplicate check: the existing-record index is fetched once and
	// injected into batch validation as data.
	existing, err := s.api.FindByEmails(ctx, collectEmails(active))
	if err != nil {
		advance(EventValidationFailed)
		report.FailureMessage = ErrRemoteLookup.Message
		return report, errors.Wrap(err, ErrRemoteLookup.Message)
	}
	findings = s.validator.ValidateBatch(active, existing)
	remapRows(findings, origRows)
	report.Errors = append(report.Errors, filterCode(findings, employee.CodeRemoteConflict)...)
	employee.SortFindings(report.Errors)
	if employee.HasBlocking(findings) {
		advance(EventValidationFailed)
		report.FailureMessage = ErrPreflightFailed.Message
		return report, nil
	}

	if !s.auth.IsAuthenticated(ctx) {
		advance(EventAuthRequired)
		if err := s.auth.Reauthenticate(ctx); err != nil {
			advance(EventAuthFailed)
			report.FailureMessage = ErrAuthExpired.Message
			if s.log != nil {
				s.log.Errorf("silent re-authentication failed: %v", err)
			}
			return report, nil
		}
	}
	advance(EventAuthenticated)

	halted := s.uploadBatches(ctx, active, origRows, requests, report, hooks)
	report.Progress.InProgress = false
	report.PartialUpload = halted && report.Progress.Succeeded > 0

	if halted {
		advance(EventUploadFailed)
		s.publish(&UploadFinishedEvent{State: state, Succeeded: report.Progress.Succeeded, Failed: report.Progress.Failed})
		return report, nil
	}

	assignments := buildAssignments(report.Results, origRows, wagePlans)
	if len(assignments) > 0 {
		advance(EventPayratesPending)
		report.PayrateResults = s.payrates.Assign(ctx, assignments, hooks.OnPayrate)
		advance(EventPayratesFinished)
	} else {
		advance(EventUploadSucceeded)
	}

	s.publish(&UploadFinishedEvent{State: state, Succeeded: report.Progress.Succeeded, Failed: report.Progress.Failed})
	return report, nil
}

// uploadBatches submits fixed-size batches strictly sequentially, reporting
// progress after each batch. Returns true when a creation failure halted the
// run; successes already submitted are not rolled back.
func (s *UploadService) uploadBatches(
	ctx context.Context,
	active []employee.Record,
	origRows []int,
	requests []employee.CreateRequest,
	report *RunReport,
	hooks Hooks,
) bool {
	total := len(active)
	totalBatches := (total + s.batchSize - 1) / s.batchSize
	progress := UploadProgress{TotalBatches: totalBatches, InProgress: true}

	s.publish(&UploadStartedEvent{Total: total, Batches: totalBatches})

	halted := false
	for b := 0; b < totalBatches && !halted; b++ {
		start := b * s.batchSize
		end := start + s.batchSize
		if end > total {
			end = total
		}
		progress.Batch = b + 1

		for i := start; i < end; i++ {
			progress.Attempted++
			ref, err := s.api.Create(ctx, requests[i])
			if err != nil {
				progress.Failed++
				report.Results = append(report.Results, employee.UploadResult{
					Record:  active[i],
					Row:     origRows[i],
					Success: false,
					Message: err.Error(),
				})
				if s.log != nil {
					s.log.Errorf("creation failed at row %d, halting remaining batches: %v", origRows[i], err)
				}
				halted = true
				break
			}
			progress.Succeeded++
			report.Results = append(report.Results, employee.UploadResult{
				Record:   active[i],
				Row:      origRows[i],
				Success:  true,
				RemoteID: ref.ID,
			})
		}

		report.Progress = progress
		if hooks.OnProgress != nil {
			hooks.OnProgress(progress)
		}
		s.publish(&BatchUploadedEvent{Progress: progress})
	}

	report.Progress = progress
	return halted
}

// convert turns a validated record into a platform create-request plus its
// wage-annotation plan. All resolution findings come back as data.
func (s *UploadService) convert(rec employee.Record, row int) (employee.CreateRequest, []employee.PayrateAssignment, []employee.ValidationError) {
	var findings []employee.ValidationError
	req := employee.CreateRequest{
		FirstName:            rec.String(employee.FieldFirstName),
		LastName:             rec.String(employee.FieldLastName),
		UserName:             rec.String(employee.FieldUserName),
		Email:                rec.String(employee.FieldEmail),
		CellPhone:            rec.String(employee.FieldCellPhone),
		CellPhoneCountryCode: rec.String(employee.FieldCellPhoneCountryCode),
		Gender:               rec.String(employee.FieldGender),
		Street1:              rec.String(employee.FieldStreet1),
		City:                 rec.String(employee.FieldCity),
		Zip:                  rec.String(employee.FieldZip),
	}

	if v := rec.String(employee.FieldBirthDate); v != "" {
		if t, ok := parseDate(v); ok {
			req.BirthDate = t.Format("2006-01-02")
		}
	}
	if v := rec.String(employee.FieldHiredFrom); v != "" {
		if t, ok := parseDate(v); ok {
			req.HiredFrom = t.Format("2006-01-02")
		}
	}

	resolve := func(dim catalog.Dimension) MappingResult {
		text := rec.String(fieldForDimension(dim))
		if text == "" {
			return MappingResult{}
		}
		result := s.resolver.Resolve(text, dim)
		for j := range result.Errors {
			result.Errors[j].Row = row
		}
		for j := range result.Warnings {
			result.Warnings[j].Row = row
		}
		findings = append(findings, result.Errors...)
		findings = append(findings, result.Warnings...)
		return result
	}

	req.Departments = resolve(catalog.Departments).IDs
	req.EmployeeGroups = resolve(catalog.EmployeeGroups).IDs
	if ids := resolve(catalog.EmployeeTypes).IDs; len(ids) > 0 {
		req.EmployeeTypeID = ids[0]
	}

	// Portal-defined custom columns travel as-is; read-only fields never do.
	if custom := rec.Custom(); len(custom) > 0 {
		defs := s.validator.Definitions()
		for k := range custom {
			if defs.IsReadOnly(k) {
				delete(custom, k)
			}
		}
		if len(custom) > 0 {
			req.Custom = custom
		}
	}

	wages := s.planWages(rec, row, &findings)
	return req, wages, findings
}

// planWages resolves each wage annotation's group name and derives the
// assignment skeleton; the employee id is filled in after creation succeeds.
func (s *UploadService) planWages(rec employee.Record, row int, findings *[]employee.ValidationError) []employee.PayrateAssignment {
	annotations := rec.Wages()
	if len(annotations) == 0 {
		return nil
	}

	validFrom := time.Now().Truncate(24 * time.Hour)
	if v := rec.String(employee.FieldHiredFrom); v != "" {
		if t, ok := parseDate(v); ok {
			validFrom = t
		}
	}

	table, ok := s.resolver.catalogs.Table(catalog.EmployeeGroups)
	if !ok {
		return nil
	}

	var wages []employee.PayrateAssignment
	for _, a := range annotations {
		id, found := table.IDFor(catalog.Normalize(a.Group))
		if !found {
			*findings = append(*findings, employee.ValidationError{
				Field:    employee.FieldEmployeeGroups,
				Value:    a.Group,
				Message:  fmt.Sprintf("hourly rate given for unknown employee group %q", a.Group),
				Row:      row,
				Severity: employee.SeverityError,
				Code:     employee.CodeUnresolved,
			})
			continue
		}
		wages = append(wages, employee.PayrateAssignment{
			GroupID:    id,
			GroupName:  a.Group,
			HourlyRate: a.HourlyRate,
			ValidFrom:  validFrom,
		})
	}
	return wages
}

func (s *UploadService) publish(event any) {
	if s.bus != nil {
		s.bus.Publish(event)
	}
}

func partitionSkipped(records []employee.Record) ([]employee.Record, []int) {
	active := make([]employee.Record, 0, len(records))
	rows := make([]int, 0, len(records))
	for i, rec := range records {
		if rec.SkipUpload() {
			continue
		}
		active = append(active, rec)
		rows = append(rows, i)
	}
	return active, rows
}

// remapRows translates finding rows from positions in the filtered slice back
// to positions in the caller's record set. A nil mapping leaves rows alone.
func remapRows(findings []employee.ValidationError, origRows []int) {
	if origRows == nil {
		return
	}
	for i := range findings {
		if findings[i].Row >= 0 && findings[i].Row < len(origRows) {
			findings[i].Row = origRows[findings[i].Row]
		}
	}
}

func collectEmails(records []employee.Record) []string {
	emails := make([]string, 0, len(records))
	for _, rec := range records {
		if v := rec.String(employee.FieldUserName); v != "" {
			emails = append(emails, v)
		}
	}
	return emails
}

// filterCode keeps only findings with the given code.
func filterCode(findings []employee.ValidationError, code string) []employee.ValidationError {
	var out []employee.ValidationError
	for _, f := range findings {
		if f.Code == code {
			out = append(out, f)
		}
	}
	return out
}

// buildAssignments expands every successful record's wage plan into concrete
// assignments carrying the freshly created remote employee id.
func buildAssignments(
	results []employee.UploadResult,
	origRows []int,
	wagePlans [][]employee.PayrateAssignment,
) []employee.PayrateAssignment {
	rowToIdx := make(map[int]int, len(origRows))
	for i, row := range origRows {
		rowToIdx[row] = i
	}

	var assignments []employee.PayrateAssignment
	for _, res := range results {
		if !res.Success {
			continue
		}
		idx, ok := rowToIdx[res.Row]
		if !ok {
			continue
		}
		for _, plan := range wagePlans[idx] {
			plan.EmployeeID = res.RemoteID
			assignments = append(assignments, plan)
		}
	}
	return assignments
}
