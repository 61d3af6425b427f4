package services

// UploadState is the orchestrator's phase. The value plus NextState form a
// pure state machine, testable without any network stub.
type UploadState string

const (
	StatePreparing       UploadState = "preparing"
	StateValidating      UploadState = "validating"
	StateAuthenticating  UploadState = "authenticating"
	StateUploading       UploadState = "uploading"
	StateSettingPayrates UploadState = "setting-payrates"
	StateCompleted       UploadState = "completed"
	StateError           UploadState = "error"
)

type UploadEvent string

const (
	EventStart            UploadEvent = "start"
	EventValidationFailed UploadEvent = "validation-failed"
	EventAuthRequired     UploadEvent = "auth-required"
	EventAuthenticated    UploadEvent = "authenticated"
	EventAuthFailed       UploadEvent = "auth-failed"
	EventUploadSucceeded  UploadEvent = "upload-succeeded"
	EventUploadFailed     UploadEvent = "upload-failed"
	EventPayratesPending  UploadEvent = "payrates-pending"
	EventPayratesFinished UploadEvent = "payrates-finished"
)

type stateKey struct {
	state UploadState
	event UploadEvent
}

var transitions = map[stateKey]UploadState{
	{StatePreparing, EventStart}:                  StateValidating,
	{StateValidating, EventValidationFailed}:      StateError,
	{StateValidating, EventAuthRequired}:          StateAuthenticating,
	{StateValidating, EventAuthenticated}:         StateUploading,
	{StateAuthenticating, EventAuthenticated}:     StateUploading,
	{StateAuthenticating, EventAuthFailed}:        StateError,
	{StateUploading, EventUploadFailed}:           StateError,
	{StateUploading, EventUploadSucceeded}:        StateCompleted,
	{StateUploading, EventPayratesPending}:        StateSettingPayrates,
	{StateSettingPayrates, EventPayratesFinished}: StateCompleted,
}

// NextState returns the successor state for an event. The second return is
// false for transitions the machine does not define.
func NextState(state UploadState, event UploadEvent) (UploadState, bool) {
	next, ok := transitions[stateKey{state, event}]
	return next, ok
}

// Terminal reports whether the machine can advance no further.
func (s UploadState) Terminal() bool {
	return s == StateCompleted || s == StateError
}
