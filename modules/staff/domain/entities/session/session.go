package session

import "context"

// Authenticator is the session boundary to the remote platform. The refresh
// credential is handed to the implementation at construction by the caller;
// the core services never see or store it.
type Authenticator interface {
	// IsAuthenticated probes whether the current session can make calls.
	IsAuthenticated(ctx context.Context) bool
	// Reauthenticate performs one silent re-authentication using the stored
	// refresh credential. A failure is fatal to the current run.
	Reauthenticate(ctx context.Context) error
}
