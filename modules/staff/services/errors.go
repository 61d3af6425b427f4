package services

import "github.com/Lushbits/pdbulkupload-sub002/pkg/serrors"

var (
	// ErrAuthExpired means the session was expired and the single silent
	// re-authentication attempt failed; manual re-auth is required.
	ErrAuthExpired = serrors.NewError("AUTH_EXPIRED", "session expired and silent re-authentication failed", "")

	// ErrPreflightFailed gates submission: the batch had blocking findings and
	// no network creation call was made.
	ErrPreflightFailed = serrors.NewError("PREFLIGHT_FAILED", "batch validation found blocking errors", "")

	// ErrRemoteLookup means the existing-employee index could not be fetched,
	// so the remote-duplicate check was impossible.
	ErrRemoteLookup = serrors.NewError("REMOTE_LOOKUP_FAILED", "could not fetch existing employees for duplicate detection", "")
)
