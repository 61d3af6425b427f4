package services

// Events published on the event bus alongside the direct progress callbacks.
// Subscribers must not assume delivery before the next batch starts.

type UploadStartedEvent struct {
	Total   int
	Batches int
}

type BatchUploadedEvent struct {
	Progress UploadProgress
}

type UploadFinishedEvent struct {
	State     UploadState
	Succeeded int
	Failed    int
}
