package transcribe

// JobStatus is the state of an external transcription job.
type JobStatus string

const (
	StatusInProgress JobStatus = "in_progress"
	StatusCompleted  JobStatus = "completed"
	StatusFailed     JobStatus = "failed"
)

// Job is the transcription service's view of one job.
type Job struct {
	ID            string
	Status        JobStatus
	OutputKey     string // object key of the transcript document, set on completion
	FailureReason string
}

// StartedJob is returned by Manager.Start.
type StartedJob struct {
	JobID      string
	StorageKey string
}

// Result is one reconciliation of job status into note state. Err holds
// a non-fatal fetch/parse failure; when set together with
// StatusInProgress, the caller should simply poll again later.
type Result struct {
	Status     JobStatus
	Transcript string
	Confidence *float64
	Err        string
}
