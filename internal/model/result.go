package model

// Delivery metadata for the packaged archive
const (
	ArchiveFileName = "my_playlist.zip"
	ArchiveMIMEType = "application/zip"
)

// SuccessMessage is the message carried by every successful JobResult
const SuccessMessage = "Success"

// JobResult is the single outcome of one pipeline invocation. Payload is set
// iff Status is JobStatusSuccess.
type JobResult struct {
	JobID     string
	Status    JobStatus
	Message   string
	Payload   []byte
	Files     int   // media files packaged
	Requested int   // playlist entries found upstream, 0 when unknown
	Err       error // classified failure, nil on success
}

// Succeeded builds a successful result
func Succeeded(payload []byte, files int) JobResult {
	return JobResult{
		Status:  JobStatusSuccess,
		Message: SuccessMessage,
		Payload: payload,
		Files:   files,
	}
}

// Failed builds a failed result from a classified error
func Failed(err error) JobResult {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	return JobResult{
		Status:  JobStatusFailure,
		Message: msg,
		Err:     err,
	}
}
