package model

import (
	"errors"
	"fmt"
)

// ErrorKind classifies why a job failed
type ErrorKind string

const (
	KindInvalidRequest    ErrorKind = "invalid_request"
	KindMissingDependency ErrorKind = "missing_dependency"
	KindDownloadEngine    ErrorKind = "download_engine"
	KindArchiving         ErrorKind = "archiving"
	KindTooLarge          ErrorKind = "artifact_too_large"
	KindMissingArtifact   ErrorKind = "missing_artifact"
	KindInternal          ErrorKind = "internal"
)

// String returns the string representation of ErrorKind
func (k ErrorKind) String() string {
	return string(k)
}

// MissingArtifactMessage is reported when the archive vanished after archiving
const MissingArtifactMessage = "Zip file creation failed."

// bytesPerMB is the unit used in size messages
const bytesPerMB = 1024 * 1024

// Error is a classified pipeline failure. Size and Ceiling are only set for
// KindTooLarge.
type Error struct {
	Kind    ErrorKind
	Msg     string
	Size    int64 // measured archive size in bytes
	Ceiling int64 // configured ceiling in bytes
	Err     error
}

func (e *Error) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return string(e.Kind)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of the first *Error in err's chain, or KindInternal
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// NewInvalidRequestError wraps a validation failure
func NewInvalidRequestError(err error) *Error {
	return &Error{Kind: KindInvalidRequest, Msg: err.Error(), Err: err}
}

// NewMissingDependencyError reports a required binary that cannot be found
func NewMissingDependencyError(binary string, err error) *Error {
	return &Error{
		Kind: KindMissingDependency,
		Msg:  fmt.Sprintf("%s is not installed or not on PATH; it is required to merge and convert media", binary),
		Err:  err,
	}
}

// NewDownloadEngineError carries the engine's own message verbatim
func NewDownloadEngineError(engineMsg string, err error) *Error {
	if engineMsg == "" && err != nil {
		engineMsg = err.Error()
	}
	return &Error{Kind: KindDownloadEngine, Msg: engineMsg, Err: err}
}

// NewArchivingError reports a failure while writing the archive
func NewArchivingError(err error) *Error {
	return &Error{Kind: KindArchiving, Msg: fmt.Sprintf("failed to create archive: %v", err), Err: err}
}

// NewTooLargeError reports an archive above the ceiling. The message carries
// the measured size to one decimal place and the ceiling, both in MB.
func NewTooLargeError(size, ceiling int64) *Error {
	return &Error{
		Kind: KindTooLarge,
		Msg: fmt.Sprintf("archive is %.1f MB, exceeds the %s MB limit; lower the item limit and try again",
			float64(size)/bytesPerMB, formatMB(ceiling)),
		Size:    size,
		Ceiling: ceiling,
	}
}

// NewMissingArtifactError reports an archive that is absent after archiving
func NewMissingArtifactError(err error) *Error {
	return &Error{Kind: KindMissingArtifact, Msg: MissingArtifactMessage, Err: err}
}

// NewInternalError reports an unexpected failure, such as a recovered panic
func NewInternalError(err error) *Error {
	return &Error{Kind: KindInternal, Msg: fmt.Sprintf("internal error: %v", err), Err: err}
}

// formatMB prints whole megabytes without decimals and fractional ones with one
func formatMB(n int64) string {
	if n%bytesPerMB == 0 {
		return fmt.Sprintf("%d", n/bytesPerMB)
	}
	return fmt.Sprintf("%.1f", float64(n)/bytesPerMB)
}
