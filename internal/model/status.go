package model

// JobStatus represents the terminal outcome of one packaging job
type JobStatus string

const (
	// JobStatusSuccess means an archive was produced and loaded
	JobStatusSuccess JobStatus = "Success"

	// JobStatusFailure means a stage failed and no payload is available
	JobStatusFailure JobStatus = "Failure"
)

// String returns the string representation of JobStatus
func (js JobStatus) String() string {
	return string(js)
}

// IsSuccess returns true if the job produced a payload
func (js JobStatus) IsSuccess() bool {
	return js == JobStatusSuccess
}

// Phase identifies what the pipeline is doing when a progress event is emitted
type Phase string

const (
	PhasePreparing      Phase = "preparing"
	PhaseDownloading    Phase = "downloading"
	PhasePostProcessing Phase = "post_processing"
	PhaseItemFinished   Phase = "item_finished"
	PhaseArchiving      Phase = "archiving"
	PhaseVerifying      Phase = "verifying"
	PhaseDone           Phase = "done"
)

// String returns the string representation of Phase
func (p Phase) String() string {
	return string(p)
}

// IsTransfer returns true for phases reported by the download engine
func (p Phase) IsTransfer() bool {
	return p == PhaseDownloading || p == PhasePostProcessing || p == PhaseItemFinished
}
