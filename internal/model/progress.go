package model

// ProgressEvent is pushed by the pipeline while a job runs
type ProgressEvent struct {
	JobID      string
	Phase      Phase
	Item       string  // current file name, if known
	Downloaded int64   // bytes downloaded for the current item
	Total      int64   // total bytes for the current item, 0 if unknown
	Speed      float64 // bytes per second, 0 if unknown
	Index      int     // playlist position of the current item, 0 if unknown
	Count      int     // playlist size, 0 if unknown
}

// Fraction returns download completion in 0.0 to 1.0, or -1 if the total is unknown
func (e ProgressEvent) Fraction() float64 {
	if e.Total <= 0 {
		return -1
	}
	f := float64(e.Downloaded) / float64(e.Total)
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// ProgressReporter receives progress events. Implementations must be safe for
// use from the engine's callback goroutine.
type ProgressReporter interface {
	Report(ProgressEvent)
}

// ProgressFunc adapts a function to ProgressReporter
type ProgressFunc func(ProgressEvent)

// Report calls f(e)
func (f ProgressFunc) Report(e ProgressEvent) {
	f(e)
}

// NopReporter discards every event
type NopReporter struct{}

// Report does nothing
func (NopReporter) Report(ProgressEvent) {}
