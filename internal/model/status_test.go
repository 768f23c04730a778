package model

import "testing"

func TestJobStatus_IsSuccess(t *testing.T) {
	tests := []struct {
		status   JobStatus
		expected bool
	}{
		{JobStatusSuccess, true},
		{JobStatusFailure, false},
		{JobStatus(""), false},
	}

	for _, test := range tests {
		result := test.status.IsSuccess()
		if result != test.expected {
			t.Errorf("JobStatus(%s).IsSuccess() = %v, expected %v", test.status, result, test.expected)
		}
	}
}

func TestJobStatus_String(t *testing.T) {
	status := JobStatusFailure
	expected := "Failure"
	result := status.String()

	if result != expected {
		t.Errorf("JobStatus.String() = %s, expected %s", result, expected)
	}
}

func TestPhase_IsTransfer(t *testing.T) {
	tests := []struct {
		phase    Phase
		expected bool
	}{
		{PhasePreparing, false},
		{PhaseDownloading, true},
		{PhasePostProcessing, true},
		{PhaseItemFinished, true},
		{PhaseArchiving, false},
		{PhaseVerifying, false},
		{PhaseDone, false},
	}

	for _, test := range tests {
		result := test.phase.IsTransfer()
		if result != test.expected {
			t.Errorf("Phase(%s).IsTransfer() = %v, expected %v", test.phase, result, test.expected)
		}
	}
}
