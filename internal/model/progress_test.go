package model

import (
	"errors"
	"testing"
)

func TestProgressEvent_Fraction(t *testing.T) {
	tests := []struct {
		downloaded, total int64
		expected          float64
	}{
		{0, 0, -1},
		{50, 0, -1},
		{0, 100, 0},
		{50, 100, 0.5},
		{150, 100, 1},
	}

	for _, test := range tests {
		e := ProgressEvent{Downloaded: test.downloaded, Total: test.total}
		if got := e.Fraction(); got != test.expected {
			t.Errorf("Fraction() with %d/%d = %v, expected %v", test.downloaded, test.total, got, test.expected)
		}
	}
}

func TestProgressFunc_Report(t *testing.T) {
	var got ProgressEvent
	var r ProgressReporter = ProgressFunc(func(e ProgressEvent) { got = e })
	r.Report(ProgressEvent{Phase: PhaseArchiving, Item: "a.mp4"})

	if got.Phase != PhaseArchiving || got.Item != "a.mp4" {
		t.Errorf("unexpected event delivered: %+v", got)
	}
}

func TestResultConstructors(t *testing.T) {
	ok := Succeeded([]byte("zip"), 3)
	if !ok.Status.IsSuccess() || ok.Message != SuccessMessage || len(ok.Payload) == 0 || ok.Files != 3 {
		t.Errorf("unexpected success result: %+v", ok)
	}

	failed := Failed(errors.New("boom"))
	if failed.Status != JobStatusFailure || failed.Message != "boom" || failed.Payload != nil {
		t.Errorf("unexpected failure result: %+v", failed)
	}
}
