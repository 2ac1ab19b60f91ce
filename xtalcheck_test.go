package xtalcheck

import (
	"context"
	"errors"
	"testing"

	"github.com/bft-labs/xtalcheck/pkg/xtal"
)

func TestValidate(t *testing.T) {
	if !Validate(14_318_181) {
		t.Error("Validate(14318181) = false, want true")
	}
	if Validate(14_318_000) {
		t.Error("Validate(14318000) = true, want false")
	}
}

func TestValidateOrExplain(t *testing.T) {
	err := ValidateOrExplain(14_318_000, "Context: video")
	if !errors.Is(err, xtal.ErrUnknownFrequency) {
		t.Fatalf("ValidateOrExplain() error = %v, want ErrUnknownFrequency", err)
	}

	var ufe *xtal.UnknownFrequencyError
	if !errors.As(err, &ufe) {
		t.Fatalf("error %T is not *UnknownFrequencyError", err)
	}
	if ufe.Low.Value != 14_314_000 || ufe.High.Value != 14_318_181 {
		t.Errorf("brackets = %v/%v, want 14314000/14318181", ufe.Low, ufe.High)
	}
}

func TestCheck(t *testing.T) {
	report, err := Check(context.Background(), Config{
		Clocks: []Clock{
			{Name: "cpu", Frequency: 18_432_000, Divisor: 6},
			{Name: "video", Frequency: 14_318_000},
		},
	})
	if err != nil {
		t.Fatalf("Check() error = %v", err)
	}
	if report.OK() {
		t.Fatal("report.OK() = true, want false")
	}
	if got := len(report.Failures()); got != 1 {
		t.Errorf("failures = %d, want 1", got)
	}
}

func TestCheck_NoClocks(t *testing.T) {
	if _, err := Check(context.Background(), Config{}); err == nil {
		t.Error("Check() with no clocks should fail")
	}
}
