package model

import (
	"testing"

	"github.com/YuminosukeSato/irisvc/pkg/errors"
)

func TestStateManager(t *testing.T) {
	s := NewStateManager()

	if s.IsFitted() {
		t.Fatal("new StateManager should not be fitted")
	}

	err := s.RequireFitted("SVC", "Predict")
	var nf *errors.NotFittedError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFittedError, got %v", err)
	}
	if nf.ModelName != "SVC" || nf.Method != "Predict" {
		t.Errorf("unexpected error fields: %+v", nf)
	}

	s.SetDimensions(4, 135)
	s.SetFitted()

	if err := s.RequireFitted("SVC", "Predict"); err != nil {
		t.Errorf("unexpected error after SetFitted: %v", err)
	}
	if f, n := s.GetDimensions(); f != 4 || n != 135 {
		t.Errorf("GetDimensions() = (%d, %d), want (4, 135)", f, n)
	}
	if err := s.RequireFeatures("SVC.Predict", 4); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	var dim *errors.DimensionError
	if !errors.As(s.RequireFeatures("SVC.Predict", 3), &dim) {
		t.Error("expected DimensionError for wrong width")
	}

	s.Reset()
	if s.IsFitted() {
		t.Error("Reset should clear the fitted flag")
	}
	if f, n := s.GetDimensions(); f != 0 || n != 0 {
		t.Errorf("Reset should clear dimensions, got (%d, %d)", f, n)
	}
}
