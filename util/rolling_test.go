package util

import "testing"

func TestRollingMean(t *testing.T) {
	r := NewRolling(3)
	if r.Mean() != 0 {
		t.Errorf("empty rolling mean should be 0")
	}
	r.Add(1)
	r.Add(2)
	if got := r.Mean(); got != 1.5 {
		t.Errorf("expected 1.5, got %f", got)
	}
	r.Add(3)
	r.Add(10) // evicts the 1
	if got := r.Mean(); got != 5 {
		t.Errorf("expected 5, got %f", got)
	}
	if r.Len() != 3 {
		t.Errorf("expected window length 3, got %d", r.Len())
	}
}
