package mathutil

import "testing"

func TestRound(t *testing.T) {
	tests := []struct {
		input    float64
		expected float64
	}{
		{1.004, 1.0},
		{1.006, 1.01},
		{-1.006, -1.01},
		{0, 0},
		{123.456, 123.46},
	}

	for _, tt := range tests {
		if got := Round(tt.input); got != tt.expected {
			t.Errorf("Round(%v) = %v, want %v", tt.input, got, tt.expected)
		}
	}
}

func TestIsZero(t *testing.T) {
	if !IsZero(0.004) {
		t.Error("IsZero(0.004) = false, want true")
	}
	if IsZero(0.02) {
		t.Error("IsZero(0.02) = true, want false")
	}
}

func TestWithinTolerance(t *testing.T) {
	if !WithinTolerance(100.0, 100.005, 0.01) {
		t.Error("WithinTolerance(100, 100.005, 0.01) = false, want true")
	}
	if WithinTolerance(100.0, 100.02, 0.01) {
		t.Error("WithinTolerance(100, 100.02, 0.01) = true, want false")
	}
}
