// 指示: miu200521358
package mmath

import (
	"math"
	"testing"
)

func TestDeltaAngle(t *testing.T) {
	testCases := []struct {
		current float64
		target  float64
		want    float64
	}{
		{current: 10, target: 30, want: 20},
		{current: 350, target: 10, want: 20},
		{current: 10, target: 350, want: -20},
		{current: 0, target: 180, want: 180},
		{current: -170, target: 170, want: -20},
	}
	for _, tc := range testCases {
		if got := DeltaAngle(tc.current, tc.target); math.Abs(got-tc.want) > 1e-9 {
			t.Fatalf("delta angle mismatch: current=%v target=%v got=%v want=%v", tc.current, tc.target, got, tc.want)
		}
	}
}

func TestInOutQuintic(t *testing.T) {
	if got := InOutQuintic(0); got != 0 {
		t.Fatalf("quintic(0) mismatch: got=%v", got)
	}
	if got := InOutQuintic(1); math.Abs(got-1) > 1e-12 {
		t.Fatalf("quintic(1) mismatch: got=%v", got)
	}
	if got := InOutQuintic(0.5); math.Abs(got-0.5) > 1e-12 {
		t.Fatalf("quintic(0.5) mismatch: got=%v", got)
	}
	if got := InOutQuintic(2); math.Abs(got-1) > 1e-12 {
		t.Fatalf("quintic clamp mismatch: got=%v", got)
	}
}

func TestClampAndLerp(t *testing.T) {
	if got := ClampFloat(5, 0, 2); got != 2 {
		t.Fatalf("clamp mismatch: got=%v", got)
	}
	if got := LerpFloat(2, 4, 0.25); got != 2.5 {
		t.Fatalf("lerp mismatch: got=%v", got)
	}
	if IsFiniteFloat(math.NaN()) || IsFiniteFloat(math.Inf(1)) || !IsFiniteFloat(1) {
		t.Fatalf("finite check mismatch")
	}
}
