// 指示: miu200521358
package ik

import (
	"math"
	"testing"

	"github.com/miu200521358/mu_vrik/pkg/domain/mmath"
)

func TestSolveTrigonometricBentElbow(t *testing.T) {
	chain := mustNewChain(t, newStraightPose(0.3, 0.25))
	target := mmath.NewVec3(0, 0, 0.5)

	SolveTrigonometric(chain, 0, 1, 2, target, mmath.UNIT_Y_NEG_VEC3, 1)

	shoulder := chain.Bone(0).SolverPosition
	elbow := chain.Bone(1).SolverPosition
	hand := chain.Bone(2).SolverPosition
	if got := hand.Distance(target); got > 1e-9 {
		t.Fatalf("hand error too large: got=%v", got)
	}
	if got := elbow.Distance(shoulder); math.Abs(got-0.3) > 1e-9 {
		t.Fatalf("upper length mismatch: got=%v want=0.3", got)
	}
	if got := hand.Distance(elbow); math.Abs(got-0.25) > 1e-9 {
		t.Fatalf("fore length mismatch: got=%v want=0.25", got)
	}

	x := (0.25 + 0.09 - 0.0625) / (2 * 0.5)
	want := mmath.NewVec3(math.Sqrt(0.09-x*x), 0, x)
	if !elbow.NearEquals(want, 1e-9) {
		t.Fatalf("elbow position mismatch: got=%v want=%v", elbow, want)
	}
}

func TestSolveTrigonometricUnreachableExtends(t *testing.T) {
	chain := mustNewChain(t, newStraightPose(0.3, 0.25))
	chain.RotateAroundPoint(1, chain.Bone(1).SolverPosition, mmath.NewQuaternionFromAxisDegree(mmath.UNIT_Y_VEC3, 60))
	target := mmath.NewVec3(0.2, 0.4, 0.9)

	SolveTrigonometric(chain, 0, 1, 2, target, mmath.UNIT_Y_NEG_VEC3, 1)

	shoulder := chain.Bone(0).SolverPosition
	elbow := chain.Bone(1).SolverPosition
	hand := chain.Bone(2).SolverPosition
	if got := hand.Distance(shoulder); math.Abs(got-0.55) > 1e-9 {
		t.Fatalf("extended reach mismatch: got=%v want=0.55", got)
	}
	wantDir := target.Normalized()
	if got := hand.Normalized(); !got.NearEquals(wantDir, 1e-9) {
		t.Fatalf("extended direction mismatch: got=%v want=%v", got, wantDir)
	}
	if got := elbow.Normalized(); !got.NearEquals(wantDir, 1e-9) {
		t.Fatalf("elbow should lie on the line: got=%v want=%v", got, wantDir)
	}
}

func TestSolveTrigonometricZeroWeightIsNoop(t *testing.T) {
	chain := mustNewChain(t, newStraightPose(0.3, 0.25))
	before := chain.Snapshot()
	SolveTrigonometric(chain, 0, 1, 2, mmath.NewVec3(0, 0.2, 0.3), mmath.UNIT_Y_NEG_VEC3, 0)
	after := chain.Snapshot()
	for i := range before.Positions {
		if !before.Positions[i].NearEquals(after.Positions[i], 0) || !before.Rotations[i].NearEquals(after.Rotations[i], 0) {
			t.Fatalf("zero weight should not change bone %d", i)
		}
	}
}

func TestSolveTrigonometricTargetAtRootIsNoop(t *testing.T) {
	chain := mustNewChain(t, newStraightPose(0.3, 0.25))
	before := chain.Snapshot()
	SolveTrigonometric(chain, 0, 1, 2, mmath.ZERO_VEC3, mmath.UNIT_Y_NEG_VEC3, 1)
	after := chain.Snapshot()
	for i := range before.Positions {
		if !after.Positions[i].IsFinite() || !before.Positions[i].NearEquals(after.Positions[i], 0) {
			t.Fatalf("degenerate target should keep bone %d: got=%v", i, after.Positions[i])
		}
	}
}

func TestSolveTrigonometricPartialWeight(t *testing.T) {
	chain := mustNewChain(t, newStraightPose(0.3, 0.25))
	target := mmath.NewVec3(0, 0, 0.5)
	SolveTrigonometric(chain, 0, 1, 2, target, mmath.UNIT_Y_NEG_VEC3, 0.5)

	hand := chain.Bone(2).SolverPosition
	start := mmath.NewVec3(0.55, 0, 0)
	if hand.Distance(target) >= start.Distance(target) {
		t.Fatalf("partial weight should approach target: hand=%v", hand)
	}
	if hand.Distance(target) < 1e-3 {
		t.Fatalf("partial weight should not reach target: hand=%v", hand)
	}
	if got := chain.Bone(1).SolverPosition.Length(); math.Abs(got-0.3) > 1e-9 {
		t.Fatalf("upper length should be preserved: got=%v", got)
	}
}

func TestSolveTrigonometricIdempotent(t *testing.T) {
	live := newStraightPose(0.3, 0.25)
	chain := mustNewChain(t, live)
	target := mmath.NewVec3(0.1, -0.2, 0.35)

	SolveTrigonometric(chain, 0, 1, 2, target, mmath.UNIT_Y_NEG_VEC3, 1)
	first := chain.Snapshot()

	if err := chain.Read(live); err != nil {
		t.Fatalf("unexpected read error: %v", err)
	}
	SolveTrigonometric(chain, 0, 1, 2, target, mmath.UNIT_Y_NEG_VEC3, 1)
	second := chain.Snapshot()
	for i := range first.Positions {
		if !first.Positions[i].NearEquals(second.Positions[i], 0) || !first.Rotations[i].NearEquals(second.Rotations[i], 0) {
			t.Fatalf("repeated solve drift at bone %d: first=%v second=%v", i, first.Positions[i], second.Positions[i])
		}
	}
}
