// 指示: miu200521358
package mmath

import (
	"math"
	"testing"
)

func TestQuaternionFromAxisDegreeRotatesVector(t *testing.T) {
	q := NewQuaternionFromAxisDegree(UNIT_Y_VEC3, 90)
	got := q.MulVec3(UNIT_Z_VEC3)
	if !got.NearEquals(UNIT_X_VEC3, 1e-9) {
		t.Fatalf("rotate mismatch: got=%v want=%v", got, UNIT_X_VEC3)
	}
}

func TestQuaternionFromAxisAngleZeroAxis(t *testing.T) {
	q := NewQuaternionFromAxisAngle(ZERO_VEC3, 1)
	if !q.IsIdent() {
		t.Fatalf("zero axis should be identity: got=%v", q)
	}
}

func TestQuaternionFromTo(t *testing.T) {
	testCases := []struct {
		name string
		from Vec3
		to   Vec3
	}{
		{name: "orthogonal", from: UNIT_X_VEC3, to: UNIT_Y_VEC3},
		{name: "same", from: UNIT_Z_VEC3, to: NewVec3(0, 0, 3)},
		{name: "opposite", from: UNIT_X_VEC3, to: UNIT_X_NEG_VEC3},
		{name: "opposite y", from: UNIT_Y_VEC3, to: UNIT_Y_NEG_VEC3},
		{name: "oblique", from: NewVec3(1, 2, 3), to: NewVec3(-2, 0.5, 1)},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			q := NewQuaternionFromTo(tc.from, tc.to)
			if !q.IsFinite() {
				t.Fatalf("from-to should be finite: got=%v", q)
			}
			got := q.MulVec3(tc.from.Normalized())
			want := tc.to.Normalized()
			if !got.NearEquals(want, 1e-9) {
				t.Fatalf("from-to mismatch: got=%v want=%v", got, want)
			}
		})
	}
}

func TestQuaternionFromToZeroIsIdentity(t *testing.T) {
	if q := NewQuaternionFromTo(ZERO_VEC3, UNIT_X_VEC3); !q.IsIdent() {
		t.Fatalf("zero from should be identity: got=%v", q)
	}
	if q := NewQuaternionFromTo(UNIT_X_VEC3, ZERO_VEC3); !q.IsIdent() {
		t.Fatalf("zero to should be identity: got=%v", q)
	}
}

func TestQuaternionLookRotation(t *testing.T) {
	q := NewQuaternionLookRotation(UNIT_X_VEC3, UNIT_Y_VEC3)
	if got := q.MulVec3(UNIT_Z_VEC3); !got.NearEquals(UNIT_X_VEC3, 1e-9) {
		t.Fatalf("look forward mismatch: got=%v want=%v", got, UNIT_X_VEC3)
	}
	if got := q.MulVec3(UNIT_Y_VEC3); !got.NearEquals(UNIT_Y_VEC3, 1e-9) {
		t.Fatalf("look up mismatch: got=%v want=%v", got, UNIT_Y_VEC3)
	}
	if !NewQuaternionLookRotation(UNIT_Z_VEC3, UNIT_Y_VEC3).IsIdent() {
		t.Fatalf("default look rotation should be identity")
	}
	parallel := NewQuaternionLookRotation(UNIT_Y_VEC3, UNIT_Y_VEC3)
	if got := parallel.MulVec3(UNIT_Z_VEC3); !parallel.IsFinite() || !got.NearEquals(UNIT_Y_VEC3, 1e-9) {
		t.Fatalf("parallel look rotation mismatch: got=%v", got)
	}
}

func TestQuaternionInvertedAndMuled(t *testing.T) {
	q := eulerDegreesForTest(10, 20, 30)
	if got := q.Muled(q.Inverted()); !got.IsIdent() {
		t.Fatalf("q*inv(q) should be identity: got=%v", got)
	}
	a := NewQuaternionFromAxisDegree(UNIT_Y_VEC3, 90)
	b := NewQuaternionFromAxisDegree(UNIT_X_VEC3, 90)
	// bを先に適用する
	got := a.Muled(b).MulVec3(UNIT_Z_VEC3)
	want := a.MulVec3(b.MulVec3(UNIT_Z_VEC3))
	if !got.NearEquals(want, 1e-9) {
		t.Fatalf("mul order mismatch: got=%v want=%v", got, want)
	}
}

func TestQuaternionFromToRotation(t *testing.T) {
	from := eulerDegreesForTest(0, 30, 0)
	to := eulerDegreesForTest(45, 10, 5)
	delta := FromToRotation(from, to)
	if got := delta.Muled(from); !got.NearEquals(to, 1e-9) {
		t.Fatalf("from-to rotation mismatch: got=%v want=%v", got, to)
	}
}

func TestQuaternionLerpAndSlerpShortestPath(t *testing.T) {
	a := NewQuaternionFromAxisDegree(UNIT_Y_VEC3, 10)
	b := NewQuaternionFromAxisDegree(UNIT_Y_VEC3, 50)
	negB := NewQuaternionByValues(-b.X(), -b.Y(), -b.Z(), -b.W())

	slerp := a.Slerp(negB, 0.5)
	want := NewQuaternionFromAxisDegree(UNIT_Y_VEC3, 30)
	if !slerp.NearEquals(want, 1e-9) {
		t.Fatalf("slerp mismatch: got=%v want=%v", slerp, want)
	}
	lerp := a.Lerp(negB, 0.5)
	if !lerp.NearEquals(want, 1e-9) {
		t.Fatalf("lerp mismatch: got=%v want=%v", lerp, want)
	}
	if got := a.Slerp(b, 2); !got.NearEquals(b, 1e-12) {
		t.Fatalf("slerp clamp mismatch: got=%v want=%v", got, b)
	}
	if got := a.Lerp(b, -1); !got.NearEquals(a, 1e-12) {
		t.Fatalf("lerp clamp mismatch: got=%v want=%v", got, a)
	}
}

func TestQuaternionToAxisAngle(t *testing.T) {
	axis, angle := NewQuaternionFromAxisDegree(NewVec3(0, 0, -2), 60).ToAxisAngle()
	if !axis.NearEquals(UNIT_Z_NEG_VEC3, 1e-9) {
		t.Fatalf("axis mismatch: got=%v want=%v", axis, UNIT_Z_NEG_VEC3)
	}
	if math.Abs(RadToDeg(angle)-60) > 1e-9 {
		t.Fatalf("angle mismatch: got=%v want=60", RadToDeg(angle))
	}
}

func TestQuaternionFromMat4(t *testing.T) {
	want := eulerDegreesForTest(15, -40, 70)
	x := want.MulVec3(UNIT_X_VEC3).MuledScalar(2)
	y := want.MulVec3(UNIT_Y_VEC3).MuledScalar(2)
	z := want.MulVec3(UNIT_Z_VEC3).MuledScalar(2)
	values := [16]float64{
		x.X, x.Y, x.Z, 0,
		y.X, y.Y, y.Z, 0,
		z.X, z.Y, z.Z, 0,
		1, 2, 3, 1,
	}
	if got := NewQuaternionFromMat4(values); !got.NearEquals(want, 1e-9) {
		t.Fatalf("mat4 rotation mismatch: got=%v want=%v", got, want)
	}
}

// eulerDegreesForTest はZ→X→Yの順に回す回転を返す。
func eulerDegreesForTest(x, y, z float64) Quaternion {
	qx := NewQuaternionFromAxisDegree(UNIT_X_VEC3, x)
	qy := NewQuaternionFromAxisDegree(UNIT_Y_VEC3, y)
	qz := NewQuaternionFromAxisDegree(UNIT_Z_VEC3, z)
	return qy.Muled(qx).Muled(qz)
}
