// 指示: miu200521358
package ik

import (
	"math"

	"github.com/miu200521358/mu_vrik/pkg/domain/mmath"
)

// SolveTrigonometric は関節first-second-thirdを余弦定理で曲げ、thirdをtargetへ近づける。
// bendNormalは曲げ面の法線。weightは目標と回転の両方に掛かる。
// 根元と目標が一致する場合は何もしない。届かない目標に対しては伸び切った姿勢で目標方向を向く。
func SolveTrigonometric(
	chain *Chain,
	first, second, third int,
	target mmath.Vec3,
	bendNormal mmath.Vec3,
	weight float64,
) {
	if chain == nil || weight <= 0 {
		return
	}
	a := chain.Bone(first)
	b := chain.Bone(second)
	c := chain.Bone(third)
	if a == nil || b == nil || c == nil {
		return
	}

	target = c.SolverPosition.Lerp(target, weight)
	dir := target.Subed(a.SolverPosition)
	length := dir.Length()
	if length <= mmath.VEC3_EPSILON {
		return
	}

	sqrMag1 := b.SolverPosition.Subed(a.SolverPosition).LengthSqr()
	sqrMag2 := c.SolverPosition.Subed(b.SolverPosition).LengthSqr()
	bendDir := dir.Cross(bendNormal)
	toBendPoint := directionToBendPoint(dir, length, bendDir, sqrMag1, sqrMag2)

	q1 := mmath.NewQuaternionFromTo(b.SolverPosition.Subed(a.SolverPosition), toBendPoint)
	if weight < 1 {
		q1 = mmath.NewQuaternion().Lerp(q1, weight)
	}
	chain.RotateAroundPoint(first, a.SolverPosition, q1)

	q2 := mmath.NewQuaternionFromTo(c.SolverPosition.Subed(b.SolverPosition), target.Subed(b.SolverPosition))
	if weight < 1 {
		q2 = mmath.NewQuaternion().Lerp(q2, weight)
	}
	chain.RotateAroundPoint(second, b.SolverPosition, q2)
}

// directionToBendPoint は根元から中間関節への方向を返す。
// xは目標方向成分、yは曲げ方向成分で、届かない場合はyが0になる。
func directionToBendPoint(dir mmath.Vec3, length float64, bendDir mmath.Vec3, sqrMag1, sqrMag2 float64) mmath.Vec3 {
	x := (length*length + (sqrMag1 - sqrMag2)) / 2 / length
	y := math.Sqrt(math.Max(sqrMag1-x*x, 0))
	return mmath.NewQuaternionLookRotation(dir, bendDir).MulVec3(mmath.NewVec3(0, y, x))
}
