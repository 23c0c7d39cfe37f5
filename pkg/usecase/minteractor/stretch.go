// 指示: miu200521358
package minteractor

import (
	"github.com/miu200521358/mu_vrik/pkg/domain/ik"
	"github.com/miu200521358/mu_vrik/pkg/domain/mmath"
	"github.com/miu200521358/mu_vrik/pkg/domain/model"
)

// stretchLimb は長さ倍率と伸縮曲線に従い中間関節と末端を平行移動する。
// 長さ倍率による移動量も位置重みで弱める。
func stretchLimb(
	chain *ik.Chain,
	upper, fore, end int,
	target mmath.Vec3,
	multiplier float64,
	curve model.ICurve,
	positionWeight float64,
) {
	upperBone := chain.Bone(upper)
	foreBone := chain.Bone(fore)
	endBone := chain.Bone(end)

	limbLength := chain.RestLength(upper, end)
	if multiplier != 1 {
		limbLength *= multiplier
		scale := (multiplier - 1) * mmath.Clamp01(positionWeight)
		translateLimb(foreBone, endBone, upperBone, scale)
	}

	if curve == nil || limbLength <= 0 {
		return
	}
	distance := upperBone.SolverPosition.Distance(target)
	amount := curve.Evaluate(distance/limbLength) * positionWeight
	if !mmath.IsFiniteFloat(amount) || amount == 0 {
		return
	}
	translateLimb(foreBone, endBone, upperBone, amount)
}

// translateLimb は各区間をscale倍だけ伸ばす。
func translateLimb(fore, end, upper *ik.VirtualBone, scale float64) {
	foreAdd := fore.SolverPosition.Subed(upper.SolverPosition).MuledScalar(scale)
	endAdd := end.SolverPosition.Subed(fore.SolverPosition).MuledScalar(scale)
	fore.SolverPosition = fore.SolverPosition.Added(foreAdd)
	end.SolverPosition = end.SolverPosition.Added(foreAdd).Added(endAdd)
}
