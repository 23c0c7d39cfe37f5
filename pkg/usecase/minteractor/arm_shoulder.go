// 指示: miu200521358
package minteractor

import (
	"math"

	"github.com/miu200521358/mu_vrik/pkg/domain/ik"
	"github.com/miu200521358/mu_vrik/pkg/domain/mmath"
)

const (
	// SHOULDER_YAW_OFFSET はヨー算出用作業空間の前方からのずらし角(度)。
	SHOULDER_YAW_OFFSET = 45.0
	// SHOULDER_PITCH_OFFSET はピッチ算出用作業空間の傾き(度)。
	SHOULDER_PITCH_OFFSET = -30.0
	// SHOULDER_PITCH_LIMIT はピッチの可動幅(度)。ずらし角の前後に取る。
	SHOULDER_PITCH_LIMIT = 45.0
	// SHOULDER_TWIST_MAX は肩と上腕に追加するひねりの上限(度)。
	SHOULDER_TWIST_MAX = 180.0

	shoulderYawDamperWeight = 0.7
	// 左腕のヨー可動域。右腕は符号を反転した範囲。
	shoulderYawBack    = -50.0
	shoulderYawForward = 20.0
	shoulderSideAngle  = 90.0
	fromToBlend        = 0.5
)

// shoulderFrame は肩回転の算出に使う1フレーム分の入力。
type shoulderFrame struct {
	isLeft bool

	chestRotation mmath.Quaternion
	chestForward  mmath.Vec3
	chestUp       mmath.Vec3

	shoulderPosition  mmath.Vec3
	shoulderDirection mmath.Vec3
	upperArmPosition  mmath.Vec3
	target            mmath.Vec3
	// reach はピッチ原点を胸の内側へずらす距離。
	reach float64
}

// side は左なら1、右なら-1を返す。
func (f shoulderFrame) side() float64 {
	if f.isLeft {
		return 1
	}
	return -1
}

// yawLimits はヨーの後方・前方の可動限界を返す。
func (f shoulderFrame) yawLimits() (float64, float64) {
	if f.isLeft {
		return shoulderYawBack, shoulderYawForward
	}
	return -shoulderYawForward, -shoulderYawBack
}

// yawPitchShoulderRotation は目標方向をヨーとピッチへ分解し、肩チェーンへ掛ける差分回転を返す。
// 戻り値のpitchは後段のひねり量に使う。
func yawPitchShoulderRotation(f shoulderFrame) (mmath.Quaternion, float64) {
	side := f.side()

	yawOffset := side * SHOULDER_YAW_OFFSET
	yawSpace := mmath.NewQuaternionFromAxisDegree(f.chestUp, -side*shoulderSideAngle+yawOffset).Muled(f.chestRotation)
	local := yawSpace.Inverted().MulVec3(f.target.Subed(f.shoulderPosition).Normalized())

	yaw := mmath.RadToDeg(math.Atan2(local.X, local.Z))
	yaw *= 1 - math.Abs(local.Dot(mmath.UNIT_Y_VEC3))
	yaw -= yawOffset
	yawMin, yawMax := f.yawLimits()
	yaw = ik.DamperValue(yaw, yawMin, yawMax, shoulderYawDamperWeight)

	yawTo := yawSpace.MulVec3(mmath.NewQuaternionFromAxisDegree(mmath.UNIT_Y_VEC3, yaw).MulVec3(mmath.UNIT_Z_VEC3))
	yawRotation := mmath.NewQuaternionFromTo(f.shoulderDirection, yawTo)

	pitchSpace := mmath.NewQuaternionFromAxisDegree(f.chestForward, side*SHOULDER_PITCH_OFFSET).Muled(
		mmath.NewQuaternionFromAxisDegree(f.chestUp, -side*shoulderSideAngle).Muled(f.chestRotation))
	origin := f.shoulderPosition.Added(f.chestRotation.MulVec3(mmath.UNIT_X_VEC3.MuledScalar(side * f.reach)))
	local = pitchSpace.Inverted().MulVec3(f.target.Subed(origin))

	pitch := mmath.RadToDeg(math.Atan2(local.Y, local.Z))
	pitch -= SHOULDER_PITCH_OFFSET
	pitch = ik.DamperValue(
		pitch,
		-SHOULDER_PITCH_LIMIT-SHOULDER_PITCH_OFFSET,
		SHOULDER_PITCH_LIMIT-SHOULDER_PITCH_OFFSET,
		1,
	)
	pitchRotation := mmath.NewQuaternionFromAxisDegree(pitchSpace.MulVec3(mmath.UNIT_X_VEC3), -pitch)

	return pitchRotation.Muled(yawRotation), pitch
}

// fromToShoulderRotation は上腕方向と胸の前方の合成から目標方向への回転をweightの半分だけ返す。
func fromToShoulderRotation(f shoulderFrame, weight float64) mmath.Quaternion {
	from := f.upperArmPosition.Subed(f.shoulderPosition).Normalized().Added(f.chestForward)
	r := mmath.NewQuaternionFromTo(from, f.target.Subed(f.shoulderPosition))
	return mmath.NewQuaternion().Slerp(r, fromToBlend*weight)
}

// fromToShoulderTwist は肩の軸が胸の上方から見て回った量から、肩と上腕へ加えるひねり角(度)を返す。
func fromToShoulderTwist(
	before, after mmath.Quaternion,
	axis, chestUp, chestForward mmath.Vec3,
	isLeft bool,
	positionWeight float64,
) float64 {
	q := mmath.NewQuaternionLookRotation(chestUp, chestForward).Inverted()
	vBefore := q.MulVec3(before.MulVec3(axis))
	vAfter := q.MulVec3(after.MulVec3(axis))

	angleBefore := mmath.RadToDeg(math.Atan2(vBefore.X, vBefore.Z))
	angleAfter := mmath.RadToDeg(math.Atan2(vAfter.X, vAfter.Z))
	angle := mmath.DeltaAngle(angleBefore, angleAfter)
	if isLeft {
		angle = -angle
	}
	return shoulderTwistAngle(angle, positionWeight)
}

// shoulderTwistAngle は追加ひねり角を0から上限へ収める。
func shoulderTwistAngle(angle, positionWeight float64) float64 {
	return mmath.ClampFloat(angle*2*positionWeight, 0, SHOULDER_TWIST_MAX)
}

// twistBone は関節を自身の軸回りにangle度ひねる。右側は軸を反転する。
func twistBone(bone *ik.VirtualBone, angle float64, isLeft bool) {
	if angle == 0 {
		return
	}
	axis := bone.Axis
	if !isLeft {
		axis = axis.Negated()
	}
	twist := mmath.NewQuaternionFromAxisDegree(bone.SolverRotation.MulVec3(axis), angle)
	bone.SolverRotation = twist.Muled(bone.SolverRotation)
}
