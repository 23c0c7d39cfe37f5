// 指示: miu200521358
package minteractor

import (
	"fmt"
	"math"

	"github.com/miu200521358/mu_vrik/pkg/domain/ik"
	"github.com/miu200521358/mu_vrik/pkg/domain/mmath"
	"github.com/miu200521358/mu_vrik/pkg/domain/model"
)

// Arm は肩・上腕・前腕・手の腕IKを解く。並行利用は不可。
type Arm struct {
	limb
	direction   model.BoneDirection
	hasShoulder bool
	shoulder    int
}

// NewArm は未初期化の腕を生成する。
func NewArm(direction model.BoneDirection) *Arm {
	return &Arm{
		limb:      limb{name: string(model.ArmLimbID(direction))},
		direction: direction,
	}
}

// Initialize は初期姿勢から腕を構成する。肩ありは4関節、肩なしは3関節を受け取る。
// referenceは初期姿勢での胸の回転。
func (a *Arm) Initialize(bind model.LimbPose, hasShoulder bool, reference mmath.Quaternion) error {
	expected := 3
	upper := 0
	if hasShoulder {
		expected = 4
		upper = 1
	}
	if err := bind.Validate(expected); err != nil {
		return fmt.Errorf("%sの初期姿勢が不正です: %w", a.name, err)
	}
	if err := a.initialize(bind, reference, upper, mmath.UNIT_Z_NEG_VEC3); err != nil {
		return err
	}
	a.hasShoulder = hasShoulder
	a.shoulder = 0
	return nil
}

// HasShoulder は肩関節を持つか返す。
func (a *Arm) HasShoulder() bool {
	return a.hasShoulder
}

// Direction は左右を返す。
func (a *Arm) Direction() model.BoneDirection {
	return a.direction
}

// UpdateFrame はライブ姿勢と目標から1フレーム分の腕を解く。
// liveがnilなら最後に読み込んだライブ姿勢から解く。入力が不正な場合は前回姿勢とエラーを返す。
func (a *Arm) UpdateFrame(
	live *model.LimbPose,
	reference mmath.Quaternion,
	target model.IkTarget,
	settings model.ArmSettings,
) (model.LimbPose, error) {
	settings, clamped, err := NormalizeArmSettings(settings)
	if err != nil {
		return a.rejectFrame(fmt.Errorf("%s: %w", a.name, err))
	}
	logClampedFields(model.ArmLimbID(a.direction), clamped, logIkDebug)

	if err := a.beginFrame(live, reference, target); err != nil {
		return a.rejectFrame(err)
	}

	positionWeight := settings.PositionWeight
	a.preSolve(target, positionWeight, settings.RotationWeight)
	if pose, ok := a.carryIdle(live, positionWeight, settings.RotationWeight); ok {
		return pose, nil
	}
	a.applyOffsets(target.PositionOffset)
	a.updateReference(reference)

	shoulderWeight := settings.ShoulderRotationWeight * positionWeight
	if a.hasShoulder && settings.ShoulderRotationWeight > 0 {
		switch settings.ShoulderRotationMode {
		case model.SHOULDER_ROTATION_YAW_PITCH:
			a.solveYawPitch(settings, shoulderWeight)
		case model.SHOULDER_ROTATION_FROM_TO:
			a.solveFromTo(settings, shoulderWeight)
		}
	} else {
		a.stretch(settings)
		a.solveTwoBone(a.bendNormal(settings), positionWeight)
	}

	a.fixTwist(positionWeight)
	a.blendEndRotation(settings.RotationWeight)
	a.resetOffsets()
	return a.write()
}

// solveYawPitch はヨーとピッチで肩を回してから腕を解き、肩と上腕をひねる。
func (a *Arm) solveYawPitch(settings model.ArmSettings, shoulderWeight float64) {
	delta, pitch := yawPitchShoulderRotation(a.shoulderFrame())
	if shoulderWeight > 0 {
		a.chain.RotateBy(lerpQuaternionByWeight(mmath.NewQuaternion(), delta, shoulderWeight))
	}

	a.stretch(settings)
	a.solveTwoBone(a.bendNormal(settings), settings.PositionWeight)

	a.twistShoulder(shoulderTwistAngle(pitch, settings.PositionWeight))
}

// solveFromTo は目標方向への回転で肩を回し、肩からの補助パスの後に腕を解く。
func (a *Arm) solveFromTo(settings model.ArmSettings, shoulderWeight float64) {
	shoulder := a.chain.Bone(a.shoulder)
	before := shoulder.SolverRotation

	if shoulderWeight > 0 {
		a.chain.RotateBy(fromToShoulderRotation(a.shoulderFrame(), shoulderWeight))
	}

	a.stretch(settings)

	fore := a.chain.Bone(a.fore)
	end := a.chain.Bone(a.end)
	auxNormal := fore.SolverPosition.Subed(shoulder.SolverPosition).Cross(end.SolverPosition.Subed(shoulder.SolverPosition))
	ik.SolveTrigonometric(a.chain, a.shoulder, a.fore, a.end, a.position, auxNormal, fromToBlend*shoulderWeight)
	a.solveTwoBone(a.bendNormal(settings), settings.PositionWeight)

	a.twistShoulder(fromToShoulderTwist(
		before,
		shoulder.SolverRotation,
		shoulder.Axis,
		a.referenceRotation.MulVec3(mmath.UNIT_Y_VEC3),
		a.referenceRotation.MulVec3(mmath.UNIT_Z_VEC3),
		a.direction.IsLeft(),
		settings.PositionWeight,
	))
}

// twistShoulder は肩と上腕を同じ角度だけひねる。
func (a *Arm) twistShoulder(angle float64) {
	twistBone(a.chain.Bone(a.shoulder), angle, a.direction.IsLeft())
	twistBone(a.chain.Bone(a.upper), angle, a.direction.IsLeft())
}

func (a *Arm) stretch(settings model.ArmSettings) {
	stretchLimb(
		a.chain, a.upper, a.fore, a.end,
		a.position, settings.ArmLengthMultiplier, settings.StretchCurve, settings.PositionWeight,
	)
}

func (a *Arm) bendNormal(settings model.ArmSettings) mmath.Vec3 {
	p := a.bendNormalParams(settings.BendGoalWeight, settings.SwivelOffset)
	p.RestBend = mmath.UNIT_Z_NEG_VEC3
	p.LimbBlend = ik.ARM_LIMB_BLEND
	p.WristToPalmAxis = settings.WristToPalmAxis
	p.PalmToThumbAxis = settings.PalmToThumbAxis
	p.HandBiasMax = ik.ARM_HAND_BIAS_MAX
	return ik.ResolveBendNormal(p)
}

// shoulderFrame は現在の作業姿勢から肩回転の入力を組み立てる。
func (a *Arm) shoulderFrame() shoulderFrame {
	shoulder := a.chain.Bone(a.shoulder)
	reach := 0.0
	for i := 0; i < a.chain.Len()-1; i++ {
		length := a.chain.Bone(i).Length
		reach += length * length
	}
	return shoulderFrame{
		isLeft:            a.direction.IsLeft(),
		chestRotation:     a.referenceRotation,
		chestForward:      a.referenceRotation.MulVec3(mmath.UNIT_Z_VEC3),
		chestUp:           a.referenceRotation.MulVec3(mmath.UNIT_Y_VEC3),
		shoulderPosition:  shoulder.SolverPosition,
		shoulderDirection: shoulder.Direction(),
		upperArmPosition:  a.chain.Bone(a.upper).SolverPosition,
		target:            a.position,
		reach:             math.Sqrt(reach),
	}
}
