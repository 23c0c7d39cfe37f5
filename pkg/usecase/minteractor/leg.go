// 指示: miu200521358
package minteractor

import (
	"fmt"

	"github.com/miu200521358/mu_vrik/pkg/domain/ik"
	"github.com/miu200521358/mu_vrik/pkg/domain/mmath"
	"github.com/miu200521358/mu_vrik/pkg/domain/model"
)

// Leg は太もも・すね・足の脚IKを解く。並行利用は不可。
type Leg struct {
	limb
	direction model.BoneDirection
}

// NewLeg は未初期化の脚を生成する。
func NewLeg(direction model.BoneDirection) *Leg {
	return &Leg{
		limb:      limb{name: string(model.LegLimbID(direction))},
		direction: direction,
	}
}

// Initialize は3関節の初期姿勢から脚を構成する。referenceは初期姿勢での腰の回転。
func (l *Leg) Initialize(bind model.LimbPose, reference mmath.Quaternion) error {
	if err := bind.Validate(3); err != nil {
		return fmt.Errorf("%sの初期姿勢が不正です: %w", l.name, err)
	}
	return l.initialize(bind, reference, 0, mmath.UNIT_Z_VEC3)
}

// Direction は左右を返す。
func (l *Leg) Direction() model.BoneDirection {
	return l.direction
}

// UpdateFrame はライブ姿勢と目標から1フレーム分の脚を解く。
func (l *Leg) UpdateFrame(
	live *model.LimbPose,
	reference mmath.Quaternion,
	target model.IkTarget,
	settings model.LegSettings,
) (model.LimbPose, error) {
	settings, clamped, err := NormalizeLegSettings(settings)
	if err != nil {
		return l.rejectFrame(fmt.Errorf("%s: %w", l.name, err))
	}
	logClampedFields(model.LegLimbID(l.direction), clamped, logIkDebug)

	if err := l.beginFrame(live, reference, target); err != nil {
		return l.rejectFrame(err)
	}

	l.preSolve(target, settings.PositionWeight, settings.RotationWeight)
	if pose, ok := l.carryIdle(live, settings.PositionWeight, settings.RotationWeight); ok {
		return pose, nil
	}
	l.applyOffsets(target.PositionOffset)
	l.updateReference(reference)

	stretchLimb(
		l.chain, l.upper, l.fore, l.end,
		l.position, settings.LegLengthMultiplier, settings.StretchCurve, settings.PositionWeight,
	)

	p := l.bendNormalParams(settings.BendGoalWeight, settings.SwivelOffset)
	p.RestBend = mmath.UNIT_Z_VEC3
	l.solveTwoBone(ik.ResolveBendNormal(p), settings.PositionWeight)

	l.fixTwist(settings.PositionWeight)
	l.blendEndRotation(settings.RotationWeight)
	l.resetOffsets()
	return l.write()
}
