// 指示: miu200521358
package ik

import "github.com/miu200521358/mu_vrik/pkg/domain/mmath"

const (
	// ARM_LIMB_BLEND は腕で現在の肢方向へ寄せる割合。
	ARM_LIMB_BLEND = 0.5
	// ARM_HAND_BIAS_MAX は腕で手の向きへ寄せる割合の上限。
	ARM_HAND_BIAS_MAX = 0.75
	// handAxisBlend は掌軸から親指軸へ寄せる割合。
	handAxisBlend = 0.85
)

// BendNormalParams は曲げ面法線の算出入力。
type BendNormalParams struct {
	// Direction は根元から目標への方向。
	Direction mmath.Vec3
	// LimbDirection は現在の肢の向き。
	LimbDirection mmath.Vec3
	// Reference は胸(腰)の基準回転。
	Reference mmath.Quaternion
	// RestBend は基準空間での既定の曲げ方向。腕は後方、脚は前方。
	RestBend mmath.Vec3
	// LimbBlend は現在の肢方向へ寄せる割合。
	LimbBlend       float64
	WristToPalmAxis mmath.Vec3
	PalmToThumbAxis mmath.Vec3
	// HandBiasMax は手の向きへ寄せる割合の上限。
	HandBiasMax float64
	// BendGoalDirection は曲げ目標への方向。
	BendGoalDirection mmath.Vec3
	BendGoalWeight    float64
	// SwivelOffset は目標方向回りの回転角(度)。
	SwivelOffset float64
}

// ResolveBendNormal は肘(膝)を向ける曲げ面の法線を返す。毎フレーム算出し直す。
func ResolveBendNormal(p BendNormalParams) mmath.Vec3 {
	inv := p.Reference.Inverted()

	q := mmath.NewQuaternionFromTo(
		mmath.UNIT_Y_NEG_VEC3,
		inv.MulVec3(p.Direction.Normalized()).Added(mmath.UNIT_Z_VEC3),
	)
	b := q.MulVec3(p.RestBend)

	q = mmath.NewQuaternionFromTo(inv.MulVec3(p.LimbDirection), inv.MulVec3(p.Direction))
	b = p.Reference.MulVec3(q.MulVec3(b))

	if p.LimbBlend > 0 {
		b = b.Slerp(p.LimbDirection, p.LimbBlend)
	}

	if p.HandBiasMax > 0 && !(p.WristToPalmAxis.IsZero() && p.PalmToThumbAxis.IsZero()) {
		handBias := q.MulVec3(p.WristToPalmAxis.Slerp(p.PalmToThumbAxis, handAxisBlend)).Negated()
		handWeight := (b.Dot(handBias) + 1) * 0.5 * p.HandBiasMax
		b = b.Slerp(handBias, handWeight)
	}

	if p.BendGoalWeight > 0 {
		b = b.Slerp(p.BendGoalDirection, p.BendGoalWeight)
	}

	if p.SwivelOffset != 0 {
		b = mmath.NewQuaternionFromAxisDegree(p.Direction.Negated(), p.SwivelOffset).MulVec3(b)
	}

	return b.Cross(p.Direction)
}
