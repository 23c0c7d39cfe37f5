// 指示: miu200521358
package model

import (
	"fmt"

	"github.com/miu200521358/mu_vrik/pkg/domain/mmath"
)

// LimbPose は1本の肢の関節姿勢を親から順に保持する。
type LimbPose struct {
	Positions []mmath.Vec3
	Rotations []mmath.Quaternion
}

// NewLimbPose は単位回転で初期化したLimbPoseを生成する。
func NewLimbPose(count int) LimbPose {
	pose := LimbPose{
		Positions: make([]mmath.Vec3, count),
		Rotations: make([]mmath.Quaternion, count),
	}
	for i := range pose.Rotations {
		pose.Rotations[i] = mmath.NewQuaternion()
	}
	return pose
}

// Len は関節数を返す。
func (p LimbPose) Len() int {
	return len(p.Positions)
}

// Validate は関節数と値の有限性を検証する。
func (p LimbPose) Validate(expected int) error {
	if len(p.Positions) != expected || len(p.Rotations) != expected {
		return fmt.Errorf("%w: 関節数が不正です positions=%d rotations=%d want=%d",
			ErrInvalidPose, len(p.Positions), len(p.Rotations), expected)
	}
	for i := range p.Positions {
		if !p.Positions[i].IsFinite() || !p.Rotations[i].IsFinite() {
			return fmt.Errorf("%w: 関節%dに有限でない値があります", ErrInvalidPose, i)
		}
	}
	return nil
}

// Copy は独立したコピーを返す。
func (p LimbPose) Copy() LimbPose {
	return LimbPose{
		Positions: append([]mmath.Vec3(nil), p.Positions...),
		Rotations: append([]mmath.Quaternion(nil), p.Rotations...),
	}
}
