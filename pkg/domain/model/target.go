// 指示: miu200521358
package model

import (
	"fmt"

	"github.com/miu200521358/mu_vrik/pkg/domain/mmath"
)

// IkTarget は1フレーム分の肢ターゲット。nilの項目は未指定を表す。
type IkTarget struct {
	// Position は手(足)の目標位置。
	Position *mmath.Vec3
	// Rotation は手(足)の目標回転。
	Rotation *mmath.Quaternion
	// BendGoal は肘(膝)を向ける目標点。
	BendGoal *mmath.Vec3
	// PositionOffset は目標位置に加算し、フレーム終了時に破棄するオフセット。
	PositionOffset mmath.Vec3
}

// NewIkTarget は位置と回転を指定したターゲットを生成する。
func NewIkTarget(position mmath.Vec3, rotation mmath.Quaternion) IkTarget {
	return IkTarget{Position: &position, Rotation: &rotation}
}

// WithBendGoal は曲げ目標を設定したコピーを返す。
func (t IkTarget) WithBendGoal(goal mmath.Vec3) IkTarget {
	t.BendGoal = &goal
	return t
}

// Validate は指定値の有限性を検証する。
func (t IkTarget) Validate() error {
	if t.Position != nil && !t.Position.IsFinite() {
		return fmt.Errorf("%w: 目標位置が有限ではありません", ErrInvalidTarget)
	}
	if t.Rotation != nil && !t.Rotation.IsFinite() {
		return fmt.Errorf("%w: 目標回転が有限ではありません", ErrInvalidTarget)
	}
	if t.BendGoal != nil && !t.BendGoal.IsFinite() {
		return fmt.Errorf("%w: 曲げ目標が有限ではありません", ErrInvalidTarget)
	}
	if !t.PositionOffset.IsFinite() {
		return fmt.Errorf("%w: 位置オフセットが有限ではありません", ErrInvalidTarget)
	}
	return nil
}
