// 指示: miu200521358
package ik

import (
	"errors"
	"fmt"

	"github.com/miu200521358/mu_vrik/pkg/domain/mmath"
	"github.com/miu200521358/mu_vrik/pkg/domain/model"
)

const (
	// CHAIN_MIN_BONES はチェーンの最小関節数。
	CHAIN_MIN_BONES = 3
	// chainMinSegmentLength は有効とみなす最小区間長。
	chainMinSegmentLength = 1e-6
)

// ErrDegenerateChain は関節数不足や長さ0の区間を含むチェーンのエラー。
var ErrDegenerateChain = errors.New("チェーンが縮退しています")

// Chain は1本の肢を構成するVirtualBoneの並び。関節の順序は生成後に変わらない。
type Chain struct {
	bones []VirtualBone
}

// NewChain は初期姿勢からチェーンを生成し、区間長と軸を確定する。
func NewChain(rest model.LimbPose) (*Chain, error) {
	count := rest.Len()
	if count < CHAIN_MIN_BONES {
		return nil, fmt.Errorf("%w: 関節数が不足しています count=%d", ErrDegenerateChain, count)
	}
	if err := rest.Validate(count); err != nil {
		return nil, err
	}

	bones := make([]VirtualBone, count)
	for i := range bones {
		bones[i] = NewVirtualBone(rest.Positions[i], rest.Rotations[i].Normalized())
	}
	for i := 0; i < count-1; i++ {
		segment := bones[i+1].RestPosition.Subed(bones[i].RestPosition)
		length := segment.Length()
		if length < chainMinSegmentLength {
			return nil, fmt.Errorf("%w: 区間%dの長さが0です", ErrDegenerateChain, i)
		}
		bones[i].Length = length
		bones[i].Axis = bones[i].RestRotation.Inverted().MulVec3(segment).Normalized()
	}
	last := count - 1
	inherited := bones[last].RestPosition.Subed(bones[last-1].RestPosition)
	bones[last].Axis = bones[last].RestRotation.Inverted().MulVec3(inherited).Normalized()

	return &Chain{bones: bones}, nil
}

// Len は関節数を返す。
func (c *Chain) Len() int {
	if c == nil {
		return 0
	}
	return len(c.bones)
}

// Bone は関節を返す。範囲外はnil。
func (c *Chain) Bone(index int) *VirtualBone {
	if c == nil || index < 0 || index >= len(c.bones) {
		return nil
	}
	return &c.bones[index]
}

// Read はライブの姿勢を関節順に作業姿勢へ読み込む。
func (c *Chain) Read(live model.LimbPose) error {
	if err := live.Validate(c.Len()); err != nil {
		return err
	}
	for i := range c.bones {
		c.bones[i].Read(live.Positions[i], live.Rotations[i].Normalized())
	}
	return nil
}

// RotateBy は根元を中心にチェーン全体を回転させる。
func (c *Chain) RotateBy(rotation mmath.Quaternion) {
	c.RotateAroundPoint(0, c.bones[0].SolverPosition, rotation)
}

// RotateAroundPoint はindex以降の関節をpoint回りに回転させる。
func (c *Chain) RotateAroundPoint(index int, point mmath.Vec3, rotation mmath.Quaternion) {
	for i := index; i < len(c.bones); i++ {
		offset := c.bones[i].SolverPosition.Subed(point)
		c.bones[i].SolverPosition = point.Added(rotation.MulVec3(offset))
		c.bones[i].SolverRotation = rotation.Muled(c.bones[i].SolverRotation)
	}
}

// RotateBoneTo は関節indexの回転をrotationへ重みで近づけ、子孫も同じ差分で回す。
func (c *Chain) RotateBoneTo(index int, rotation mmath.Quaternion, weight float64) {
	if weight <= 0 || index < 0 || index >= len(c.bones) {
		return
	}
	delta := mmath.FromToRotation(c.bones[index].SolverRotation, rotation)
	if weight < 1 {
		delta = mmath.NewQuaternion().Slerp(delta, weight)
	}
	c.RotateAroundPoint(index, c.bones[index].SolverPosition, delta)
}

// RestLength は関節fromからtoまでの初期区間長の合計を返す。
func (c *Chain) RestLength(from, to int) float64 {
	length := 0.0
	for i := from; i < to && i < len(c.bones); i++ {
		if i >= 0 {
			length += c.bones[i].Length
		}
	}
	return length
}

// Reach は根元から末端までの初期区間長の合計を返す。
func (c *Chain) Reach() float64 {
	return c.RestLength(0, c.Len()-1)
}

// Snapshot は作業姿勢のコピーを返す。
func (c *Chain) Snapshot() model.LimbPose {
	pose := model.NewLimbPose(c.Len())
	for i, bone := range c.bones {
		pose.Positions[i] = bone.SolverPosition
		pose.Rotations[i] = bone.SolverRotation
	}
	return pose
}

// Restore はSnapshotで得た作業姿勢へ戻す。
func (c *Chain) Restore(pose model.LimbPose) error {
	if err := pose.Validate(c.Len()); err != nil {
		return err
	}
	for i := range c.bones {
		c.bones[i].Read(pose.Positions[i], pose.Rotations[i])
	}
	return nil
}

// IsFinite は全関節の作業姿勢が有限か判定する。
func (c *Chain) IsFinite() bool {
	for _, bone := range c.bones {
		if !bone.SolverPosition.IsFinite() || !bone.SolverRotation.IsFinite() {
			return false
		}
	}
	return true
}
