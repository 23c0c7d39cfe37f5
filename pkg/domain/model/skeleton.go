// 指示: miu200521358
package model

import (
	"fmt"

	"github.com/miu200521358/mu_vrik/pkg/domain/mmath"
	"github.com/tiendc/go-deepcopy"
)

// Joint はスケルトン上の1関節のワールド姿勢。
type Joint struct {
	Name     HumanoidBone
	Position mmath.Vec3
	Rotation mmath.Quaternion
}

// Skeleton はヒューマノイドの関節姿勢の集合。関節のインデックスは追加順で固定する。
type Skeleton struct {
	Joints []Joint
}

// NewSkeleton は空のスケルトンを生成する。
func NewSkeleton() *Skeleton {
	return &Skeleton{Joints: make([]Joint, 0, len(HumanoidBones()))}
}

// IndexOf は関節のインデックスを返す。存在しなければ-1を返す。
func (s *Skeleton) IndexOf(name HumanoidBone) int {
	if s == nil {
		return -1
	}
	for i := range s.Joints {
		if s.Joints[i].Name == name {
			return i
		}
	}
	return -1
}

// Has は関節が存在するか判定する。
func (s *Skeleton) Has(name HumanoidBone) bool {
	return s.IndexOf(name) >= 0
}

// Get は関節を返す。
func (s *Skeleton) Get(name HumanoidBone) (Joint, bool) {
	index := s.IndexOf(name)
	if index < 0 {
		return Joint{}, false
	}
	return s.Joints[index], true
}

// Set は関節姿勢を設定する。未登録なら末尾へ追加する。
func (s *Skeleton) Set(name HumanoidBone, position mmath.Vec3, rotation mmath.Quaternion) {
	if s == nil {
		return
	}
	if index := s.IndexOf(name); index >= 0 {
		s.Joints[index].Position = position
		s.Joints[index].Rotation = rotation
		return
	}
	s.Joints = append(s.Joints, Joint{Name: name, Position: position, Rotation: rotation})
}

// SetAt はインデックス指定で関節姿勢を更新する。
func (s *Skeleton) SetAt(index int, position mmath.Vec3, rotation mmath.Quaternion) error {
	if s == nil || index < 0 || index >= len(s.Joints) {
		return fmt.Errorf("%w: index=%d", ErrJointNotFound, index)
	}
	s.Joints[index].Position = position
	s.Joints[index].Rotation = rotation
	return nil
}

// Len は関節数を返す。
func (s *Skeleton) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Joints)
}

// LimbPose は指定関節の姿勢を順に取り出す。
func (s *Skeleton) LimbPose(names []HumanoidBone) (LimbPose, error) {
	pose := NewLimbPose(len(names))
	for i, name := range names {
		joint, ok := s.Get(name)
		if !ok {
			return LimbPose{}, fmt.Errorf("%w: %s", ErrJointNotFound, name)
		}
		pose.Positions[i] = joint.Position
		pose.Rotations[i] = joint.Rotation
	}
	return pose, nil
}

// ReferenceRotation は優先順で最初に見つかった関節の回転を返す。
// namesが空なら胸系の関節を探し、見つからなければ単位回転を返す。
func (s *Skeleton) ReferenceRotation(names ...HumanoidBone) mmath.Quaternion {
	if len(names) == 0 {
		names = ChestBones()
	}
	for _, name := range names {
		if joint, ok := s.Get(name); ok {
			return joint.Rotation
		}
	}
	return mmath.NewQuaternion()
}

// Copy はスケルトンのディープコピーを返す。
func (s *Skeleton) Copy() (*Skeleton, error) {
	if s == nil {
		return nil, nil
	}
	copied := &Skeleton{}
	if err := deepcopy.Copy(copied, s); err != nil {
		return nil, fmt.Errorf("スケルトンの複製に失敗しました: %w", err)
	}
	return copied, nil
}
