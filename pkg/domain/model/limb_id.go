// 指示: miu200521358
package model

import "fmt"

// LimbID は肢の識別子。
type LimbID string

const (
	LIMB_LEFT_ARM  LimbID = "left_arm"
	LIMB_RIGHT_ARM LimbID = "right_arm"
	LIMB_LEFT_LEG  LimbID = "left_leg"
	LIMB_RIGHT_LEG LimbID = "right_leg"
)

// LimbIDs は解決順の肢識別子を返す。
func LimbIDs() []LimbID {
	return []LimbID{LIMB_LEFT_ARM, LIMB_RIGHT_ARM, LIMB_LEFT_LEG, LIMB_RIGHT_LEG}
}

// ArmLimbID は腕の識別子を返す。
func ArmLimbID(direction BoneDirection) LimbID {
	if direction.IsLeft() {
		return LIMB_LEFT_ARM
	}
	return LIMB_RIGHT_ARM
}

// LegLimbID は脚の識別子を返す。
func LegLimbID(direction BoneDirection) LimbID {
	if direction.IsLeft() {
		return LIMB_LEFT_LEG
	}
	return LIMB_RIGHT_LEG
}

// ParseLimbID は文字列から肢識別子を返す。
func ParseLimbID(name string) (LimbID, error) {
	for _, id := range LimbIDs() {
		if string(id) == name {
			return id, nil
		}
	}
	return "", fmt.Errorf("肢の識別子が不明です: %s", name)
}

// IsArm は腕か判定する。
func (id LimbID) IsArm() bool {
	return id == LIMB_LEFT_ARM || id == LIMB_RIGHT_ARM
}

// Direction は左右を返す。
func (id LimbID) Direction() BoneDirection {
	if id == LIMB_LEFT_ARM || id == LIMB_LEFT_LEG {
		return BONE_DIRECTION_LEFT
	}
	return BONE_DIRECTION_RIGHT
}

// Bones は肢を構成する関節名を返す。腕は肩を含む。
func (id LimbID) Bones() []HumanoidBone {
	if id.IsArm() {
		return ArmBones(id.Direction())
	}
	return LegBones(id.Direction())
}
