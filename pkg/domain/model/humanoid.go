// 指示: miu200521358
package model

// HumanoidBone はヒューマノイドの関節名を表す。値はVRMのhumanBone名に合わせる。
type HumanoidBone string

const (
	HUMANOID_HIPS            HumanoidBone = "hips"
	HUMANOID_SPINE           HumanoidBone = "spine"
	HUMANOID_CHEST           HumanoidBone = "chest"
	HUMANOID_UPPER_CHEST     HumanoidBone = "upperChest"
	HUMANOID_NECK            HumanoidBone = "neck"
	HUMANOID_HEAD            HumanoidBone = "head"
	HUMANOID_LEFT_SHOULDER   HumanoidBone = "leftShoulder"
	HUMANOID_LEFT_UPPER_ARM  HumanoidBone = "leftUpperArm"
	HUMANOID_LEFT_LOWER_ARM  HumanoidBone = "leftLowerArm"
	HUMANOID_LEFT_HAND       HumanoidBone = "leftHand"
	HUMANOID_RIGHT_SHOULDER  HumanoidBone = "rightShoulder"
	HUMANOID_RIGHT_UPPER_ARM HumanoidBone = "rightUpperArm"
	HUMANOID_RIGHT_LOWER_ARM HumanoidBone = "rightLowerArm"
	HUMANOID_RIGHT_HAND      HumanoidBone = "rightHand"
	HUMANOID_LEFT_UPPER_LEG  HumanoidBone = "leftUpperLeg"
	HUMANOID_LEFT_LOWER_LEG  HumanoidBone = "leftLowerLeg"
	HUMANOID_LEFT_FOOT       HumanoidBone = "leftFoot"
	HUMANOID_RIGHT_UPPER_LEG HumanoidBone = "rightUpperLeg"
	HUMANOID_RIGHT_LOWER_LEG HumanoidBone = "rightLowerLeg"
	HUMANOID_RIGHT_FOOT      HumanoidBone = "rightFoot"
)

// HumanoidBones は既知の関節名を親から順に返す。
func HumanoidBones() []HumanoidBone {
	return []HumanoidBone{
		HUMANOID_HIPS,
		HUMANOID_SPINE,
		HUMANOID_CHEST,
		HUMANOID_UPPER_CHEST,
		HUMANOID_NECK,
		HUMANOID_HEAD,
		HUMANOID_LEFT_SHOULDER,
		HUMANOID_LEFT_UPPER_ARM,
		HUMANOID_LEFT_LOWER_ARM,
		HUMANOID_LEFT_HAND,
		HUMANOID_RIGHT_SHOULDER,
		HUMANOID_RIGHT_UPPER_ARM,
		HUMANOID_RIGHT_LOWER_ARM,
		HUMANOID_RIGHT_HAND,
		HUMANOID_LEFT_UPPER_LEG,
		HUMANOID_LEFT_LOWER_LEG,
		HUMANOID_LEFT_FOOT,
		HUMANOID_RIGHT_UPPER_LEG,
		HUMANOID_RIGHT_LOWER_LEG,
		HUMANOID_RIGHT_FOOT,
	}
}

// IsKnown は既知の関節名か判定する。
func (b HumanoidBone) IsKnown() bool {
	for _, bone := range HumanoidBones() {
		if bone == b {
			return true
		}
	}
	return false
}

// BoneDirection は左右を表す。
type BoneDirection int

const (
	// BONE_DIRECTION_LEFT はキャラクターの左(-X)。
	BONE_DIRECTION_LEFT BoneDirection = iota
	// BONE_DIRECTION_RIGHT はキャラクターの右(+X)。
	BONE_DIRECTION_RIGHT
)

// IsLeft は左側か判定する。
func (d BoneDirection) IsLeft() bool {
	return d == BONE_DIRECTION_LEFT
}

// Sign は左なら-1、右なら1を返す。
func (d BoneDirection) Sign() float64 {
	if d.IsLeft() {
		return -1
	}
	return 1
}

// String は文字列表現を返す。
func (d BoneDirection) String() string {
	if d.IsLeft() {
		return "left"
	}
	return "right"
}

// ArmBones は肩・上腕・前腕・手の関節名を返す。
func ArmBones(direction BoneDirection) []HumanoidBone {
	if direction.IsLeft() {
		return []HumanoidBone{
			HUMANOID_LEFT_SHOULDER,
			HUMANOID_LEFT_UPPER_ARM,
			HUMANOID_LEFT_LOWER_ARM,
			HUMANOID_LEFT_HAND,
		}
	}
	return []HumanoidBone{
		HUMANOID_RIGHT_SHOULDER,
		HUMANOID_RIGHT_UPPER_ARM,
		HUMANOID_RIGHT_LOWER_ARM,
		HUMANOID_RIGHT_HAND,
	}
}

// LegBones は太もも・すね・足の関節名を返す。
func LegBones(direction BoneDirection) []HumanoidBone {
	if direction.IsLeft() {
		return []HumanoidBone{HUMANOID_LEFT_UPPER_LEG, HUMANOID_LEFT_LOWER_LEG, HUMANOID_LEFT_FOOT}
	}
	return []HumanoidBone{HUMANOID_RIGHT_UPPER_LEG, HUMANOID_RIGHT_LOWER_LEG, HUMANOID_RIGHT_FOOT}
}

// ChestBones は胸の基準として優先する関節名を返す。
func ChestBones() []HumanoidBone {
	return []HumanoidBone{HUMANOID_UPPER_CHEST, HUMANOID_CHEST, HUMANOID_SPINE, HUMANOID_HIPS}
}
