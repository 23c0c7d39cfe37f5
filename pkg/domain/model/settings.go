// 指示: miu200521358
package model

import (
	"fmt"
	"strings"

	"github.com/miu200521358/mu_vrik/pkg/domain/mmath"
)

const (
	// WEIGHT_MIN は重みの下限。
	WEIGHT_MIN = 0.0
	// WEIGHT_MAX は重みの上限。
	WEIGHT_MAX = 1.0
	// SWIVEL_OFFSET_MIN はスイベル角(度)の下限。
	SWIVEL_OFFSET_MIN = -180.0
	// SWIVEL_OFFSET_MAX はスイベル角(度)の上限。
	SWIVEL_OFFSET_MAX = 180.0
	// LENGTH_MULTIPLIER_MIN は長さ倍率の下限。
	LENGTH_MULTIPLIER_MIN = 0.01
	// LENGTH_MULTIPLIER_MAX は長さ倍率の上限。
	LENGTH_MULTIPLIER_MAX = 2.0
)

// ShoulderRotationMode は肩回転の推定方式。
type ShoulderRotationMode int

const (
	// SHOULDER_ROTATION_YAW_PITCH はヨー・ピッチ分解方式。
	SHOULDER_ROTATION_YAW_PITCH ShoulderRotationMode = iota
	// SHOULDER_ROTATION_FROM_TO は方向差分回転方式。
	SHOULDER_ROTATION_FROM_TO
)

// String は設定ファイル上の名前を返す。
func (m ShoulderRotationMode) String() string {
	switch m {
	case SHOULDER_ROTATION_FROM_TO:
		return "FromTo"
	default:
		return "YawPitch"
	}
}

// ParseShoulderRotationMode は名前から肩回転方式を解決する。大文字小文字は区別しない。
func ParseShoulderRotationMode(name string) (ShoulderRotationMode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "yawpitch", "yaw_pitch":
		return SHOULDER_ROTATION_YAW_PITCH, nil
	case "fromto", "from_to":
		return SHOULDER_ROTATION_FROM_TO, nil
	default:
		return SHOULDER_ROTATION_YAW_PITCH, fmt.Errorf("%w: 肩回転方式が不明です: %s", ErrInvalidSettings, name)
	}
}

// ICurve は伸縮量の応答曲線。tは目標距離/腕の長さ。
type ICurve interface {
	Evaluate(t float64) float64
}

// ArmSettings は腕IKの設定値。
type ArmSettings struct {
	PositionWeight         float64
	RotationWeight         float64
	ShoulderRotationMode   ShoulderRotationMode
	ShoulderRotationWeight float64
	BendGoalWeight         float64
	// SwivelOffset は肘の曲げ面を目標方向回りに回す角度(度)。
	SwivelOffset        float64
	ArmLengthMultiplier float64
	// StretchCurve はnilなら伸縮しない。
	StretchCurve ICurve
	// WristToPalmAxis は手首から掌へ向かう手のローカル軸。
	WristToPalmAxis mmath.Vec3
	// PalmToThumbAxis は掌から親指へ向かう手のローカル軸。
	PalmToThumbAxis mmath.Vec3
}

// NewArmSettings は既定値の腕設定を生成する。
func NewArmSettings() ArmSettings {
	return ArmSettings{
		PositionWeight:         1,
		RotationWeight:         1,
		ShoulderRotationMode:   SHOULDER_ROTATION_YAW_PITCH,
		ShoulderRotationWeight: 1,
		ArmLengthMultiplier:    1,
	}
}

// LegSettings は脚IKの設定値。
type LegSettings struct {
	PositionWeight      float64
	RotationWeight      float64
	BendGoalWeight      float64
	SwivelOffset        float64
	LegLengthMultiplier float64
	StretchCurve        ICurve
}

// NewLegSettings は既定値の脚設定を生成する。
func NewLegSettings() LegSettings {
	return LegSettings{
		PositionWeight:      1,
		RotationWeight:      1,
		LegLengthMultiplier: 1,
	}
}

// RigSettings はリグ全体の肢設定。
type RigSettings struct {
	LeftArm  ArmSettings
	RightArm ArmSettings
	LeftLeg  LegSettings
	RightLeg LegSettings
}

// NewRigSettings は既定値のリグ設定を生成する。
func NewRigSettings() RigSettings {
	return RigSettings{
		LeftArm:  NewArmSettings(),
		RightArm: NewArmSettings(),
		LeftLeg:  NewLegSettings(),
		RightLeg: NewLegSettings(),
	}
}

// Arm は向きに応じた腕設定を返す。
func (s RigSettings) Arm(direction BoneDirection) ArmSettings {
	if direction.IsLeft() {
		return s.LeftArm
	}
	return s.RightArm
}

// Leg は向きに応じた脚設定を返す。
func (s RigSettings) Leg(direction BoneDirection) LegSettings {
	if direction.IsLeft() {
		return s.LeftLeg
	}
	return s.RightLeg
}
