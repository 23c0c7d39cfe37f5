// 指示: miu200521358
package minteractor

import (
	"fmt"

	"github.com/miu200521358/mu_vrik/pkg/domain/mmath"
	"github.com/miu200521358/mu_vrik/pkg/domain/model"
)

// ClampedField は範囲内へ丸めた設定項目。
type ClampedField struct {
	Field   string
	Value   float64
	Clamped float64
}

type settingsClamper struct {
	fields []ClampedField
	err    error
}

func (c *settingsClamper) clamp(field string, value, minValue, maxValue float64) float64 {
	if !mmath.IsFiniteFloat(value) {
		if c.err == nil {
			c.err = fmt.Errorf("%w: %sが有限ではありません", model.ErrInvalidSettings, field)
		}
		return minValue
	}
	clamped := mmath.ClampFloat(value, minValue, maxValue)
	if clamped != value {
		c.fields = append(c.fields, ClampedField{Field: field, Value: value, Clamped: clamped})
	}
	return clamped
}

func (c *settingsClamper) requireFinite(field string, v mmath.Vec3) {
	if !v.IsFinite() && c.err == nil {
		c.err = fmt.Errorf("%w: %sが有限ではありません", model.ErrInvalidSettings, field)
	}
}

// NormalizeArmSettings は腕設定を検証し範囲内へ丸める。有限でない値や未知の方式はエラーにする。
func NormalizeArmSettings(settings model.ArmSettings) (model.ArmSettings, []ClampedField, error) {
	c := &settingsClamper{}
	settings.PositionWeight = c.clamp("position_weight", settings.PositionWeight, model.WEIGHT_MIN, model.WEIGHT_MAX)
	settings.RotationWeight = c.clamp("rotation_weight", settings.RotationWeight, model.WEIGHT_MIN, model.WEIGHT_MAX)
	settings.ShoulderRotationWeight = c.clamp(
		"shoulder_rotation_weight", settings.ShoulderRotationWeight, model.WEIGHT_MIN, model.WEIGHT_MAX)
	settings.BendGoalWeight = c.clamp("bend_goal_weight", settings.BendGoalWeight, model.WEIGHT_MIN, model.WEIGHT_MAX)
	settings.SwivelOffset = c.clamp(
		"swivel_offset", settings.SwivelOffset, model.SWIVEL_OFFSET_MIN, model.SWIVEL_OFFSET_MAX)
	settings.ArmLengthMultiplier = c.clamp(
		"arm_length_multiplier", settings.ArmLengthMultiplier, model.LENGTH_MULTIPLIER_MIN, model.LENGTH_MULTIPLIER_MAX)
	c.requireFinite("wrist_to_palm_axis", settings.WristToPalmAxis)
	c.requireFinite("palm_to_thumb_axis", settings.PalmToThumbAxis)

	switch settings.ShoulderRotationMode {
	case model.SHOULDER_ROTATION_YAW_PITCH, model.SHOULDER_ROTATION_FROM_TO:
	default:
		if c.err == nil {
			c.err = fmt.Errorf("%w: 肩回転方式が不明です: %d", model.ErrInvalidSettings, settings.ShoulderRotationMode)
		}
	}
	if c.err != nil {
		return settings, nil, c.err
	}
	return settings, c.fields, nil
}

// NormalizeLegSettings は脚設定を検証し範囲内へ丸める。
func NormalizeLegSettings(settings model.LegSettings) (model.LegSettings, []ClampedField, error) {
	c := &settingsClamper{}
	settings.PositionWeight = c.clamp("position_weight", settings.PositionWeight, model.WEIGHT_MIN, model.WEIGHT_MAX)
	settings.RotationWeight = c.clamp("rotation_weight", settings.RotationWeight, model.WEIGHT_MIN, model.WEIGHT_MAX)
	settings.BendGoalWeight = c.clamp("bend_goal_weight", settings.BendGoalWeight, model.WEIGHT_MIN, model.WEIGHT_MAX)
	settings.SwivelOffset = c.clamp(
		"swivel_offset", settings.SwivelOffset, model.SWIVEL_OFFSET_MIN, model.SWIVEL_OFFSET_MAX)
	settings.LegLengthMultiplier = c.clamp(
		"leg_length_multiplier", settings.LegLengthMultiplier, model.LENGTH_MULTIPLIER_MIN, model.LENGTH_MULTIPLIER_MAX)
	if c.err != nil {
		return settings, nil, c.err
	}
	return settings, c.fields, nil
}

// NormalizeRigSettings はリグ全体の設定を検証し、丸めた項目を警告ログへ出す。
func NormalizeRigSettings(settings model.RigSettings) (model.RigSettings, error) {
	for _, direction := range []model.BoneDirection{model.BONE_DIRECTION_LEFT, model.BONE_DIRECTION_RIGHT} {
		armID := model.ArmLimbID(direction)
		arm, armFields, armErr := NormalizeArmSettings(settings.Arm(direction))
		if armErr != nil {
			return settings, fmt.Errorf("%s: %w", armID, armErr)
		}
		logClampedFields(armID, armFields, logIkWarn)

		legID := model.LegLimbID(direction)
		leg, legFields, legErr := NormalizeLegSettings(settings.Leg(direction))
		if legErr != nil {
			return settings, fmt.Errorf("%s: %w", legID, legErr)
		}
		logClampedFields(legID, legFields, logIkWarn)

		if direction.IsLeft() {
			settings.LeftArm, settings.LeftLeg = arm, leg
		} else {
			settings.RightArm, settings.RightLeg = arm, leg
		}
	}
	return settings, nil
}

func logClampedFields(limbID model.LimbID, fields []ClampedField, logf func(string, ...any)) {
	for _, field := range fields {
		logf(logSettingsClamped, limbID, field.Field, field.Value, field.Clamped, model.IkWarningSettingsClamped)
	}
}
