// 指示: miu200521358
// Package io_config はIK設定ファイルを読み込む。
package io_config

import (
	"fmt"
	"strings"

	"github.com/miu200521358/mu_vrik/pkg/domain/curve"
	"github.com/miu200521358/mu_vrik/pkg/domain/mmath"
	"github.com/miu200521358/mu_vrik/pkg/domain/model"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

const (
	keyPositionWeight         = "position_weight"
	keyRotationWeight         = "rotation_weight"
	keyShoulderRotationMode   = "shoulder_rotation_mode"
	keyShoulderRotationWeight = "shoulder_rotation_weight"
	keyBendGoalWeight         = "bend_goal_weight"
	keySwivelOffset           = "swivel_offset"
	keyArmLengthMultiplier    = "arm_length_multiplier"
	keyLegLengthMultiplier    = "leg_length_multiplier"
	keyStretchCurve           = "stretch_curve"
	keyWristToPalmAxis        = "wrist_to_palm_axis"
	keyPalmToThumbAxis        = "palm_to_thumb_axis"
)

// curveConfig は伸縮曲線の設定。数式か制御点のどちらか一方を指定する。
type curveConfig struct {
	Expression string           `mapstructure:"expression"`
	Keys       []curve.Keyframe `mapstructure:"keys"`
}

// SettingsRepository はviperでIK設定ファイルを読み込むリポジトリ。
// 拡張子に応じてYAML・JSON・TOMLを扱う。
type SettingsRepository struct{}

// NewSettingsRepository はSettingsRepositoryを生成する。
func NewSettingsRepository() *SettingsRepository {
	return &SettingsRepository{}
}

// LoadSettings は設定ファイルを読み込む。未指定の項目は既定値を使う。
func (r *SettingsRepository) LoadSettings(path string) (model.RigSettings, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return model.RigSettings{}, fmt.Errorf("IK設定ファイルの読み込みに失敗しました: %s: %w", path, err)
	}
	return decodeRigSettings(v)
}

// setDefaults は全肢の既定値を登録する。
func setDefaults(v *viper.Viper) {
	arm := model.NewArmSettings()
	leg := model.NewLegSettings()
	for _, id := range model.LimbIDs() {
		prefix := string(id) + "."
		if id.IsArm() {
			v.SetDefault(prefix+keyPositionWeight, arm.PositionWeight)
			v.SetDefault(prefix+keyRotationWeight, arm.RotationWeight)
			v.SetDefault(prefix+keyShoulderRotationMode, arm.ShoulderRotationMode.String())
			v.SetDefault(prefix+keyShoulderRotationWeight, arm.ShoulderRotationWeight)
			v.SetDefault(prefix+keyBendGoalWeight, arm.BendGoalWeight)
			v.SetDefault(prefix+keySwivelOffset, arm.SwivelOffset)
			v.SetDefault(prefix+keyArmLengthMultiplier, arm.ArmLengthMultiplier)
			continue
		}
		v.SetDefault(prefix+keyPositionWeight, leg.PositionWeight)
		v.SetDefault(prefix+keyRotationWeight, leg.RotationWeight)
		v.SetDefault(prefix+keyBendGoalWeight, leg.BendGoalWeight)
		v.SetDefault(prefix+keySwivelOffset, leg.SwivelOffset)
		v.SetDefault(prefix+keyLegLengthMultiplier, leg.LegLengthMultiplier)
	}
}

func decodeRigSettings(v *viper.Viper) (model.RigSettings, error) {
	settings := model.NewRigSettings()
	for _, id := range model.LimbIDs() {
		d := &limbDecoder{v: v, prefix: string(id) + "."}
		if id.IsArm() {
			arm := d.arm()
			if d.err != nil {
				return model.RigSettings{}, fmt.Errorf("%s: %w", id, d.err)
			}
			if id.Direction().IsLeft() {
				settings.LeftArm = arm
			} else {
				settings.RightArm = arm
			}
			continue
		}
		leg := d.leg()
		if d.err != nil {
			return model.RigSettings{}, fmt.Errorf("%s: %w", id, d.err)
		}
		if id.Direction().IsLeft() {
			settings.LeftLeg = leg
		} else {
			settings.RightLeg = leg
		}
	}
	return settings, nil
}

// limbDecoder は1肢分の設定を読み出す。最初のエラーを保持し以降の読み出しは既定値を返す。
type limbDecoder struct {
	v      *viper.Viper
	prefix string
	err    error
}

func (d *limbDecoder) arm() model.ArmSettings {
	settings := model.NewArmSettings()
	settings.PositionWeight = d.float(keyPositionWeight)
	settings.RotationWeight = d.float(keyRotationWeight)
	settings.ShoulderRotationWeight = d.float(keyShoulderRotationWeight)
	settings.BendGoalWeight = d.float(keyBendGoalWeight)
	settings.SwivelOffset = d.float(keySwivelOffset)
	settings.ArmLengthMultiplier = d.float(keyArmLengthMultiplier)
	settings.StretchCurve = d.curve()
	settings.WristToPalmAxis = d.vec3(keyWristToPalmAxis)
	settings.PalmToThumbAxis = d.vec3(keyPalmToThumbAxis)
	if d.err == nil {
		mode, err := model.ParseShoulderRotationMode(d.v.GetString(d.prefix + keyShoulderRotationMode))
		if err != nil {
			d.err = err
		}
		settings.ShoulderRotationMode = mode
	}
	return settings
}

func (d *limbDecoder) leg() model.LegSettings {
	settings := model.NewLegSettings()
	settings.PositionWeight = d.float(keyPositionWeight)
	settings.RotationWeight = d.float(keyRotationWeight)
	settings.BendGoalWeight = d.float(keyBendGoalWeight)
	settings.SwivelOffset = d.float(keySwivelOffset)
	settings.LegLengthMultiplier = d.float(keyLegLengthMultiplier)
	settings.StretchCurve = d.curve()
	return settings
}

func (d *limbDecoder) float(key string) float64 {
	if d.err != nil {
		return 0
	}
	value, err := cast.ToFloat64E(d.v.Get(d.prefix + key))
	if err != nil {
		d.err = fmt.Errorf("%w: %s: %v", model.ErrInvalidSettings, key, err)
		return 0
	}
	return value
}

// vec3 は[x, y, z]形式の軸を読み出す。未指定なら零ベクトルを返す。
func (d *limbDecoder) vec3(key string) mmath.Vec3 {
	if d.err != nil || !d.v.IsSet(d.prefix+key) {
		return mmath.ZERO_VEC3
	}
	values, err := cast.ToSliceE(d.v.Get(d.prefix + key))
	if err != nil {
		d.err = fmt.Errorf("%w: %s: %v", model.ErrInvalidSettings, key, err)
		return mmath.ZERO_VEC3
	}
	floats := make([]float64, 0, len(values))
	for _, value := range values {
		f, err := cast.ToFloat64E(value)
		if err != nil {
			d.err = fmt.Errorf("%w: %s: %v", model.ErrInvalidSettings, key, err)
			return mmath.ZERO_VEC3
		}
		floats = append(floats, f)
	}
	vec, err := mmath.NewVec3FromSlice(floats)
	if err != nil {
		d.err = fmt.Errorf("%w: %s: %v", model.ErrInvalidSettings, key, err)
		return mmath.ZERO_VEC3
	}
	return vec
}

// curve は伸縮曲線を読み出す。未指定ならnilを返す。
func (d *limbDecoder) curve() model.ICurve {
	key := d.prefix + keyStretchCurve
	if d.err != nil || !d.v.IsSet(key) {
		return nil
	}
	var config curveConfig
	if err := d.v.UnmarshalKey(key, &config); err != nil {
		d.err = fmt.Errorf("%w: %s: %v", model.ErrInvalidSettings, keyStretchCurve, err)
		return nil
	}
	expression := strings.TrimSpace(config.Expression)
	switch {
	case expression != "" && len(config.Keys) > 0:
		d.err = fmt.Errorf("%w: %s: 数式と制御点は同時に指定できません", model.ErrInvalidSettings, keyStretchCurve)
		return nil
	case expression != "":
		c, err := curve.NewExpressionCurve(expression)
		if err != nil {
			d.err = fmt.Errorf("%w: %v", model.ErrInvalidSettings, err)
			return nil
		}
		return c
	case len(config.Keys) > 0:
		c, err := curve.NewKeyframeCurve(config.Keys...)
		if err != nil {
			d.err = fmt.Errorf("%w: %v", model.ErrInvalidSettings, err)
			return nil
		}
		return c
	default:
		return nil
	}
}
