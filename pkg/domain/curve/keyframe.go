// 指示: miu200521358
// Package curve は伸縮量の応答曲線を提供する。
package curve

import (
	"errors"
	"fmt"
	"sort"

	"github.com/miu200521358/mu_vrik/pkg/domain/mmath"
)

// ErrInvalidCurve は曲線定義が不正な場合のエラー。
var ErrInvalidCurve = errors.New("応答曲線が不正です")

// Keyframe は曲線の制御点。接線は傾き(値/時間)で表す。
type Keyframe struct {
	Time       float64 `json:"time" yaml:"time" mapstructure:"time"`
	Value      float64 `json:"value" yaml:"value" mapstructure:"value"`
	InTangent  float64 `json:"in_tangent" yaml:"in_tangent" mapstructure:"in_tangent"`
	OutTangent float64 `json:"out_tangent" yaml:"out_tangent" mapstructure:"out_tangent"`
}

// KeyframeCurve は制御点間をエルミート補間する曲線。範囲外は端の値で保持する。
type KeyframeCurve struct {
	keys []Keyframe
}

// NewKeyframeCurve は制御点から曲線を生成する。制御点は時間順に並べ替える。
func NewKeyframeCurve(keys ...Keyframe) (*KeyframeCurve, error) {
	if len(keys) == 0 {
		return nil, fmt.Errorf("%w: 制御点がありません", ErrInvalidCurve)
	}
	sorted := append([]Keyframe(nil), keys...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Time < sorted[j].Time })
	for i, key := range sorted {
		if !mmath.IsFiniteFloat(key.Time) || !mmath.IsFiniteFloat(key.Value) ||
			!mmath.IsFiniteFloat(key.InTangent) || !mmath.IsFiniteFloat(key.OutTangent) {
			return nil, fmt.Errorf("%w: 制御点%dに有限でない値があります", ErrInvalidCurve, i)
		}
		if i > 0 && key.Time == sorted[i-1].Time {
			return nil, fmt.Errorf("%w: 制御点の時間が重複しています: %v", ErrInvalidCurve, key.Time)
		}
	}
	return &KeyframeCurve{keys: sorted}, nil
}

// NewLinearCurve は(t0, v0)から(t1, v1)への直線を生成する。
func NewLinearCurve(t0, v0, t1, v1 float64) (*KeyframeCurve, error) {
	if t1 == t0 {
		return nil, fmt.Errorf("%w: 時間幅が0です", ErrInvalidCurve)
	}
	slope := (v1 - v0) / (t1 - t0)
	return NewKeyframeCurve(
		Keyframe{Time: t0, Value: v0, InTangent: slope, OutTangent: slope},
		Keyframe{Time: t1, Value: v1, InTangent: slope, OutTangent: slope},
	)
}

// Keys は制御点のコピーを返す。
func (c *KeyframeCurve) Keys() []Keyframe {
	if c == nil {
		return nil
	}
	return append([]Keyframe(nil), c.keys...)
}

// Evaluate は時間tの値を返す。
func (c *KeyframeCurve) Evaluate(t float64) float64 {
	if c == nil || len(c.keys) == 0 {
		return 0
	}
	first := c.keys[0]
	last := c.keys[len(c.keys)-1]
	if t <= first.Time {
		return first.Value
	}
	if t >= last.Time {
		return last.Value
	}

	index := sort.Search(len(c.keys), func(i int) bool { return c.keys[i].Time > t })
	k0 := c.keys[index-1]
	k1 := c.keys[index]
	return hermite(k0, k1, t)
}

func hermite(k0, k1 Keyframe, t float64) float64 {
	dt := k1.Time - k0.Time
	s := (t - k0.Time) / dt
	s2 := s * s
	s3 := s2 * s

	h00 := 2*s3 - 3*s2 + 1
	h10 := s3 - 2*s2 + s
	h01 := -2*s3 + 3*s2
	h11 := s3 - s2
	return h00*k0.Value + h10*dt*k0.OutTangent + h01*k1.Value + h11*dt*k1.InTangent
}
