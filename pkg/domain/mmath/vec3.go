// 指示: miu200521358
package mmath

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	// VEC3_EPSILON はベクトルの零判定に使う許容誤差。
	VEC3_EPSILON = 1e-9
	// vec3SlerpParallelDot は方向補間を線形補間へ切り替える内積閾値。
	vec3SlerpParallelDot = 0.999999
)

// Vec3 は3次元ベクトルを表す。
type Vec3 struct {
	r3.Vec
}

var (
	// ZERO_VEC3 は零ベクトル。
	ZERO_VEC3 = Vec3{}
	// ONE_VEC3 は全成分1のベクトル。
	ONE_VEC3 = Vec3{Vec: r3.Vec{X: 1, Y: 1, Z: 1}}
	// UNIT_X_VEC3 は右方向。
	UNIT_X_VEC3 = Vec3{Vec: r3.Vec{X: 1}}
	// UNIT_Y_VEC3 は上方向。
	UNIT_Y_VEC3 = Vec3{Vec: r3.Vec{Y: 1}}
	// UNIT_Z_VEC3 は前方向。
	UNIT_Z_VEC3 = Vec3{Vec: r3.Vec{Z: 1}}
	// UNIT_X_NEG_VEC3 は左方向。
	UNIT_X_NEG_VEC3 = Vec3{Vec: r3.Vec{X: -1}}
	// UNIT_Y_NEG_VEC3 は下方向。
	UNIT_Y_NEG_VEC3 = Vec3{Vec: r3.Vec{Y: -1}}
	// UNIT_Z_NEG_VEC3 は後方向。
	UNIT_Z_NEG_VEC3 = Vec3{Vec: r3.Vec{Z: -1}}
)

// NewVec3 は成分を指定してVec3を生成する。
func NewVec3(x, y, z float64) Vec3 {
	return Vec3{Vec: r3.Vec{X: x, Y: y, Z: z}}
}

// NewVec3FromSlice はスライスからVec3を生成する。
func NewVec3FromSlice(values []float64) (Vec3, error) {
	if len(values) != 3 {
		return ZERO_VEC3, fmt.Errorf("Vec3の要素数が不正です: %d", len(values))
	}
	return NewVec3(values[0], values[1], values[2]), nil
}

// Added は加算結果を返す。
func (v Vec3) Added(other Vec3) Vec3 {
	return Vec3{Vec: r3.Add(v.Vec, other.Vec)}
}

// Subed は減算結果を返す。
func (v Vec3) Subed(other Vec3) Vec3 {
	return Vec3{Vec: r3.Sub(v.Vec, other.Vec)}
}

// MuledScalar はスカラー倍を返す。
func (v Vec3) MuledScalar(s float64) Vec3 {
	return Vec3{Vec: r3.Scale(s, v.Vec)}
}

// Negated は符号反転を返す。
func (v Vec3) Negated() Vec3 {
	return v.MuledScalar(-1)
}

// Dot は内積を返す。
func (v Vec3) Dot(other Vec3) float64 {
	return r3.Dot(v.Vec, other.Vec)
}

// Cross は外積を返す。
func (v Vec3) Cross(other Vec3) Vec3 {
	return Vec3{Vec: r3.Cross(v.Vec, other.Vec)}
}

// Length は長さを返す。
func (v Vec3) Length() float64 {
	return r3.Norm(v.Vec)
}

// LengthSqr は長さの2乗を返す。
func (v Vec3) LengthSqr() float64 {
	return r3.Norm2(v.Vec)
}

// Distance は2点間距離を返す。
func (v Vec3) Distance(other Vec3) float64 {
	return v.Subed(other).Length()
}

// Normalized は正規化したベクトルを返す。零ベクトルは零ベクトルのまま返す。
func (v Vec3) Normalized() Vec3 {
	if v.Length() <= VEC3_EPSILON {
		return ZERO_VEC3
	}
	return Vec3{Vec: r3.Unit(v.Vec)}
}

// IsZero は零ベクトルか判定する。
func (v Vec3) IsZero() bool {
	return v.Length() <= VEC3_EPSILON
}

// IsFinite は全成分が有限値か判定する。
func (v Vec3) IsFinite() bool {
	return isFinite(v.X) && isFinite(v.Y) && isFinite(v.Z)
}

// NearEquals は成分ごとの差が許容誤差以内か判定する。
func (v Vec3) NearEquals(other Vec3, epsilon float64) bool {
	return math.Abs(v.X-other.X) <= epsilon &&
		math.Abs(v.Y-other.Y) <= epsilon &&
		math.Abs(v.Z-other.Z) <= epsilon
}

// Lerp は線形補間を返す。tは0-1でクランプする。
func (v Vec3) Lerp(other Vec3, t float64) Vec3 {
	t = Clamp01(t)
	return v.Added(other.Subed(v).MuledScalar(t))
}

// Slerp は方向を球面補間し、長さを線形補間したベクトルを返す。
func (v Vec3) Slerp(other Vec3, t float64) Vec3 {
	t = Clamp01(t)
	fromLength := v.Length()
	toLength := other.Length()
	if fromLength <= VEC3_EPSILON || toLength <= VEC3_EPSILON {
		return v.Lerp(other, t)
	}

	fromDir := v.MuledScalar(1 / fromLength)
	toDir := other.MuledScalar(1 / toLength)
	dot := ClampFloat(fromDir.Dot(toDir), -1, 1)
	length := fromLength + (toLength-fromLength)*t
	if dot >= vec3SlerpParallelDot {
		return fromDir.Lerp(toDir, t).Normalized().MuledScalar(length)
	}

	axis := fromDir.Cross(toDir)
	if axis.IsZero() {
		// 正反対の場合は任意の直交軸で回す
		axis = fromDir.Orthogonal()
	}
	angle := math.Acos(dot) * t
	rotated := NewQuaternionFromAxisAngle(axis, angle).MulVec3(fromDir)
	return rotated.Normalized().MuledScalar(length)
}

// Orthogonal は直交する単位ベクトルを1つ返す。
func (v Vec3) Orthogonal() Vec3 {
	if v.IsZero() {
		return UNIT_X_VEC3
	}
	n := v.Normalized()
	candidate := UNIT_X_VEC3
	if math.Abs(n.X) > 0.9 {
		candidate = UNIT_Y_VEC3
	}
	return n.Cross(candidate).Normalized()
}

// Vector はスライス表現を返す。
func (v Vec3) Vector() []float64 {
	return []float64{v.X, v.Y, v.Z}
}

// String は文字列表現を返す。
func (v Vec3) String() string {
	return fmt.Sprintf("[x=%.7f, y=%.7f, z=%.7f]", v.X, v.Y, v.Z)
}

// toMgl はmgl64表現へ変換する。
func (v Vec3) toMgl() mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

// vec3FromMgl はmgl64表現から変換する。
func vec3FromMgl(v mgl64.Vec3) Vec3 {
	return NewVec3(v[0], v[1], v[2])
}
