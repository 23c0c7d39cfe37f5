// 指示: miu200521358
package mmath

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	// quaternionParallelDot は同方向とみなす内積閾値。
	quaternionParallelDot = 1 - 1e-12
	// quaternionOppositeDot は逆方向とみなす内積閾値。
	quaternionOppositeDot = -1 + 1e-10
)

// Quaternion は回転を表す単位クォータニオン。
type Quaternion struct {
	mgl64.Quat
}

// NewQuaternion は単位回転を返す。
func NewQuaternion() Quaternion {
	return Quaternion{Quat: mgl64.QuatIdent()}
}

// NewQuaternionByValues は成分(x, y, z, w)からクォータニオンを生成する。
func NewQuaternionByValues(x, y, z, w float64) Quaternion {
	return Quaternion{Quat: mgl64.Quat{W: w, V: mgl64.Vec3{x, y, z}}}
}

// NewQuaternionFromSlice はスライス(x, y, z, w)からクォータニオンを生成する。
func NewQuaternionFromSlice(values []float64) (Quaternion, error) {
	if len(values) != 4 {
		return NewQuaternion(), fmt.Errorf("Quaternionの要素数が不正です: %d", len(values))
	}
	return NewQuaternionByValues(values[0], values[1], values[2], values[3]).Normalized(), nil
}

// NewQuaternionFromAxisAngle は軸と角度(ラジアン)から回転を生成する。軸が零なら単位回転を返す。
func NewQuaternionFromAxisAngle(axis Vec3, rad float64) Quaternion {
	n := axis.Normalized()
	if n.IsZero() {
		return NewQuaternion()
	}
	return Quaternion{Quat: mgl64.QuatRotate(rad, n.toMgl())}
}

// NewQuaternionFromAxisDegree は軸と角度(度)から回転を生成する。
func NewQuaternionFromAxisDegree(axis Vec3, degree float64) Quaternion {
	return NewQuaternionFromAxisAngle(axis, DegToRad(degree))
}

// NewQuaternionFromTo はfromからtoへ向ける最短回転を返す。
// どちらかが零ベクトルなら単位回転、正反対なら直交軸回りの180度回転を返す。
func NewQuaternionFromTo(from, to Vec3) Quaternion {
	f := from.Normalized()
	t := to.Normalized()
	if f.IsZero() || t.IsZero() {
		return NewQuaternion()
	}
	dot := f.Dot(t)
	if dot >= quaternionParallelDot {
		return NewQuaternion()
	}
	if dot <= quaternionOppositeDot {
		return NewQuaternionFromAxisAngle(f.Orthogonal(), math.Pi)
	}
	c := f.Cross(t)
	return Quaternion{Quat: mgl64.Quat{W: 1 + dot, V: c.toMgl()}.Normalize()}
}

// NewQuaternionLookRotation はZ軸をforward、Y軸をupへ向ける回転を返す。
// forwardが零なら単位回転、upがforwardと平行なら直交軸をupとして扱う。
func NewQuaternionLookRotation(forward, up Vec3) Quaternion {
	z := forward.Normalized()
	if z.IsZero() {
		return NewQuaternion()
	}
	x := up.Cross(z).Normalized()
	if x.IsZero() {
		x = z.Orthogonal()
	}
	y := z.Cross(x)
	m := mgl64.Mat3FromCols(x.toMgl(), y.toMgl(), z.toMgl())
	return Quaternion{Quat: mgl64.Mat4ToQuat(m.Mat4()).Normalize()}
}

// NewQuaternionFromMat4 は列優先4x4行列の回転成分をクォータニオンへ変換する。スケールは除去する。
func NewQuaternionFromMat4(values [16]float64) Quaternion {
	x := NewVec3(values[0], values[1], values[2]).Normalized()
	y := NewVec3(values[4], values[5], values[6]).Normalized()
	z := NewVec3(values[8], values[9], values[10]).Normalized()
	if x.IsZero() || y.IsZero() || z.IsZero() {
		return NewQuaternion()
	}
	m := mgl64.Mat3FromCols(x.toMgl(), y.toMgl(), z.toMgl())
	return Quaternion{Quat: mgl64.Mat4ToQuat(m.Mat4()).Normalize()}
}

// FromToRotation は回転fromを回転toへ変換する差分回転を返す。
func FromToRotation(from, to Quaternion) Quaternion {
	return to.Muled(from.Inverted())
}

// X はX成分を返す。
func (q Quaternion) X() float64 { return q.Quat.V[0] }

// Y はY成分を返す。
func (q Quaternion) Y() float64 { return q.Quat.V[1] }

// Z はZ成分を返す。
func (q Quaternion) Z() float64 { return q.Quat.V[2] }

// W はW成分を返す。
func (q Quaternion) W() float64 { return q.Quat.W }

// Muled は q * other を返す。otherを先に適用した回転になる。
func (q Quaternion) Muled(other Quaternion) Quaternion {
	return Quaternion{Quat: q.Quat.Mul(other.Quat)}
}

// MulVec3 はベクトルを回転させる。
func (q Quaternion) MulVec3(v Vec3) Vec3 {
	return vec3FromMgl(q.Quat.Rotate(v.toMgl()))
}

// Inverted は逆回転を返す。
func (q Quaternion) Inverted() Quaternion {
	if q.Quat.Dot(q.Quat) <= VEC3_EPSILON {
		return NewQuaternion()
	}
	return Quaternion{Quat: q.Quat.Inverse()}
}

// Normalized は正規化したクォータニオンを返す。
func (q Quaternion) Normalized() Quaternion {
	return Quaternion{Quat: q.Quat.Normalize()}
}

// Dot は内積を返す。
func (q Quaternion) Dot(other Quaternion) float64 {
	return q.Quat.Dot(other.Quat)
}

// Lerp は最短経路で線形補間し正規化した回転を返す。tは0-1でクランプする。
func (q Quaternion) Lerp(other Quaternion, t float64) Quaternion {
	t = Clamp01(t)
	to := other.Quat
	if q.Quat.Dot(to) < 0 {
		to = to.Scale(-1)
	}
	return Quaternion{Quat: mgl64.QuatNlerp(q.Quat, to, t)}
}

// Slerp は最短経路で球面補間した回転を返す。tは0-1でクランプする。
func (q Quaternion) Slerp(other Quaternion, t float64) Quaternion {
	t = Clamp01(t)
	if t <= 0 {
		return q
	}
	to := other.Quat
	if q.Quat.Dot(to) < 0 {
		to = to.Scale(-1)
	}
	if t >= 1 {
		return Quaternion{Quat: to}
	}
	return Quaternion{Quat: mgl64.QuatSlerp(q.Quat, to, t)}
}

// ToAxisAngle は回転軸と角度(ラジアン)を返す。単位回転の場合は軸にX軸を返す。
func (q Quaternion) ToAxisAngle() (Vec3, float64) {
	n := q.Normalized().Quat
	if n.W < 0 {
		n = n.Scale(-1)
	}
	w := ClampFloat(n.W, -1, 1)
	angle := 2 * math.Acos(w)
	s := math.Sqrt(1 - w*w)
	if s <= VEC3_EPSILON {
		return UNIT_X_VEC3, 0
	}
	return NewVec3(n.V[0]/s, n.V[1]/s, n.V[2]/s), angle
}

// IsIdent は単位回転とみなせるか判定する。
func (q Quaternion) IsIdent() bool {
	return q.NearEquals(NewQuaternion(), 1e-9)
}

// IsFinite は全成分が有限値か判定する。
func (q Quaternion) IsFinite() bool {
	return isFinite(q.Quat.W) && isFinite(q.Quat.V[0]) && isFinite(q.Quat.V[1]) && isFinite(q.Quat.V[2])
}

// NearEquals は同じ回転を表すか判定する。qと-qは同一とみなす。
func (q Quaternion) NearEquals(other Quaternion, epsilon float64) bool {
	same := math.Abs(q.Quat.W-other.Quat.W) <= epsilon &&
		math.Abs(q.Quat.V[0]-other.Quat.V[0]) <= epsilon &&
		math.Abs(q.Quat.V[1]-other.Quat.V[1]) <= epsilon &&
		math.Abs(q.Quat.V[2]-other.Quat.V[2]) <= epsilon
	if same {
		return true
	}
	return math.Abs(q.Quat.W+other.Quat.W) <= epsilon &&
		math.Abs(q.Quat.V[0]+other.Quat.V[0]) <= epsilon &&
		math.Abs(q.Quat.V[1]+other.Quat.V[1]) <= epsilon &&
		math.Abs(q.Quat.V[2]+other.Quat.V[2]) <= epsilon
}

// Vector はスライス表現(x, y, z, w)を返す。
func (q Quaternion) Vector() []float64 {
	return []float64{q.X(), q.Y(), q.Z(), q.W()}
}

// String は文字列表現を返す。
func (q Quaternion) String() string {
	return fmt.Sprintf("[x=%.7f, y=%.7f, z=%.7f, w=%.7f]", q.X(), q.Y(), q.Z(), q.W())
}
