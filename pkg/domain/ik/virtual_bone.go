// 指示: miu200521358
// Package ik は肢IKの解析解プリミティブを提供する。
package ik

import "github.com/miu200521358/mu_vrik/pkg/domain/mmath"

// VirtualBone はソルバーが保持する1関節の作業姿勢。
type VirtualBone struct {
	RestPosition   mmath.Vec3
	RestRotation   mmath.Quaternion
	SolverPosition mmath.Vec3
	SolverRotation mmath.Quaternion
	// Length は次の関節までの初期距離。末端は0。
	Length float64
	// Axis は次の関節へ向かう単位ベクトル(ボーンローカル)。末端は親からの向きを引き継ぐ。
	Axis mmath.Vec3
}

// NewVirtualBone は初期姿勢を設定したVirtualBoneを生成する。
func NewVirtualBone(position mmath.Vec3, rotation mmath.Quaternion) VirtualBone {
	bone := VirtualBone{}
	bone.Initialize(position, rotation)
	return bone
}

// Initialize は初期姿勢を設定する。作業姿勢も同じ値で初期化する。
func (b *VirtualBone) Initialize(position mmath.Vec3, rotation mmath.Quaternion) {
	b.RestPosition = position
	b.RestRotation = rotation
	b.SolverPosition = position
	b.SolverRotation = rotation
}

// Read は作業姿勢をライブの姿勢で上書きする。
func (b *VirtualBone) Read(position mmath.Vec3, rotation mmath.Quaternion) {
	b.SolverPosition = position
	b.SolverRotation = rotation
}

// Direction は作業回転で見たボーン軸のワールド方向を返す。
func (b *VirtualBone) Direction() mmath.Vec3 {
	return b.SolverRotation.MulVec3(b.Axis)
}
