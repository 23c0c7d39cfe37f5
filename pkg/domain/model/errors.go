// 指示: miu200521358
package model

import "errors"

var (
	// ErrInvalidPose は関節姿勢が不正な場合のエラー。
	ErrInvalidPose = errors.New("関節姿勢が不正です")
	// ErrInvalidTarget はIKターゲットが不正な場合のエラー。
	ErrInvalidTarget = errors.New("IKターゲットが不正です")
	// ErrInvalidSettings は設定値が不正な場合のエラー。
	ErrInvalidSettings = errors.New("IK設定が不正です")
	// ErrJointNotFound は関節が見つからない場合のエラー。
	ErrJointNotFound = errors.New("関節が見つかりません")
)
