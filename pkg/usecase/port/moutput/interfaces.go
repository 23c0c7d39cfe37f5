// 指示: miu200521358
package moutput

import "github.com/miu200521358/mu_vrik/pkg/domain/model"

// ISettingsReader はIK設定の読み込み契約を表す。
type ISettingsReader interface {
	// LoadSettings は設定ファイルからリグ設定を読み込む。
	LoadSettings(path string) (model.RigSettings, error)
}

// IMotionReader はモーションの読み込み契約を表す。
type IMotionReader interface {
	LoadMotion(path string) (*model.Motion, error)
}

// IMotionWriter はモーションの書き込み契約を表す。
type IMotionWriter interface {
	SaveMotion(path string, motion *model.Motion) error
}

// ISkeletonReader は初期姿勢スケルトンの読み込み契約を表す。
type ISkeletonReader interface {
	// LoadSkeleton はモデルファイルからヒューマノイドの初期姿勢を読み込む。
	LoadSkeleton(path string) (*model.Skeleton, error)
}
