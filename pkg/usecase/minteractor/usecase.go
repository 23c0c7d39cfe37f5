// 指示: miu200521358
package minteractor

import "github.com/miu200521358/mu_vrik/pkg/usecase/port/moutput"

// VrikUsecaseDeps はIKユースケースの依存を表す。
type VrikUsecaseDeps struct {
	SettingsReader moutput.ISettingsReader
	MotionReader   moutput.IMotionReader
	MotionWriter   moutput.IMotionWriter
	SkeletonReader moutput.ISkeletonReader
}

// VrikUsecase はモーションへIKを適用する処理をまとめたユースケースを表す。
type VrikUsecase struct {
	settingsReader moutput.ISettingsReader
	motionReader   moutput.IMotionReader
	motionWriter   moutput.IMotionWriter
	skeletonReader moutput.ISkeletonReader
}

// NewVrikUsecase はIKユースケースを生成する。
func NewVrikUsecase(deps VrikUsecaseDeps) *VrikUsecase {
	return &VrikUsecase{
		settingsReader: deps.SettingsReader,
		motionReader:   deps.MotionReader,
		motionWriter:   deps.MotionWriter,
		skeletonReader: deps.SkeletonReader,
	}
}
