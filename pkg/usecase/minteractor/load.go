// 指示: miu200521358
package minteractor

import (
	"fmt"
	"strings"

	"github.com/miu200521358/mu_vrik/pkg/domain/model"
	"github.com/miu200521358/mu_vrik/pkg/usecase/port/moutput"
)

// LoadSettings はIK設定を読み込む。パスが空なら既定設定を返す。
func (uc *VrikUsecase) LoadSettings(rep moutput.ISettingsReader, path string) (model.RigSettings, error) {
	if strings.TrimSpace(path) == "" {
		return model.NewRigSettings(), nil
	}
	reader := rep
	if reader == nil {
		reader = uc.settingsReader
	}
	if reader == nil {
		return model.RigSettings{}, fmt.Errorf("設定読み込みリポジトリが設定されていません")
	}
	settings, err := reader.LoadSettings(path)
	if err != nil {
		return model.RigSettings{}, err
	}
	return NormalizeRigSettings(settings)
}

// LoadMotion はモーションを読み込む。
func (uc *VrikUsecase) LoadMotion(rep moutput.IMotionReader, path string) (*model.Motion, error) {
	reader := rep
	if reader == nil {
		reader = uc.motionReader
	}
	if reader == nil {
		return nil, fmt.Errorf("モーション読み込みリポジトリが設定されていません")
	}
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("入力モーションパスが未指定です")
	}
	motion, err := reader.LoadMotion(path)
	if err != nil {
		return nil, err
	}
	if motion == nil {
		return nil, fmt.Errorf("モーション読み込み結果が空です")
	}
	return motion, nil
}

// LoadSkeleton はモデルから初期姿勢のスケルトンを読み込む。
func (uc *VrikUsecase) LoadSkeleton(rep moutput.ISkeletonReader, path string) (*model.Skeleton, error) {
	reader := rep
	if reader == nil {
		reader = uc.skeletonReader
	}
	if reader == nil {
		return nil, fmt.Errorf("モデル読み込みリポジトリが設定されていません")
	}
	skeleton, err := reader.LoadSkeleton(path)
	if err != nil {
		return nil, err
	}
	if skeleton.Len() == 0 {
		return nil, fmt.Errorf("モデルにヒューマノイド関節がありません: %s", path)
	}
	return skeleton, nil
}
