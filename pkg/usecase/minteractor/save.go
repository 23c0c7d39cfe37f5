// 指示: miu200521358
package minteractor

import (
	"fmt"
	"strings"

	"github.com/miu200521358/mu_vrik/pkg/domain/model"
	"github.com/miu200521358/mu_vrik/pkg/usecase/port/moutput"
)

// SaveMotion は解決済みモーションを保存する。
func (uc *VrikUsecase) SaveMotion(rep moutput.IMotionWriter, path string, motion *model.Motion) error {
	writer := rep
	if writer == nil {
		writer = uc.motionWriter
	}
	if writer == nil {
		return fmt.Errorf("モーション保存リポジトリが設定されていません")
	}
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("保存先パスが未指定です")
	}
	if motion == nil {
		return fmt.Errorf("保存対象モーションが未設定です")
	}
	return writer.SaveMotion(path, motion)
}
