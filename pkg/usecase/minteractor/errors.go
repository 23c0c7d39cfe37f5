// 指示: miu200521358
package minteractor

import (
	"errors"

	"github.com/miu200521358/mu_vrik/pkg/shared/logging"
)

var (
	// ErrNotInitialized は初期化前の肢を解こうとした場合のエラー。
	ErrNotInitialized = errors.New("肢が初期化されていません")
	// ErrNonFiniteResult は解が有限でなく前回姿勢へ戻した場合のエラー。
	ErrNonFiniteResult = errors.New("IKの解が有限ではありません")
	// ErrNoLimbBound はスケルトンから1本も肢を構成できなかった場合のエラー。
	ErrNoLimbBound = errors.New("構成できる肢がありません")
	// ErrOutputPathInvalid は保存先モーションパスが解決できない場合のエラー。
	ErrOutputPathInvalid = errors.New("保存先モーションパスが不正です")
)

const (
	logFrameSolved      = "フレーム解決: frame=%d limbs=%d held=%d"
	logLimbBound        = "肢を構成しました: limb=%s joints=%d shoulder=%t"
	logLimbUnbound      = "肢を構成できませんでした: limb=%s warning=%s reason=%v"
	logLimbHoldPrevious = "前回姿勢を保持しました: limb=%s warning=%s reason=%v"
	logSettingsClamped  = "IK設定を範囲内へ丸めました: limb=%s field=%s value=%v clamped=%v warning=%s"
)

// logIkDebug はIK処理のデバッグログを出力する。
func logIkDebug(format string, params ...any) {
	logger := logging.DefaultLogger()
	if logger == nil {
		return
	}
	logger.Debug(format, params...)
}

// logIkInfo はIK処理のINFOログを出力する。
func logIkInfo(format string, params ...any) {
	logger := logging.DefaultLogger()
	if logger == nil {
		return
	}
	logger.Info(format, params...)
}

// logIkWarn はIK処理の警告ログを出力する。
func logIkWarn(format string, params ...any) {
	logger := logging.DefaultLogger()
	if logger == nil {
		return
	}
	logger.Warn(format, params...)
}
