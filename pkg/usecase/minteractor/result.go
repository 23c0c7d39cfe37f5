// 指示: miu200521358
package minteractor

import "github.com/miu200521358/mu_vrik/pkg/domain/model"

// SolveProgressEventType はモーション解決の進捗イベント種別を表す。
type SolveProgressEventType string

const (
	// SolveProgressEventTypeSettingsLoaded は設定読み込み完了イベントを表す。
	SolveProgressEventTypeSettingsLoaded SolveProgressEventType = "settings_loaded"
	// SolveProgressEventTypeMotionLoaded はモーション読み込み完了イベントを表す。
	SolveProgressEventTypeMotionLoaded SolveProgressEventType = "motion_loaded"
	// SolveProgressEventTypeRigBound はリグ構成完了イベントを表す。
	SolveProgressEventTypeRigBound SolveProgressEventType = "rig_bound"
	// SolveProgressEventTypeFrameSolved はフレーム解決イベントを表す。
	SolveProgressEventTypeFrameSolved SolveProgressEventType = "frame_solved"
	// SolveProgressEventTypeMotionSaved はモーション保存完了イベントを表す。
	SolveProgressEventTypeMotionSaved SolveProgressEventType = "motion_saved"
)

// SolveProgressEvent はモーション解決の進捗イベントを表す。
type SolveProgressEvent struct {
	Type       SolveProgressEventType
	FrameIndex int
	FrameCount int
	HeldCount  int
	// JointCount は初期姿勢の関節数。rig_boundでのみ設定する。
	JointCount int
}

// ISolveProgressReporter はモーション解決の進捗通知契約を表す。
type ISolveProgressReporter interface {
	// ReportSolveProgress は進捗を通知する。
	ReportSolveProgress(event SolveProgressEvent)
}

// SolveMotionRequest はモーション解決要求を表す。
type SolveMotionRequest struct {
	MotionPath string
	OutputPath string
	// SettingsPath が空なら既定設定で解く。
	SettingsPath string
	// BindPath が空ならモーション内の初期姿勢を使う。
	BindPath string
	// Motion が設定されていればMotionPathから読み込まない。
	Motion           *model.Motion
	ProgressReporter ISolveProgressReporter
}

// SolveMotionResult はモーション解決結果を表す。
type SolveMotionResult struct {
	Motion     *model.Motion
	OutputPath string
	// HeldCount は前回姿勢を保持した肢の延べ数。
	HeldCount int
}
