// 指示: miu200521358
// Package messages はCLI表示とログに使うメッセージを提供する。
package messages

// メッセージ一覧。
const (
	HelpUsageTitle = "使い方"
	HelpUsage      = "mu_vrik -motion <motion.yaml> [-vrm <avatar.vrm>] [-config <settings.yaml>] [-out <output.yaml>] [-log-level INFO]"

	MessageSettingsLoadFailed = "IK設定読み込み失敗"
	MessageMotionLoadFailed   = "モーション読み込み失敗"
	MessageMotionSaveFailed   = "モーション保存失敗"
	MessageBindLoadFailed     = "バインドポーズ読み込み失敗"
	MessageSolveFailed        = "IK解決失敗"
	MessageMotionRequired     = "モーションファイルを指定してください"
	MessageBindPoseMissing    = "バインドポーズが見つかりません"
	MessageOutputPathInvalid  = "保存先モーションパス不正"

	LogSettingsLoaded = "IK設定読み込み成功: %s"
	LogBindPoseLoaded = "バインドポーズ読み込み成功: %s joints=%d"
	LogMotionLoaded   = "モーション読み込み成功: %s frames=%d"
	LogSolveSuccess   = "IK解決成功: frames=%d held=%d output=%s"
)
