// 指示: miu200521358
package model

const (
	// IkWarningSettingsClamped は設定値を範囲内へ丸めた警告。
	IkWarningSettingsClamped = "IkWarningSettingsClamped"
	// IkWarningInvalidInput は入力を拒否して前回姿勢を保持した警告。
	IkWarningInvalidInput = "IkWarningInvalidInput"
	// IkWarningNonFiniteResult は解が有限でなく前回姿勢へ戻した警告。
	IkWarningNonFiniteResult = "IkWarningNonFiniteResult"
	// IkWarningLimbPanic は肢の解決中に回復した異常の警告。
	IkWarningLimbPanic = "IkWarningLimbPanic"
	// IkWarningLimbUnbound はスケルトンに関節が無く肢を構成しなかった警告。
	IkWarningLimbUnbound = "IkWarningLimbUnbound"
)
