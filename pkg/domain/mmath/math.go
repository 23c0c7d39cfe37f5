// 指示: miu200521358
package mmath

import "math"

// DegToRad は度をラジアンへ変換する。
func DegToRad(degree float64) float64 {
	return degree * math.Pi / 180
}

// RadToDeg はラジアンを度へ変換する。
func RadToDeg(rad float64) float64 {
	return rad * 180 / math.Pi
}

// ClampFloat は値をmin-maxへ収める。
func ClampFloat(v, minValue, maxValue float64) float64 {
	if v < minValue {
		return minValue
	}
	if v > maxValue {
		return maxValue
	}
	return v
}

// Clamp01 は値を0-1へ収める。
func Clamp01(v float64) float64 {
	return ClampFloat(v, 0, 1)
}

// LerpFloat はaからbへtで線形補間する。tは0-1でクランプする。
func LerpFloat(a, b, t float64) float64 {
	return a + (b-a)*Clamp01(t)
}

// DeltaAngle は角度currentからtargetへの最短差分(度)を-180..180で返す。
func DeltaAngle(current, target float64) float64 {
	delta := repeatFloat(target-current, 360)
	if delta > 180 {
		delta -= 360
	}
	return delta
}

// repeatFloat は値を0..lengthの範囲で繰り返す。
func repeatFloat(v, length float64) float64 {
	return ClampFloat(v-math.Floor(v/length)*length, 0, length)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// IsFiniteFloat は値が有限か判定する。
func IsFiniteFloat(v float64) bool {
	return isFinite(v)
}
