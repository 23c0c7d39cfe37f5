// 指示: miu200521358
package ik

import "github.com/miu200521358/mu_vrik/pkg/domain/mmath"

// DamperValue は値をmin-maxへ5次イージングで滑らかに収める。
// weightが1未満なら範囲中央へ半分寄せてから収める。
func DamperValue(value, minValue, maxValue, weight float64) float64 {
	valueRange := maxValue - minValue
	if valueRange <= 0 {
		return minValue
	}
	if weight < 1 {
		mid := maxValue - valueRange*0.5
		value = mid + (value-mid)*0.5
	}
	t := mmath.Clamp01((value - minValue) / valueRange)
	return minValue + valueRange*mmath.InOutQuintic(t)
}
