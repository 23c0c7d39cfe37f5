// 指示: miu200521358
package mmath

// InOutQuintic は5次のイーズインアウト 6t^5-15t^4+10t^3 を返す。tは0-1でクランプする。
func InOutQuintic(t float64) float64 {
	t = Clamp01(t)
	t3 := t * t * t
	return t3 * (t*(t*6-15) + 10)
}
