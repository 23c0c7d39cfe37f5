// 指示: miu200521358
package model

import (
	"fmt"
	"sort"
)

// MotionFrame は1フレーム分のライブ姿勢と肢ターゲット。
type MotionFrame struct {
	Index int
	// Skeleton はライブ姿勢。nilなら直前のライブ姿勢から解く。
	Skeleton *Skeleton
	Targets  map[LimbID]IkTarget
}

// Motion はフレーム列。Bindが設定されていれば初期姿勢として使う。
type Motion struct {
	Name   string
	Bind   *Skeleton
	Frames []MotionFrame
}

// NewMotion は空のモーションを生成する。
func NewMotion(name string) *Motion {
	return &Motion{Name: name}
}

// AppendFrame はフレームを追加する。
func (m *Motion) AppendFrame(frame MotionFrame) {
	if frame.Targets == nil {
		frame.Targets = map[LimbID]IkTarget{}
	}
	m.Frames = append(m.Frames, frame)
}

// Len はフレーム数を返す。
func (m *Motion) Len() int {
	if m == nil {
		return 0
	}
	return len(m.Frames)
}

// SortFrames はフレーム番号順に並べ替え、重複番号をエラーにする。
func (m *Motion) SortFrames() error {
	sort.SliceStable(m.Frames, func(i, j int) bool {
		return m.Frames[i].Index < m.Frames[j].Index
	})
	for i := 1; i < len(m.Frames); i++ {
		if m.Frames[i].Index == m.Frames[i-1].Index {
			return fmt.Errorf("フレーム番号が重複しています: %d", m.Frames[i].Index)
		}
	}
	return nil
}
