// 指示: miu200521358
package minteractor

import (
	"fmt"

	"github.com/miu200521358/mu_vrik/pkg/domain/ik"
	"github.com/miu200521358/mu_vrik/pkg/domain/mmath"
	"github.com/miu200521358/mu_vrik/pkg/domain/model"
)

// limb は腕と脚で共通の肢パイプライン状態を保持する。
// 根元側の区間upper-fore-endを2ボーン解析解で解く。
type limb struct {
	name  string
	chain *ik.Chain
	upper int
	fore  int
	end   int

	// 初期化時の基準回転から見た前方・上方軸
	referenceForwardAxis mmath.Vec3
	referenceUpAxis      mmath.Vec3

	ikPosition    mmath.Vec3
	ikRotation    mmath.Quaternion
	bendDirection mmath.Vec3
	lastGood      model.LimbPose
	// lastRead は最後に読み込んだ解決前のライブ姿勢
	lastRead    model.LimbPose
	initialized bool

	// フレーム内の作業値
	position          mmath.Vec3
	rotation          mmath.Quaternion
	positionOffset    mmath.Vec3
	bendGoal          *mmath.Vec3
	referenceRotation mmath.Quaternion
	foreRelToUpper    mmath.Quaternion
}

// initialize は初期姿勢からチェーンを構成する。目標は末端の初期姿勢で初期化する。
func (l *limb) initialize(bind model.LimbPose, reference mmath.Quaternion, upper int, restBend mmath.Vec3) error {
	chain, err := ik.NewChain(bind)
	if err != nil {
		return fmt.Errorf("%sのチェーン構成に失敗しました: %w", l.name, err)
	}
	if !reference.IsFinite() {
		return fmt.Errorf("%sの基準回転が有限ではありません: %w", l.name, model.ErrInvalidPose)
	}
	if upper < 0 || upper+2 >= chain.Len() {
		return fmt.Errorf("%sの関節数が不足しています: %w", l.name, ik.ErrDegenerateChain)
	}

	l.chain = chain
	l.upper = upper
	l.fore = upper + 1
	l.end = upper + 2

	inv := reference.Normalized().Inverted()
	l.referenceForwardAxis = inv.MulVec3(mmath.UNIT_Z_VEC3)
	l.referenceUpAxis = inv.MulVec3(mmath.UNIT_Y_VEC3)
	l.referenceRotation = mmath.NewQuaternion()

	end := chain.Bone(l.end)
	l.ikPosition = end.SolverPosition
	l.ikRotation = end.SolverRotation
	l.bendDirection = restBend
	l.positionOffset = mmath.ZERO_VEC3
	l.lastGood = chain.Snapshot()
	l.lastRead = chain.Snapshot()
	l.initialized = true
	return nil
}

// read はライブ姿勢を読み込む。nilの場合は最後に読み込んだライブ姿勢を作業姿勢とする。
// 解を読み戻すと伸縮と肩回転が毎フレーム積み重なる。
func (l *limb) read(live *model.LimbPose) error {
	if live == nil {
		return l.chain.Restore(l.lastRead)
	}
	if err := l.chain.Read(*live); err != nil {
		return err
	}
	l.lastRead = l.chain.Snapshot()
	return nil
}

// carryIdle はライブ姿勢が無く重みが全て0のとき、前回の解を保持して返す。
func (l *limb) carryIdle(live *model.LimbPose, positionWeight, rotationWeight float64) (model.LimbPose, bool) {
	if live != nil || positionWeight > 0 || rotationWeight > 0 {
		return model.LimbPose{}, false
	}
	l.resetOffsets()
	pose, err := l.hold(nil)
	if err != nil {
		return model.LimbPose{}, false
	}
	return pose, true
}

// preSolve は前回姿勢から目標へ重みで寄せた作業目標を求める。
func (l *limb) preSolve(target model.IkTarget, positionWeight, rotationWeight float64) {
	if target.Position != nil {
		l.ikPosition = *target.Position
	}
	if target.Rotation != nil {
		l.ikRotation = target.Rotation.Normalized()
	}
	l.bendGoal = target.BendGoal

	end := l.chain.Bone(l.end)
	l.position = lerpVec3ByWeight(end.SolverPosition, l.ikPosition, positionWeight)
	l.rotation = lerpQuaternionByWeight(end.SolverRotation, l.ikRotation, rotationWeight)

	upper := l.chain.Bone(l.upper)
	fore := l.chain.Bone(l.fore)
	l.foreRelToUpper = upper.SolverRotation.Inverted().Muled(fore.SolverRotation)
}

// applyOffsets は目標位置へオフセットを加える。
func (l *limb) applyOffsets(offset mmath.Vec3) {
	l.positionOffset = offset
	l.position = l.position.Added(offset)
}

// resetOffsets はフレーム限りのオフセットを破棄する。
func (l *limb) resetOffsets() {
	l.positionOffset = mmath.ZERO_VEC3
	l.bendGoal = nil
}

// updateReference は胸(腰)の基準回転をライブ回転から求める。
func (l *limb) updateReference(reference mmath.Quaternion) {
	r := reference.Normalized()
	l.referenceRotation = mmath.NewQuaternionLookRotation(
		r.MulVec3(l.referenceForwardAxis),
		r.MulVec3(l.referenceUpAxis),
	)
}

// bendNormalParams は曲げ面法線の共通入力を組み立てる。
func (l *limb) bendNormalParams(bendGoalWeight, swivelOffset float64) ik.BendNormalParams {
	upper := l.chain.Bone(l.upper)
	if l.bendGoal != nil {
		l.bendDirection = l.bendGoal.Subed(upper.SolverPosition)
	}
	return ik.BendNormalParams{
		Direction:         l.position.Subed(upper.SolverPosition),
		LimbDirection:     l.chain.Bone(0).Direction(),
		Reference:         l.referenceRotation,
		BendGoalDirection: l.bendDirection,
		BendGoalWeight:    bendGoalWeight,
		SwivelOffset:      swivelOffset,
	}
}

// solveTwoBone は根元側3関節を目標へ解く。
func (l *limb) solveTwoBone(bendNormal mmath.Vec3, weight float64) {
	ik.SolveTrigonometric(l.chain, l.upper, l.fore, l.end, l.position, bendNormal, weight)
}

// fixTwist は中間関節のひねりを根元関節に対する解決前のひねりへ戻し、軸を末端へ向ける。
func (l *limb) fixTwist(weight float64) {
	upper := l.chain.Bone(l.upper)
	fore := l.chain.Bone(l.fore)
	end := l.chain.Bone(l.end)

	fixed := upper.SolverRotation.Muled(l.foreRelToUpper)
	fromTo := mmath.NewQuaternionFromTo(fixed.MulVec3(fore.Axis), end.SolverPosition.Subed(fore.SolverPosition))
	l.chain.RotateBoneTo(l.fore, fromTo.Muled(fixed), weight)
}

// blendEndRotation は末端の回転を目標回転へ重みで寄せる。
func (l *limb) blendEndRotation(weight float64) {
	end := l.chain.Bone(l.end)
	if weight >= 1 {
		end.SolverRotation = l.rotation
	} else if weight > 0 {
		end.SolverRotation = end.SolverRotation.Lerp(l.rotation, weight)
	}
}

// write は解を確定する。有限でなければ前回姿勢へ戻す。
func (l *limb) write() (model.LimbPose, error) {
	if !l.chain.IsFinite() {
		logIkWarn(logLimbHoldPrevious, l.name, model.IkWarningNonFiniteResult, ErrNonFiniteResult)
		return l.hold(ErrNonFiniteResult)
	}
	l.lastGood = l.chain.Snapshot()
	return l.lastGood.Copy(), nil
}

// hold は前回姿勢へ戻し、そのコピーとerrを返す。
func (l *limb) hold(err error) (model.LimbPose, error) {
	if restoreErr := l.chain.Restore(l.lastGood); restoreErr != nil {
		return l.lastGood.Copy(), fmt.Errorf("%sの前回姿勢の復元に失敗しました: %w", l.name, restoreErr)
	}
	return l.lastGood.Copy(), err
}

// previousPose は作業姿勢に触れずに前回の解のコピーを返す。
// 作業姿勢は次フレームの読み込みで上書きされる。
func (l *limb) previousPose() model.LimbPose {
	return l.lastGood.Copy()
}

// beginFrame は入力を検証して作業姿勢を読み込む。
func (l *limb) beginFrame(live *model.LimbPose, reference mmath.Quaternion, target model.IkTarget) error {
	if !l.initialized {
		return fmt.Errorf("%s: %w", l.name, ErrNotInitialized)
	}
	if err := target.Validate(); err != nil {
		return fmt.Errorf("%s: %w", l.name, err)
	}
	if !reference.IsFinite() {
		return fmt.Errorf("%sの基準回転が有限ではありません: %w", l.name, model.ErrInvalidPose)
	}
	if err := l.read(live); err != nil {
		return fmt.Errorf("%s: %w", l.name, err)
	}
	return nil
}

// rejectFrame は入力を拒否して前回姿勢を保持する。
func (l *limb) rejectFrame(err error) (model.LimbPose, error) {
	logIkWarn(logLimbHoldPrevious, l.name, model.IkWarningInvalidInput, err)
	if !l.initialized {
		return model.LimbPose{}, err
	}
	return l.hold(err)
}

// lerpVec3ByWeight は重み0でfrom、1でtoを厳密に返す線形補間。
func lerpVec3ByWeight(from, to mmath.Vec3, weight float64) mmath.Vec3 {
	if weight <= 0 {
		return from
	}
	if weight >= 1 {
		return to
	}
	return from.Lerp(to, weight)
}

// lerpQuaternionByWeight は重み0でfrom、1でtoを厳密に返す回転補間。
func lerpQuaternionByWeight(from, to mmath.Quaternion, weight float64) mmath.Quaternion {
	if weight <= 0 {
		return from
	}
	if weight >= 1 {
		return to
	}
	return from.Lerp(to, weight)
}
