// 指示: miu200521358
package minteractor

import (
	"context"
	"fmt"
	"sync"

	"github.com/miu200521358/mu_vrik/pkg/domain/mmath"
	"github.com/miu200521358/mu_vrik/pkg/domain/model"
	"golang.org/x/sync/errgroup"
)

// rigLimb はリグに結び付けた1本の肢。
type rigLimb struct {
	id    model.LimbID
	bones []model.HumanoidBone
	// reference は基準回転を取る関節の優先順。
	reference []model.HumanoidBone
	// lastReference は最後に読み込んだ基準回転。スケルトンの無いフレームで使う。
	lastReference mmath.Quaternion
	arm           *Arm
	leg           *Leg
}

func (r *rigLimb) update(
	live *model.LimbPose,
	reference mmath.Quaternion,
	target model.IkTarget,
	settings model.RigSettings,
) (model.LimbPose, error) {
	if r.arm != nil {
		return r.arm.UpdateFrame(live, reference, target, settings.Arm(r.id.Direction()))
	}
	return r.leg.UpdateFrame(live, reference, target, settings.Leg(r.id.Direction()))
}

func (r *rigLimb) base() *limb {
	if r.arm != nil {
		return &r.arm.limb
	}
	return &r.leg.limb
}

// RigSolveResult は1フレーム分のリグ解決結果。
type RigSolveResult struct {
	// Skeleton は解決後スケルトンのコピー。書き換えてもリグへは影響しない。
	Skeleton *model.Skeleton
	Solved   []model.LimbID
	// Held は前回姿勢を保持した肢とその理由。
	Held map[model.LimbID]error
}

// Rig はスケルトン上の腕と脚をまとめて解く。
// 肢同士は並行に解き、スケルトンへの書き戻しは関節ごとに直列化する。
type Rig struct {
	limbs []*rigLimb
	locks map[model.HumanoidBone]*sync.Mutex
}

// NewRig は空のリグを生成する。
func NewRig() *Rig {
	return &Rig{locks: map[model.HumanoidBone]*sync.Mutex{}}
}

// Bind は初期姿勢のスケルトンから肢を構成する。関節が揃わない肢は警告を出して除外する。
func (r *Rig) Bind(bind *model.Skeleton) error {
	if bind == nil || bind.Len() == 0 {
		return fmt.Errorf("初期姿勢のスケルトンが空です: %w", model.ErrInvalidPose)
	}
	limbs := make([]*rigLimb, 0, len(model.LimbIDs()))
	locks := map[model.HumanoidBone]*sync.Mutex{}
	for _, id := range model.LimbIDs() {
		rl, err := bindLimb(bind, id)
		if err != nil {
			logIkWarn(logLimbUnbound, id, model.IkWarningLimbUnbound, err)
			continue
		}
		for _, bone := range rl.bones {
			if _, ok := locks[bone]; !ok {
				locks[bone] = &sync.Mutex{}
			}
		}
		logIkInfo(logLimbBound, id, len(rl.bones), rl.arm != nil && rl.arm.HasShoulder())
		limbs = append(limbs, rl)
	}
	if len(limbs) == 0 {
		return ErrNoLimbBound
	}
	r.limbs = limbs
	r.locks = locks
	return nil
}

// bindLimb は1本の肢を初期化する。肩が無い腕は3関節で構成する。
func bindLimb(bind *model.Skeleton, id model.LimbID) (*rigLimb, error) {
	bones := id.Bones()
	if id.IsArm() {
		hasShoulder := bind.Has(bones[0])
		if !hasShoulder {
			bones = bones[1:]
		}
		pose, err := bind.LimbPose(bones)
		if err != nil {
			return nil, err
		}
		arm := NewArm(id.Direction())
		rl := &rigLimb{id: id, bones: bones, reference: model.ChestBones(), arm: arm}
		rl.lastReference = bind.ReferenceRotation(rl.reference...)
		if err := arm.Initialize(pose, hasShoulder, rl.lastReference); err != nil {
			return nil, err
		}
		return rl, nil
	}

	pose, err := bind.LimbPose(bones)
	if err != nil {
		return nil, err
	}
	leg := NewLeg(id.Direction())
	rl := &rigLimb{id: id, bones: bones, reference: []model.HumanoidBone{model.HUMANOID_HIPS}, leg: leg}
	rl.lastReference = bind.ReferenceRotation(rl.reference...)
	if err := leg.Initialize(pose, rl.lastReference); err != nil {
		return nil, err
	}
	return rl, nil
}

// Limbs は構成済みの肢識別子を返す。
func (r *Rig) Limbs() []model.LimbID {
	ids := make([]model.LimbID, 0, len(r.limbs))
	for _, rl := range r.limbs {
		ids = append(ids, rl.id)
	}
	return ids
}

// Solve はライブ姿勢のスケルトンを目標へ解き、結果をskeletonへ書き戻す。
// skeletonがnilなら各肢は最後に読み込んだライブ姿勢と基準回転から解く。ctxが解決前に終了していれば何も書き込まない。
func (r *Rig) Solve(
	ctx context.Context,
	skeleton *model.Skeleton,
	targets map[model.LimbID]model.IkTarget,
	settings model.RigSettings,
) (*RigSolveResult, error) {
	if len(r.limbs) == 0 {
		return nil, ErrNotInitialized
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	type limbJob struct {
		rl        *rigLimb
		indexes   []int
		reference mmath.Quaternion
	}
	jobs := make([]limbJob, len(r.limbs))
	for i, rl := range r.limbs {
		if skeleton != nil {
			rl.lastReference = skeleton.ReferenceRotation(rl.reference...)
		}
		job := limbJob{rl: rl, reference: rl.lastReference}
		if skeleton != nil {
			job.indexes = make([]int, len(rl.bones))
			for j, bone := range rl.bones {
				job.indexes[j] = skeleton.IndexOf(bone)
			}
		}
		jobs[i] = job
	}

	errs := make([]error, len(jobs))
	var group errgroup.Group
	for i := range jobs {
		i := i
		job := jobs[i]
		group.Go(func() error {
			errs[i] = r.solveLimb(skeleton, job.rl, job.indexes, job.reference, targets[job.rl.id], settings)
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	result := &RigSolveResult{Held: map[model.LimbID]error{}}
	for i, job := range jobs {
		if errs[i] != nil {
			result.Held[job.rl.id] = errs[i]
			continue
		}
		result.Solved = append(result.Solved, job.rl.id)
	}
	if skeleton != nil {
		copied, err := skeleton.Copy()
		if err != nil {
			return nil, err
		}
		result.Skeleton = copied
	}
	return result, nil
}

// solveLimb は1本の肢を解いて書き戻す。異常終了した肢は前回姿勢を保持する。
func (r *Rig) solveLimb(
	skeleton *model.Skeleton,
	rl *rigLimb,
	indexes []int,
	reference mmath.Quaternion,
	target model.IkTarget,
	settings model.RigSettings,
) (err error) {
	var pose model.LimbPose
	defer func() {
		if recovered := recover(); recovered != nil {
			err = fmt.Errorf("%sの解決中に異常が発生しました: %v", rl.id, recovered)
			logIkWarn(logLimbHoldPrevious, rl.id, model.IkWarningLimbPanic, err)
			pose = rl.base().previousPose()
		}
		if writeErr := r.writeBack(skeleton, rl, indexes, pose); writeErr != nil && err == nil {
			err = writeErr
		}
	}()

	live, err := r.readLive(skeleton, rl, indexes)
	if err != nil {
		pose, err = rl.base().rejectFrame(err)
		return err
	}
	pose, err = rl.update(live, reference, target, settings)
	return err
}

// readLive は肢の関節を関節ロック下で読み出す。
func (r *Rig) readLive(skeleton *model.Skeleton, rl *rigLimb, indexes []int) (*model.LimbPose, error) {
	if skeleton == nil {
		return nil, nil
	}
	pose := model.NewLimbPose(len(rl.bones))
	for i, bone := range rl.bones {
		index := indexes[i]
		if index < 0 {
			return nil, fmt.Errorf("%s: %w: %s", rl.id, model.ErrJointNotFound, bone)
		}
		lock := r.locks[bone]
		lock.Lock()
		joint := skeleton.Joints[index]
		lock.Unlock()
		pose.Positions[i] = joint.Position
		pose.Rotations[i] = joint.Rotation
	}
	return &pose, nil
}

// writeBack は解を関節ロック下でスケルトンへ書き戻す。
func (r *Rig) writeBack(skeleton *model.Skeleton, rl *rigLimb, indexes []int, pose model.LimbPose) error {
	if skeleton == nil || pose.Len() != len(rl.bones) {
		return nil
	}
	for i, bone := range rl.bones {
		if indexes[i] < 0 {
			continue
		}
		lock := r.locks[bone]
		lock.Lock()
		err := skeleton.SetAt(indexes[i], pose.Positions[i], pose.Rotations[i])
		lock.Unlock()
		if err != nil {
			return err
		}
	}
	return nil
}
