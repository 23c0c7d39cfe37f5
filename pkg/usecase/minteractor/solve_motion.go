// 指示: miu200521358
package minteractor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/miu200521358/mu_vrik/pkg/domain/model"
)

// ErrBindPoseMissing は初期姿勢を解決できない場合のエラー。
var ErrBindPoseMissing = errors.New("初期姿勢が見つかりません")

// SolveMotion はモーションの各フレームへIKを適用し、結果を保存する。
func (uc *VrikUsecase) SolveMotion(ctx context.Context, request SolveMotionRequest) (*SolveMotionResult, error) {
	if request.Motion == nil && strings.TrimSpace(request.MotionPath) == "" {
		return nil, fmt.Errorf("入力モーションパスが未指定です")
	}
	outputPath, err := resolveMotionOutputPath(request.MotionPath, request.OutputPath)
	if err != nil {
		return nil, err
	}

	settings, err := uc.LoadSettings(nil, request.SettingsPath)
	if err != nil {
		return nil, err
	}
	reportSolveProgress(request.ProgressReporter, SolveProgressEvent{Type: SolveProgressEventTypeSettingsLoaded})

	motion := request.Motion
	if motion == nil {
		motion, err = uc.LoadMotion(nil, request.MotionPath)
		if err != nil {
			return nil, err
		}
	}
	if err := motion.SortFrames(); err != nil {
		return nil, err
	}
	reportSolveProgress(request.ProgressReporter, SolveProgressEvent{
		Type:       SolveProgressEventTypeMotionLoaded,
		FrameCount: motion.Len(),
	})

	bind, err := uc.resolveBindSkeleton(request.BindPath, motion)
	if err != nil {
		return nil, err
	}
	rig := NewRig()
	if err := rig.Bind(bind); err != nil {
		return nil, err
	}
	reportSolveProgress(request.ProgressReporter, SolveProgressEvent{
		Type:       SolveProgressEventTypeRigBound,
		FrameCount: motion.Len(),
		JointCount: bind.Len(),
	})

	solved, heldCount, err := SolveFrames(ctx, rig, bind, motion, settings, request.ProgressReporter)
	if err != nil {
		return nil, err
	}

	if err := uc.SaveMotion(nil, outputPath, solved); err != nil {
		return nil, err
	}
	reportSolveProgress(request.ProgressReporter, SolveProgressEvent{
		Type:       SolveProgressEventTypeMotionSaved,
		FrameCount: solved.Len(),
		HeldCount:  heldCount,
	})
	return &SolveMotionResult{Motion: solved, OutputPath: outputPath, HeldCount: heldCount}, nil
}

// SolveFrames は構成済みのリグでモーションを先頭から順に解く。
// ライブ姿勢の無いフレームは直前のライブ姿勢(無ければ初期姿勢)から解く。入力のモーションは書き換えない。
func SolveFrames(
	ctx context.Context,
	rig *Rig,
	bind *model.Skeleton,
	motion *model.Motion,
	settings model.RigSettings,
	reporter ISolveProgressReporter,
) (*model.Motion, int, error) {
	solved := model.NewMotion(motion.Name)
	bindCopy, err := bind.Copy()
	if err != nil {
		return nil, 0, err
	}
	solved.Bind = bindCopy

	previous := bindCopy
	heldCount := 0
	for _, frame := range motion.Frames {
		if frame.Skeleton != nil {
			previous = frame.Skeleton
		}
		live, err := previous.Copy()
		if err != nil {
			return nil, heldCount, err
		}

		result, err := rig.Solve(ctx, live, frame.Targets, settings)
		if err != nil {
			return nil, heldCount, fmt.Errorf("フレーム%dの解決に失敗しました: %w", frame.Index, err)
		}
		heldCount += len(result.Held)
		logIkDebug(logFrameSolved, frame.Index, len(result.Solved), len(result.Held))

		solved.AppendFrame(model.MotionFrame{
			Index:    frame.Index,
			Skeleton: result.Skeleton,
			Targets:  frame.Targets,
		})
		reportSolveProgress(reporter, SolveProgressEvent{
			Type:       SolveProgressEventTypeFrameSolved,
			FrameIndex: frame.Index,
			FrameCount: motion.Len(),
			HeldCount:  len(result.Held),
		})
	}
	return solved, heldCount, nil
}

// resolveBindSkeleton は初期姿勢をモデル、モーション内の初期姿勢、先頭フレームの順で解決する。
func (uc *VrikUsecase) resolveBindSkeleton(bindPath string, motion *model.Motion) (*model.Skeleton, error) {
	if strings.TrimSpace(bindPath) != "" {
		return uc.LoadSkeleton(nil, bindPath)
	}
	if motion.Bind.Len() > 0 {
		return motion.Bind, nil
	}
	for _, frame := range motion.Frames {
		if frame.Skeleton.Len() > 0 {
			return frame.Skeleton, nil
		}
	}
	return nil, ErrBindPoseMissing
}

// reportSolveProgress は進捗を通知する。
func reportSolveProgress(reporter ISolveProgressReporter, event SolveProgressEvent) {
	if reporter == nil {
		return
	}
	reporter.ReportSolveProgress(event)
}
