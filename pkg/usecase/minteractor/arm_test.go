// 指示: miu200521358
package minteractor

import (
	"errors"
	"math"
	"testing"

	"github.com/miu200521358/mu_vrik/pkg/domain/curve"
	"github.com/miu200521358/mu_vrik/pkg/domain/mmath"
	"github.com/miu200521358/mu_vrik/pkg/domain/model"
)

// leftArmBind は左へ水平に伸ばした腕の初期姿勢を返す。肩0.1、上腕0.3、前腕0.25。
func leftArmBind(hasShoulder bool) model.LimbPose {
	positions := []mmath.Vec3{
		mmath.NewVec3(-0.05, 1.4, 0),
		mmath.NewVec3(-0.15, 1.4, 0),
		mmath.NewVec3(-0.45, 1.4, 0),
		mmath.NewVec3(-0.70, 1.4, 0),
	}
	if !hasShoulder {
		positions = positions[1:]
	}
	pose := model.NewLimbPose(len(positions))
	copy(pose.Positions, positions)
	return pose
}

func mirrorVec3(v mmath.Vec3) mmath.Vec3 {
	return mmath.NewVec3(-v.X, v.Y, v.Z)
}

func mirrorQuaternion(q mmath.Quaternion) mmath.Quaternion {
	return mmath.NewQuaternionByValues(q.X(), -q.Y(), -q.Z(), q.W())
}

func mirrorPose(pose model.LimbPose) model.LimbPose {
	mirrored := model.NewLimbPose(pose.Len())
	for i := range pose.Positions {
		mirrored.Positions[i] = mirrorVec3(pose.Positions[i])
		mirrored.Rotations[i] = mirrorQuaternion(pose.Rotations[i])
	}
	return mirrored
}

func mustNewArm(t *testing.T, direction model.BoneDirection, bind model.LimbPose, hasShoulder bool) *Arm {
	t.Helper()
	arm := NewArm(direction)
	if err := arm.Initialize(bind, hasShoulder, mmath.NewQuaternion()); err != nil {
		t.Fatalf("unexpected initialize error: %v", err)
	}
	return arm
}

func mustUpdateArm(
	t *testing.T,
	arm *Arm,
	live *model.LimbPose,
	target model.IkTarget,
	settings model.ArmSettings,
) model.LimbPose {
	t.Helper()
	pose, err := arm.UpdateFrame(live, mmath.NewQuaternion(), target, settings)
	if err != nil {
		t.Fatalf("unexpected update error: %v", err)
	}
	return pose
}

func TestArmZeroWeightKeepsPreviousPose(t *testing.T) {
	for _, mode := range []model.ShoulderRotationMode{
		model.SHOULDER_ROTATION_YAW_PITCH,
		model.SHOULDER_ROTATION_FROM_TO,
	} {
		t.Run(mode.String(), func(t *testing.T) {
			arm := mustNewArm(t, model.BONE_DIRECTION_LEFT, leftArmBind(true), true)
			settings := model.NewArmSettings()
			settings.ShoulderRotationMode = mode

			target := model.NewIkTarget(mmath.NewVec3(-0.4, 1.25, 0.25), mmath.NewQuaternionFromAxisDegree(mmath.UNIT_Y_VEC3, 30))
			previous := mustUpdateArm(t, arm, nil, target, settings)

			settings.PositionWeight = 0
			settings.RotationWeight = 0
			moved := model.NewIkTarget(mmath.NewVec3(0.2, 0.5, -0.3), mmath.NewQuaternionFromAxisDegree(mmath.UNIT_X_VEC3, 80))
			got := mustUpdateArm(t, arm, nil, moved, settings)

			for i := range previous.Positions {
				if got.Positions[i] != previous.Positions[i] {
					t.Fatalf("position %d changed: got=%v want=%v", i, got.Positions[i], previous.Positions[i])
				}
				if got.Rotations[i] != previous.Rotations[i] {
					t.Fatalf("rotation %d changed: got=%v want=%v", i, got.Rotations[i], previous.Rotations[i])
				}
			}
		})
	}
}

func TestArmReachesTargetWithFullWeight(t *testing.T) {
	testCases := []struct {
		name        string
		hasShoulder bool
		mode        model.ShoulderRotationMode
	}{
		{name: "no shoulder", hasShoulder: false, mode: model.SHOULDER_ROTATION_YAW_PITCH},
		{name: "yaw pitch", hasShoulder: true, mode: model.SHOULDER_ROTATION_YAW_PITCH},
		{name: "from to", hasShoulder: true, mode: model.SHOULDER_ROTATION_FROM_TO},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			arm := mustNewArm(t, model.BONE_DIRECTION_LEFT, leftArmBind(tc.hasShoulder), tc.hasShoulder)
			settings := model.NewArmSettings()
			settings.ShoulderRotationMode = tc.mode

			goal := mmath.NewVec3(-0.35, 1.3, 0.2)
			rotation := mmath.NewQuaternionFromAxisDegree(mmath.NewVec3(1, 1, 0), 30)
			live := leftArmBind(tc.hasShoulder)
			pose := mustUpdateArm(t, arm, &live, model.NewIkTarget(goal, rotation), settings)

			end := pose.Len() - 1
			if d := pose.Positions[end].Distance(goal); d > 1e-4 {
				t.Fatalf("hand misses target: distance=%v hand=%v", d, pose.Positions[end])
			}
			if !pose.Rotations[end].NearEquals(rotation.Normalized(), 1e-9) {
				t.Fatalf("hand rotation mismatch: got=%v want=%v", pose.Rotations[end], rotation)
			}
			upper := end - 2
			if d := pose.Positions[upper+1].Distance(pose.Positions[upper]); math.Abs(d-0.3) > 1e-9 {
				t.Fatalf("upper arm length changed: got=%v", d)
			}
			if d := pose.Positions[end].Distance(pose.Positions[upper+1]); math.Abs(d-0.25) > 1e-9 {
				t.Fatalf("forearm length changed: got=%v", d)
			}
		})
	}
}

func TestArmUnreachableTargetFullyExtends(t *testing.T) {
	arm := mustNewArm(t, model.BONE_DIRECTION_LEFT, leftArmBind(false), false)
	goal := mmath.NewVec3(-0.15, 1.4, 1.5)
	pose := mustUpdateArm(t, arm, nil, model.IkTarget{Position: &goal}, model.NewArmSettings())

	upper := pose.Positions[0]
	if d := pose.Positions[2].Distance(upper); math.Abs(d-0.55) > 1e-9 {
		t.Fatalf("extended reach mismatch: got=%v want=0.55", d)
	}
	toGoal := goal.Subed(upper).Normalized()
	toHand := pose.Positions[2].Subed(upper).Normalized()
	if !toHand.NearEquals(toGoal, 1e-9) {
		t.Fatalf("extended arm should point at target: got=%v want=%v", toHand, toGoal)
	}
	toElbow := pose.Positions[1].Subed(upper).Normalized()
	if !toElbow.NearEquals(toGoal, 1e-6) {
		t.Fatalf("extended arm should be straight: elbow=%v", toElbow)
	}
}

func TestArmIsIdempotentForIdenticalInput(t *testing.T) {
	arm := mustNewArm(t, model.BONE_DIRECTION_LEFT, leftArmBind(true), true)
	settings := model.NewArmSettings()
	settings.BendGoalWeight = 0.4
	target := model.NewIkTarget(
		mmath.NewVec3(-0.3, 1.1, 0.3),
		mmath.NewQuaternionFromAxisDegree(mmath.UNIT_Z_VEC3, -20),
	).WithBendGoal(mmath.NewVec3(-0.5, 1.0, -0.5))

	live := leftArmBind(true)
	first := mustUpdateArm(t, arm, &live, target, settings)
	live = leftArmBind(true)
	second := mustUpdateArm(t, arm, &live, target, settings)

	for i := range first.Positions {
		if first.Positions[i] != second.Positions[i] || first.Rotations[i] != second.Rotations[i] {
			t.Fatalf("joint %d drifted: first=%v/%v second=%v/%v",
				i, first.Positions[i], first.Rotations[i], second.Positions[i], second.Rotations[i])
		}
	}
}

func TestArmCarriedLivePoseIsIdempotent(t *testing.T) {
	stretch, err := curve.NewLinearCurve(1, 0, 2, 0.2)
	if err != nil {
		t.Fatalf("unexpected curve error: %v", err)
	}
	testCases := []struct {
		name        string
		hasShoulder bool
		goal        mmath.Vec3
		configure   func(settings *model.ArmSettings)
	}{
		{
			name:        "yaw pitch",
			hasShoulder: true,
			goal:        mmath.NewVec3(-0.2, 1.9, 0.1),
			configure: func(settings *model.ArmSettings) {
				settings.ShoulderRotationMode = model.SHOULDER_ROTATION_YAW_PITCH
			},
		},
		{
			name:        "from to",
			hasShoulder: true,
			goal:        mmath.NewVec3(-0.2, 1.9, 0.1),
			configure: func(settings *model.ArmSettings) {
				settings.ShoulderRotationMode = model.SHOULDER_ROTATION_FROM_TO
			},
		},
		{
			name:        "length multiplier and stretch curve",
			hasShoulder: false,
			goal:        mmath.NewVec3(-0.15, 1.4, 2),
			configure: func(settings *model.ArmSettings) {
				settings.ArmLengthMultiplier = 1.2
				settings.StretchCurve = stretch
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			arm := mustNewArm(t, model.BONE_DIRECTION_LEFT, leftArmBind(tc.hasShoulder), tc.hasShoulder)
			settings := model.NewArmSettings()
			tc.configure(&settings)
			target := model.NewIkTarget(tc.goal, mmath.NewQuaternionFromAxisDegree(mmath.UNIT_Y_VEC3, 20))

			first := mustUpdateArm(t, arm, nil, target, settings)
			for frame := 1; frame < 4; frame++ {
				got := mustUpdateArm(t, arm, nil, target, settings)
				for i := range first.Positions {
					if !got.Positions[i].NearEquals(first.Positions[i], 1e-12) {
						t.Fatalf("frame %d joint %d position drifted: got=%v want=%v", frame, i, got.Positions[i], first.Positions[i])
					}
					if !got.Rotations[i].NearEquals(first.Rotations[i], 1e-12) {
						t.Fatalf("frame %d joint %d rotation drifted: got=%v want=%v", frame, i, got.Rotations[i], first.Rotations[i])
					}
				}
			}
		})
	}
}

func TestArmLengthMultiplierFollowsPositionWeight(t *testing.T) {
	arm := mustNewArm(t, model.BONE_DIRECTION_LEFT, leftArmBind(false), false)
	settings := model.NewArmSettings()
	settings.ArmLengthMultiplier = 1.2
	settings.PositionWeight = 0.5

	goal := mmath.NewVec3(-0.15, 1.4, 2)
	pose := mustUpdateArm(t, arm, nil, model.IkTarget{Position: &goal}, settings)

	// 重み0.5では倍率の半分の1.1倍
	if d := pose.Positions[1].Distance(pose.Positions[0]); math.Abs(d-0.33) > 1e-9 {
		t.Fatalf("weighted upper arm mismatch: got=%v want=0.33", d)
	}
	if d := pose.Positions[2].Distance(pose.Positions[1]); math.Abs(d-0.275) > 1e-9 {
		t.Fatalf("weighted forearm mismatch: got=%v want=0.275", d)
	}
}

func TestArmLengthMultiplierScalesSegments(t *testing.T) {
	settings := model.NewArmSettings()
	settings.ArmLengthMultiplier = 1.2

	t.Run("reachable with scaled lengths", func(t *testing.T) {
		arm := mustNewArm(t, model.BONE_DIRECTION_LEFT, leftArmBind(false), false)
		// 倍率なしでは届かない距離0.6
		goal := mmath.NewVec3(-0.15, 1.4, 0.6)
		pose := mustUpdateArm(t, arm, nil, model.IkTarget{Position: &goal}, settings)

		if d := pose.Positions[2].Distance(goal); d > 1e-4 {
			t.Fatalf("hand misses target: distance=%v", d)
		}
		if d := pose.Positions[1].Distance(pose.Positions[0]); math.Abs(d-0.36) > 1e-9 {
			t.Fatalf("scaled upper arm mismatch: got=%v want=0.36", d)
		}
		if d := pose.Positions[2].Distance(pose.Positions[1]); math.Abs(d-0.3) > 1e-9 {
			t.Fatalf("scaled forearm mismatch: got=%v want=0.3", d)
		}
	})

	t.Run("unreachable extends to scaled reach", func(t *testing.T) {
		arm := mustNewArm(t, model.BONE_DIRECTION_LEFT, leftArmBind(false), false)
		goal := mmath.NewVec3(-0.15, 1.4, 2)
		pose := mustUpdateArm(t, arm, nil, model.IkTarget{Position: &goal}, settings)

		if d := pose.Positions[2].Distance(pose.Positions[0]); math.Abs(d-0.66) > 1e-9 {
			t.Fatalf("scaled reach mismatch: got=%v want=0.66", d)
		}
	})
}

func TestArmZeroStretchCurveMatchesPlainSolve(t *testing.T) {
	zero, err := curve.NewLinearCurve(0, 0, 2, 0)
	if err != nil {
		t.Fatalf("unexpected curve error: %v", err)
	}
	goal := mmath.NewVec3(-0.2, 1.2, 0.9)
	target := model.IkTarget{Position: &goal}

	plain := mustNewArm(t, model.BONE_DIRECTION_LEFT, leftArmBind(false), false)
	want := mustUpdateArm(t, plain, nil, target, model.NewArmSettings())

	stretched := mustNewArm(t, model.BONE_DIRECTION_LEFT, leftArmBind(false), false)
	settings := model.NewArmSettings()
	settings.StretchCurve = zero
	got := mustUpdateArm(t, stretched, nil, target, settings)

	for i := range want.Positions {
		if !got.Positions[i].NearEquals(want.Positions[i], 1e-12) {
			t.Fatalf("position %d mismatch: got=%v want=%v", i, got.Positions[i], want.Positions[i])
		}
	}
}

func TestArmStretchCurveExtendsReach(t *testing.T) {
	stretch, err := curve.NewLinearCurve(1, 0, 2, 0.2)
	if err != nil {
		t.Fatalf("unexpected curve error: %v", err)
	}
	arm := mustNewArm(t, model.BONE_DIRECTION_LEFT, leftArmBind(false), false)
	settings := model.NewArmSettings()
	settings.StretchCurve = stretch

	goal := mmath.NewVec3(-0.15, 1.4, 1.1)
	pose := mustUpdateArm(t, arm, nil, model.IkTarget{Position: &goal}, settings)

	// 距離比2で0.2伸びる
	if d := pose.Positions[2].Distance(pose.Positions[0]); math.Abs(d-0.66) > 1e-9 {
		t.Fatalf("stretched reach mismatch: got=%v want=0.66", d)
	}
}

func TestArmMirroredSidesSolveSymmetrically(t *testing.T) {
	for _, mode := range []model.ShoulderRotationMode{
		model.SHOULDER_ROTATION_YAW_PITCH,
		model.SHOULDER_ROTATION_FROM_TO,
	} {
		t.Run(mode.String(), func(t *testing.T) {
			settings := model.NewArmSettings()
			settings.ShoulderRotationMode = mode

			leftBind := leftArmBind(true)
			left := mustNewArm(t, model.BONE_DIRECTION_LEFT, leftBind, true)
			right := mustNewArm(t, model.BONE_DIRECTION_RIGHT, mirrorPose(leftBind), true)

			goals := []mmath.Vec3{
				mmath.NewVec3(-0.4, 1.25, 0.25),
				mmath.NewVec3(-0.2, 1.9, 0.1),
				mmath.NewVec3(0.1, 1.3, 0.35),
			}
			rotation := mmath.NewQuaternionFromAxisDegree(mmath.NewVec3(1, 1, 0), 30)
			for _, goal := range goals {
				leftPose := mustUpdateArm(t, left, nil, model.NewIkTarget(goal, rotation), settings)
				rightPose := mustUpdateArm(t, right, nil,
					model.NewIkTarget(mirrorVec3(goal), mirrorQuaternion(rotation)), settings)

				for i := range leftPose.Positions {
					if !rightPose.Positions[i].NearEquals(mirrorVec3(leftPose.Positions[i]), 1e-7) {
						t.Fatalf("goal %v joint %d position not mirrored: left=%v right=%v",
							goal, i, leftPose.Positions[i], rightPose.Positions[i])
					}
					if !rightPose.Rotations[i].NearEquals(mirrorQuaternion(leftPose.Rotations[i]), 1e-7) {
						t.Fatalf("goal %v joint %d rotation not mirrored: left=%v right=%v",
							goal, i, leftPose.Rotations[i], rightPose.Rotations[i])
					}
				}
			}
		})
	}
}

func TestArmCarriesAbsentTarget(t *testing.T) {
	arm := mustNewArm(t, model.BONE_DIRECTION_LEFT, leftArmBind(false), false)
	goal := mmath.NewVec3(-0.3, 1.2, 0.3)
	first := mustUpdateArm(t, arm, nil, model.IkTarget{Position: &goal}, model.NewArmSettings())

	second := mustUpdateArm(t, arm, nil, model.IkTarget{}, model.NewArmSettings())
	if d := second.Positions[2].Distance(first.Positions[2]); d > 1e-9 {
		t.Fatalf("absent target should keep last goal: distance=%v", d)
	}
}

func TestArmPositionOffsetAppliesForOneFrame(t *testing.T) {
	arm := mustNewArm(t, model.BONE_DIRECTION_LEFT, leftArmBind(false), false)
	goal := mmath.NewVec3(-0.3, 1.2, 0.3)
	target := model.IkTarget{Position: &goal, PositionOffset: mmath.NewVec3(0, 0.05, 0)}

	pose := mustUpdateArm(t, arm, nil, target, model.NewArmSettings())
	if d := pose.Positions[2].Distance(mmath.NewVec3(-0.3, 1.25, 0.3)); d > 1e-4 {
		t.Fatalf("offset target missed: distance=%v", d)
	}

	pose = mustUpdateArm(t, arm, nil, model.IkTarget{Position: &goal}, model.NewArmSettings())
	if d := pose.Positions[2].Distance(goal); d > 1e-4 {
		t.Fatalf("offset should be reset: distance=%v", d)
	}
}

func TestArmRejectsInvalidInputAndHoldsPose(t *testing.T) {
	arm := mustNewArm(t, model.BONE_DIRECTION_LEFT, leftArmBind(true), true)
	goal := mmath.NewVec3(-0.4, 1.25, 0.25)
	previous := mustUpdateArm(t, arm, nil, model.IkTarget{Position: &goal}, model.NewArmSettings())

	nan := mmath.NewVec3(math.NaN(), 0, 0)
	pose, err := arm.UpdateFrame(nil, mmath.NewQuaternion(), model.IkTarget{Position: &nan}, model.NewArmSettings())
	if !errors.Is(err, model.ErrInvalidTarget) {
		t.Fatalf("expected invalid target error: got=%v", err)
	}
	for i := range previous.Positions {
		if pose.Positions[i] != previous.Positions[i] {
			t.Fatalf("held pose mismatch at %d: got=%v want=%v", i, pose.Positions[i], previous.Positions[i])
		}
	}

	settings := model.NewArmSettings()
	settings.RotationWeight = math.Inf(1)
	if _, err := arm.UpdateFrame(nil, mmath.NewQuaternion(), model.IkTarget{}, settings); !errors.Is(err, model.ErrInvalidSettings) {
		t.Fatalf("expected invalid settings error: got=%v", err)
	}

	badLive := leftArmBind(false)
	if _, err := arm.UpdateFrame(&badLive, mmath.NewQuaternion(), model.IkTarget{}, model.NewArmSettings()); !errors.Is(err, model.ErrInvalidPose) {
		t.Fatalf("expected invalid pose error: got=%v", err)
	}
}

func TestArmRequiresInitialize(t *testing.T) {
	arm := NewArm(model.BONE_DIRECTION_RIGHT)
	if _, err := arm.UpdateFrame(nil, mmath.NewQuaternion(), model.IkTarget{}, model.NewArmSettings()); !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("expected not initialized error: got=%v", err)
	}
	if err := arm.Initialize(leftArmBind(false), true, mmath.NewQuaternion()); !errors.Is(err, model.ErrInvalidPose) {
		t.Fatalf("expected joint count error: got=%v", err)
	}
}

func TestArmClampsOutOfRangeSettings(t *testing.T) {
	arm := mustNewArm(t, model.BONE_DIRECTION_LEFT, leftArmBind(false), false)
	settings := model.NewArmSettings()
	settings.PositionWeight = 3
	settings.RotationWeight = -1
	goal := mmath.NewVec3(-0.3, 1.2, 0.3)
	pose := mustUpdateArm(t, arm, nil, model.IkTarget{Position: &goal}, settings)

	if d := pose.Positions[2].Distance(goal); d > 1e-4 {
		t.Fatalf("clamped weight should reach target: distance=%v", d)
	}
}
