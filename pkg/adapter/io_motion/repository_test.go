// 指示: miu200521358
package io_motion

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/miu200521358/mu_vrik/pkg/domain/mmath"
	"github.com/miu200521358/mu_vrik/pkg/domain/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleMotion = `name: reach
bind:
  joints:
    - {name: hips, position: [0, 1, 0]}
    - {name: rightUpperArm, position: [0.15, 1.4, 0], rotation: [0, 0, 0, 1]}
    - {name: rightLowerArm, position: [0.45, 1.4, 0]}
    - {name: rightHand, position: [0.7, 1.4, 0]}
frames:
  - index: 3
    targets:
      right_arm:
        position: [0.3, 1.2, 0.3]
        rotation: [0, 0, 0, 2]
        bend_goal: [0.4, 1.0, -0.5]
        position_offset: [0, 0.01, 0]
  - index: 0
    skeleton:
      joints:
        - {name: rightHand, position: [0.6, 1.3, 0.1]}
`

func writeMotionFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "motion.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadMotion(t *testing.T) {
	motion, err := NewMotionRepository().LoadMotion(writeMotionFile(t, sampleMotion))
	require.NoError(t, err)

	assert.Equal(t, "reach", motion.Name)
	require.Equal(t, 4, motion.Bind.Len())
	hips, ok := motion.Bind.Get(model.HUMANOID_HIPS)
	require.True(t, ok)
	assert.Equal(t, mmath.NewVec3(0, 1, 0), hips.Position)
	assert.True(t, hips.Rotation.IsIdent())

	require.Equal(t, 2, motion.Len())
	first := motion.Frames[0]
	assert.Equal(t, 3, first.Index)
	assert.Nil(t, first.Skeleton)
	target, ok := first.Targets[model.LIMB_RIGHT_ARM]
	require.True(t, ok)
	require.NotNil(t, target.Position)
	assert.Equal(t, mmath.NewVec3(0.3, 1.2, 0.3), *target.Position)
	require.NotNil(t, target.Rotation)
	assert.True(t, target.Rotation.IsIdent(), "rotation should be normalized")
	require.NotNil(t, target.BendGoal)
	assert.Equal(t, mmath.NewVec3(0, 0.01, 0), target.PositionOffset)

	second := motion.Frames[1]
	require.NotNil(t, second.Skeleton)
	assert.Empty(t, second.Targets)
	assert.NotNil(t, second.Targets)
}

func TestLoadMotion_Invalid(t *testing.T) {
	testCases := []struct {
		name string
		body string
	}{
		{name: "unknown key", body: "frames:\n  - index: 0\n    extra: 1\n"},
		{name: "unknown limb", body: "frames:\n  - index: 0\n    targets:\n      tail: {position: [0, 0, 0]}\n"},
		{name: "unknown joint", body: "frames:\n  - index: 0\n    skeleton:\n      joints:\n        - {name: tail, position: [0, 0, 0]}\n"},
		{name: "short vector", body: "frames:\n  - index: 0\n    targets:\n      left_arm: {position: [0, 0]}\n"},
		{name: "short quaternion", body: "frames:\n  - index: 0\n    targets:\n      left_leg: {rotation: [0, 0, 1]}\n"},
		{name: "broken yaml", body: "frames: [\n"},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewMotionRepository().LoadMotion(writeMotionFile(t, tc.body))
			require.Error(t, err)
		})
	}
}

func TestSaveMotion_RoundTrip(t *testing.T) {
	repository := NewMotionRepository()
	motion, err := repository.LoadMotion(writeMotionFile(t, sampleMotion))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out.yaml")
	require.NoError(t, repository.SaveMotion(path, motion))

	loaded, err := repository.LoadMotion(path)
	require.NoError(t, err)
	require.Equal(t, motion.Len(), loaded.Len())
	require.Equal(t, motion.Bind.Len(), loaded.Bind.Len())
	for i, joint := range motion.Bind.Joints {
		got := loaded.Bind.Joints[i]
		assert.Equal(t, joint.Name, got.Name)
		assert.True(t, got.Position.NearEquals(joint.Position, 1e-12))
		assert.True(t, got.Rotation.NearEquals(joint.Rotation, 1e-12))
	}
	target := loaded.Frames[0].Targets[model.LIMB_RIGHT_ARM]
	require.NotNil(t, target.BendGoal)
	assert.Equal(t, mmath.NewVec3(0.4, 1.0, -0.5), *target.BendGoal)
	assert.Equal(t, mmath.NewVec3(0, 0.01, 0), target.PositionOffset)
}

func TestSaveMotion_RequiresMotion(t *testing.T) {
	err := NewMotionRepository().SaveMotion(filepath.Join(t.TempDir(), "out.yaml"), nil)
	require.Error(t, err)
}
