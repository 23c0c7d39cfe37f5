// 指示: miu200521358
package messages

import "testing"

func TestMessageKeysAreDefined(t *testing.T) {
	keys := []string{
		HelpUsageTitle,
		HelpUsage,
		MessageSettingsLoadFailed,
		MessageMotionLoadFailed,
		MessageMotionSaveFailed,
		MessageBindLoadFailed,
		MessageSolveFailed,
		MessageMotionRequired,
		MessageBindPoseMissing,
		MessageOutputPathInvalid,
		LogSettingsLoaded,
		LogBindPoseLoaded,
		LogMotionLoaded,
		LogSolveSuccess,
	}

	seen := map[string]struct{}{}
	for _, key := range keys {
		if key == "" {
			t.Fatalf("key should not be empty")
		}
		if _, exists := seen[key]; exists {
			t.Fatalf("key should be unique: %s", key)
		}
		seen[key] = struct{}{}
	}
}
