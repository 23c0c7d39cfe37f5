// 指示: miu200521358
package minteractor

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

const defaultOutputSuffix = "_ik"

var nowFunc = time.Now

// BuildDefaultOutputPath は入力モーションパスから既定の出力パスを生成する。
func BuildDefaultOutputPath(inputPath string) string {
	return buildDefaultOutputPathAt(inputPath, nowFunc())
}

// buildDefaultOutputPathAt は指定時刻で既定の出力パスを生成する。
func buildDefaultOutputPathAt(inputPath string, now time.Time) string {
	if strings.TrimSpace(inputPath) == "" {
		return ""
	}
	dir := filepath.Dir(inputPath)
	ext := filepath.Ext(inputPath)
	base := strings.TrimSpace(strings.TrimSuffix(filepath.Base(inputPath), ext))
	if base == "" {
		return ""
	}
	stamp := now.Format("20060102150405")
	return filepath.Join(dir, fmt.Sprintf("%s%s_%s.yaml", base, defaultOutputSuffix, stamp))
}

// resolveMotionOutputPath は保存先パスを解決し、拡張子を検証する。
func resolveMotionOutputPath(inputPath string, outputPath string) (string, error) {
	resolved := strings.TrimSpace(outputPath)
	if resolved == "" {
		resolved = BuildDefaultOutputPath(inputPath)
	}
	if strings.TrimSpace(resolved) == "" {
		return "", fmt.Errorf("保存先モーションパスが未指定です: %w", ErrOutputPathInvalid)
	}
	switch strings.ToLower(filepath.Ext(resolved)) {
	case ".yaml", ".yml":
	default:
		return "", fmt.Errorf("保存先拡張子が .yaml ではありません: %s: %w", resolved, ErrOutputPathInvalid)
	}
	return resolved, nil
}
