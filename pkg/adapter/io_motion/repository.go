// 指示: miu200521358
// Package io_motion はライブ姿勢とIKターゲットのモーションファイルを読み書きする。
package io_motion

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/miu200521358/mu_vrik/pkg/domain/model"
	"gopkg.in/yaml.v3"
)

// MotionRepository はYAMLのモーションファイルを扱うリポジトリ。
type MotionRepository struct{}

// NewMotionRepository はMotionRepositoryを生成する。
func NewMotionRepository() *MotionRepository {
	return &MotionRepository{}
}

// LoadMotion はモーションファイルを読み込む。未知のキーはエラーにする。
func (r *MotionRepository) LoadMotion(path string) (*model.Motion, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("モーションファイルを開けません: %w", err)
	}
	defer f.Close()

	var doc motionDocument
	d := yaml.NewDecoder(f)
	d.KnownFields(true)
	if err := d.Decode(&doc); err != nil {
		return nil, fmt.Errorf("モーションファイルの解析に失敗しました: %s: %w", path, err)
	}
	motion, err := doc.toMotion()
	if err != nil {
		return nil, fmt.Errorf("モーションファイルの内容が不正です: %s: %w", path, err)
	}
	return motion, nil
}

// SaveMotion はモーションファイルを書き出す。
func (r *MotionRepository) SaveMotion(path string, motion *model.Motion) error {
	if motion == nil {
		return fmt.Errorf("保存対象モーションが未設定です")
	}
	var buf bytes.Buffer
	e := yaml.NewEncoder(&buf)
	e.SetIndent(2)
	if err := e.Encode(newMotionDocument(motion)); err != nil {
		return fmt.Errorf("モーションの変換に失敗しました: %w", err)
	}
	if err := e.Close(); err != nil {
		return fmt.Errorf("モーションの変換に失敗しました: %w", err)
	}
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("出力先ディレクトリの作成に失敗しました: %w", err)
		}
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("モーションファイルの書き込みに失敗しました: %w", err)
	}
	return nil
}
