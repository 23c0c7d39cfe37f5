// 指示: miu200521358
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/miu200521358/mu_vrik/pkg/adapter/io_config"
	"github.com/miu200521358/mu_vrik/pkg/adapter/io_model/vrm"
	"github.com/miu200521358/mu_vrik/pkg/adapter/io_motion"
	"github.com/miu200521358/mu_vrik/pkg/usecase/minteractor"
)

const (
	batchOutputDirMode   = 0o755
	scenarioMotionFile   = "motion.yaml"
	scenarioSettingsFile = "settings.yaml"
	scenarioBindFile     = "avatar.vrm"
)

// batchConfig はバッチ解決の実行設定を表す。
type batchConfig struct {
	ScenarioRoot string
	OutputRoot   string
	DryRun       bool
	FailFast     bool
}

// scenarioEntry は1シナリオ分の入力情報を表す。
// シナリオはmotion.yamlを持つディレクトリで、settings.yamlとavatar.vrmは任意。
type scenarioEntry struct {
	Index        int
	Name         string
	MotionPath   string
	SettingsPath string
	BindPath     string
	OutputPath   string
}

// scenarioResult は1シナリオ分の解決結果を表す。
type scenarioResult struct {
	Entry     scenarioEntry
	Status    string
	Duration  time.Duration
	Err       error
	StageInfo string
}

// solveProgressCollector はSolveMotionの進捗イベントを収集する。
type solveProgressCollector struct {
	eventCounts map[minteractor.SolveProgressEventType]int
	frameMax    int
	heldTotal   int
	jointCount  int
}

// main はシナリオディレクトリ配下のモーションを一括でIK解決する。
func main() {
	os.Exit(run())
}

// run は実行設定を解決して一括解決を実行し、終了コードを返す。
func run() int {
	config, err := parseBatchConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "設定解析に失敗しました: %v\n", err)
		return 2
	}
	entries, err := buildScenarioEntries(config.ScenarioRoot, config.OutputRoot)
	if err != nil {
		fmt.Fprintf(os.Stderr, "シナリオ探索に失敗しました: %v\n", err)
		return 2
	}
	if len(entries) == 0 {
		fmt.Fprintln(os.Stderr, "解決対象シナリオがありません")
		return 2
	}

	results := executeBatchSolve(context.Background(), config, entries)
	printBatchSummary(results)

	for _, result := range results {
		if result.Status == "failed" {
			return 1
		}
	}
	return 0
}

// parseBatchConfig はコマンドライン引数から実行設定を構築する。
func parseBatchConfig() (batchConfig, error) {
	defaultScenarioRoot, defaultOutputRoot, err := resolveDefaultRoots()
	if err != nil {
		return batchConfig{}, err
	}
	scenarioRoot := flag.String("scenario-root", defaultScenarioRoot, "シナリオのルートディレクトリ")
	outputRoot := flag.String("output-root", defaultOutputRoot, "解決結果の出力ルートディレクトリ")
	dryRun := flag.Bool("dry-run", false, "解決せず、入力解決と出力先計画のみ表示する")
	failFast := flag.Bool("fail-fast", false, "失敗時に即時終了する")
	flag.Parse()

	trimmedOutputRoot := strings.TrimSpace(*outputRoot)
	if trimmedOutputRoot == "" {
		return batchConfig{}, errors.New("output-root が空です")
	}
	trimmedScenarioRoot := strings.TrimSpace(*scenarioRoot)
	if trimmedScenarioRoot == "" {
		return batchConfig{}, errors.New("scenario-root が空です")
	}
	return batchConfig{
		ScenarioRoot: normalizeInputPath(trimmedScenarioRoot),
		OutputRoot:   filepath.Clean(trimmedOutputRoot),
		DryRun:       *dryRun,
		FailFast:     *failFast,
	}, nil
}

// resolveDefaultRoots はスクリプト配置ディレクトリ基準の既定入力先と出力先を返す。
func resolveDefaultRoots() (string, string, error) {
	_, currentFilePath, _, ok := runtime.Caller(0)
	if !ok {
		return "", "", errors.New("実行ファイル位置を取得できません")
	}
	currentDir := filepath.Dir(currentFilePath)
	return filepath.Join(currentDir, "scenarios"), filepath.Join(currentDir, "output"), nil
}

// buildScenarioEntries はシナリオルート直下のディレクトリから解決対象を生成する。
func buildScenarioEntries(scenarioRoot string, outputRoot string) ([]scenarioEntry, error) {
	dirEntries, err := os.ReadDir(scenarioRoot)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(dirEntries))
	for _, dirEntry := range dirEntries {
		if dirEntry.IsDir() {
			names = append(names, dirEntry.Name())
		}
	}
	sort.Strings(names)

	entries := make([]scenarioEntry, 0, len(names))
	for _, name := range names {
		caseDir := filepath.Join(scenarioRoot, name)
		entry := scenarioEntry{
			Index:      len(entries) + 1,
			Name:       name,
			MotionPath: filepath.Join(caseDir, scenarioMotionFile),
		}
		if fileExists(filepath.Join(caseDir, scenarioSettingsFile)) {
			entry.SettingsPath = filepath.Join(caseDir, scenarioSettingsFile)
		}
		if fileExists(filepath.Join(caseDir, scenarioBindFile)) {
			entry.BindPath = filepath.Join(caseDir, scenarioBindFile)
		}
		caseDirName := fmt.Sprintf("%03d_%s", entry.Index, sanitizePathComponent(name))
		entry.OutputPath = filepath.Join(outputRoot, caseDirName, "solved.yaml")
		entries = append(entries, entry)
	}
	return entries, nil
}

// executeBatchSolve は全シナリオの解決処理を順次実行する。
func executeBatchSolve(ctx context.Context, config batchConfig, entries []scenarioEntry) []scenarioResult {
	results := make([]scenarioResult, 0, len(entries))
	motionRepository := io_motion.NewMotionRepository()
	usecase := minteractor.NewVrikUsecase(minteractor.VrikUsecaseDeps{
		SettingsReader: io_config.NewSettingsRepository(),
		MotionReader:   motionRepository,
		MotionWriter:   motionRepository,
		SkeletonReader: vrm.NewVrmRepository(),
	})

	total := len(entries)
	for _, entry := range entries {
		fmt.Printf("[%d/%d] 解決開始: scenario=%s\n", entry.Index, total, entry.Name)
		result := solveScenarioEntry(ctx, usecase, config, entry)
		results = append(results, result)
		switch result.Status {
		case "succeeded":
			fmt.Printf("[%d/%d] 解決成功: scenario=%s output=%s elapsed=%s\n", entry.Index, total, entry.Name, entry.OutputPath, result.Duration.Round(time.Millisecond))
			if strings.TrimSpace(result.StageInfo) != "" {
				fmt.Printf("[%d/%d] SolveMotion進捗: %s\n", entry.Index, total, result.StageInfo)
			}
		case "dry_run":
			fmt.Printf("[%d/%d] DRY-RUN: scenario=%s motion=%s output=%s\n", entry.Index, total, entry.Name, entry.MotionPath, entry.OutputPath)
		case "skipped_missing":
			fmt.Printf("[%d/%d] 入力不足でスキップ: scenario=%s reason=%v\n", entry.Index, total, entry.Name, result.Err)
		default:
			fmt.Printf("[%d/%d] 解決失敗: scenario=%s reason=%v\n", entry.Index, total, entry.Name, result.Err)
			if config.FailFast {
				return results
			}
		}
	}
	return results
}

// solveScenarioEntry は1シナリオ分の解決を実行する。
func solveScenarioEntry(
	ctx context.Context,
	usecase *minteractor.VrikUsecase,
	config batchConfig,
	entry scenarioEntry,
) scenarioResult {
	result := scenarioResult{
		Entry:  entry,
		Status: "failed",
	}
	if _, err := os.Stat(entry.MotionPath); err != nil {
		result.Status = "skipped_missing"
		result.Err = err
		return result
	}
	if config.DryRun {
		result.Status = "dry_run"
		return result
	}
	if err := os.MkdirAll(filepath.Dir(entry.OutputPath), batchOutputDirMode); err != nil {
		result.Err = fmt.Errorf("出力ディレクトリ作成に失敗しました: %w", err)
		return result
	}

	startedAt := time.Now()
	progressCollector := newSolveProgressCollector()
	solved, err := usecase.SolveMotion(ctx, minteractor.SolveMotionRequest{
		MotionPath:       entry.MotionPath,
		OutputPath:       entry.OutputPath,
		SettingsPath:     entry.SettingsPath,
		BindPath:         entry.BindPath,
		ProgressReporter: progressCollector,
	})
	if err != nil {
		result.Err = fmt.Errorf("SolveMotionに失敗しました: %w", err)
		return result
	}
	if solved == nil || solved.Motion == nil {
		result.Err = errors.New("SolveMotion結果が空です")
		return result
	}

	result.Status = "succeeded"
	result.Duration = time.Since(startedAt)
	result.StageInfo = progressCollector.Summary()
	return result
}

// printBatchSummary は解決結果の集計を標準出力へ表示する。
func printBatchSummary(results []scenarioResult) {
	succeeded := 0
	failed := 0
	skipped := 0
	dryRun := 0
	for _, result := range results {
		switch result.Status {
		case "succeeded":
			succeeded++
		case "dry_run":
			dryRun++
		case "skipped_missing":
			skipped++
		default:
			failed++
		}
	}
	fmt.Printf(
		"バッチ解決サマリ: total=%d succeeded=%d failed=%d skipped_missing=%d dry_run=%d\n",
		len(results),
		succeeded,
		failed,
		skipped,
		dryRun,
	)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// normalizeInputPath は入力パスを実行環境向けに正規化する。
func normalizeInputPath(path string) string {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return ""
	}
	return filepath.Clean(convertWindowsPathToWsl(path))
}

// convertWindowsPathToWsl は Linux 実行時に Windows パスを WSL パスへ変換する。
func convertWindowsPathToWsl(path string) string {
	trimmed := strings.TrimSpace(path)
	if runtime.GOOS != "linux" {
		return trimmed
	}
	if len(trimmed) < 2 || trimmed[1] != ':' {
		return trimmed
	}
	drive := strings.ToLower(trimmed[:1])
	rest := strings.ReplaceAll(trimmed[2:], "\\", "/")
	if rest == "" {
		return filepath.ToSlash(filepath.Join("/mnt", drive))
	}
	if !strings.HasPrefix(rest, "/") {
		rest = "/" + rest
	}
	return filepath.ToSlash(filepath.Join("/mnt", drive) + rest)
}

// sanitizePathComponent は出力ディレクトリ名に使えない文字を置換する。
func sanitizePathComponent(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "scenario"
	}
	replaced := strings.Map(func(r rune) rune {
		switch r {
		case '<', '>', ':', '"', '/', '\\', '|', '?', '*':
			return '_'
		default:
			if r < 0x20 {
				return '_'
			}
			return r
		}
	}, trimmed)
	replaced = strings.Trim(replaced, " .")
	if replaced == "" {
		return "scenario"
	}
	return replaced
}

// newSolveProgressCollector はSolveMotion進捗収集器を生成する。
func newSolveProgressCollector() *solveProgressCollector {
	return &solveProgressCollector{
		eventCounts: map[minteractor.SolveProgressEventType]int{},
	}
}

// ReportSolveProgress はSolveMotionの進捗イベントを収集する。
func (collector *solveProgressCollector) ReportSolveProgress(event minteractor.SolveProgressEvent) {
	if collector == nil {
		return
	}
	collector.eventCounts[event.Type]++
	if event.FrameCount > collector.frameMax {
		collector.frameMax = event.FrameCount
	}
	if event.Type == minteractor.SolveProgressEventTypeFrameSolved {
		collector.heldTotal += event.HeldCount
	}
	if event.JointCount > 0 {
		collector.jointCount = event.JointCount
	}
}

// Summary は収集した進捗の要約文字列を返す。
func (collector *solveProgressCollector) Summary() string {
	if collector == nil || len(collector.eventCounts) == 0 {
		return ""
	}
	types := make([]string, 0, len(collector.eventCounts))
	for stageType := range collector.eventCounts {
		types = append(types, string(stageType))
	}
	sort.Strings(types)
	return fmt.Sprintf(
		"events=%d frames=%d joints=%d held=%d stages=%s",
		len(collector.eventCounts),
		collector.frameMax,
		collector.jointCount,
		collector.heldTotal,
		strings.Join(types, ","),
	)
}
