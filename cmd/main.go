// 指示: miu200521358
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/miu200521358/mu_vrik/pkg/adapter/io_config"
	"github.com/miu200521358/mu_vrik/pkg/adapter/io_model/vrm"
	"github.com/miu200521358/mu_vrik/pkg/adapter/io_motion"
	"github.com/miu200521358/mu_vrik/pkg/adapter/mpresenter/messages"
	"github.com/miu200521358/mu_vrik/pkg/shared/logging"
	"github.com/miu200521358/mu_vrik/pkg/usecase/minteractor"
)

// options はCLI引数を保持する。
type options struct {
	motionPath   string
	outputPath   string
	settingsPath string
	bindPath     string
	logLevel     logging.LogLevel
}

// main はモーションへIKを適用する。
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run はCLI処理全体を実行する。
func run(ctx context.Context, args []string, out io.Writer, errOut io.Writer) error {
	opts, err := parseOptions(args, errOut)
	if err != nil {
		return err
	}

	logger := logging.NewLogger(errOut)
	logger.SetLevel(opts.logLevel)
	logging.SetDefaultLogger(logger)

	uc := minteractor.NewVrikUsecase(minteractor.VrikUsecaseDeps{
		SettingsReader: io_config.NewSettingsRepository(),
		MotionReader:   io_motion.NewMotionRepository(),
		MotionWriter:   io_motion.NewMotionRepository(),
		SkeletonReader: vrm.NewVrmRepository(),
	})
	reporter := &cliProgressReporter{opts: opts, logger: logger}
	result, err := uc.SolveMotion(ctx, minteractor.SolveMotionRequest{
		MotionPath:       opts.motionPath,
		OutputPath:       opts.outputPath,
		SettingsPath:     opts.settingsPath,
		BindPath:         opts.bindPath,
		ProgressReporter: reporter,
	})
	if err != nil {
		return fmt.Errorf("%s: %w", reporter.failureMessage(err), err)
	}

	logger.Info(messages.LogSolveSuccess, result.Motion.Len(), result.HeldCount, result.OutputPath)
	fmt.Fprintf(out, "[mu_vrik] %s\n", result.OutputPath)
	return nil
}

// parseOptions はCLI引数を解析する。
func parseOptions(args []string, errOut io.Writer) (options, error) {
	fs := flag.NewFlagSet("mu_vrik", flag.ContinueOnError)
	fs.SetOutput(errOut)
	fs.Usage = func() {
		fmt.Fprintf(errOut, "%s: %s\n", messages.HelpUsageTitle, messages.HelpUsage)
		fs.PrintDefaults()
	}

	motion := fs.String("motion", "", "入力モーションファイルパス(.yaml)")
	out := fs.String("out", "", "出力モーションファイルパス(.yaml)")
	config := fs.String("config", "", "IK設定ファイルパス(.yaml/.json/.toml)")
	bind := fs.String("vrm", "", "初期姿勢を読み込むVRMファイルパス")
	logLevel := fs.String("log-level", "INFO", "ログレベル(DEBUG/INFO/WARN/ERROR)")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	if *motion == "" && fs.NArg() > 0 {
		*motion = fs.Arg(0)
	}
	if *out == "" && fs.NArg() > 1 {
		*out = fs.Arg(1)
	}
	if strings.TrimSpace(*motion) == "" {
		return options{}, errors.New(messages.MessageMotionRequired)
	}
	if *out != "" && !isYamlPath(*out) {
		return options{}, fmt.Errorf("出力拡張子が .yaml ではありません: %s", *out)
	}
	if *bind != "" && !strings.EqualFold(filepath.Ext(*bind), ".vrm") {
		return options{}, fmt.Errorf("初期姿勢の拡張子が .vrm ではありません: %s", *bind)
	}

	return options{
		motionPath:   *motion,
		outputPath:   *out,
		settingsPath: *config,
		bindPath:     *bind,
		logLevel:     logging.ParseLogLevel(*logLevel),
	}, nil
}

func isYamlPath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}

// cliProgressReporter は進捗をログへ出し、失敗時の段階を覚える。
type cliProgressReporter struct {
	opts   options
	logger logging.ILogger
	last   minteractor.SolveProgressEventType
	// solved は解決済みフレーム数、total は全フレーム数。
	solved int
	total  int
}

// ReportSolveProgress は進捗をログへ出力する。
func (r *cliProgressReporter) ReportSolveProgress(event minteractor.SolveProgressEvent) {
	r.last = event.Type
	switch event.Type {
	case minteractor.SolveProgressEventTypeFrameSolved:
		r.solved++
	case minteractor.SolveProgressEventTypeSettingsLoaded:
		if r.opts.settingsPath != "" {
			r.logger.Info(messages.LogSettingsLoaded, r.opts.settingsPath)
		}
	case minteractor.SolveProgressEventTypeMotionLoaded:
		r.total = event.FrameCount
		r.logger.Info(messages.LogMotionLoaded, r.opts.motionPath, event.FrameCount)
	case minteractor.SolveProgressEventTypeRigBound:
		source := r.opts.bindPath
		if source == "" {
			source = r.opts.motionPath
		}
		r.logger.Info(messages.LogBindPoseLoaded, source, event.JointCount)
	}
}

// failureMessage は最後に完了した段階から失敗メッセージを選ぶ。
func (r *cliProgressReporter) failureMessage(err error) string {
	if errors.Is(err, minteractor.ErrOutputPathInvalid) {
		return messages.MessageOutputPathInvalid
	}
	if errors.Is(err, minteractor.ErrBindPoseMissing) {
		return messages.MessageBindPoseMissing
	}
	switch r.last {
	case "":
		return messages.MessageSettingsLoadFailed
	case minteractor.SolveProgressEventTypeSettingsLoaded:
		return messages.MessageMotionLoadFailed
	case minteractor.SolveProgressEventTypeMotionLoaded:
		return messages.MessageBindLoadFailed
	case minteractor.SolveProgressEventTypeRigBound:
		return messages.MessageSolveFailed
	default:
		if r.solved < r.total {
			return messages.MessageSolveFailed
		}
		return messages.MessageMotionSaveFailed
	}
}
