// 指示: miu200521358
// Package logging はアプリケーション共通のロガーを提供する。
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// LogLevel はログ出力レベル。
type LogLevel int

const (
	// LOG_LEVEL_DEBUG は詳細ログ。
	LOG_LEVEL_DEBUG LogLevel = iota
	// LOG_LEVEL_INFO は通常ログ。
	LOG_LEVEL_INFO
	// LOG_LEVEL_WARN は警告ログ。
	LOG_LEVEL_WARN
	// LOG_LEVEL_ERROR はエラーログ。
	LOG_LEVEL_ERROR
)

// ParseLogLevel は名前からログレベルを解決する。不明な名前はINFOとして扱う。
func ParseLogLevel(name string) LogLevel {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "DEBUG":
		return LOG_LEVEL_DEBUG
	case "WARN", "WARNING":
		return LOG_LEVEL_WARN
	case "ERROR":
		return LOG_LEVEL_ERROR
	default:
		return LOG_LEVEL_INFO
	}
}

// String はレベル名を返す。
func (l LogLevel) String() string {
	switch l {
	case LOG_LEVEL_DEBUG:
		return "DEBUG"
	case LOG_LEVEL_WARN:
		return "WARN"
	case LOG_LEVEL_ERROR:
		return "ERROR"
	default:
		return "INFO"
	}
}

func (l LogLevel) zerologLevel() zerolog.Level {
	switch l {
	case LOG_LEVEL_DEBUG:
		return zerolog.DebugLevel
	case LOG_LEVEL_WARN:
		return zerolog.WarnLevel
	case LOG_LEVEL_ERROR:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// ILogger はアプリケーションが利用するロガー契約。
type ILogger interface {
	Debug(format string, params ...any)
	Info(format string, params ...any)
	Warn(format string, params ...any)
	Error(format string, params ...any)
	SetLevel(level LogLevel)
	Level() LogLevel
	MessageBuffer() *MessageBuffer
}

// MessageBuffer は出力済みメッセージを保持する。
type MessageBuffer struct {
	mu    sync.Mutex
	lines []string
}

// Append はメッセージを追加する。
func (b *MessageBuffer) Append(line string) {
	if b == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lines = append(b.lines, line)
}

// Lines は保持しているメッセージのコピーを返す。
func (b *MessageBuffer) Lines() []string {
	if b == nil {
		return nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.lines...)
}

// Clear は保持しているメッセージを破棄する。
func (b *MessageBuffer) Clear() {
	if b == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lines = nil
}

// Logger はzerologを使うILogger実装。
type Logger struct {
	mu     sync.RWMutex
	level  LogLevel
	base   zerolog.Logger
	logger zerolog.Logger
	buffer *MessageBuffer
}

// NewLogger はロガーを生成する。outがnilならメッセージバッファにのみ記録する。
func NewLogger(out io.Writer) *Logger {
	buffer := &MessageBuffer{}
	writer := io.Discard
	if out != nil {
		writer = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339, NoColor: true}
	}
	base := zerolog.New(writer).With().Timestamp().Logger().Hook(
		zerolog.HookFunc(func(e *zerolog.Event, level zerolog.Level, msg string) {
			buffer.Append(fmt.Sprintf("[%s] %s", strings.ToUpper(level.String()), msg))
		}),
	)
	l := &Logger{base: base, buffer: buffer}
	l.SetLevel(LOG_LEVEL_INFO)
	return l
}

// SetLevel は出力レベルを設定する。
func (l *Logger) SetLevel(level LogLevel) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
	l.logger = l.base.Level(level.zerologLevel())
}

// Level は出力レベルを返す。
func (l *Logger) Level() LogLevel {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.level
}

// MessageBuffer はメッセージバッファを返す。
func (l *Logger) MessageBuffer() *MessageBuffer {
	return l.buffer
}

// Debug はDEBUGログを出力する。
func (l *Logger) Debug(format string, params ...any) {
	l.current().Debug().Msgf(format, params...)
}

// Info はINFOログを出力する。
func (l *Logger) Info(format string, params ...any) {
	l.current().Info().Msgf(format, params...)
}

// Warn はWARNログを出力する。
func (l *Logger) Warn(format string, params ...any) {
	l.current().Warn().Msgf(format, params...)
}

// Error はERRORログを出力する。
func (l *Logger) Error(format string, params ...any) {
	l.current().Error().Msgf(format, params...)
}

func (l *Logger) current() *zerolog.Logger {
	l.mu.RLock()
	defer l.mu.RUnlock()
	logger := l.logger
	return &logger
}

var defaultLogger atomic.Value

func init() {
	defaultLogger.Store(loggerHolder{logger: NewLogger(os.Stderr)})
}

type loggerHolder struct {
	logger ILogger
}

// DefaultLogger は既定のロガーを返す。
func DefaultLogger() ILogger {
	holder, _ := defaultLogger.Load().(loggerHolder)
	return holder.logger
}

// SetDefaultLogger は既定のロガーを差し替える。
func SetDefaultLogger(logger ILogger) {
	defaultLogger.Store(loggerHolder{logger: logger})
}
