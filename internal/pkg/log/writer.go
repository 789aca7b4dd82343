package log

import (
	"fmt"
	"strings"

	"go.uber.org/zap/zapcore"

	"github.com/osdpack/osdpack/internal/pkg/utils/errors"
)

// LevelWriter is an io.Writer that logs each written line
// as a separate message with a fixed level.
type LevelWriter struct {
	logger baseLogger
	level  zapcore.Level
}

func (w *LevelWriter) Write(p []byte) (n int, err error) {
	logFn := w.logFn()
	for _, line := range strings.Split(strings.TrimRight(string(p), "\n"), "\n") {
		logFn(strings.TrimRight(line, "\n"))
	}
	return len(p), nil
}

func (w *LevelWriter) logFn() func(args ...interface{}) {
	switch w.level {
	case DebugLevel:
		return w.logger.Debug
	case WarnLevel:
		return w.logger.Warn
	case ErrorLevel:
		return w.logger.Error
	default:
		return w.logger.Info
	}
}

func (w *LevelWriter) WriteNoErr(p []byte) {
	if _, err := w.Write(p); err != nil {
		panic(errors.Errorf("cannot write: %w", err))
	}
}

func (w *LevelWriter) WriteString(s string) {
	w.WriteNoErr([]byte(s))
}

func (w *LevelWriter) WriteStringIndent(indent int, s string) {
	w.WriteString(strings.Repeat("  ", indent) + s)
}

func (w *LevelWriter) Writef(format string, a ...any) {
	w.WriteNoErr([]byte(fmt.Sprintf(format, a...)))
}

func (w *LevelWriter) Close() error {
	return w.logger.Sync()
}
