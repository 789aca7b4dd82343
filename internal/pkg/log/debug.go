// nolint:forbidigo // allow usage of the "zap" package
package log

import (
	"io"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/osdpack/osdpack/internal/pkg/utils/ioutil"
)

// DebugLogger returns logs as string in tests.
type DebugLogger interface {
	Logger
	ConnectTo(writer io.Writer)
	Truncate()
	AllMessages() string
	DebugMessages() string
	InfoMessages() string
	WarnMessages() string
	WarnAndErrorMessages() string
	ErrorMessages() string
}

type debugLogger struct {
	*zapLogger
	writer *ioutil.AtomicWriter
}

// NewDebugLogger logs all messages, each with the level prefix, to an in-memory buffer.
func NewDebugLogger() DebugLogger {
	writer := ioutil.NewAtomicWriter()
	encoder := zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		MessageKey:       "msg",
		LevelKey:         "level",
		EncodeLevel:      zapcore.CapitalLevelEncoder,
		ConsoleSeparator: "  ",
		LineEnding:       zapcore.DefaultLineEnding,
	})
	core := zapcore.NewCore(encoder, writer, zapcore.DebugLevel)
	return &debugLogger{zapLogger: loggerFromZap(zap.New(core)), writer: writer}
}

func (l *debugLogger) ConnectTo(writer io.Writer) {
	l.writer.ConnectTo(writer)
}

func (l *debugLogger) Truncate() {
	l.writer.Truncate()
}

func (l *debugLogger) AllMessages() string {
	return l.messages()
}

func (l *debugLogger) DebugMessages() string {
	return l.messages(`DEBUG`)
}

func (l *debugLogger) InfoMessages() string {
	return l.messages(`INFO`)
}

func (l *debugLogger) WarnMessages() string {
	return l.messages(`WARN`)
}

func (l *debugLogger) WarnAndErrorMessages() string {
	return l.messages(`WARN`, `ERROR`)
}

func (l *debugLogger) ErrorMessages() string {
	return l.messages(`ERROR`)
}

// messages returns all logged messages and truncates the buffer.
// If levels are specified, other messages are dropped.
func (l *debugLogger) messages(levels ...string) string {
	all := l.writer.StringAndTruncate()
	if len(levels) == 0 {
		return all
	}

	var out strings.Builder
	for _, line := range strings.SplitAfter(all, "\n") {
		for _, level := range levels {
			if strings.HasPrefix(line, level+`  `) {
				out.WriteString(line)
				break
			}
		}
	}
	return out.String()
}
