package log

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewCliLogger creates the logger for a command run.
// Info goes to stdout, warnings and errors to stderr,
// all levels also to the log file when it is open.
func NewCliLogger(stdout io.Writer, stderr io.Writer, logFile *File, verbose bool) Logger {
	cores := []zapcore.Core{
		stdoutCore(stdout, verbose),
		stderrCore(stderr, verbose),
	}
	if logFile != nil {
		cores = append(cores, fileCore(logFile))
	}
	return loggerFromZap(zap.New(zapcore.NewTee(cores...)))
}
