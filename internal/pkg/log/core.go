// nolint:forbidigo // allow usage of the "zap" package
package log

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// stdoutCore writes the info level to stdout, in the verbose mode also the debug level.
func stdoutCore(stdout io.Writer, verbose bool) zapcore.Core {
	var levels zap.LevelEnablerFunc
	if verbose {
		levels = func(l zapcore.Level) bool { return l <= InfoLevel }
	} else {
		levels = func(l zapcore.Level) bool { return l == InfoLevel }
	}
	return zapcore.NewCore(consoleEncoder(verbose), zapcore.AddSync(stdout), levels)
}

// stderrCore writes the warning and error levels to stderr.
func stderrCore(stderr io.Writer, verbose bool) zapcore.Core {
	levels := zap.LevelEnablerFunc(func(l zapcore.Level) bool { return l >= WarnLevel })
	return zapcore.NewCore(consoleEncoder(verbose), zapcore.AddSync(stderr), levels)
}

// consoleEncoder writes only the message, in the verbose mode also the level prefix.
func consoleEncoder(verbose bool) zapcore.Encoder {
	if verbose {
		return zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
			MessageKey:       "msg",
			LevelKey:         "level",
			EncodeLevel:      zapcore.CapitalLevelEncoder,
			ConsoleSeparator: "\t",
			LineEnding:       zapcore.DefaultLineEnding,
		})
	}
	return zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		MessageKey: "msg",
		LineEnding: zapcore.DefaultLineEnding,
	})
}
