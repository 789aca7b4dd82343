// nolint:forbidigo // allow usage of the "zap" package
package log

import (
	"go.uber.org/zap/zapcore"
)

// fileCore writes all levels to the log file, one JSON object per line.
func fileCore(logFile *File) zapcore.Core {
	encoderConfig := zapcore.EncoderConfig{
		TimeKey:     "time",
		LevelKey:    "level",
		MessageKey:  "message",
		EncodeLevel: zapcore.LowercaseLevelEncoder,
		EncodeTime:  zapcore.ISO8601TimeEncoder,
	}
	return zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), logFile.File(), zapcore.DebugLevel)
}
