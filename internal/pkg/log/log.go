package log

import (
	"go.uber.org/zap/zapcore"
)

const (
	DebugLevel = zapcore.DebugLevel
	InfoLevel  = zapcore.InfoLevel
	WarnLevel  = zapcore.WarnLevel
	ErrorLevel = zapcore.ErrorLevel
)

// Logger is a logging abstraction used in the whole project.
type Logger interface {
	baseLogger

	// DebugWriter returns a writer that logs each written line with the debug level.
	DebugWriter() *LevelWriter
	// InfoWriter returns a writer that logs each written line with the info level.
	InfoWriter() *LevelWriter
	// WarnWriter returns a writer that logs each written line with the warning level.
	WarnWriter() *LevelWriter
	// ErrorWriter returns a writer that logs each written line with the error level.
	ErrorWriter() *LevelWriter
}

type baseLogger interface {
	Debug(args ...interface{})
	Info(args ...interface{})
	Warn(args ...interface{})
	Error(args ...interface{})

	Debugf(template string, args ...interface{})
	Infof(template string, args ...interface{})
	Warnf(template string, args ...interface{})
	Errorf(template string, args ...interface{})

	Sync() error
}
