package log

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// zapLogger implements the Logger interface on top of a zap.SugaredLogger.
type zapLogger struct {
	*zap.SugaredLogger
}

func loggerFromZap(l *zap.Logger) *zapLogger {
	return &zapLogger{SugaredLogger: l.Sugar()}
}

func (l *zapLogger) writer(level zapcore.Level) *LevelWriter {
	return &LevelWriter{logger: l, level: level}
}

func (l *zapLogger) DebugWriter() *LevelWriter {
	return l.writer(DebugLevel)
}

func (l *zapLogger) InfoWriter() *LevelWriter {
	return l.writer(InfoLevel)
}

func (l *zapLogger) WarnWriter() *LevelWriter {
	return l.writer(WarnLevel)
}

func (l *zapLogger) ErrorWriter() *LevelWriter {
	return l.writer(ErrorLevel)
}
