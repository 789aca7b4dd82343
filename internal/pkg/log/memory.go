// nolint:forbidigo // allow usage of the "zap" package
package log

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// MemoryLogger stores all messages in memory.
// It is used when the target logger is not ready yet, eg. before the log file is opened.
type MemoryLogger interface {
	Logger
	CopyLogsTo(target Logger)
}

type memoryLogger struct {
	*zapLogger
	core *memoryCore
}

type memoryCore struct {
	zapcore.LevelEnabler
	lock    *sync.Mutex
	entries []zapcore.Entry
}

func NewMemoryLogger() MemoryLogger {
	core := &memoryCore{LevelEnabler: zapcore.DebugLevel, lock: &sync.Mutex{}}
	return &memoryLogger{zapLogger: loggerFromZap(zap.New(core)), core: core}
}

// CopyLogsTo the target logger, the messages are preserved.
func (l *memoryLogger) CopyLogsTo(target Logger) {
	l.core.lock.Lock()
	defer l.core.lock.Unlock()
	for _, entry := range l.core.entries {
		switch entry.Level {
		case DebugLevel:
			target.Debug(entry.Message)
		case InfoLevel:
			target.Info(entry.Message)
		case WarnLevel:
			target.Warn(entry.Message)
		default:
			target.Error(entry.Message)
		}
	}
}

func (c *memoryCore) With(fields []zapcore.Field) zapcore.Core {
	return c
}

func (c *memoryCore) Check(entry zapcore.Entry, checked *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(entry.Level) {
		return checked.AddCore(entry, c)
	}
	return checked
}

func (c *memoryCore) Write(entry zapcore.Entry, fields []zapcore.Field) error {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.entries = append(c.entries, entry)
	return nil
}

func (c *memoryCore) Sync() error {
	return nil
}
