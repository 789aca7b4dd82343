package client

import (
	"fmt"

	"github.com/umisama/go-regexpcache"

	"github.com/osdpack/osdpack/internal/pkg/log"
)

const loggerPrefix = "HTTP%s\t"

// Logger adapts our logger for resty, all messages go to the debug level.
// Credentials are masked before logging.
type Logger struct {
	logger log.Logger
}

func (l *Logger) Debugf(format string, v ...interface{}) {
	l.logWithoutSecrets("", format, v...)
}

func (l *Logger) Warnf(format string, v ...interface{}) {
	l.logWithoutSecrets("-WARN", format, v...)
}

func (l *Logger) Errorf(format string, v ...interface{}) {
	l.logWithoutSecrets("-ERROR", format, v...)
}

func (l *Logger) logWithoutSecrets(level string, format string, v ...interface{}) {
	v = append([]interface{}{level}, v...)
	msg := fmt.Sprintf(loggerPrefix+format, v...)
	msg = regexpcache.MustCompile(`(?i)(authorization:\s*bearer\s+)\S+`).ReplaceAllString(msg, "$1*****")
	msg = regexpcache.MustCompile(`(?i)(token:?\s*)\S+`).ReplaceAllString(msg, "$1*****")
	l.logger.Debug(msg)
}
