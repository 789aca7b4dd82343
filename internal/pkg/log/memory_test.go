package log

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemoryLogger(t *testing.T) {
	t.Parallel()

	mem := NewMemoryLogger()
	mem.Debug(`Debug message.`)
	mem.Info(`Info message.`)
	mem.Warnf(`Warn %s`, `message.`)

	target := NewDebugLogger()
	mem.CopyLogsTo(target)

	expected := "DEBUG  Debug message.\nINFO  Info message.\nWARN  Warn message.\n"
	assert.Equal(t, expected, target.AllMessages())

	// Messages are preserved, they can be copied to another logger
	other := NewDebugLogger()
	mem.CopyLogsTo(other)
	assert.Equal(t, expected, other.AllMessages())
}
