package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observe(t *testing.T, level zapcore.Level) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(level)
	previous := sugar
	Use(zap.New(core))
	t.Cleanup(func() { sugar = previous })
	return logs
}

func TestPrintfStyleLevels(t *testing.T) {
	logs := observe(t, zapcore.InfoLevel)

	Info("Task %s created", "t1")
	Warn("slow %d", 3)
	Error("failed: %v", errors.New("boom"))
	Debug("hidden")

	entries := logs.All()
	require.Len(t, entries, 3)
	assert.Equal(t, "Task t1 created", entries[0].Message)
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, "failed: boom", entries[2].Message)
}

func TestLogWorkflowError(t *testing.T) {
	logs := observe(t, zapcore.DebugLevel)

	LogWorkflowError("accept_task", "t3", errors.New("CONFLICT"))

	require.Equal(t, 1, logs.Len())
	assert.Contains(t, logs.All()[0].Message, "operation=accept_task")
	assert.Contains(t, logs.All()[0].Message, "entityID=t3")
}

func TestNew(t *testing.T) {
	for _, format := range []string{"json", "console"} {
		l, err := New("debug", format)
		require.NoError(t, err)
		assert.True(t, l.Core().Enabled(zapcore.DebugLevel))
	}

	l, err := New("bogus", "console")
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zapcore.DebugLevel))
}

func TestWithContext(t *testing.T) {
	msg := WithContext("req-1", "hello %s", "there")

	assert.Contains(t, msg, "logger_test.go")
	assert.Contains(t, msg, "req-1")
	assert.Contains(t, msg, "hello there")
}
