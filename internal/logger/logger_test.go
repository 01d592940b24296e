package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewLevels(t *testing.T) {
	log, err := New(true, false)
	require.NoError(t, err)
	assert.False(t, log.Core().Enabled(zapcore.DebugLevel))

	log, err = New(false, true)
	require.NoError(t, err)
	assert.True(t, log.Core().Enabled(zapcore.DebugLevel))
}

func TestTruncateForLog(t *testing.T) {
	assert.Equal(t, "héllo...", TruncateForLog("  héllo world ", 5))
	assert.Equal(t, "short", TruncateForLog("short", 10))
	assert.Empty(t, TruncateForLog("anything", 0))
}

func TestResumeFields(t *testing.T) {
	fields := ResumeFields(" 42 ", "")
	require.Len(t, fields, 1)
	assert.Equal(t, FieldResumeID, fields[0].Key)
	assert.Equal(t, "42", fields[0].String)

	assert.Empty(t, ResumeFields("", " "))
}

func TestWithFields(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)

	WithFields(zap.New(core), zap.String("stage", "upload")).Info("stored")

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "upload", logs.All()[0].ContextMap()["stage"])

	assert.NotPanics(t, func() { WithFields(nil, zap.String("a", "b")).Info("dropped") })
	assert.NotNil(t, OrNop(nil))
}
