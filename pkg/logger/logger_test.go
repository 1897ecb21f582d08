package logger

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, zapcore.WarnLevel, ParseLevel("warning"))
	assert.Equal(t, zapcore.ErrorLevel, ParseLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel("nonsense"))
}

func TestNewWithConfig_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "userdeck.log")

	l, err := NewWithConfig(Config{
		Level:       "debug",
		Format:      "json",
		OutputPath:  path,
		ServiceName: "userdeck",
	})
	require.NoError(t, err)

	l.Info("hello")
	assert.NoError(t, l.Sync())
	assert.FileExists(t, path)
}

func TestWithContext(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	base := zap.New(core)

	ctx, id := ContextWithRequestID(context.Background(), "")
	ctx = ContextWithSessionID(ctx, "sess-1")

	WithContext(ctx, base).Info("msg")

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, id, fields["request_id"])
	assert.Equal(t, "sess-1", fields["session_id"])
	assert.NotEmpty(t, id)
}

func TestWithContext_NoFields(t *testing.T) {
	base := zap.NewNop()
	assert.Same(t, base, WithContext(context.Background(), base))
}

func TestContextWithRequestID_KeepsGivenID(t *testing.T) {
	ctx, id := ContextWithRequestID(context.Background(), "abc")
	assert.Equal(t, "abc", id)
	assert.Equal(t, "abc", GetRequestID(ctx))
}
