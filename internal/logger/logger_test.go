package logger

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

// TestContextLogger checks that context helpers carry names and fields.
func TestContextLogger(t *testing.T) {
	t.Parallel()

	var buffer bytes.Buffer

	ctx := ToContext(context.Background(), New(zapcore.DebugLevel, &buffer))
	ctx = WithName(ctx, "spigot-launcher")
	ctx = WithKV(ctx, "dir", "/srv/mc")

	InfoKV(ctx, "Selected jar", "jar", "paper-latest.jar")

	out := buffer.String()
	require.Contains(t, out, "spigot-launcher")
	require.Contains(t, out, "Selected jar")
	require.Contains(t, out, "paper-latest.jar")
	require.Contains(t, out, "/srv/mc")

	// No logger in context falls back to the global one.
	require.Same(t, global, FromContext(context.Background()))
}
