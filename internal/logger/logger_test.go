package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferLogger(format, level string) (*Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	l := New(&Config{Level: level, Format: format, Output: &buf, ServiceName: "test"})
	return l, &buf
}

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()
	var out []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(line), &m))
		out = append(out, m)
	}
	return out
}

func TestContextFieldsPropagate(t *testing.T) {
	l, buf := newBufferLogger("json", "debug")
	ctx := l.WithContext(context.Background())
	ctx = SetRequestID(ctx, "req-1")
	ctx = SetCommand(ctx, "memenem generate")

	CtxInfo(ctx, "hello %s", "world")

	lines := decodeLines(t, buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "hello world", lines[0]["message"])
	assert.Equal(t, "req-1", lines[0][FieldRequestID])
	assert.Equal(t, "memenem generate", lines[0][FieldCommand])
	assert.Equal(t, "test", lines[0]["service"])
	assert.Equal(t, "req-1", GetRequestID(ctx))
}

func TestEntryMetricFields(t *testing.T) {
	l, buf := newBufferLogger("json", "info")
	ctx := l.WithContext(context.Background())

	With(Fields{FieldSize: 10}).WithDuration(42).WithCount(3).WithStatus(200).Info(ctx, "done")
	With(Fields{}).Debug(ctx, "filtered out")

	lines := decodeLines(t, buf)
	require.Len(t, lines, 1)
	assert.EqualValues(t, 42, lines[0][FieldDurationMs])
	assert.EqualValues(t, 3, lines[0][FieldCount])
	assert.EqualValues(t, 200, lines[0][FieldStatus])
	assert.EqualValues(t, 10, lines[0][FieldSize])
}

func TestFromContextFallsBackToDefault(t *testing.T) {
	assert.Same(t, GetDefault(), FromContext(context.Background()))
	assert.Equal(t, "", GetFieldString(context.Background(), FieldMemeID))
}

func TestTextFormatAndLevel(t *testing.T) {
	l, buf := newBufferLogger("text", "warn")
	l.Info("hidden")
	l.WithField("meme_id", "m1").Warn("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "meme_id=m1")
}

func TestParseLevelDefaultsToInfo(t *testing.T) {
	assert.Equal(t, "info", parseLevel("nonsense").String())
	assert.Equal(t, "debug", parseLevel("debug").String())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("LOG_MAX_SIZE", "notanumber")
	cfg := LoadFromEnv("svc", "info", "json")
	assert.Equal(t, "error", cfg.Level)
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, 50, cfg.MaxSize)
	assert.Equal(t, "svc", cfg.ToConfig().ServiceName)
}
