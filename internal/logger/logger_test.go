package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromContext_AddsRequestAndUser(t *testing.T) {
	var buf bytes.Buffer
	log = slog.New(newHandler(&buf, "production"))
	t.Cleanup(func() { log = nil })

	ctx := WithUserID(WithRequestID(context.Background(), "req-1"), "acc-1")
	CtxInfo(ctx, "hello", "k", "v")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "hello", entry["msg"])
	assert.Equal(t, "req-1", entry["request_id"])
	assert.Equal(t, "acc-1", entry["user_id"])
	assert.Equal(t, "v", entry["k"])
}

func TestFromContext_EmptyContext(t *testing.T) {
	var buf bytes.Buffer
	log = slog.New(newHandler(&buf, "production"))
	t.Cleanup(func() { log = nil })

	CtxWarn(context.Background(), "plain")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.NotContains(t, entry, "request_id")
	assert.Equal(t, "WARN", entry["level"])
}
