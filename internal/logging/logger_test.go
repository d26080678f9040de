package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]zerolog.Level{
		"trace":   zerolog.TraceLevel,
		"DEBUG":   zerolog.DebugLevel,
		"warn":    zerolog.WarnLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"off":     zerolog.Disabled,
		"":        zerolog.InfoLevel,
		"bogus":   zerolog.InfoLevel,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestWithComponentAddsField(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultConfig()
	cfg.Format = "json"
	cfg.Output = &buf
	cfg.Level = zerolog.DebugLevel

	ctx := WithContext(context.Background(), New(cfg))
	ctx = WithComponent(ctx, "webview")
	FromContext(ctx).Debug().Msg("hello")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "webview", entry["component"])
	assert.Equal(t, "hello", entry["message"])
}

func TestFromContextWithoutLoggerIsDisabled(t *testing.T) {
	logger := FromContext(context.Background())
	require.NotNil(t, logger)
	assert.Equal(t, zerolog.Disabled, logger.GetLevel())
}
