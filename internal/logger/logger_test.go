package logger

import (
	"bytes"
	"context"
	"os"
	"strings"
	"sync"
	"testing"

	zlog "github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appCtx "github.com/baechuer/real-time-ressys/services/user-service/internal/pkg/context"
)

var envMu sync.Mutex

func withEnv(t *testing.T, kv map[string]string) {
	t.Helper()

	envMu.Lock()
	t.Cleanup(envMu.Unlock)

	prev := map[string]*string{}
	for k, v := range kv {
		if old, ok := os.LookupEnv(k); ok {
			tmp := old
			prev[k] = &tmp
		} else {
			prev[k] = nil
		}
		_ = os.Setenv(k, v)
	}

	t.Cleanup(func() {
		for k, old := range prev {
			if old == nil {
				_ = os.Unsetenv(k)
			} else {
				_ = os.Setenv(k, *old)
			}
		}
	})
}

func TestInitWithWriter_Defaults_ToInfoAndConsole(t *testing.T) {
	withEnv(t, map[string]string{"LOG_LEVEL": "", "LOG_FORMAT": ""})

	var buf bytes.Buffer
	InitWithWriter(&buf)

	assert.Equal(t, "info", Logger.GetLevel().String())
	assert.Equal(t, "info", zlog.Logger.GetLevel().String())

	Logger.Info().Msg("hello")
	out := strings.TrimSpace(buf.String())
	assert.False(t, strings.HasPrefix(out, "{"), "expected console output, got %q", out)
	assert.Contains(t, out, "hello")
}

func TestInitWithWriter_InvalidLogLevel_FallsBackToInfo(t *testing.T) {
	withEnv(t, map[string]string{"LOG_LEVEL": "not-a-level", "LOG_FORMAT": "console"})

	var buf bytes.Buffer
	InitWithWriter(&buf)

	Logger.Debug().Msg("debug-should-not-print")
	Logger.Info().Msg("info-should-print")

	assert.NotContains(t, buf.String(), "debug-should-not-print")
	assert.Contains(t, buf.String(), "info-should-print")
}

func TestInitWithWriter_JSONFormat_OutputsJSON(t *testing.T) {
	withEnv(t, map[string]string{"LOG_LEVEL": "info", "LOG_FORMAT": "json"})

	var buf bytes.Buffer
	InitWithWriter(&buf)

	Logger.Info().Str("k", "v").Msg("hello")
	out := strings.TrimSpace(buf.String())

	require.True(t, strings.HasPrefix(out, "{") && strings.HasSuffix(out, "}"), "got %q", out)
	assert.Contains(t, out, `"message":"hello"`)
	assert.Contains(t, out, `"k":"v"`)
	assert.Contains(t, out, `"service":"user-service"`)
}

func TestWithCtx(t *testing.T) {
	withEnv(t, map[string]string{"LOG_LEVEL": "debug", "LOG_FORMAT": "json"})

	var buf bytes.Buffer
	InitWithWriter(&buf)

	t.Run("adds_request_id", func(t *testing.T) {
		buf.Reset()
		ctx := appCtx.WithRequestID(context.Background(), "rid-123")
		WithCtx(ctx).Info().Msg("tagged")
		assert.Contains(t, buf.String(), `"request_id":"rid-123"`)
	})

	t.Run("no_request_id_field_when_absent", func(t *testing.T) {
		buf.Reset()
		WithCtx(context.Background()).Info().Msg("plain")
		assert.NotContains(t, buf.String(), "request_id")
		assert.Contains(t, buf.String(), "plain")
	})
}
