package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pnp/internal/adapters/logger"
	"go.trai.ch/pnp/internal/core/domain"
	"go.trai.ch/zerr"
)

// newTestLogger creates a logger with an injected bytes.Buffer for isolated testing.
// It also sets NO_COLOR=1 to ensure deterministic output without ANSI escape codes.
func newTestLogger(t *testing.T) (*logger.Logger, *bytes.Buffer) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	lg := logger.New()
	lg.SetOutput(buf)
	return lg, buf
}

func TestLogger_Levels(t *testing.T) {
	tests := []struct {
		name       string
		log        func(*logger.Logger)
		goldenName string
	}{
		{
			name:       "info",
			log:        func(l *logger.Logger) { l.Info("loaded runtime state") },
			goldenName: "info_basic",
		},
		{
			name: "warn",
			log: func(l *logger.Logger) {
				l.Warn("app@workspace:. used left-pad through the fallback pool")
			},
			goldenName: "warn_basic",
		},
		{
			name:       "error",
			log:        func(l *logger.Logger) { l.Error(errors.New("permission denied")) },
			goldenName: "error_simple",
		},
		{
			name: "multi-line warning",
			log: func(l *logger.Logger) {
				l.Warn("shared tried to access react, but it isn't provided by its ancestors\n\n" +
					"Required package: react\nRequired by: shared@npm:1.0.0")
			},
			goldenName: "warn_multiline",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lg, buf := newTestLogger(t)
			tt.log(lg)

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

func TestLogger_Error_ZerrChain(t *testing.T) {
	err := zerr.With(
		zerr.Wrap(
			zerr.Wrap(errors.New("unexpected end of JSON input"), domain.ErrStateParseFailed.Error()),
			"failed to start resolver",
		),
		"path", "/project/.pnp.data.json",
	)

	lg, buf := newTestLogger(t)
	lg.Error(err)

	g := goldie.New(t)
	g.Assert(t, "error_chain_zerr", buf.Bytes())
}

func TestLogger_Error_Nil(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.Error(nil)
	assert.Empty(t, buf.String())
}

func TestLogger_JSONFormat(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.SetFormat(domain.LogFormatJSON)
	lg.Warn("careful")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "WARN", record["level"])
	assert.Equal(t, "careful", record["msg"])

	buf.Reset()
	lg.Error(errors.New("boom"))
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "boom", record["error"])
}

func TestPrettyHandler_Attributes(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	tests := []struct {
		name     string
		args     []any
		expected string
	}{
		{
			name:     "plain values",
			args:     []any{"request", "left-pad", "status", "resolved"},
			expected: "resolve request=left-pad status=resolved\n",
		},
		{
			name:     "path with spaces is quoted",
			args:     []any{"issuer", "/my project/index.js"},
			expected: "resolve issuer=\"/my project/index.js\"\n",
		},
		{
			name:     "empty value is quoted",
			args:     []any{"issuer", ""},
			expected: "resolve issuer=\"\"\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			slog.New(logger.NewPrettyHandler(buf, nil)).Info("resolve", tt.args...)
			assert.Equal(t, tt.expected, buf.String())
		})
	}
}

func TestPrettyHandler_GroupedAttributes(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	slog.New(logger.NewPrettyHandler(buf, nil)).WithGroup("engine").With("id", "abc").Warn("foreign issuer")
	assert.Equal(t, "! foreign issuer engine.id=abc\n", buf.String())
}
