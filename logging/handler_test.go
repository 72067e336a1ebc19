package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frobware/go-ipa/logging"
)

func newBuffered(t *testing.T, spec string) (*slog.Logger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{CLISpec: spec, Output: &buf})
	require.NoError(t, err)
	return logger, &buf
}

func TestFilteringHandler_PerComponent(t *testing.T) {
	logger, buf := newBuffered(t, "warn,manager=debug,sim=trace")

	logger.Info("base info")
	logger.Warn("base warn")
	logger.With("component", "manager").Debug("manager debug")
	logger.With("component", "manager").Log(context.Background(), logging.LevelTrace.ToSlog(), "manager trace")
	logging.Trace(context.Background(), logger.With("component", "sim"), "hw op", "op", "start 6")

	out := buf.String()
	assert.NotContains(t, out, "base info")
	assert.Contains(t, out, "base warn")
	assert.Contains(t, out, "manager debug")
	assert.NotContains(t, out, "manager trace")
	assert.Contains(t, out, "op=\"start 6\"")
}

func TestFilteringHandler_LastComponentWins(t *testing.T) {
	logger, buf := newBuffered(t, "error,sim=debug")

	logger.With("component", "manager").With("component", "sim").Debug("reassigned")
	assert.Contains(t, buf.String(), "reassigned")
}

func TestFilteringHandler_WithGroupKeepsComponent(t *testing.T) {
	logger, buf := newBuffered(t, "warn,store=debug")

	logger.With("component", "store").WithGroup("tx").Debug("begin", "id", 1)
	assert.Contains(t, buf.String(), "tx.id=1")
}

func TestNew_Precedence(t *testing.T) {
	tests := []struct {
		name      string
		opts      logging.Options
		wantDebug bool
	}{
		{"defaults", logging.Options{}, false},
		{"config", logging.Options{ConfigSpec: "debug"}, true},
		{"env over config", logging.Options{EnvSpec: "info", ConfigSpec: "debug"}, false},
		{"cli over env", logging.Options{CLISpec: "debug", EnvSpec: "error"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.opts.Output = &buf
			logger, err := logging.New(tt.opts)
			require.NoError(t, err)
			logger.Debug("probe")
			assert.Equal(t, tt.wantDebug, strings.Contains(buf.String(), "probe"))
		})
	}
}

func TestNew_InvalidSpec(t *testing.T) {
	_, err := logging.New(logging.Options{CLISpec: "info,manager=chatty"})
	assert.ErrorContains(t, err, "invalid log spec")
}

func TestNew_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: logging.FormatJSON, Output: &buf})
	require.NoError(t, err)

	logger.With("component", "server").Info("listening", "address", "127.0.0.1:50061")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "listening", rec["msg"])
	assert.Equal(t, "server", rec["component"])
}

func TestParseFormat(t *testing.T) {
	f, err := logging.ParseFormat("JSON")
	require.NoError(t, err)
	assert.Equal(t, logging.FormatJSON, f)

	f, err = logging.ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, logging.FormatText, f)

	_, err = logging.ParseFormat("xml")
	assert.Error(t, err)
}
