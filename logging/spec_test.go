package logging

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    Level
		wantErr bool
	}{
		{input: "trace", want: LevelTrace},
		{input: "debug", want: LevelDebug},
		{input: "info", want: LevelInfo},
		{input: "warn", want: LevelWarn},
		{input: "warning", want: LevelWarn},
		{input: "error", want: LevelError},
		{input: "err", want: LevelError},
		{input: "DEBUG", want: LevelDebug},
		{input: "  warn  ", want: LevelWarn},
		{input: "verbose", wantErr: true},
		{input: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLevel_MatchesSlog(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, LevelDebug.ToSlog())
	assert.Equal(t, slog.LevelError, LevelError.ToSlog())
	assert.Less(t, LevelTrace.ToSlog(), slog.LevelDebug)
	assert.Equal(t, "Level(3)", Level(3).String())
}

func TestParseSpec(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantBase   Level
		wantComps  map[string]Level
		errContain string
	}{
		{name: "empty defaults to info", input: "", wantBase: LevelInfo},
		{name: "base only", input: "debug", wantBase: LevelDebug},
		{
			name:      "overrides",
			input:     "warn,manager=debug,sim=trace",
			wantBase:  LevelWarn,
			wantComps: map[string]Level{"manager": LevelDebug, "sim": LevelTrace},
		},
		{
			name:      "whitespace and empty parts",
			input:     " info ,, manager = debug ,",
			wantBase:  LevelInfo,
			wantComps: map[string]Level{"manager": LevelDebug},
		},
		{
			name:      "component without base",
			input:     "store=trace",
			wantBase:  LevelInfo,
			wantComps: map[string]Level{"store": LevelTrace},
		},
		{name: "bad base", input: "loud", errContain: "unknown log level"},
		{name: "bad component level", input: "info,manager=loud", errContain: "invalid level for component"},
		{name: "base not first", input: "manager=debug,info", errContain: "must be first"},
		{name: "empty component", input: "info,=debug", errContain: "empty component name"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, err := ParseSpec(tt.input)
			if tt.errContain != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContain)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantBase, spec.BaseLevel)
			if tt.wantComps == nil {
				assert.Empty(t, spec.Components)
			} else {
				assert.Equal(t, tt.wantComps, spec.Components)
			}
		})
	}
}

func TestSpec_LevelForAndString(t *testing.T) {
	spec, err := ParseSpec("warn,sim=trace,manager=debug")
	require.NoError(t, err)

	assert.Equal(t, LevelDebug, spec.LevelFor("manager"))
	assert.Equal(t, LevelTrace, spec.LevelFor("sim"))
	assert.Equal(t, LevelWarn, spec.LevelFor("server"))
	assert.Equal(t, "warn,manager=debug,sim=trace", spec.String())

	again, err := ParseSpec(spec.String())
	require.NoError(t, err)
	assert.Equal(t, spec, again)
}
