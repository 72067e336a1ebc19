package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frobware/go-ipa"
	"github.com/frobware/go-ipa/config"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ipactl.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	require.NoError(t, cfg.Validate())

	hw, err := cfg.Hardware.ParsedHWType()
	require.NoError(t, err)
	assert.Equal(t, ipa.HWv4_5, hw)

	mode, err := cfg.Hardware.ParsedMode()
	require.NoError(t, err)
	assert.Equal(t, ipa.HWModeEmulation, mode)

	p := cfg.Channel.StopPolicy()
	assert.Equal(t, 5, p.Attempts)
	assert.Equal(t, time.Millisecond, p.Min)
	assert.Equal(t, 10*time.Millisecond, p.Max)
	assert.Equal(t, "info", cfg.Logging.ToSpec())
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig(), cfg)
}

func TestLoad_Overlay(t *testing.T) {
	path := writeConfig(t, `
[hardware]
hw_type = "5.5"
platform = "xr"

[channel]
stop_attempts = 3
`)
	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "5.5", cfg.Hardware.HWType)
	p, err := cfg.Hardware.ParsedPlatform()
	require.NoError(t, err)
	assert.Equal(t, ipa.PlatformXR, p.Type)
	assert.Equal(t, 3, cfg.Channel.StopAttempts)
	assert.Equal(t, 10*time.Millisecond, cfg.Channel.StopMaxSleep.Duration, "unset keys keep defaults")
	assert.Equal(t, "emulation", cfg.Hardware.Mode)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"syntax", "[hardware\n", "failed to parse"},
		{"unknown key", "[hardware]\ncolour = \"red\"\n", "unknown config keys"},
		{"bad hw type", "[hardware]\nhw_type = \"9.9\"\n", "hardware.hw_type"},
		{"bad duration", "[channel]\nstop_min_sleep = \"soon\"\n", "failed to parse"},
		{"zero attempts", "[channel]\nstop_attempts = 0\n", "stop_attempts"},
		{"min above max", "[channel]\nstop_min_sleep = \"1s\"\n", "exceeds"},
		{"bad format", "[logging]\nformat = \"xml\"\n", "logging.format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.Load(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoggingConfig_ToSpecFromComponents(t *testing.T) {
	c := config.LoggingConfig{Components: map[string]string{"store": "warn", "manager": "debug"}}
	assert.Equal(t, "info,manager=debug,store=warn", c.ToSpec())

	c.Level = "error"
	assert.Equal(t, "error", c.ToSpec(), "level takes precedence")
}

func TestNewRuntimeDirs(t *testing.T) {
	d, err := config.NewRuntimeDirs("/run/ipa-test/")
	require.NoError(t, err)
	assert.Equal(t, "/run/ipa-test", d.Base())
	assert.Equal(t, "/run/ipa-test/db/ipa.db", d.DBPath())
	assert.Equal(t, "/run/ipa-test-sock/ipa.sock", d.SocketPath())
	assert.Equal(t, "/run/ipa-test/.lock", d.Lock())

	_, err = config.NewRuntimeDirs("")
	assert.Error(t, err)
	_, err = config.NewRuntimeDirs("run/ipa")
	assert.Error(t, err)
}

func TestEnsureDirectories(t *testing.T) {
	d, err := config.NewRuntimeDirs(filepath.Join(t.TempDir(), "ipa"))
	require.NoError(t, err)
	require.NoError(t, d.EnsureDirectories())

	for _, dir := range []string{d.Base(), d.DB(), d.Sock()} {
		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir(), dir)
	}
}
