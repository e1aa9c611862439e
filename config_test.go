package casecheck

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"github.com/casecheck/casecheck/flags"
)

func configFromArgs(t *testing.T, args ...string) (*Config, error) {
	t.Helper()
	var cfg *Config
	var cfgErr error
	app := &cli.App{
		Flags: flags.Flags,
		Action: func(ctx *cli.Context) error {
			cfg, cfgErr = NewConfig(ctx, log.New())
			return nil
		},
	}
	require.NoError(t, app.Run(append([]string{"casecheck"}, args...)))
	return cfg, cfgErr
}

func TestNewConfigResolvesAbsolutePaths(t *testing.T) {
	cfg, err := configFromArgs(t,
		"--fixture", "testdata/cases.txt",
		"--program", "./prog",
		"--log-dir", "logs",
	)
	require.NoError(t, err)

	assert.True(t, filepath.IsAbs(cfg.FixtureFile))
	assert.True(t, filepath.IsAbs(cfg.LogDir))
	assert.Equal(t, "./prog", cfg.Program)
	assert.NotNil(t, cfg.Log)
}

func TestNewConfigRunOnceByDefault(t *testing.T) {
	cfg, err := configFromArgs(t, "--fixture", "cases.txt", "--program", "./prog")
	require.NoError(t, err)
	assert.True(t, cfg.RunOnce)
	assert.Equal(t, time.Duration(0), cfg.RunInterval)
}

func TestNewConfigContinuousMode(t *testing.T) {
	cfg, err := configFromArgs(t,
		"--fixture", "cases.txt",
		"--program", "./prog",
		"--run-interval", "30m",
	)
	require.NoError(t, err)
	assert.False(t, cfg.RunOnce)
	assert.Equal(t, 30*time.Minute, cfg.RunInterval)
}

func TestNewConfigMissingRequiredFlags(t *testing.T) {
	_, err := configFromArgs(t)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required flags")

	_, err = configFromArgs(t, "--fixture", "cases.txt")
	require.Error(t, err)
}

func TestNewConfigManifestOnly(t *testing.T) {
	cfg, err := configFromArgs(t, "--manifest", "casecheck.yaml")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(cfg.ManifestFile))
	assert.Empty(t, cfg.Program)
}

func TestLevelFromString(t *testing.T) {
	tests := []struct {
		in      string
		want    interface{}
		wantErr bool
	}{
		{"debug", log.LevelDebug, false},
		{"info", log.LevelInfo, false},
		{"warn", log.LevelWarn, false},
		{"error", log.LevelError, false},
		{"bogus", nil, true},
		{"", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := LevelFromString(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
