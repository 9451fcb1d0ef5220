package cmd

import (
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "qmetrics.dev/pkg/qmetrics/internal/model"
)

func TestConfigConstants(t *testing.T) {
	assert.Equal(t, "qmetrics", configBaseName)
	assert.Equal(t, "qmetrics.yaml", configFileName)
	assert.Equal(t, ".", configFolderPath)
	assert.Equal(t, "output", outputFlagName)
	assert.Equal(t, "base-dir", baseDirFlagName)
	assert.Equal(t, "thresholds.coverage", coverageThresholdKey)
	assert.Equal(t, "thresholds.pass_rate", passRateThresholdKey)
	assert.Equal(t, "thresholds.max_duration", maxDurationThresholdKey)
	assert.Equal(t, "test-results", defaultResultsDir)
	assert.Equal(t, "QMETRICS", envPrefix)
}

func TestConfigVersionConstants(t *testing.T) {
	assert.Equal(t, "version", configVersionKey)
	assert.Equal(t, 1, currentConfigVersion)
}

func TestArtifactFlagName(t *testing.T) {
	assert.Equal(t, "unit", artifactFlagName(m.ArtifactUnit))
	assert.Equal(t, "unit-lcov", artifactFlagName(m.ArtifactUnitLcov))
	assert.Equal(t, "api-json", artifactFlagName(m.ArtifactAPIJSON))
	assert.Equal(t, "artifacts.api_json", artifactKey(m.ArtifactAPIJSON))
}

func TestArtifactPathsFromConfig_Defaults(t *testing.T) {
	assert.Equal(t, m.DefaultArtifactPaths(), artifactPathsFromConfig())
}

func TestArtifactPathsFromConfig_Env(t *testing.T) {
	t.Setenv("QMETRICS_ARTIFACTS_UI", "e2e/results.txt")

	paths := artifactPathsFromConfig()
	assert.Equal(t, m.Path("e2e/results.txt"), paths[m.ArtifactUI])
	assert.Equal(t, m.DefaultArtifactPaths()[m.ArtifactBDD], paths[m.ArtifactBDD])
}

func TestThresholdsFromConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		got, err := thresholdsFromConfig()
		require.NoError(t, err)
		assert.Equal(t, m.DefaultThresholds(), got)
	})

	t.Run("env overrides", func(t *testing.T) {
		t.Setenv("QMETRICS_THRESHOLDS_COVERAGE", "60")
		t.Setenv("QMETRICS_THRESHOLDS_MAX_DURATION", "90s")

		got, err := thresholdsFromConfig()
		require.NoError(t, err)
		assert.Equal(t, 60.0, got.Coverage)
		assert.Equal(t, 95.0, got.PassRate)
		assert.Equal(t, 90*time.Second, got.MaxDuration)
	})

	t.Run("out of range", func(t *testing.T) {
		t.Setenv("QMETRICS_THRESHOLDS_PASS_RATE", "101")

		_, err := thresholdsFromConfig()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "pass rate")
	})

	t.Run("zero duration", func(t *testing.T) {
		t.Setenv("QMETRICS_THRESHOLDS_MAX_DURATION", "0s")

		_, err := thresholdsFromConfig()
		require.Error(t, err)
	})
}

func TestParseSlogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"", slog.LevelInfo},
		{"debug", slog.LevelDebug},
		{" WARN ", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"-4", slog.LevelDebug},
		{"nonsense", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, parseSlogLevel(tt.in, slog.LevelInfo))
		})
	}
}

func TestConfigureLogger(t *testing.T) {
	original := slog.Default()
	t.Cleanup(func() { slog.SetDefault(original) })

	logPath := filepath.Join(t.TempDir(), "qmetrics.log")
	configureLogger(logPath, true)

	require.NotNil(t, globalLogger)
	assert.Same(t, globalLogger, slog.Default())
	assert.True(t, globalLogger.Enabled(t.Context(), slog.LevelDebug))
	assert.Equal(t, defaultLogMaxSize, viper.GetInt(logMaxSizeKey))
}
