package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"

	m "qmetrics.dev/pkg/qmetrics/internal/model"
)

const (
	configVersionKey     = "version"
	currentConfigVersion = 1

	configBaseName   = "qmetrics"
	configFileName   = configBaseName + ".yaml"
	configFolderPath = "."

	outputFlagName  = "output"
	baseDirFlagName = "base-dir"
	verboseFlagName = "verbose"
	logFileFlagName = "log-file"
	formatFlagName  = "format"

	minCoverageFlagName = "min-coverage"
	minPassRateFlagName = "min-pass-rate"
	maxDurationFlagName = "max-duration"

	coverageThresholdKey    = "thresholds.coverage"
	passRateThresholdKey    = "thresholds.pass_rate"
	maxDurationThresholdKey = "thresholds.max_duration"

	artifactsKeyPrefix = "artifacts."

	defaultResultsDir = "test-results"
	defaultBaseDir    = "."

	envPrefix = "QMETRICS"

	logFilenameKey   = "log.filename"
	logLevelKey      = "log.level"
	logVerboseKey    = "log.verbose"
	logMaxSizeKey    = "log.max_size"
	logMaxBackupsKey = "log.max_backups"
	logMaxAgeKey     = "log.max_age"
	logCompressKey   = "log.compress"

	defaultLogFilename   = ".qmetrics.log"
	defaultLogLevel      = int(slog.LevelInfo)
	defaultLogVerbose    = false
	defaultLogMaxSize    = 10
	defaultLogMaxBackups = 3
	defaultLogMaxAge     = 28
	defaultLogCompress   = true
)

var globalLogger *slog.Logger

func init() {
	viper.SetConfigName(configBaseName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configFolderPath)
	viper.SetConfigFile(filepath.Join(configFolderPath, configFileName))
	viper.AutomaticEnv()
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	defaults := m.DefaultThresholds()

	viper.SetDefault(configVersionKey, currentConfigVersion)
	viper.SetDefault(outputFlagName, defaultResultsDir)
	viper.SetDefault(baseDirFlagName, defaultBaseDir)
	viper.SetDefault(coverageThresholdKey, defaults.Coverage)
	viper.SetDefault(passRateThresholdKey, defaults.PassRate)
	viper.SetDefault(maxDurationThresholdKey, defaults.MaxDuration.String())

	for kind, path := range m.DefaultArtifactPaths() {
		viper.SetDefault(artifactKey(kind), string(path))
	}

	// Logging defaults (used by config/env and as fallbacks for flags).
	viper.SetDefault(logFilenameKey, defaultLogFilename)
	viper.SetDefault(logLevelKey, defaultLogLevel)
	viper.SetDefault(logVerboseKey, defaultLogVerbose)
	viper.SetDefault(logMaxSizeKey, defaultLogMaxSize)
	viper.SetDefault(logMaxBackupsKey, defaultLogMaxBackups)
	viper.SetDefault(logMaxAgeKey, defaultLogMaxAge)
	viper.SetDefault(logCompressKey, defaultLogCompress)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return
		}

		return
	}
}

func artifactKey(kind m.ArtifactKind) string {
	return artifactsKeyPrefix + string(kind)
}

// artifactFlagName turns "unit_lcov" into "unit-lcov".
func artifactFlagName(kind m.ArtifactKind) string {
	return strings.ReplaceAll(string(kind), "_", "-")
}

// artifactPathsFromConfig reads every artifact location from config, env or flags.
func artifactPathsFromConfig() m.ArtifactPaths {
	paths := make(m.ArtifactPaths, len(m.AllArtifactKinds))
	for _, kind := range m.AllArtifactKinds {
		paths[kind] = m.Path(viper.GetString(artifactKey(kind)))
	}

	return paths
}

// thresholdsFromConfig reads and validates the quality gate thresholds.
func thresholdsFromConfig() (m.Thresholds, error) {
	thresholds := m.Thresholds{
		Coverage:    viper.GetFloat64(coverageThresholdKey),
		PassRate:    viper.GetFloat64(passRateThresholdKey),
		MaxDuration: viper.GetDuration(maxDurationThresholdKey),
	}

	if thresholds.Coverage < 0 || thresholds.Coverage > 100 {
		return m.Thresholds{}, fmt.Errorf("coverage threshold %v out of range [0,100]", thresholds.Coverage)
	}

	if thresholds.PassRate < 0 || thresholds.PassRate > 100 {
		return m.Thresholds{}, fmt.Errorf("pass rate threshold %v out of range [0,100]", thresholds.PassRate)
	}

	if thresholds.MaxDuration <= 0 {
		return m.Thresholds{}, fmt.Errorf("max duration %q must be positive", viper.GetString(maxDurationThresholdKey))
	}

	return thresholds, nil
}

func parseSlogLevel(value string, defaultLevel slog.Level) slog.Level {
	level := strings.ToLower(strings.TrimSpace(value))
	if level == "" {
		return defaultLevel
	}

	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}

	// Allow numeric slog levels as well (e.g. -4 for debug).
	if n, err := strconv.Atoi(level); err == nil {
		return slog.Level(n)
	}

	return defaultLevel
}

// configureLogger configures the global slog logger.
//
// By default it logs at Info; if verbose is true it logs at Debug.
func configureLogger(logPath string, verbose bool) {
	if strings.TrimSpace(logPath) == "" {
		logPath = viper.GetString(logFilenameKey)
	}

	if strings.TrimSpace(logPath) == "" {
		logPath = defaultLogFilename
	}

	var logLevel slog.Level
	if verbose {
		logLevel = slog.LevelDebug
	} else {
		logLevel = parseSlogLevel(viper.GetString(logLevelKey), slog.LevelInfo)
	}

	logWriter := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    viper.GetInt(logMaxSizeKey),
		MaxBackups: viper.GetInt(logMaxBackupsKey),
		MaxAge:     viper.GetInt(logMaxAgeKey),
		Compress:   viper.GetBool(logCompressKey),
	}

	handler := slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		AddSource: true,
		Level:     logLevel,
	})

	globalLogger = slog.New(handler)
	slog.SetDefault(globalLogger)
}

// defaultDuration is the fallback for --max-duration when config holds junk.
func defaultDuration() time.Duration {
	if d := viper.GetDuration(maxDurationThresholdKey); d > 0 {
		return d
	}

	return m.DefaultThresholds().MaxDuration
}
