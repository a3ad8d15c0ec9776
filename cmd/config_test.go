package cmd

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigConstants(t *testing.T) {
	assert.Equal(t, "gotester", configBaseName)
	assert.Equal(t, "gotester.yaml", configFileName)
	assert.Equal(t, ".", configFolderPath)
	assert.Equal(t, "output", outputFlagName)
	assert.Equal(t, "collapse", collapseFlagName)
	assert.Equal(t, "filter", filterFlagName)
	assert.Equal(t, "sync", syncFlagName)
	assert.Equal(t, "parallel", runParallelFlagName)
	assert.Equal(t, "report.collapse", collapseConfigKey)
	assert.Equal(t, "report.filter", filterConfigKey)
	assert.Equal(t, "report.sync", syncConfigKey)
	assert.Equal(t, "run.parallel", runParallelConfigKey)
	assert.Equal(t, ".gotester-reports", defaultReportsDir)
	assert.Equal(t, false, defaultCollapse)
	assert.Equal(t, "all", defaultFilter)
	assert.Equal(t, 1, defaultRunParallel)
	assert.Equal(t, "GOTESTER", envPrefix)
}

func TestConfigVersionConstants(t *testing.T) {
	assert.Equal(t, "version", configVersionKey)
	assert.Equal(t, 1, currentConfigVersion)
}

func TestParseSlogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseSlogLevel("debug", slog.LevelInfo))
	assert.Equal(t, slog.LevelInfo, parseSlogLevel("INFO", slog.LevelError))
	assert.Equal(t, slog.LevelWarn, parseSlogLevel("warning", slog.LevelInfo))
	assert.Equal(t, slog.LevelError, parseSlogLevel(" error ", slog.LevelInfo))
	assert.Equal(t, slog.Level(-4), parseSlogLevel("-4", slog.LevelInfo))
	assert.Equal(t, slog.LevelInfo, parseSlogLevel("", slog.LevelInfo))
	assert.Equal(t, slog.LevelWarn, parseSlogLevel("sideways", slog.LevelWarn))
}
