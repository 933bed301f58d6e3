package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wahid1099/generate-qa/config"
)

func TestNew_WritesToLogDir(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{LogLevel: "debug", LogDir: dir}

	log, err := New(cfg)
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, log.Formatter)

	log.WithField("component", "test").Info("hello")

	data, err := os.ReadFile(filepath.Join(dir, "app.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello"`)
	assert.Contains(t, string(data), `"component":"test"`)
}

func TestNew_DebugUsesTextFormatter(t *testing.T) {
	log, err := New(&config.Config{LogLevel: "info", Debug: true})
	require.NoError(t, err)
	assert.IsType(t, &logrus.TextFormatter{}, log.Formatter)
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New(&config.Config{LogLevel: "chatty"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
}
