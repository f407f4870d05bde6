package logging

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLevel(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, GetLevel("debug"))
	assert.Equal(t, logrus.InfoLevel, GetLevel("INFO"))
	assert.Equal(t, logrus.WarnLevel, GetLevel("warn"))
	assert.Equal(t, logrus.WarnLevel, GetLevel(" warning "))
	assert.Equal(t, logrus.TraceLevel, GetLevel("nonsense"))
	assert.Equal(t, logrus.TraceLevel, GetLevel(""))
}

func TestSetup_LogFileAndStdout(t *testing.T) {
	defer logrus.SetOutput(os.Stderr)
	defer logrus.SetLevel(logrus.InfoLevel)

	logFile := filepath.Join(t.TempDir(), "service.log")
	Setup(LoggerSetupParams{
		LogFileName: logFile,
		LogToStdout: true,
		LogLevel:    "info",
		MaxSizeMB:   1,
	})

	logrus.Infoln("to both outputs")
	content, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(content), "to both outputs")
}

func TestSetup_LogFile(t *testing.T) {
	defer logrus.SetOutput(os.Stderr)
	defer logrus.SetLevel(logrus.InfoLevel)

	logFile := filepath.Join(t.TempDir(), "service")
	Setup(LoggerSetupParams{
		LogFileName: logFile,
		LogLevel:    "debug",
	})
	assert.Equal(t, logrus.DebugLevel, logrus.GetLevel())

	logrus.Debugln("hello from the test")
	content, err := os.ReadFile(logFile + ".log")
	require.NoError(t, err)
	assert.Contains(t, string(content), "hello from the test")
}

func TestSentryHook_FireWithoutClient(t *testing.T) {
	hook := NewSentryHook([]logrus.Level{logrus.ErrorLevel})
	assert.Equal(t, []logrus.Level{logrus.ErrorLevel}, hook.Levels())

	entry := logrus.WithField(logrus.ErrorKey, errors.New("boom")).WithField("user", "u1")
	entry.Level = logrus.ErrorLevel
	entry.Message = "failed"
	assert.NoError(t, hook.Fire(entry))
}
