package utils

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestInitLoggerWithOutput(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	var buf bytes.Buffer
	InitLoggerWithOutput("hostel-console", &buf)
	t.Cleanup(func() { InitLoggerWithOutput("hostel-console", &bytes.Buffer{}) })

	Logger.Debug("restoring session")
	assert.Contains(t, buf.String(), "[hostel-console] restoring session")
	assert.Equal(t, logrus.DebugLevel, Logger.GetLevel())

	// Re-initialising must not stack a second prefix hook.
	buf.Reset()
	InitLoggerWithOutput("hostel-console", &buf)
	Logger.Info("again")
	assert.Contains(t, buf.String(), "msg=\"[hostel-console] again\"")
}

func TestInitLoggerBadLevelFallsBackToInfo(t *testing.T) {
	t.Setenv("LOG_LEVEL", "chatty")
	var buf bytes.Buffer
	InitLoggerWithOutput("hostel-console", &buf)
	t.Cleanup(func() { InitLoggerWithOutput("hostel-console", &bytes.Buffer{}) })

	assert.Equal(t, logrus.InfoLevel, Logger.GetLevel())
	assert.Contains(t, buf.String(), "Invalid LOG_LEVEL 'chatty'")
}
