// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package logging

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureStandardLogger(t *testing.T) *bytes.Buffer {
	buf := new(bytes.Buffer)
	std := logrus.StandardLogger()
	previousOut := std.Out
	std.SetOutput(buf)
	std.SetLevel(logrus.DebugLevel)
	t.Cleanup(func() { std.SetOutput(previousOut) })
	return buf
}

func TestSetupWithValidLogLevels(t *testing.T) {
	for _, level := range []string{"DEBUG", "INFO", "WARNING", "ERROR", "CRITICAL"} {
		t.Run(level, func(t *testing.T) {
			buf := captureStandardLogger(t)

			Setup(Config{Level: level, Fields: Fields{"request_id": "request id!", "another": "value"}})
			logrus.StandardLogger().Log(logrus.FatalLevel, "This is a test")

			entry := parseSingleLine(t, buf)
			assert.NotEmpty(t, entry["timestamp"])
			assert.Equal(t, "CRITICAL", entry["level"])
			assert.NotEmpty(t, entry["filename"])
			assert.Equal(t, "This is a test", entry["message"])
			assert.Equal(t, "request id!", entry["request_id"])
			assert.Equal(t, "value", entry["another"])
		})
	}
}

func TestSetupWithInvalidLogLevel(t *testing.T) {
	buf := captureStandardLogger(t)

	Setup(Config{Level: "not a valid log level", Fields: Fields{"request_id": "abc"}})

	entry := parseSingleLine(t, buf)
	assert.NotEmpty(t, entry["timestamp"])
	assert.Equal(t, "ERROR", entry["level"])
	assert.NotEmpty(t, entry["filename"])
	assert.Contains(t, entry["message"], "Invalid log level")
	assert.Equal(t, "abc", entry["request_id"])

	assert.Equal(t, logrus.InfoLevel, logrus.StandardLogger().GetLevel())
}

func TestSetupReturnsLiveFormatterHandle(t *testing.T) {
	buf := captureStandardLogger(t)

	formatter := Setup(Config{Level: "INFO"})
	formatter.AddFields(Fields{"user": "42"})
	logrus.Info("hello")

	entry := parseSingleLine(t, buf)
	assert.Equal(t, "hello", entry["message"])
	assert.Equal(t, "42", entry["user"])
}

func TestSetupLocationPreset(t *testing.T) {
	buf := captureStandardLogger(t)

	Setup(Config{Level: "INFO", Base: LocationFields()})
	logrus.Info("compact")

	entry := parseSingleLine(t, buf)
	assert.Contains(t, entry["location"], "setup_test.go:")
	assert.NotContains(t, entry, "funcName")
}

func TestSetupDependencyLevel(t *testing.T) {
	buf := captureStandardLogger(t)

	Setup(Config{Level: "DEBUG", DependencyLevel: "ERROR"})

	dependency := DependencyLogger("aws")
	assert.Equal(t, logrus.ErrorLevel, dependency.GetLevel())

	dependency.Warn("noisy dependency chatter")
	assert.Empty(t, buf.String())

	dependency.Error("dependency failure")
	entry := parseSingleLine(t, buf)
	assert.Equal(t, "ERROR", entry["level"])
	assert.Equal(t, "dependency failure", entry["message"])
}

func TestSetupDependencyLevelDefaultsToPrimary(t *testing.T) {
	captureStandardLogger(t)

	Setup(Config{Level: "WARNING"})

	assert.Equal(t, logrus.WarnLevel, DependencyLogger("aws").GetLevel())
	assert.Equal(t, logrus.WarnLevel, DependencyLogger("aws-sdk-go").GetLevel())
}

func TestSetupInvalidDependencyLevelKeepsPrimary(t *testing.T) {
	buf := captureStandardLogger(t)

	Setup(Config{Level: "ERROR", DependencyLevel: "bogus"})

	assert.Equal(t, logrus.ErrorLevel, DependencyLogger("aws").GetLevel())
	assert.Contains(t, buf.String(), "Invalid log level")
}

func TestWithErrorRendersException(t *testing.T) {
	buf := captureStandardLogger(t)

	Setup(Config{Level: "DEBUG"})
	WithError(errors.New("boom")).Error("request failed")

	entry := parseSingleLine(t, buf)
	assert.Equal(t, "request failed", entry["message"])

	exception, ok := entry["exception"].(string)
	require.True(t, ok, "exception field missing")
	assert.Contains(t, exception, "boom")
	assert.Contains(t, exception, "goroutine")
	assert.NotContains(t, entry, "error")
	assert.NotContains(t, entry, "@stack")
}

func TestSetupOutputLines(t *testing.T) {
	buf := captureStandardLogger(t)

	Setup(Config{Level: "DEBUG"})
	logrus.Debug("one")
	logrus.Info("two")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	for _, line := range lines {
		parseLogLine(t, line)
	}
}
