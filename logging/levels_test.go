// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package logging

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name     string
		expected logrus.Level
	}{
		{"DEBUG", logrus.DebugLevel},
		{"INFO", logrus.InfoLevel},
		{"WARNING", logrus.WarnLevel},
		{"WARN", logrus.WarnLevel},
		{"ERROR", logrus.ErrorLevel},
		{"CRITICAL", logrus.FatalLevel},
		{"critical", logrus.FatalLevel},
		{"info", logrus.InfoLevel},
	}

	for _, test := range tests {
		level, err := ParseLevel(test.name)
		assert.NoError(t, err, test.name)
		assert.Equal(t, test.expected, level, test.name)
	}
}

func TestParseLevelInvalid(t *testing.T) {
	_, err := ParseLevel("not a valid log level")
	assert.Error(t, err)
}

func TestLevelName(t *testing.T) {
	assert.Equal(t, "DEBUG", LevelName(logrus.DebugLevel))
	assert.Equal(t, "INFO", LevelName(logrus.InfoLevel))
	assert.Equal(t, "WARNING", LevelName(logrus.WarnLevel))
	assert.Equal(t, "ERROR", LevelName(logrus.ErrorLevel))
	assert.Equal(t, "CRITICAL", LevelName(logrus.FatalLevel))
	assert.Equal(t, "CRITICAL", LevelName(logrus.PanicLevel))
	assert.Equal(t, "TRACE", LevelName(logrus.TraceLevel))
}
