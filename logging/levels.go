// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package logging

import (
	"strings"

	"github.com/sirupsen/logrus"
)

// ParseLevel parses a severity level name. On top of the names logrus accepts
// it recognizes CRITICAL, which maps to logrus.FatalLevel.
func ParseLevel(name string) (logrus.Level, error) {
	if strings.EqualFold(name, "critical") {
		return logrus.FatalLevel, nil
	}
	return logrus.ParseLevel(name)
}

// LevelName renders a logrus level the way it appears in the JSON output.
// Fatal and Panic both render as CRITICAL.
func LevelName(level logrus.Level) string {
	switch level {
	case logrus.TraceLevel:
		return "TRACE"
	case logrus.DebugLevel:
		return "DEBUG"
	case logrus.InfoLevel:
		return "INFO"
	case logrus.WarnLevel:
		return "WARNING"
	case logrus.ErrorLevel:
		return "ERROR"
	case logrus.FatalLevel, logrus.PanicLevel:
		return "CRITICAL"
	}
	return strings.ToUpper(level.String())
}
