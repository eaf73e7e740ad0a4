// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package logging

import (
	"runtime/debug"

	"github.com/sirupsen/logrus"
)

// Config is the Setup input. The zero value configures DEBUG level with the
// default field template.
type Config struct {
	// Level is the minimum severity level name. Invalid names fall back to
	// INFO after logging a local error line; Setup never fails the caller.
	Level string

	// DependencyLevel is the minimum severity for dependency loggers, used to
	// quiet noisy third-party logging. Defaults to Level.
	DependencyLevel string

	// Base replaces the DefaultFields template when set, e.g. LocationFields().
	Base Fields

	// Fields is merged over the base template.
	Fields Fields

	TimestampFormat string
	JSONDefault     func(v interface{}) interface{}
}

// dependencyLoggers are named loggers handed to chatty dependencies so their
// minimum severity can be raised independently of the application's.
var dependencyLoggers = map[string]*logrus.Logger{}

func init() {
	for _, name := range []string{"aws", "aws-sdk-go"} {
		DependencyLogger(name)
	}
}

// Setup installs a new JSONFormatter on the standard logrus logger and on
// every dependency logger, enables caller reporting, and applies the severity
// levels. It returns the formatter so callers can extend the field template
// later via AddFields.
func Setup(cfg Config) *JSONFormatter {
	base := cfg.Base
	if base == nil {
		base = DefaultFields()
	}

	formatter := NewJSONFormatter(base)
	formatter.AddFields(cfg.Fields)
	formatter.TimestampFormat = cfg.TimestampFormat
	formatter.JSONDefault = cfg.JSONDefault

	std := logrus.StandardLogger()
	std.SetFormatter(formatter)
	std.SetReportCaller(true)

	level := logrus.DebugLevel
	if cfg.Level != "" {
		parsed, err := ParseLevel(cfg.Level)
		if err != nil {
			std.Errorf("Invalid log level: %s", cfg.Level)
			parsed = logrus.InfoLevel
		}
		level = parsed
	}
	std.SetLevel(level)

	dependencyLevel := level
	if cfg.DependencyLevel != "" {
		if parsed, err := ParseLevel(cfg.DependencyLevel); err != nil {
			std.Errorf("Invalid log level: %s", cfg.DependencyLevel)
		} else {
			dependencyLevel = parsed
		}
	}

	for _, logger := range dependencyLoggers {
		logger.SetFormatter(formatter)
		logger.SetOutput(std.Out)
		logger.SetLevel(dependencyLevel)
	}

	return formatter
}

// DependencyLogger returns the named dependency logger, creating it on first
// use. Levels and formatter are applied by Setup; "aws" and "aws-sdk-go" are
// pre-registered.
func DependencyLogger(name string) *logrus.Logger {
	if logger, ok := dependencyLoggers[name]; ok {
		return logger
	}
	logger := logrus.New()
	logger.SetOutput(logrus.StandardLogger().Out)
	dependencyLoggers[name] = logger
	return logger
}

// WithError returns an entry on the standard logger carrying err together with
// the call-site stack, so the rendered exception field reads as a traceback.
func WithError(err error) *logrus.Entry {
	return logrus.StandardLogger().
		WithField(stackKey, string(debug.Stack())).
		WithError(err)
}
