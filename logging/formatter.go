// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package logging

import (
	"encoding/json"
	"fmt"
	"path"
	"regexp"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// MessageKey is the reserved entry data key. A value attached under it is
// embedded verbatim as the rendered message instead of the message string.
const MessageKey = "message"

const (
	// exceptionKey is the output field for error information. It doubles as the
	// cache slot on the entry data map so the text is computed at most once per
	// record.
	exceptionKey = "exception"
	// stackKey carries the call-site stack captured by WithError. Never rendered
	// as its own field.
	stackKey = "@stack"
)

const defaultTimestampFormat = "2006-01-02T15:04:05.000Z07:00"

// Fields is the field template: output field name to either a literal value or
// a template string with %(attr)s placeholders resolved against the record.
// Recognized attributes: asctime, levelname, filename, funcName, lineno.
type Fields map[string]string

// DefaultFields is the standard template: separate filename, funcName and line
// source fields.
func DefaultFields() Fields {
	return Fields{
		"timestamp": "%(asctime)s",
		"level":     "%(levelname)s",
		"filename":  "%(filename)s",
		"funcName":  "%(funcName)s",
		"line":      "%(lineno)d",
	}
}

// LocationFields is the compact template: a single location field instead of
// the filename/funcName/line triple.
func LocationFields() Fields {
	return Fields{
		"timestamp": "%(asctime)s",
		"level":     "%(levelname)s",
		"location":  "%(filename)s:%(lineno)d",
	}
}

var placeholderRegexp = regexp.MustCompile(`%\((\w+)\)[sd]`)

// JSONFormatter renders logrus entries as single-line JSON objects according
// to its field template. Format never returns an error: non-JSON messages stay
// plain strings and unserializable values go through JSONDefault.
type JSONFormatter struct {
	// TimestampFormat overrides the default millisecond RFC 3339 layout.
	TimestampFormat string

	// JSONDefault converts values encoding/json cannot marshal. It must not
	// fail. Defaults to rendering the value with %v.
	JSONDefault func(v interface{}) interface{}

	fields Fields
}

// NewJSONFormatter returns a formatter using the given field template, or
// DefaultFields when nil.
func NewJSONFormatter(fields Fields) *JSONFormatter {
	if fields == nil {
		fields = DefaultFields()
	}
	f := &JSONFormatter{fields: Fields{}}
	f.AddFields(fields)
	return f
}

// AddFields merges new entries into the live field template. Subsequent Format
// calls pick them up. There is no removal operation.
func (f *JSONFormatter) AddFields(fields Fields) {
	for name, value := range fields {
		f.fields[name] = value
	}
}

// Format implements logrus.Formatter.
func (f *JSONFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	attrs := f.recordAttrs(entry)

	out := make(map[string]interface{}, len(f.fields)+len(entry.Data)+2)

	for key, value := range entry.Data {
		switch key {
		case logrus.ErrorKey, MessageKey, exceptionKey, stackKey:
			// reserved, handled below
		default:
			out[key] = f.safeValue(value)
		}
	}

	for name, template := range f.fields {
		if value := resolveTemplate(template, attrs); value != "" {
			out[name] = value
		}
	}

	out[MessageKey] = f.message(entry)

	if text := exceptionText(entry); text != "" {
		out[exceptionKey] = text
	}

	serialized, err := json.Marshal(out)
	if err != nil {
		// Values were sanitized above, so this only happens when a custom
		// JSONDefault returned something unserializable. Degrade to the bare
		// message rather than fail the log call.
		serialized, _ = json.Marshal(map[string]interface{}{
			MessageKey: fmt.Sprintf("%v", out[MessageKey]),
		})
	}

	return append(serialized, '\n'), nil
}

// message resolves the rendered message once per Format call: a structured
// payload is used as-is, a string that is already JSON is embedded as the
// parsed value, anything else stays a plain string.
func (f *JSONFormatter) message(entry *logrus.Entry) interface{} {
	if payload, ok := entry.Data[MessageKey]; ok {
		return f.safeValue(payload)
	}
	if json.Valid([]byte(entry.Message)) {
		return json.RawMessage(entry.Message)
	}
	return entry.Message
}

func (f *JSONFormatter) recordAttrs(entry *logrus.Entry) map[string]string {
	layout := f.TimestampFormat
	if layout == "" {
		layout = defaultTimestampFormat
	}

	attrs := map[string]string{
		"asctime":   entry.Time.Format(layout),
		"levelname": LevelName(entry.Level),
	}

	if entry.HasCaller() {
		attrs["filename"] = path.Base(entry.Caller.File)
		attrs["funcName"] = shortFunction(entry.Caller.Function)
		attrs["lineno"] = strconv.Itoa(entry.Caller.Line)
	}

	return attrs
}

// safeValue returns value when encoding/json can marshal it, otherwise the
// JSONDefault rendition. Errors marshal as empty objects, so they are rendered
// through Error() instead.
func (f *JSONFormatter) safeValue(value interface{}) interface{} {
	if err, ok := value.(error); ok {
		return err.Error()
	}
	if _, err := json.Marshal(value); err == nil {
		return value
	}
	if f.JSONDefault != nil {
		return f.JSONDefault(value)
	}
	return fmt.Sprintf("%v", value)
}

// resolveTemplate substitutes %(attr)s placeholders from attrs. A template
// whose placeholders all resolve empty yields "", which drops the field.
// Literals without placeholders pass through unchanged.
func resolveTemplate(template string, attrs map[string]string) string {
	if !strings.Contains(template, "%(") {
		return template
	}

	resolvedAny := false
	result := placeholderRegexp.ReplaceAllStringFunc(template, func(match string) string {
		attr := placeholderRegexp.FindStringSubmatch(match)[1]
		if attrs[attr] != "" {
			resolvedAny = true
		}
		return attrs[attr]
	})

	if !resolvedAny {
		return ""
	}
	return result
}

// exceptionText renders the error attached to the entry, caching the result on
// the entry data map so formatting the same record twice yields identical text.
func exceptionText(entry *logrus.Entry) string {
	errValue, ok := entry.Data[logrus.ErrorKey]
	if !ok {
		return ""
	}

	if cached, ok := entry.Data[exceptionKey].(string); ok {
		return cached
	}

	var text string
	switch v := errValue.(type) {
	case error:
		text = fmt.Sprintf("%+v", v)
	default:
		text = fmt.Sprintf("%v", v)
	}

	if stack, ok := entry.Data[stackKey].(string); ok && stack != "" {
		text += "\n" + stack
	}

	entry.Data[exceptionKey] = text
	return text
}

func shortFunction(function string) string {
	if idx := strings.LastIndex(function, "/"); idx >= 0 {
		return function[idx+1:]
	}
	return function
}
