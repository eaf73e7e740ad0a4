// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

/*

Package logging renders log records as single-line JSON documents enriched with
request-scoped metadata, for use inside Lambda function invocations.

Setup installs a JSONFormatter on the standard logrus logger and returns it:

	formatter := logging.Setup(logging.Config{
		Level:  "INFO",
		Fields: logging.Fields{"aws_request_id": requestID},
	})
	formatter.AddFields(logging.Fields{"user": "42"})

Every line written afterwards is a JSON object carrying at least timestamp, level,
a source location and the message. Messages that are already JSON are embedded as
parsed values rather than escaped strings, and a structured payload attached under
the "message" data key is embedded verbatim.

The field template held by the formatter is not synchronized. Calling AddFields
while another goroutine is logging through the same formatter is unsafe; callers
needing that must serialize access themselves. Lambda invocations are processed
one at a time, so the usual setup-then-log flow needs no locking.

*/
package logging
