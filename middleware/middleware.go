// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package middleware wraps Lambda handlers so every log line emitted during an
// invocation carries request-scoped metadata.
package middleware

import (
	"context"
	"encoding/json"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/google/uuid"

	"go.amzn.com/lambdalog/logging"
)

const (
	logLevelEnv        = "log_level"
	dependencyLevelEnv = "boto_level"

	defaultLogLevel        = "DEBUG"
	defaultDependencyLevel = "WARN"
)

type loggingHandler struct {
	next lambda.Handler
}

// WrapHandler returns a handler that configures JSON logging before each
// invocation and then delegates to next. Severity levels come from the
// log_level and boto_level environment variables.
func WrapHandler(next lambda.Handler) lambda.Handler {
	return &loggingHandler{next: next}
}

// WrapFunc is WrapHandler for plain handler functions, accepting any signature
// lambda.NewHandler does.
func WrapFunc(handlerFunc interface{}) lambda.Handler {
	return WrapHandler(lambda.NewHandler(handlerFunc))
}

func (h *loggingHandler) Invoke(ctx context.Context, payload []byte) ([]byte, error) {
	fields := logging.Fields{
		"function_name":    lambdacontext.FunctionName,
		"function_version": lambdacontext.FunctionVersion,
	}

	requestID := requestIDFromPayload(payload)
	if lc, ok := lambdacontext.FromContext(ctx); ok {
		if requestID == "" {
			requestID = lc.AwsRequestID
		}
		fields["invoked_function_arn"] = lc.InvokedFunctionArn
	}
	if requestID == "" {
		requestID = uuid.New().String()
	}
	fields["aws_request_id"] = requestID

	logging.Setup(logging.Config{
		Level:           getenvWithDefault(logLevelEnv, defaultLogLevel),
		DependencyLevel: getenvWithDefault(dependencyLevelEnv, defaultDependencyLevel),
		Fields:          fields,
	})

	return h.next.Invoke(ctx, payload)
}

// requestIDFromPayload probes the payload for an API Gateway request context.
// Payloads of other shapes simply yield no request id.
func requestIDFromPayload(payload []byte) string {
	var event events.APIGatewayProxyRequest
	if err := json.Unmarshal(payload, &event); err != nil {
		return ""
	}
	return event.RequestContext.RequestID
}

func getenvWithDefault(key string, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
