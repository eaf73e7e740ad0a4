// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// lambdalog-demo runs a sample Lambda handler behind a local invoke endpoint
// so the JSON log output can be inspected without deploying a function.
package main

import (
	"context"
	"encoding/json"
	"os"

	"github.com/jessevdk/go-flags"
	log "github.com/sirupsen/logrus"

	"go.amzn.com/lambdalog/middleware"
)

type options struct {
	LogLevel string `long:"log-level" default:"debug" description:"log level"`
	Addr     string `long:"addr" default:"127.0.0.1:8080" description:"listen address"`
}

func main() {
	opts := getCLIArgs()

	// The wrapper reads levels from the environment on every invocation.
	if err := os.Setenv("log_level", opts.LogLevel); err != nil {
		log.WithError(err).Fatal("Failed to set log level")
	}

	startHTTPServer(opts.Addr, middleware.WrapFunc(echoHandler))
}

func getCLIArgs() options {
	var opts options
	parser := flags.NewParser(&opts, flags.IgnoreUnknown)
	if _, err := parser.ParseArgs(os.Args); err != nil {
		log.WithError(err).Fatal("Failed to parse command line arguments:", os.Args)
	}
	return opts
}

// echoHandler logs the invocation and echoes the payload back.
func echoHandler(ctx context.Context, event json.RawMessage) (json.RawMessage, error) {
	log.WithField("bytes", len(event)).Info("handling invocation")
	if len(event) == 0 {
		return json.RawMessage(`{}`), nil
	}
	return event, nil
}
