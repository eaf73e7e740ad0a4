// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"io/ioutil"
	"net/http"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/go-chi/render"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type errorResponse struct {
	ErrorMessage string `json:"errorMessage"`
	ErrorType    string `json:"errorType"`
}

// InvokeHandler drives one invocation of the wrapped handler: it synthesizes a
// Lambda context with a fresh request id, passes the request body through as
// the event payload, and writes the handler's response back.
func InvokeHandler(w http.ResponseWriter, r *http.Request, handler lambda.Handler) {
	log.Debugf("invoke: -> %s %s", r.Method, r.URL)

	payload, err := ioutil.ReadAll(r.Body)
	if err != nil {
		log.WithError(err).Error("Failed to read invoke body")
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, &errorResponse{ErrorMessage: err.Error(), ErrorType: "InvalidRequest"})
		return
	}

	lc := &lambdacontext.LambdaContext{AwsRequestID: uuid.New().String()}
	ctx := lambdacontext.NewContext(r.Context(), lc)

	response, err := handler.Invoke(ctx, payload)
	if err != nil {
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, &errorResponse{ErrorMessage: err.Error(), ErrorType: "Function.Error"})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if _, err := w.Write(response); err != nil {
		log.WithError(err).Error("Failed to write invoke response")
	}
}

func pingHandler(w http.ResponseWriter, r *http.Request) {
	if _, err := w.Write([]byte("pong")); err != nil {
		log.WithError(err).Error("Failed to write 'pong' response")
	}
}
