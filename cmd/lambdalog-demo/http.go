// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/go-chi/chi"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const invocationsEndpoint = "/2015-03-31/functions/function/invocations"

func startHTTPServer(addr string, handler lambda.Handler) {
	router := chi.NewRouter()
	router.Get("/ping", pingHandler)
	router.Post(invocationsEndpoint, func(w http.ResponseWriter, r *http.Request) {
		InvokeHandler(w, r, handler)
	})

	srv := &http.Server{Addr: addr, Handler: router}

	group, ctx := errgroup.WithContext(context.Background())

	group.Go(func() error {
		log.Warnf("Listening on %s", addr)
		return srv.ListenAndServe()
	})

	group.Go(func() error {
		signals := make(chan os.Signal, 1)
		signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
		select {
		case sig := <-signals:
			log.Warnf("Received %v, shutting down", sig)
			return srv.Shutdown(context.Background())
		case <-ctx.Done():
			return nil
		}
	})

	if err := group.Wait(); err != nil && err != http.ErrServerClosed {
		log.Panic(err)
	}
}
