// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/xmidt-org/sysvsem/semaphore"
	"github.com/xmidt-org/sysvsem/xmetrics"
	"go.uber.org/zap"
)

const (
	metricsPath     = "/metrics"
	shutdownTimeout = 5 * time.Second
)

// newRegistry creates the metrics registry for this process, predefining the semaphore metrics
func newRegistry(c *Config) (xmetrics.Registry, error) {
	o := c.Metrics
	o.AddModules(semaphore.Metrics)
	return xmetrics.NewRegistry(&o)
}

// serveMetrics exposes the registry over HTTP.  The returned address is the one actually bound,
// which differs from the configured address when the port is 0.
func serveMetrics(address string, registry xmetrics.Registry, logger *zap.Logger) (net.Addr, func(), error) {
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return nil, nil, err
	}

	errorLog := zap.NewStdLog(logger)
	router := mux.NewRouter()
	router.Handle(
		metricsPath,
		promhttp.HandlerFor(registry, promhttp.HandlerOpts{ErrorLog: errorLog}),
	).Methods(http.MethodGet)

	server := &http.Server{
		Handler:           router,
		ErrorLog:          errorLog,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("serving metrics", zap.Stringer("address", listener.Addr()), zap.String("path", metricsPath))
	go func() {
		if err := server.Serve(listener); !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server exited", zap.Error(err))
		}
	}()

	return listener.Addr(), func() {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		server.Shutdown(ctx) // nolint: errcheck
	}, nil
}
