// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"errors"
	"fmt"
	"strconv"
	"syscall"
	"time"

	"github.com/xmidt-org/sysvsem/semaphore"
	"github.com/xmidt-org/sysvsem/xmetrics"
	"go.uber.org/zap"
)

// watch reports the semaphore's state every interval, and again after an ignored signal, until SIGINT,
// SIGTERM, the semaphore's removal, or, when a count is given, that many reports.  With --metrics-addr the same state is exported as
// prometheus gauges.
func watch(r *runner, args []string) int {
	limit := 0
	if len(args) > 0 {
		var err error
		if limit, err = strconv.Atoi(args[0]); err != nil || limit < 1 || len(args) > 1 {
			fmt.Fprintf(r.env.stderr, "Invalid count: %v\n", args)
			return exitUsage
		}
	}

	s, err := r.open(0)
	if err != nil {
		return r.fail("Unable to open semaphore", err)
	}

	if len(r.config.MetricsAddress) > 0 {
		registry, err := newRegistry(r.config)
		if err != nil {
			return r.fail("Unable to create metrics", err)
		}

		namespace := r.config.Metrics.Namespace
		if len(namespace) == 0 {
			namespace = xmetrics.DefaultNamespace
		}

		collector := semaphore.NewCollector(namespace, r.config.Metrics.Subsystem)
		collector.Watch(s)
		if err := registry.Register(collector); err != nil {
			return r.fail("Unable to register collector", err)
		}

		_, shutdown, err := serveMetrics(r.config.MetricsAddress, registry, r.logger)
		if err != nil {
			return r.fail("Unable to serve metrics", err)
		}

		defer shutdown()
	}

	ticker := time.NewTicker(r.config.Interval)
	defer ticker.Stop()

	for reports := 0; ; {
		st, err := newStatus(s, r.config.Semaphore.Mutex)
		switch {
		case errors.Is(err, semaphore.ErrNotFound):
			return r.fail("Semaphore removed", err)

		case err != nil:
			return r.fail("Unable to report status", err)
		}

		if err := writeStatus(r.env.stdout, r.config.Format, st); err != nil {
			return r.fail("Unable to report status", err)
		}

		reports++
		if limit > 0 && reports >= limit {
			return exitOK
		}

		select {
		case <-ticker.C:

		case sig, ok := <-r.env.signals:
			if !ok || sig == syscall.SIGINT || sig == syscall.SIGTERM {
				r.logger.Info("stopping", zap.Any("signal", sig))
				return exitOK
			}

			r.logger.Info("ignoring signal", zap.Stringer("signal", sig))
		}
	}
}
