// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package semaphore

import (
	"github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/metrics/provider"
	"github.com/xmidt-org/sysvsem/xmetrics"
)

// Names for our metrics
const (
	ResourcesMetric     = "semaphore_resources"
	AcquireErrorsMetric = "semaphore_acquire_errors"
	AcquireWaitMetric   = "semaphore_acquire_wait_seconds"
)

// Metrics returns the metrics this package produces, suitable for preregistration with
// xmetrics.NewRegistry.
func Metrics() []xmetrics.Metric {
	return []xmetrics.Metric{
		{
			Name: ResourcesMetric,
			Type: xmetrics.GaugeType,
			Help: "The number of semaphore units held through this process",
		},
		{
			Name: AcquireErrorsMetric,
			Type: xmetrics.CounterType,
			Help: "The number of acquire calls that failed",
		},
		{
			Name:    AcquireWaitMetric,
			Type:    xmetrics.HistogramType,
			Help:    "Time spent in acquire calls",
			Buckets: []float64{0.0001, 0.001, 0.01, 0.1, 0.5, 1, 5, 30, 120},
		},
	}
}

// Measures is the set of instruments for a semaphore.
type Measures struct {
	Resources     metrics.Gauge
	AcquireErrors metrics.Counter
	AcquireWait   metrics.Histogram
}

// NewMeasures builds the package metrics from a go-kit provider, typically an xmetrics.Registry.
func NewMeasures(p provider.Provider) *Measures {
	return &Measures{
		Resources:     p.NewGauge(ResourcesMetric),
		AcquireErrors: p.NewCounter(AcquireErrorsMetric),
		AcquireWait:   p.NewHistogram(AcquireWaitMetric, 0),
	}
}

// InstrumentOptions converts these measures into options for Instrument.
func (m *Measures) InstrumentOptions() []InstrumentOption {
	return []InstrumentOption{
		WithResources(m.Resources),
		WithErrors(m.AcquireErrors),
		WithWaitDuration(m.AcquireWait),
	}
}
