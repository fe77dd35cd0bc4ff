// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package xmetrics

import (
	"fmt"
	"sync"

	"github.com/go-kit/kit/metrics"
	gokitprometheus "github.com/go-kit/kit/metrics/prometheus"
	"github.com/go-kit/kit/metrics/provider"
	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusProvider is a Prometheus-specific version of go-kit's metrics.Provider.  Use this interface
// when interacting directly with Prometheus.
type PrometheusProvider interface {
	NewCounterVec(string) *prometheus.CounterVec
	NewGaugeVec(string) *prometheus.GaugeVec
	NewHistogramVec(string) *prometheus.HistogramVec
}

// Registry is the core abstraction for this package.  It is a Prometheus registry and a go-kit metrics.Provider all in one.
//
// The Provider implementation works slightly differently than the go-kit implementation.  For any metric that is already defined
// the provider returns a new go-kit wrapper for that metric.  Additionally, new metrics (including ad hoc metrics) are cached
// and returned by subsequent calls to the Provider methods.
type Registry interface {
	PrometheusProvider
	provider.Provider
	prometheus.Gatherer
	prometheus.Registerer
}

// registry is the internal Registry implementation
type registry struct {
	*prometheus.Registry

	namespace string
	subsystem string

	lock  sync.Mutex
	cache map[string]prometheus.Collector
}

// vec returns the cached collector with the given name, creating and registering an ad hoc
// collector of type t if none exists.
func (r *registry) vec(name, t string) prometheus.Collector {
	r.lock.Lock()
	defer r.lock.Unlock()

	if existing, ok := r.cache[name]; ok {
		return existing
	}

	c, err := NewCollector(Metric{Name: name, Type: t}, r.namespace, r.subsystem)
	if err != nil {
		panic(err)
	}

	if err := r.Registry.Register(c); err != nil {
		if already, ok := err.(prometheus.AlreadyRegisteredError); ok {
			c = already.ExistingCollector
		} else {
			panic(err)
		}
	}

	r.cache[name] = c
	return c
}

func (r *registry) NewCounterVec(name string) *prometheus.CounterVec {
	if counterVec, ok := r.vec(name, CounterType).(*prometheus.CounterVec); ok {
		return counterVec
	}

	panic(fmt.Errorf("The metric %s is not a counter", name))
}

func (r *registry) NewCounter(name string) metrics.Counter {
	return gokitprometheus.NewCounter(r.NewCounterVec(name))
}

func (r *registry) NewGaugeVec(name string) *prometheus.GaugeVec {
	if gaugeVec, ok := r.vec(name, GaugeType).(*prometheus.GaugeVec); ok {
		return gaugeVec
	}

	panic(fmt.Errorf("The metric %s is not a gauge", name))
}

func (r *registry) NewGauge(name string) metrics.Gauge {
	return gokitprometheus.NewGauge(r.NewGaugeVec(name))
}

func (r *registry) NewHistogramVec(name string) *prometheus.HistogramVec {
	if histogramVec, ok := r.vec(name, HistogramType).(*prometheus.HistogramVec); ok {
		return histogramVec
	}

	panic(fmt.Errorf("The metric %s is not a histogram", name))
}

// NewHistogram will return a Histogram for either a Summary or Histogram.  This is different
// behavior from metrics.Provider.
func (r *registry) NewHistogram(name string, _ int) metrics.Histogram {
	switch vec := r.vec(name, HistogramType).(type) {
	case *prometheus.HistogramVec:
		return gokitprometheus.NewHistogram(vec)
	case *prometheus.SummaryVec:
		return gokitprometheus.NewSummary(vec)
	default:
		panic(fmt.Errorf("The metric %s is not a histogram or summary", name))
	}
}

func (r *registry) Stop() {
}

// NewRegistry creates a Registry, preregistering the metrics in the given options.  A nil Options
// uses all defaults.
func NewRegistry(o *Options) (Registry, error) {
	r := &registry{
		Registry:  o.registry(),
		namespace: o.namespace(),
		subsystem: o.subsystem(),
		cache:     make(map[string]prometheus.Collector),
	}

	for _, m := range o.metrics() {
		if _, ok := r.cache[m.Name]; ok {
			return nil, fmt.Errorf("Duplicate metric %s", m.Name)
		}

		c, err := NewCollector(m, r.namespace, r.subsystem)
		if err != nil {
			return nil, err
		}

		if err := r.Registry.Register(c); err != nil {
			return nil, fmt.Errorf("Error while preregistering metric %s: %s", m.Name, err)
		}

		r.cache[m.Name] = c
	}

	return r, nil
}
