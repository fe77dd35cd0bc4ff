// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package xmetrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const (
	DefaultNamespace = "sysvsem"
	DefaultSubsystem = ""
)

// Options is the configurable options for creating a Prometheus registry
type Options struct {
	// Namespace is the global default namespace for metrics which don't define a namespace (or for ad hoc metrics).
	// If not supplied, DefaultNamespace is used.
	Namespace string `json:"namespace"`

	// Subsystem is the global default subsystem for metrics which don't define a subsystem (or for ad hoc metrics).
	Subsystem string `json:"subsystem"`

	// Pedantic indicates whether the registry is created via NewPedanticRegistry().  Set
	// to true for testing or development.
	Pedantic bool `json:"pedantic"`

	// DisableGoCollector controls whether the Go Collector is registered with the Registry.  By default this is false,
	// meaning that a GoCollector is registered.
	DisableGoCollector bool `json:"disableGoCollector"`

	// DisableProcessCollector controls whether the Process Collector is registered with the Registry.  By default this is false,
	// meaning that a ProcessCollector is registered.
	DisableProcessCollector bool `json:"disableProcessCollector"`

	// Metrics defines the set of predefined metrics.  These metrics will be defined immediately by a Registry
	// created using this Options instance.  Duplicate names cause an error.
	Metrics []Metric `json:"-"`
}

func (o *Options) namespace() string {
	if o != nil && len(o.Namespace) > 0 {
		return o.Namespace
	}

	return DefaultNamespace
}

func (o *Options) subsystem() string {
	if o != nil && len(o.Subsystem) > 0 {
		return o.Subsystem
	}

	return DefaultSubsystem
}

func (o *Options) pedantic() bool {
	return o != nil && o.Pedantic
}

func (o *Options) disableGoCollector() bool {
	return o != nil && o.DisableGoCollector
}

func (o *Options) disableProcessCollector() bool {
	return o != nil && o.DisableProcessCollector
}

func (o *Options) metrics() []Metric {
	if o != nil {
		return o.Metrics
	}

	return nil
}

func (o *Options) registry() *prometheus.Registry {
	var pr *prometheus.Registry

	if o.pedantic() {
		pr = prometheus.NewPedanticRegistry()
	} else {
		pr = prometheus.NewRegistry()
	}

	if !o.disableGoCollector() {
		pr.MustRegister(collectors.NewGoCollector())
	}

	if !o.disableProcessCollector() {
		pr.MustRegister(collectors.NewProcessCollector(
			collectors.ProcessCollectorOpts{
				Namespace: o.namespace(),
			},
		))
	}

	return pr
}

// AddModules returns a copy of these options with the metrics of each module appended.
func (o *Options) AddModules(m ...Module) *Options {
	clone := new(Options)
	if o != nil {
		*clone = *o
		clone.Metrics = append([]Metric(nil), o.Metrics...)
	}

	for _, f := range m {
		clone.Metrics = append(clone.Metrics, f()...)
	}

	return clone
}
