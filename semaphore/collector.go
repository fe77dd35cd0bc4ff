// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package semaphore

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// KeyLabel is the label carrying the semaphore key on collected metrics.
const KeyLabel = "key"

// Statter is the behavior the Collector needs from a watched semaphore.  *Semaphore implements it.
type Statter interface {
	Key() Key
	Stat() (Stat, error)
}

// Collector is a prometheus.Collector that reports the kernel-side state of watched semaphores at
// scrape time.  Semaphores that fail to stat, e.g. because they were destroyed, are skipped.
type Collector struct {
	value    *prometheus.Desc
	capacity *prometheus.Desc
	waiting  *prometheus.Desc

	lock    sync.RWMutex
	watched map[Key]Statter
}

var _ prometheus.Collector = (*Collector)(nil)

// NewCollector creates an empty Collector with the given metric namespace and subsystem.
func NewCollector(namespace, subsystem string) *Collector {
	return &Collector{
		value: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, subsystem, "semaphore_value"),
			"The number of units currently available",
			[]string{KeyLabel}, nil,
		),
		capacity: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, subsystem, "semaphore_capacity"),
			"The largest value the semaphore may reach",
			[]string{KeyLabel}, nil,
		),
		waiting: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, subsystem, "semaphore_waiting"),
			"The number of blocked acquirers",
			[]string{KeyLabel}, nil,
		),
		watched: make(map[Key]Statter),
	}
}

// Watch adds a semaphore to the set reported by this collector, replacing any other
// semaphore with the same key.
func (c *Collector) Watch(s Statter) {
	c.lock.Lock()
	c.watched[s.Key()] = s
	c.lock.Unlock()
}

// Unwatch stops reporting the semaphore with the given key.
func (c *Collector) Unwatch(k Key) {
	c.lock.Lock()
	delete(c.watched, k)
	c.lock.Unlock()
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.value
	ch <- c.capacity
	ch <- c.waiting
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.lock.RLock()
	defer c.lock.RUnlock()

	for k, s := range c.watched {
		st, err := s.Stat()
		if err != nil {
			continue
		}

		label := k.String()
		ch <- prometheus.MustNewConstMetric(c.value, prometheus.GaugeValue, float64(st.Value), label)
		ch <- prometheus.MustNewConstMetric(c.capacity, prometheus.GaugeValue, float64(st.Capacity), label)
		ch <- prometheus.MustNewConstMetric(c.waiting, prometheus.GaugeValue, float64(st.Waiting), label)
	}
}
