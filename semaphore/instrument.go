// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package semaphore

import (
	"context"
	"time"

	"github.com/go-kit/kit/metrics/discard"
	"github.com/xmidt-org/sysvsem/xmetrics"
)

// InstrumentOption represents a configurable option for instrumenting a semaphore
type InstrumentOption func(*instrumentedSemaphore)

// WithResources establishes a metric that tracks the units held through the decorated semaphore.
// If a nil metric is supplied, resource counts are discarded.
func WithResources(a xmetrics.Adder) InstrumentOption {
	return func(i *instrumentedSemaphore) {
		if a != nil {
			i.resources = a
		} else {
			i.resources = discard.NewCounter()
		}
	}
}

// WithErrors establishes a metric that tracks how many errors, or failed resource acquisitions,
// happen when attempting to acquire resources.  If a nil counter is supplied, error counts
// are discarded.
func WithErrors(a xmetrics.Adder) InstrumentOption {
	return func(i *instrumentedSemaphore) {
		if a != nil {
			i.errors = a
		} else {
			i.errors = discard.NewCounter()
		}
	}
}

// WithWaitDuration establishes a metric that observes the seconds spent in each acquire call.
// If a nil observer is supplied, durations are discarded.
func WithWaitDuration(o xmetrics.Observer) InstrumentOption {
	return func(i *instrumentedSemaphore) {
		if o != nil {
			i.waits = o
		} else {
			i.waits = discard.NewHistogram()
		}
	}
}

// Instrument decorates an existing semaphore with a set of options.
func Instrument(s Interface, o ...InstrumentOption) Interface {
	is := &instrumentedSemaphore{
		Interface: s,
		resources: discard.NewCounter(),
		errors:    discard.NewCounter(),
		waits:     discard.NewHistogram(),
		now:       time.Now,
	}

	for _, f := range o {
		f(is)
	}

	return is
}

type instrumentedSemaphore struct {
	Interface
	resources xmetrics.Adder
	errors    xmetrics.Adder
	waits     xmetrics.Observer
	now       func() time.Time
}

func (is *instrumentedSemaphore) record(start time.Time, units int, err error) error {
	is.waits.Observe(is.now().Sub(start).Seconds())
	if err != nil {
		is.errors.Add(1.0)
	} else {
		is.resources.Add(float64(units))
	}

	return err
}

func (is *instrumentedSemaphore) Acquire() error {
	start := is.now()
	return is.record(start, 1, is.Interface.Acquire())
}

func (is *instrumentedSemaphore) AcquireN(n int) error {
	start := is.now()
	return is.record(start, n, is.Interface.AcquireN(n))
}

func (is *instrumentedSemaphore) AcquireWait(timeout time.Duration) error {
	start := is.now()
	return is.record(start, 1, is.Interface.AcquireWait(timeout))
}

func (is *instrumentedSemaphore) AcquireCtx(ctx context.Context) error {
	start := is.now()
	return is.record(start, 1, is.Interface.AcquireCtx(ctx))
}

func (is *instrumentedSemaphore) TryAcquire() (bool, error) {
	ok, err := is.Interface.TryAcquire()
	switch {
	case err != nil:
		is.errors.Add(1.0)
	case ok:
		is.resources.Add(1.0)
	}

	return ok, err
}

func (is *instrumentedSemaphore) Release() error {
	err := is.Interface.Release()
	if err == nil {
		is.resources.Add(-1.0)
	}

	return err
}

func (is *instrumentedSemaphore) ReleaseN(n int) error {
	err := is.Interface.ReleaseN(n)
	if err == nil {
		is.resources.Add(-float64(n))
	}

	return err
}
