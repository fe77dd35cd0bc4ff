// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package semaphore

import (
	"testing"

	"github.com/go-kit/kit/metrics/provider"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xmidt-org/sysvsem/xmetrics"
)

func TestMetrics(t *testing.T) {
	var (
		assert = assert.New(t)
		names  = make(map[string]string)
	)

	for _, m := range Metrics() {
		names[m.Name] = m.Type
	}

	assert.Equal(
		map[string]string{
			ResourcesMetric:     xmetrics.GaugeType,
			AcquireErrorsMetric: xmetrics.CounterType,
			AcquireWaitMetric:   xmetrics.HistogramType,
		},
		names,
	)
}

func TestNewMeasuresDiscard(t *testing.T) {
	var (
		assert = assert.New(t)
		m      = NewMeasures(provider.NewDiscardProvider())
	)

	assert.NotNil(m.Resources)
	assert.NotNil(m.AcquireErrors)
	assert.NotNil(m.AcquireWait)
	assert.Len(m.InstrumentOptions(), 3)
}

func TestNewMeasuresRegistry(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)
		s       = new(mockInterface)
	)

	r, err := xmetrics.NewRegistry(&xmetrics.Options{
		Namespace:               "test",
		DisableGoCollector:      true,
		DisableProcessCollector: true,
		Metrics:                 Metrics(),
	})

	require.NoError(err)
	is := Instrument(s, NewMeasures(r).InstrumentOptions()...)

	s.On("AcquireN", 2).Return(nil).Once()
	s.On("Release").Return(nil).Once()
	s.On("Acquire").Return(ErrRemovedWhileWaiting).Once()

	assert.NoError(is.AcquireN(2))
	assert.NoError(is.Release())
	assert.Equal(ErrRemovedWhileWaiting, is.Acquire())

	families, err := r.Gather()
	require.NoError(err)

	values := make(map[string]float64)
	for _, f := range families {
		for _, m := range f.GetMetric() {
			switch {
			case m.GetGauge() != nil:
				values[f.GetName()] = m.GetGauge().GetValue()
			case m.GetCounter() != nil:
				values[f.GetName()] = m.GetCounter().GetValue()
			case m.GetHistogram() != nil:
				values[f.GetName()] = float64(m.GetHistogram().GetSampleCount())
			}
		}
	}

	assert.Equal(1.0, values["test_"+ResourcesMetric])
	assert.Equal(1.0, values["test_"+AcquireErrorsMetric])
	assert.Equal(2.0, values["test_"+AcquireWaitMetric])
	s.AssertExpectations(t)
}
