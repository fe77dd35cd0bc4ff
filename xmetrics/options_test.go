// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package xmetrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testOptionsDefault(o *Options, t *testing.T) {
	assert := assert.New(t)

	assert.Equal(DefaultNamespace, o.namespace())
	assert.Equal(DefaultSubsystem, o.subsystem())
	assert.False(o.pedantic())
	assert.False(o.disableGoCollector())
	assert.False(o.disableProcessCollector())
	assert.NotNil(o.registry())
	assert.Empty(o.metrics())
}

func testOptionsCustom(t *testing.T) {
	var (
		assert = assert.New(t)
		o      = Options{
			Namespace:               "custom_namespace",
			Subsystem:               "custom_subsystem",
			Pedantic:                true,
			DisableGoCollector:      true,
			DisableProcessCollector: true,
			Metrics: []Metric{
				{Name: "counter", Type: CounterType},
			},
		}
	)

	assert.Equal("custom_namespace", o.namespace())
	assert.Equal("custom_subsystem", o.subsystem())
	assert.True(o.pedantic())
	assert.True(o.disableGoCollector())
	assert.True(o.disableProcessCollector())
	assert.NotNil(o.registry())
	assert.Equal([]Metric{{Name: "counter", Type: CounterType}}, o.metrics())
}

func testOptionsAddModules(t *testing.T) {
	var (
		assert   = assert.New(t)
		original = &Options{
			Namespace: "custom",
			Metrics:   []Metric{{Name: "first", Type: CounterType}},
		}

		module = func() []Metric {
			return []Metric{{Name: "second", Type: GaugeType}}
		}
	)

	added := original.AddModules(module)
	assert.Equal("custom", added.Namespace)
	assert.Equal(
		[]Metric{{Name: "first", Type: CounterType}, {Name: "second", Type: GaugeType}},
		added.Metrics,
	)

	// the original is untouched
	assert.Len(original.Metrics, 1)

	var nilOptions *Options
	assert.Equal([]Metric{{Name: "second", Type: GaugeType}}, nilOptions.AddModules(module).Metrics)
}

func TestOptions(t *testing.T) {
	t.Run("Nil", func(t *testing.T) {
		testOptionsDefault(nil, t)
	})

	t.Run("Default", func(t *testing.T) {
		testOptionsDefault(new(Options), t)
	})

	t.Run("Custom", testOptionsCustom)
	t.Run("AddModules", testOptionsAddModules)
}
