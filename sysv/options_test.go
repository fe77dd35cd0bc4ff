// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package sysv

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestNewConfig(t *testing.T) {
	t.Run("Default", func(t *testing.T) {
		var (
			assert = assert.New(t)
			c      = newConfig(nil)
		)

		assert.Equal(DefaultAttachTimeout, c.attachTimeout)
		assert.Equal(DefaultCreateRetries, c.createRetries)
		assert.NotNil(c.logger)
	})

	t.Run("Custom", func(t *testing.T) {
		var (
			assert = assert.New(t)
			logger = zap.NewNop()
			c      = newConfig([]Option{
				WithAttachTimeout(5 * time.Second),
				WithCreateRetries(0),
				WithLogger(logger),
			})
		)

		assert.Equal(5*time.Second, c.attachTimeout)
		assert.Zero(c.createRetries)
		assert.Equal(logger, c.logger)
	})

	t.Run("Invalid", func(t *testing.T) {
		var (
			assert = assert.New(t)
			c      = newConfig([]Option{
				WithAttachTimeout(-1),
				WithCreateRetries(-1),
				WithLogger(nil),
			})
		)

		assert.Equal(DefaultAttachTimeout, c.attachTimeout)
		assert.Equal(DefaultCreateRetries, c.createRetries)
		assert.NotNil(c.logger)
	})
}
