// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package semaphore

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/xmidt-org/sysvsem/logging"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestDo(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		var (
			assert = assert.New(t)
			s      = new(mockInterface)
			called = false
		)

		s.On("AcquireCtx", ctx).Return(nil).Once()
		s.On("Release").Return(nil).Once()

		assert.NoError(Do(ctx, s, func() error {
			called = true
			return nil
		}))

		assert.True(called)
		s.AssertExpectations(t)
	})

	t.Run("AcquireFails", func(t *testing.T) {
		var (
			assert = assert.New(t)
			s      = new(mockInterface)
		)

		s.On("AcquireCtx", ctx).Return(ErrRemovedWhileWaiting).Once()
		assert.Equal(ErrRemovedWhileWaiting, Do(ctx, s, func() error {
			assert.Fail("the function should not have been called")
			return nil
		}))

		s.AssertExpectations(t)
	})

	t.Run("FunctionFails", func(t *testing.T) {
		var (
			assert   = assert.New(t)
			s        = new(mockInterface)
			expected = errors.New("expected")
		)

		s.On("AcquireCtx", ctx).Return(nil).Once()
		s.On("Release").Return(nil).Once()

		assert.Equal(expected, Do(ctx, s, func() error {
			return expected
		}))

		s.AssertExpectations(t)
	})

	t.Run("ReleaseFails", func(t *testing.T) {
		var (
			assert   = assert.New(t)
			s        = new(mockInterface)
			expected = errors.New("expected")

			core, logs = observer.New(zap.ErrorLevel)
			logCtx     = logging.WithLogger(ctx, zap.New(core))
		)

		s.On("AcquireCtx", logCtx).Return(nil).Once()
		s.On("Release").Return(ErrNotFound).Once()

		err := Do(logCtx, s, func() error {
			return expected
		})

		assert.ElementsMatch([]error{expected, ErrNotFound}, multierr.Errors(err))
		assert.Equal(1, logs.FilterMessage("unable to release semaphore").Len())
		s.AssertExpectations(t)
	})

	t.Run("Panic", func(t *testing.T) {
		var (
			assert = assert.New(t)
			s      = new(mockInterface)
		)

		s.On("AcquireCtx", ctx).Return(nil).Once()
		s.On("Release").Return(nil).Once()

		assert.Panics(func() {
			Do(ctx, s, func() error {
				panic("expected")
			})
		})

		s.AssertExpectations(t)
	})
}
