// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package semaphore

import (
	"context"

	"github.com/xmidt-org/sysvsem/logging"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Do acquires one unit of s, runs f, and releases the unit when f returns or panics.  A release
// failure is combined with f's error and logged to the context's logger, as set by
// logging.WithLogger.  If the unit cannot be acquired, f is not run.
func Do(ctx context.Context, s Interface, f func() error) (err error) {
	if err = s.AcquireCtx(ctx); err != nil {
		return
	}

	defer func() {
		if releaseErr := s.Release(); releaseErr != nil {
			logging.GetLogger(ctx).Error("unable to release semaphore", zap.Error(releaseErr))
			err = multierr.Append(err, releaseErr)
		}
	}()

	err = f()
	return
}
