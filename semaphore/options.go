// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package semaphore

import (
	"os"
	"time"

	"github.com/xmidt-org/sysvsem/logging"
	"go.uber.org/zap"
)

// DefaultPollInterval bounds each kernel wait issued by AcquireCtx.
const DefaultPollInterval = 50 * time.Millisecond

// Option configures Open and OpenMutex.
type Option func(*settings)

type settings struct {
	perm         os.FileMode
	initial      int
	capacity     int
	pollInterval time.Duration
	logger       *zap.Logger
}

func newSettings(o []Option) *settings {
	s := &settings{
		perm:         DefaultPerm,
		initial:      1,
		capacity:     MaxValue,
		pollInterval: DefaultPollInterval,
		logger:       logging.DefaultLogger(),
	}

	for _, f := range o {
		f(s)
	}

	return s
}

// WithPerm sets the permission mask of a newly created semaphore.  Only the permission bits are used.
func WithPerm(perm os.FileMode) Option {
	return func(s *settings) {
		s.perm = perm.Perm()
	}
}

// WithInitial sets the value of a newly created semaphore.  The default is 1.
func WithInitial(n int) Option {
	return func(s *settings) {
		s.initial = n
	}
}

// WithCapacity sets the ceiling of a newly created semaphore.  The default is MaxValue.
// Releases that would exceed the capacity fail with ErrCapacityExceeded.
func WithCapacity(n int) Option {
	return func(s *settings) {
		s.capacity = n
	}
}

// WithPollInterval sets how long each kernel wait lasts inside AcquireCtx before the context
// is checked again.  Nonpositive values select DefaultPollInterval.
func WithPollInterval(d time.Duration) Option {
	return func(s *settings) {
		if d > 0 {
			s.pollInterval = d
		} else {
			s.pollInterval = DefaultPollInterval
		}
	}
}

// WithLogger sets the logger used for lifecycle events.  A nil logger selects logging.DefaultLogger().
func WithLogger(l *zap.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.logger = l
		} else {
			s.logger = logging.DefaultLogger()
		}
	}
}
