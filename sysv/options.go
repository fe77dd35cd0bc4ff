// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package sysv

import (
	"time"

	"github.com/xmidt-org/sallust"
	"go.uber.org/zap"
)

const (
	// DefaultAttachTimeout is how long an attaching process waits for the creator of a set to
	// initialize it.
	DefaultAttachTimeout = time.Second

	// DefaultCreateRetries bounds how often Open retries when the object it is attaching to is
	// removed out from under it.
	DefaultCreateRetries = 3
)

// Option configures a Kernel.
type Option func(*config)

type config struct {
	attachTimeout time.Duration
	createRetries int
	logger        *zap.Logger
}

func newConfig(o []Option) config {
	c := config{
		attachTimeout: DefaultAttachTimeout,
		createRetries: DefaultCreateRetries,
		logger:        sallust.Default(),
	}

	for _, f := range o {
		f(&c)
	}

	return c
}

// WithAttachTimeout sets how long Open waits for a concurrently created set to be initialized.
// Nonpositive values select DefaultAttachTimeout.
func WithAttachTimeout(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.attachTimeout = d
		} else {
			c.attachTimeout = DefaultAttachTimeout
		}
	}
}

// WithCreateRetries sets how often Open retries after a create-or-attach race with a removal.
// Negative values select DefaultCreateRetries.
func WithCreateRetries(n int) Option {
	return func(c *config) {
		if n >= 0 {
			c.createRetries = n
		} else {
			c.createRetries = DefaultCreateRetries
		}
	}
}

// WithLogger sets the logger for attach diagnostics.  A nil logger selects sallust.Default().
func WithLogger(l *zap.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		} else {
			c.logger = sallust.Default()
		}
	}
}
