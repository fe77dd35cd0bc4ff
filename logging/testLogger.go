// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

// NewTestLogger produces a Logger which delegates to the supplied testing log.  A nil Options
// logs everything, since all output is wanted in tests by default.
func NewTestLogger(o *Options, t zaptest.TestingT) *zap.Logger {
	if o == nil {
		o = &Options{Level: "DEBUG"}
	}

	return zaptest.NewLogger(t, zaptest.Level(o.level()))
}
