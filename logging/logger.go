// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package logging

import (
	"github.com/xmidt-org/sallust"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// DefaultLogger returns the global NOP logger.
// This returned instance is safe for concurrent access.
func DefaultLogger() *zap.Logger {
	return sallust.Default()
}

// New creates a zap Logger from a set of options.  The options object can be nil,
// in which case a default logger that logs errors to os.Stdout is returned.  The returned logger
// filters according to the Level field.
//
// In order to allow arbitrary decoration, this function does not insert the caller information.
// Use zap.AddCaller with WithOptions on the returned Logger if the caller is desired.
func New(o *Options) *zap.Logger {
	return zap.New(
		zapcore.NewCore(o.encoder(), o.output(), o.level()),
	)
}
